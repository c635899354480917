// Package shared defines the repository management vocabulary reused across
// commands: owner/name identifiers, statuses, operations, filters, and the
// collaborator contracts (remote API service, confirmation prompter,
// reporter) that concrete implementations and test doubles satisfy.
package shared
