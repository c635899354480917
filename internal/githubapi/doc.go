// Package githubapi implements the remote repository service over the GitHub
// REST API using the go-gh client. It classifies not-found and forbidden
// responses into the domain's not-found status, walks paginated listings one
// page at a time via Link headers, and wraps failures in typed operation
// errors so callers can surface API-provided reasons verbatim.
package githubapi
