// Package cli assembles the ghsweep root command: configuration bootstrap,
// logger lifecycle, subcommand registration, and exit code mapping.
package cli
