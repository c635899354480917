// Package utils hosts configuration loading, logger construction, and small
// I/O helpers shared by the command-line entrypoints.
package utils
