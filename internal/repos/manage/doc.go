// Package manage implements the batch repository-management pipeline: parsing
// owner/repo identifiers from a list file, building a status-annotated
// execution plan against the remote API, collecting explicit operator
// confirmation, executing archive or delete operations sequentially with
// per-item failure isolation, and aggregating outcomes into a final report
// that decides the process exit status.
package manage
