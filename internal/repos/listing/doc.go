// Package listing renders repository inventories for the authenticated user
// and for other users' public repositories, with archival filtering and an
// export format consumable by batch management.
package listing
