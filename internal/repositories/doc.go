// Package repositories implements SQLite persistence for the local cache.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [VideoRepository] : Cached catalog entries keyed by remote video ID
//   - [WatchEntryRepository] : Cached watch history keyed by remote entry ID
//
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
