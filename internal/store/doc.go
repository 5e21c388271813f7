// Package store provides SQLite-backed persistence for the pagekeep
// wiki: pages, their append-only revision chains, role permissions,
// per-page overwrites, and watch lists.
//
// # Invariants
//
//   - A page and its first revision are created in one transaction;
//     every later edit appends a revision and repoints
//     current_revision_id in the same transaction. The pointer and the
//     revision it references never commit independently.
//   - Revision ids are AUTOINCREMENT: monotonic, globally unique,
//     never reused.
//   - Titles are unique per guild under Unicode case folding, enforced
//     by a UNIQUE(guild, title_fold) index. All title-keyed lookups go
//     through the folded key (wiki.Fold).
//   - Rename is a single conditional UPDATE verified by affected-row
//     count; revision history is untouched.
//
// Listing operations return iter.Seq2 sequences backed by a live
// *sql.Rows. The query is issued when iteration starts and the rows are
// closed when the sequence is exhausted, abandoned early, or fails.
//
// # Database configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: page deletion cascades to revisions,
//     page permissions, and watch entries
package store
