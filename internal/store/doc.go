// Package store provides SQLite-backed durable storage for lexweb.
//
// The store holds four tables:
//   - lexicons: owned, named collections of lexemes
//   - webs: owned, named collections of relations
//   - lexemes: text terms, UNIQUE(lexicon_id, text)
//   - relations: labeled edges, UNIQUE(web_id, name_id, source_id, sink_id)
//
// # Integrity
//
// Every invariant of the model is also a schema constraint:
//   - UNIQUE(owner, name) per collection table
//   - CHECK(date_created <= last_modified) per collection table (causality)
//   - ON DELETE CASCADE from collections to their members
//   - ON DELETE CASCADE from lexemes to every relation naming them as
//     name, source or sink, across all webs
//
// Constraint failures are translated into model errors (DUPLICATE_*,
// NOT_FOUND, CAUSALITY_VIOLATION). Each mutation that stamps a parent and
// touches a child runs in a single transaction.
//
// # Time
//
// Timestamps are stored as INTEGER nanoseconds since the Unix epoch (UTC) so
// comparisons in SQL and in Go agree exactly.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
