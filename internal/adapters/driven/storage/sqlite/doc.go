// Package sqlite provides a SQLite-backed document store.
//
// Documents for both collections live in a single table scoped by
// owner_id; an empty owner means the shared collection. Embedding
// vectors are stored as little-endian float32 BLOBs. Schema changes
// go through embedded, versioned migrations.
package sqlite
