// Package store persists snapshots and projects in a workspace
// directory.
//
// A workspace keeps every snapshot as one immutable JSON document under
// projects/<project-id>/snapshots/<snapshot-id>.json and maintains a
// SQLite index of projects and snapshot metadata next to them. The
// documents are the source of truth; the index only accelerates listing
// and lookup. Series loading reads the documents back, filtered by an
// inclusive time window, decoding files concurrently.
package store
