// Package shard declares the interfaces package matcher consumes but never
// constructs: a Definition (an opaque mapping from posting count to shard
// id with per-shard density) and a Slice (a fixed-capacity block of
// documents within a shard, holding one quadword array per row at that
// row's own rank).
//
// Building a Definition or populating a Slice — ingestion, the
// shard-definition optimiser, chunk readers — lives outside this module.
// Tests in package matcher use a small in-memory Slice; cmd/bitfunnel
// ships a file-backed demo one.
package shard
