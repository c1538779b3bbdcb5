// Package store is the I/O plugin this repo ships as one concrete
// ManifestLoader implementation: loading term-table and shard-slice
// manifests from local disk or from S3, decompressing them along the way.
// Building a TermTable or shard definition stays with the host — store
// only gets callers the decompressed bytes to build one from. Hosts may
// supply their own ManifestLoader instead; nothing in package planner,
// compiler, or matcher imports this package directly.
package store
