package store

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

// Compression identifies how a manifest blob is encoded at rest.
type Compression uint8

const (
	// None is an uncompressed blob.
	None Compression = iota
	// Snappy is the "hot", low-latency path:
	// block-framed snappy, read with github.com/golang/snappy.
	Snappy
	// Zstd is the "cold", archival path: read with
	// github.com/klauspost/compress/zstd.
	Zstd
)

// ErrNotFound is returned when a ManifestLoader has no blob under the
// requested name.
var ErrNotFound = errors.New("store: manifest not found")

// ManifestLoader resolves a manifest name (a term-table or shard-slice
// identifier; the naming scheme is a host convention, not one this package
// enforces) to its decompressed bytes.
type ManifestLoader interface {
	// Load returns the decompressed contents of the manifest named name.
	// The caller owns the returned ReadCloser and must Close it.
	Load(ctx context.Context, name string) (io.ReadCloser, error)
}
