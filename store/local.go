package store

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// LocalLoader reads manifests from a directory on local disk: a plain
// *os.File wrapped in a streaming decompressor selected by the blob's
// encoding.
type LocalLoader struct {
	root        string
	compression map[string]Compression // name -> Compression override
}

// NewLocalLoader creates a LocalLoader rooted at dir. Manifests are
// resolved as filepath.Join(dir, name); compression is inferred from the
// file's extension (".sz" for snappy, ".zst" for zstd, anything else
// uncompressed) unless SetCompression overrides it for a specific name.
func NewLocalLoader(dir string) *LocalLoader {
	return &LocalLoader{root: dir, compression: make(map[string]Compression)}
}

// SetCompression forces the Compression used for name, overriding
// extension sniffing. Tests use this to exercise each codec without
// renaming fixture files.
func (l *LocalLoader) SetCompression(name string, c Compression) {
	l.compression[name] = c
}

func (l *LocalLoader) Load(ctx context.Context, name string) (io.ReadCloser, error) {
	path := filepath.Join(l.root, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(ErrNotFound, "%s", name)
		}
		return nil, errors.Wrapf(err, "store: opening %s", path)
	}

	c, ok := l.compression[name]
	if !ok {
		c = compressionFromExt(name)
	}
	return decompress(f, c)
}

func compressionFromExt(name string) Compression {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".sz":
		return Snappy
	case ".zst":
		return Zstd
	default:
		return None
	}
}

func decompress(f *os.File, c Compression) (io.ReadCloser, error) {
	switch c {
	case None:
		return f, nil
	case Snappy:
		return snappyReadCloser{r: snappy.NewReader(f), f: f}, nil
	case Zstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, errors.Wrap(err, "store: opening zstd manifest")
		}
		return zstdReadCloser{dec: dec, f: f}, nil
	default:
		f.Close()
		return nil, errors.Errorf("store: unknown compression %d", c)
	}
}

// snappyReadCloser pairs a snappy.Reader with the file backing it, since
// snappy.Reader has no Close of its own.
type snappyReadCloser struct {
	r *snappy.Reader
	f *os.File
}

func (s snappyReadCloser) Read(p []byte) (int, error) { return s.r.Read(p) }
func (s snappyReadCloser) Close() error               { return s.f.Close() }

// zstdReadCloser pairs a zstd.Decoder with the file backing it.
type zstdReadCloser struct {
	dec *zstd.Decoder
	f   *os.File
}

func (z zstdReadCloser) Read(p []byte) (int, error) {
	return z.dec.Read(p)
}

func (z zstdReadCloser) Close() error {
	z.dec.Close()
	return z.f.Close()
}
