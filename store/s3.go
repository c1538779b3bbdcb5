package store

import (
	"context"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// S3Loader is the alternate ManifestLoader backend, for manifests and
// shard-slice blobs addressed by s3:// URIs. It uses the S3 client
// directly rather than grailbio/base/file/s3file's indirection, since this
// package has no other use for grailbio/base/file.
type S3Loader struct {
	client s3iface.S3API
	bucket string
	prefix string
}

// NewS3Loader creates an S3Loader for objects under s3://bucket/prefix,
// using sess (callers construct it once via session.NewSession so
// credentials/region are configured the ordinary AWS SDK way).
func NewS3Loader(sess *session.Session, bucket, prefix string) *S3Loader {
	return &S3Loader{client: s3.New(sess), bucket: bucket, prefix: strings.TrimSuffix(prefix, "/")}
}

func (l *S3Loader) key(name string) string {
	if l.prefix == "" {
		return name
	}
	return l.prefix + "/" + name
}

func (l *S3Loader) Load(ctx context.Context, name string) (io.ReadCloser, error) {
	key := l.key(name)
	out, err := l.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(l.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		if aerr, ok := err.(awserr.Error); ok && aerr.Code() == s3.ErrCodeNoSuchKey {
			return nil, errors.Wrapf(ErrNotFound, "s3://%s/%s", l.bucket, key)
		}
		return nil, errors.Wrapf(err, "store: GetObject s3://%s/%s", l.bucket, key)
	}

	c := compressionFromExt(name)
	if c == None {
		return out.Body, nil
	}
	return decompressBody(out.Body, c)
}

// decompressBody mirrors local.go's decompress, but for a ReadCloser that
// is already open (an S3 GetObject response body) instead of an *os.File.
func decompressBody(body io.ReadCloser, c Compression) (io.ReadCloser, error) {
	switch c {
	case Snappy:
		return bodyReadCloser{r: snappy.NewReader(body), body: body}, nil
	case Zstd:
		dec, err := zstd.NewReader(body)
		if err != nil {
			body.Close()
			return nil, errors.Wrap(err, "store: opening zstd manifest")
		}
		return bodyReadCloser{r: dec, body: body, closer: dec.Close}, nil
	default:
		return body, nil
	}
}

// bodyReadCloser pairs a streaming decompressor r with the response body it
// reads from, so Close releases both the decompressor (closer, if any) and
// the underlying HTTP body.
type bodyReadCloser struct {
	r      io.Reader
	body   io.ReadCloser
	closer func()
}

func (b bodyReadCloser) Read(p []byte) (int, error) { return b.r.Read(p) }

func (b bodyReadCloser) Close() error {
	if b.closer != nil {
		b.closer()
	}
	return b.body.Close()
}
