// Package fileio opens input and output streams by path. "-" means
// stdin/stdout; gzip, zstd and lz4 are handled transparently.
package fileio

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"unipept/internal/errors"
)

// Compression identifies a stream codec.
type Compression int

const (
	None Compression = iota
	Gzip
	Zstd
	LZ4
)

var (
	magicGzip = []byte{0x1f, 0x8b}
	magicZstd = []byte{0x28, 0xb5, 0x2f, 0xfd}
	magicLZ4  = []byte{0x04, 0x22, 0x4d, 0x18}
)

// String returns the file suffix of c without the dot.
func (c Compression) String() string {
	switch c {
	case Gzip:
		return "gz"
	case Zstd:
		return "zst"
	case LZ4:
		return "lz4"
	default:
		return "none"
	}
}

// CompressionFor picks a codec from the path suffix.
func CompressionFor(path string) Compression {
	switch {
	case strings.HasSuffix(path, ".gz"):
		return Gzip
	case strings.HasSuffix(path, ".zst"):
		return Zstd
	case strings.HasSuffix(path, ".lz4"):
		return LZ4
	default:
		return None
	}
}

// TrimCompression strips a known compression suffix from path.
func TrimCompression(path string) string {
	if c := CompressionFor(path); c != None {
		return strings.TrimSuffix(path, "."+c.String())
	}
	return path
}

func sniff(head []byte) Compression {
	switch {
	case bytes.HasPrefix(head, magicGzip):
		return Gzip
	case bytes.HasPrefix(head, magicZstd):
		return Zstd
	case bytes.HasPrefix(head, magicLZ4):
		return LZ4
	default:
		return None
	}
}

// multiReadCloser closes multiple io.Closers when Close() is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// Open opens path for reading. The codec is detected from the magic number;
// a compression suffix on a file without the matching magic is an error.
func Open(path string) (io.ReadCloser, error) {
	var src io.ReadCloser = io.NopCloser(os.Stdin)
	if path != "-" {
		fh, err := os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "open %s", path)
		}
		src = fh
	}
	rc, err := NewReader(src, CompressionFor(path))
	if err != nil {
		_ = src.Close()
		return nil, errors.Wrapf(err, "open %s", path)
	}
	return rc, nil
}

// NewReader wraps src in a decompressor chosen by magic number. hint is the
// codec the caller expects from the file name. Closing the result closes src.
func NewReader(src io.ReadCloser, hint Compression) (io.ReadCloser, error) {
	br := bufio.NewReaderSize(src, 64<<10)
	head, _ := br.Peek(4)
	c := sniff(head)
	if c == None && hint != None && len(head) > 0 {
		return nil, errors.Newf("stream does not look like %s data", hint)
	}

	switch c {
	case Gzip:
		gr, err := gzip.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, src}}, nil
	case Zstd:
		dec, err := zstd.NewReader(br)
		if err != nil {
			return nil, err
		}
		return &multiReadCloser{Reader: dec, closers: []io.Closer{closerFunc(func() error { dec.Close(); return nil }), src}}, nil
	case LZ4:
		return &multiReadCloser{Reader: lz4.NewReader(br), closers: []io.Closer{src}}, nil
	default:
		return &multiReadCloser{Reader: br, closers: []io.Closer{src}}, nil
	}
}
