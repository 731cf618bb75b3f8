package fileio

import (
	"bufio"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"unipept/internal/errors"
)

// writeCloser flushes layers from the outermost inwards on Close.
type writeCloser struct {
	io.Writer
	layers []func() error
}

func (w *writeCloser) Close() error {
	var err error
	for _, fn := range w.layers {
		if cerr := fn(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// Create opens path for writing, truncating it. The codec follows the suffix
// (.gz, .zst, .lz4). Close must be called to flush the compressor.
func Create(path string) (io.WriteCloser, error) {
	if path == "-" {
		return NewWriter(nopWriteCloser{os.Stdout}, None)
	}
	fh, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "create %s", path)
	}
	w, err := NewWriter(fh, CompressionFor(path))
	if err != nil {
		_ = fh.Close()
		return nil, errors.Wrapf(err, "create %s", path)
	}
	return w, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// NewWriter layers a compressor over dst. Closing the result closes dst.
func NewWriter(dst io.WriteCloser, c Compression) (io.WriteCloser, error) {
	switch c {
	case Gzip:
		gw := gzip.NewWriter(dst)
		return &writeCloser{Writer: gw, layers: []func() error{gw.Close, dst.Close}}, nil
	case Zstd:
		enc, err := zstd.NewWriter(dst)
		if err != nil {
			return nil, err
		}
		return &writeCloser{Writer: enc, layers: []func() error{enc.Close, dst.Close}}, nil
	case LZ4:
		lw := lz4.NewWriter(dst)
		return &writeCloser{Writer: lw, layers: []func() error{lw.Close, dst.Close}}, nil
	default:
		bw := bufio.NewWriterSize(dst, 64<<10)
		return &writeCloser{Writer: bw, layers: []func() error{bw.Flush, dst.Close}}, nil
	}
}
