package writers

import (
	"bufio"
	"context"
	"io"
	"sync"
	"syscall"

	"unipept/internal/errors"
)

// IsBrokenPipe reports whether err means the reader went away, as when the
// output is piped into head.
func IsBrokenPipe(err error) bool {
	return err != nil && (errors.Is(err, syscall.EPIPE) || errors.Is(err, io.ErrClosedPipe))
}

// Reuse a 64 KiB buffered writer across line writers.
var bwPool = sync.Pool{
	New: func() any {
		return bufio.NewWriterSize(io.Discard, 64<<10)
	},
}

// StartLines spins up a writer goroutine that appends enc(v) to out for each
// v received, through a pooled buffer. On the first write error the worker
// calls abort (if non-nil) with that error and discards the rest of the
// queue, so the producer never blocks on a dead consumer. A broken pipe is
// reported as success.
func StartLines[T any](out io.Writer, bufSize int, enc func([]byte, T) []byte, abort context.CancelCauseFunc) (chan<- T, <-chan error) {
	if bufSize <= 0 {
		bufSize = DefaultBufSize
	}
	in := make(chan T, bufSize)
	done := make(chan error, 1)

	go func() {
		bw := bwPool.Get().(*bufio.Writer)
		bw.Reset(out)
		defer func() {
			bw.Reset(io.Discard)
			bwPool.Put(bw)
		}()

		var (
			line []byte
			werr error
		)
		fail := func(err error) {
			werr = err
			if abort != nil {
				abort(err)
			}
		}
		for v := range in {
			if werr != nil {
				continue
			}
			line = enc(line[:0], v)
			if _, err := bw.Write(line); err != nil {
				fail(err)
			}
		}
		if werr == nil {
			if err := bw.Flush(); err != nil {
				fail(err)
			}
		}
		if IsBrokenPipe(werr) {
			werr = nil
		}
		done <- werr
	}()

	return in, done
}
