package writers

import (
	"io"

	"go.uber.org/zap"

	"unipept/internal/logger"
	"unipept/internal/metrics"
)

// DefaultBufSize is the queue capacity used when a caller passes <= 0.
const DefaultBufSize = 100

// SinkStats counts what one sink worker did.
type SinkStats struct {
	Table    string
	Jobs     int64
	Rows     int64
	Failures int64
}

// Encoder appends the rows for job to dst. It calls next once per row to
// obtain that row's surrogate id.
type Encoder[T any] func(dst []byte, next func() int64, job T) []byte

// StartSink spins up a worker goroutine that owns the id counter of one
// table. Each job received on the returned channel is encoded and written to
// out in a single Write. A failed write is logged, counted and skipped; the
// worker keeps draining the queue. Ids start at 1 and are consumed even for
// rows whose write failed.
//
// The stats channel yields once, after the job channel is closed and
// drained. The caller owns out and closes it afterwards.
func StartSink[T any](table string, out io.Writer, bufSize int, enc Encoder[T], log *zap.SugaredLogger, m *metrics.Set) (chan<- T, <-chan SinkStats) {
	if bufSize <= 0 {
		bufSize = DefaultBufSize
	}
	log = logger.OrNop(log).With(logger.FieldTable, table)
	in := make(chan T, bufSize)
	done := make(chan SinkStats, 1)

	go func() {
		st := SinkStats{Table: table}
		var (
			id  int64
			buf []byte
		)
		next := func() int64 {
			id++
			return id
		}

		for job := range in {
			st.Jobs++
			before := id
			buf = enc(buf[:0], next, job)
			rows := id - before
			st.Rows += rows
			if len(buf) == 0 {
				continue
			}
			if _, err := out.Write(buf); err != nil {
				st.Failures++
				m.WriteError(table)
				log.Errorw("write failed", logger.FieldError, err, logger.FieldCount, rows)
				continue
			}
			m.RowsWritten(table, int(rows))
		}
		done <- st
	}()

	return in, done
}
