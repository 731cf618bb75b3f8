// Package writers runs the goroutines that serialize rows to outputs.
//
//   - StartSink owns one table file: a bounded queue, a surrogate id counter
//     and per-occurrence error logging.
//   - StartLines streams plain lines (LCA results) through a pooled buffer.
//
// Both follow the same shape: the caller gets a send-only channel and a
// one-shot result channel that fires after the input channel is closed.
package writers
