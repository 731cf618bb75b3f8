// Package tables fans validated UniProt entries out into the five table
// files of the peptide database: entries, peptides and the GO, EC and
// InterPro cross-references.
//
// One producer calls Store. Entry rows are written inline; every other table
// has its own worker goroutine behind a bounded queue, so a slow sink
// throttles the producer instead of growing memory.
package tables

import (
	"slices"
	"strings"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"unipept/internal/digest"
	"unipept/internal/errors"
	"unipept/internal/logger"
	"unipept/internal/metrics"
	"unipept/internal/output"
	"unipept/internal/taxonomy"
	"unipept/internal/uniprot"
	"unipept/internal/writers"
)

// DefaultQueueSize is the capacity of each sink queue.
const DefaultQueueSize = 100

// Validator decides which taxon ids an entry may carry.
type Validator = taxonomy.Validator

// Config tunes a Writer.
type Config struct {
	// QueueSize is the capacity of each sink queue; <= 0 means DefaultQueueSize.
	QueueSize int
	// SummaryInterval throttles the running report of invalid taxon ids;
	// 0 disables it.
	SummaryInterval time.Duration
}

// Stats summarizes a finished run.
type Stats struct {
	Accepted int64
	Rejected int64
	Sinks    []writers.SinkStats
}

// Rows returns the number of rows assigned in table.
func (s Stats) Rows(table string) int64 {
	for _, st := range s.Sinks {
		if st.Table == table {
			return st.Rows
		}
	}
	return 0
}

// Failures returns the number of failed writes across all tables.
func (s Stats) Failures() int64 {
	var n int64
	for _, st := range s.Sinks {
		n += st.Failures
	}
	return n
}

type refJob struct {
	entryID int64
	code    string
}

type peptideJob struct {
	entryID int64
	entry   uniprot.Entry
}

// Writer owns the surrogate id counters, the set of rejected taxon ids and
// the sink workers of one run. It is not safe for concurrent Store calls.
type Writer struct {
	valid Validator
	sinks Sinks
	log   *zap.SugaredLogger
	m     *metrics.Set

	entries writers.SinkStats
	entryID int64
	buf     []byte

	rejected int64
	wrongIDs *roaring.Bitmap
	summary  *rate.Sometimes

	peptides chan<- peptideJob
	goRefs   chan<- refJob
	ecRefs   chan<- refJob
	ipRefs   chan<- refJob
	done     []<-chan writers.SinkStats

	closed bool
}

// New starts the sink workers. The Writer takes ownership of sinks.
func New(cfg Config, sinks Sinks, valid Validator, dig digest.Digester, log *zap.SugaredLogger, m *metrics.Set) *Writer {
	q := cfg.QueueSize
	if q <= 0 {
		q = DefaultQueueSize
	}
	log = logger.OrNop(log)

	w := &Writer{
		valid:    valid,
		sinks:    sinks,
		log:      log,
		m:        m,
		entries:  writers.SinkStats{Table: output.TableEntries},
		wrongIDs: roaring.New(),
	}
	if cfg.SummaryInterval > 0 {
		w.summary = &rate.Sometimes{Interval: cfg.SummaryInterval}
	}

	var pd, gd, ed, id <-chan writers.SinkStats
	w.peptides, pd = writers.StartSink(output.TablePeptides, sinks.Peptides, q, peptideEncoder(dig), log, m)
	w.goRefs, gd = writers.StartSink(output.TableGO, sinks.GO, q, encodeRef, log, m)
	w.ecRefs, ed = writers.StartSink(output.TableEC, sinks.EC, q, encodeRef, log, m)
	w.ipRefs, id = writers.StartSink(output.TableInterPro, sinks.InterPro, q, encodeRef, log, m)
	w.done = []<-chan writers.SinkStats{pd, gd, ed, id}
	return w
}

// Store writes e and fans its rows out to the sink queues. It reports
// whether the entry row was written; a rejected or failed entry produces no
// rows in any table. Store blocks while a sink queue is full.
func (w *Writer) Store(e uniprot.Entry) bool {
	if w.closed {
		return false
	}
	if !w.accept(e.TaxonID) {
		w.reject(e)
		return false
	}

	w.entryID++
	id := w.entryID
	w.entries.Jobs++
	w.entries.Rows++
	w.buf = output.AppendEntry(w.buf[:0], output.EntryRow{
		ID:              id,
		AccessionNumber: e.AccessionNumber,
		Version:         e.Version,
		TaxonID:         e.TaxonID,
		Type:            e.Type,
		Name:            e.Name,
		Sequence:        e.Sequence,
	})
	if _, err := w.sinks.Entries.Write(w.buf); err != nil {
		w.entries.Failures++
		w.m.WriteError(output.TableEntries)
		w.log.Errorw("write failed",
			logger.FieldTable, output.TableEntries,
			logger.FieldEntryID, e.AccessionNumber,
			logger.FieldError, err)
		return false
	}
	w.m.RowsWritten(output.TableEntries, 1)

	for _, code := range e.GORefs {
		w.goRefs <- refJob{entryID: id, code: code}
	}
	for _, code := range e.ECRefs {
		w.ecRefs <- refJob{entryID: id, code: code}
	}
	for _, code := range e.IPRefs {
		w.ipRefs <- refJob{entryID: id, code: code}
	}
	w.peptides <- peptideJob{entryID: id, entry: e}
	return true
}

func (w *Writer) accept(taxon int32) bool {
	return taxon >= 0 && int(taxon) < w.valid.Len() && w.valid.Contains(taxon)
}

func (w *Writer) reject(e uniprot.Entry) {
	w.rejected++
	w.m.EntryRejected()
	// Ids are stored as their uint32 bit pattern; the mapping is one-to-one.
	if w.wrongIDs.CheckedAdd(uint32(e.TaxonID)) {
		w.log.Warnw("invalid taxon id",
			logger.FieldTaxonID, e.TaxonID,
			logger.FieldEntryID, e.AccessionNumber,
			"distinct", w.wrongIDs.GetCardinality())
		return
	}
	if w.summary != nil {
		w.summary.Do(func() {
			w.log.Infow("entries with invalid taxon ids so far",
				logger.FieldCount, w.rejected,
				"distinct", w.wrongIDs.GetCardinality())
		})
	}
}

// InvalidTaxa returns the distinct rejected taxon ids in ascending order.
func (w *Writer) InvalidTaxa() []int32 {
	ids := make([]int32, 0, w.wrongIDs.GetCardinality())
	it := w.wrongIDs.Iterator()
	for it.HasNext() {
		ids = append(ids, int32(it.Next()))
	}
	slices.Sort(ids)
	return ids
}

// Close stops accepting entries, waits for every sink worker to drain its
// queue and closes the sinks. Calling Close twice is an error.
func (w *Writer) Close() (Stats, error) {
	if w.closed {
		return Stats{}, errors.New("table writer already closed")
	}
	w.closed = true

	close(w.peptides)
	close(w.goRefs)
	close(w.ecRefs)
	close(w.ipRefs)

	st := Stats{
		Accepted: w.entries.Rows - w.entries.Failures,
		Rejected: w.rejected,
		Sinks:    []writers.SinkStats{w.entries},
	}
	for _, d := range w.done {
		st.Sinks = append(st.Sinks, <-d)
	}
	return st, w.sinks.close()
}

func encodeRef(dst []byte, next func() int64, j refJob) []byte {
	return output.AppendRef(dst, output.RefRow{ID: next(), EntryID: j.entryID, Code: j.code})
}

func peptideEncoder(dig digest.Digester) writers.Encoder[peptideJob] {
	return func(dst []byte, next func() int64, j peptideJob) []byte {
		summary := AnnotationSummary(j.entry)
		for p := range dig.Digest(j.entry.Sequence) {
			dst = output.AppendPeptide(dst, output.PeptideRow{
				ID:                 next(),
				NormalizedSequence: NormalizePeptide(p),
				OriginalSequence:   p,
				EntryID:            j.entryID,
				AnnotationSummary:  summary,
			})
		}
		return dst
	}
}

// NormalizePeptide maps isoleucine to leucine; the two have the same mass.
func NormalizePeptide(p string) string {
	return strings.ReplaceAll(p, "I", "L")
}

// AnnotationSummary joins the GO ids, the non-empty EC numbers prefixed
// "EC:" and the non-empty InterPro ids prefixed "IPR:" with ';'.
func AnnotationSummary(e uniprot.Entry) string {
	parts := make([]string, 0, len(e.GORefs)+len(e.ECRefs)+len(e.IPRefs))
	parts = append(parts, e.GORefs...)
	for _, ec := range e.ECRefs {
		if ec != "" {
			parts = append(parts, "EC:"+ec)
		}
	}
	for _, ip := range e.IPRefs {
		if ip != "" {
			parts = append(parts, "IPR:"+ip)
		}
	}
	return strings.Join(parts, ";")
}
