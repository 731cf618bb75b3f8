// Package metrics holds the Prometheus counters of the table builder tools.
// Every tool owns one Set backed by a private registry; a nil *Set ignores
// all observations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"unipept/internal/errors"
)

const namespace = "unipept"

// Set groups the counters of one run.
type Set struct {
	reg *prometheus.Registry

	rowsWritten     *prometheus.CounterVec
	writeErrors     *prometheus.CounterVec
	entriesRejected prometheus.Counter
	lcaGroups       prometheus.Counter
	lcaObservations prometheus.Counter
	rowsLoaded      *prometheus.CounterVec
}

// New registers a fresh Set on its own registry.
func New() *Set {
	s := &Set{
		reg: prometheus.NewRegistry(),
		rowsWritten: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_written_total",
			Help:      "Rows written to table files.",
		}, []string{"table"}),
		writeErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "write_errors_total",
			Help:      "Failed row writes.",
		}, []string{"table"}),
		entriesRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entries_rejected_total",
			Help:      "UniProt entries skipped for an invalid taxon id.",
		}),
		lcaGroups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lca_groups_total",
			Help:      "Sequence groups aggregated.",
		}),
		lcaObservations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "lca_observations_total",
			Help:      "Sequence/taxon lines read.",
		}),
		rowsLoaded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rows_loaded_total",
			Help:      "Rows copied into the database.",
		}, []string{"table"}),
	}
	s.reg.MustRegister(
		s.rowsWritten,
		s.writeErrors,
		s.entriesRejected,
		s.lcaGroups,
		s.lcaObservations,
		s.rowsLoaded,
	)
	return s
}

// Registry exposes the underlying registry.
func (s *Set) Registry() *prometheus.Registry { return s.reg }

// RowsWritten counts n rows written to table.
func (s *Set) RowsWritten(table string, n int) {
	if s != nil && n > 0 {
		s.rowsWritten.WithLabelValues(table).Add(float64(n))
	}
}

// WriteError counts one failed write to table.
func (s *Set) WriteError(table string) {
	if s != nil {
		s.writeErrors.WithLabelValues(table).Inc()
	}
}

// EntryRejected counts one entry skipped for an invalid taxon id.
func (s *Set) EntryRejected() {
	if s != nil {
		s.entriesRejected.Inc()
	}
}

// LCAGroup counts one emitted consensus.
func (s *Set) LCAGroup() {
	if s != nil {
		s.lcaGroups.Inc()
	}
}

// LCAObservations counts n input lines read by the LCA step.
func (s *Set) LCAObservations(n int) {
	if s != nil && n > 0 {
		s.lcaObservations.Add(float64(n))
	}
}

// RowsLoaded counts n rows copied into table.
func (s *Set) RowsLoaded(table string, n int64) {
	if s != nil && n > 0 {
		s.rowsLoaded.WithLabelValues(table).Add(float64(n))
	}
}

// WriteFile dumps the registry in the text exposition format, for the node
// exporter textfile collector. An empty path is a no-op.
func (s *Set) WriteFile(path string) error {
	if s == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, s.reg); err != nil {
		return errors.Wrapf(err, "write metrics to %s", path)
	}
	return nil
}
