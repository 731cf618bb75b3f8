// Package tablesapp implements taxons-uniprots-tables: it turns a UniProt
// TSV export into the entry, peptide and cross-reference tables.
package tablesapp

import (
	"context"
	"io"

	"unipept/internal/appcore"
	"unipept/internal/digest"
	"unipept/internal/errors"
	"unipept/internal/fileio"
	"unipept/internal/logger"
	"unipept/internal/runutil"
	"unipept/internal/tables"
	"unipept/internal/tablescli"
	"unipept/internal/taxonomy"
	"unipept/internal/uniprot"
)

var tool = appcore.Tool[tablescli.Options]{
	Name:     "taxons-uniprots-tables",
	Parse:    tablescli.ParseArgs,
	Examples: tablescli.Examples,
	Exec:     exec,
}

// RunContext runs the tool with argv and returns its exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return tool.Run(ctx, argv, stdout, stderr)
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

// maxListed caps the invalid taxon ids printed in the final report.
const maxListed = 50

func exec(ctx context.Context, o tablescli.Options, env appcore.Env) error {
	log := env.Log
	for _, w := range o.Warnings {
		log.Warn(w)
	}

	valid, err := taxonomy.LoadTaxonList(o.Taxons)
	if err != nil {
		return err
	}
	log.Infow("taxa loaded", logger.FieldFile, o.Taxons, logger.FieldCount, valid.Count())

	in, err := fileio.Open(o.Input)
	if err != nil {
		return err
	}
	defer in.Close()
	tr, err := uniprot.NewTSVReader(in)
	if err != nil {
		return errors.Wrapf(err, "read %s", o.Input)
	}

	sinks, err := tables.OpenSinks(o.Paths)
	if err != nil {
		return err
	}
	w := tables.New(
		tables.Config{QueueSize: o.QueueSize, SummaryInterval: o.SummaryInterval},
		sinks,
		valid,
		digest.Trypsin{Min: o.PeptideMin, Max: o.PeptideMax},
		log.Named("tables"),
		env.Metrics,
	)

	progress := runutil.NewProgress(log, "entries read", o.Progress)
	n, rerr := storeAll(ctx, tr, w, progress)

	st, cerr := w.Close()
	report(env, st, w.InvalidTaxa())
	if rerr != nil {
		return errors.Wrapf(rerr, "read %s", o.Input)
	}
	if cerr != nil {
		return cerr
	}
	progress.Done(n)
	return nil
}

func storeAll(ctx context.Context, tr *uniprot.TSVReader, w *tables.Writer, progress *runutil.Progress) (int, error) {
	n := 0
	for {
		if n&0x3ff == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		e, err := tr.Next()
		if err == io.EOF {
			return n, nil
		}
		if err != nil {
			return n, err
		}
		w.Store(e)
		n++
		progress.Tick(n)
	}
}

func report(env appcore.Env, st tables.Stats, invalid []int32) {
	log := env.Log
	for _, s := range st.Sinks {
		log.Infow("table written",
			logger.FieldTable, s.Table,
			"rows", s.Rows,
			"failures", s.Failures)
	}
	if f := st.Failures(); f > 0 {
		log.Warnw("some rows were not written", "failures", f)
	}
	if len(invalid) == 0 {
		return
	}
	listed := invalid
	if len(listed) > maxListed {
		listed = listed[:maxListed]
	}
	log.Warnw("entries skipped for invalid taxon ids",
		logger.FieldCount, st.Rejected,
		"distinct", len(invalid),
		"taxon_ids", listed)
}
