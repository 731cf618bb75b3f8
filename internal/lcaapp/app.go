// Package lcaapp implements calculate-lcas: it reads sorted
// sequence/taxon lines and writes the consensus taxon of every sequence.
package lcaapp

import (
	"context"
	"io"
	"time"

	"unipept/internal/appcore"
	"unipept/internal/errors"
	"unipept/internal/fileio"
	"unipept/internal/lca"
	"unipept/internal/lcacli"
	"unipept/internal/logger"
	"unipept/internal/output"
	"unipept/internal/runutil"
	"unipept/internal/taxonomy"
	"unipept/internal/writers"
)

var tool = appcore.Tool[lcacli.Options]{
	Name:     "calculate-lcas",
	Parse:    lcacli.ParseArgs,
	Examples: lcacli.Examples,
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

func appendResult(dst []byte, r lca.Result) []byte {
	return output.AppendLCA(dst, r.Sequence, r.TaxonID)
}

func exec(parent context.Context, o lcacli.Options, env appcore.Env) (err error) {
	log := env.Log

	start := time.Now()
	ix, err := taxonomy.LoadIndex(o.Taxonomy)
	if err != nil {
		return err
	}
	log.Infow("taxonomy loaded",
		logger.FieldFile, o.Taxonomy,
		logger.FieldCount, ix.Count(),
		logger.FieldDuration, time.Since(start).Round(time.Millisecond))

	in, err := fileio.Open(o.Input)
	if err != nil {
		return err
	}
	defer in.Close()

	var out io.Writer = env.Stdout
	if o.Output != "-" {
		f, cerr := fileio.Create(o.Output)
		if cerr != nil {
			return cerr
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = errors.Wrapf(cerr, "close %s", o.Output)
			}
		}()
		out = f
	}

	ctx, cancel := context.WithCancelCause(parent)
	defer cancel(nil)

	results, done := writers.StartLines(out, 0, appendResult, cancel)
	emit := func(r lca.Result) error {
		env.Metrics.LCAGroup()
		select {
		case results <- r:
			return nil
		case <-ctx.Done():
			return context.Cause(ctx)
		}
	}

	progress := runutil.NewProgress(log, "lines read", o.Progress)
	lines := 0
	aerr := lca.AggregateWithProgress(ctx, in, ix, emit, func(n int) {
		lines = n
		progress.Tick(n)
	})
	close(results)
	werr := <-done
	env.Metrics.LCAObservations(lines)

	if writers.IsBrokenPipe(context.Cause(ctx)) {
		return nil
	}
	if werr != nil {
		return errors.Wrap(werr, "write results")
	}
	if aerr != nil {
		return errors.Wrapf(aerr, "aggregate %s", o.Input)
	}
	progress.Done(lines)
	return nil
}
