// Package appcore runs a tool: flag parsing, help and version output,
// logger and metrics setup, and the mapping of the tool's error to an exit
// code.
package appcore

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"unipept/internal/appshell"
	"unipept/internal/clibase"
	"unipept/internal/errors"
	"unipept/internal/logger"
	"unipept/internal/metrics"
	"unipept/internal/version"
	"unipept/internal/writers"
)

// Env is what a tool body receives besides its options.
type Env struct {
	Stdout  io.Writer // buffered; flushed after Exec returns
	Stderr  io.Writer
	Log     *zap.SugaredLogger
	Metrics *metrics.Set
}

// Options is satisfied by every options struct embedding clibase.Common.
type Options interface {
	Base() clibase.Common
}

// Tool describes one command.
type Tool[O Options] struct {
	Name     string
	Parse    func(fs *flag.FlagSet, argv []string) (O, error)
	Examples func(io.Writer)
	Exec     func(ctx context.Context, opts O, env Env) error
}

// Run parses argv and executes the tool, returning the process exit code.
func (t Tool[O]) Run(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)

	fs := clibase.NewFlagSet(t.Name)
	fs.SetOutput(io.Discard)

	opts, err := t.Parse(fs, argv)
	switch {
	case errors.Is(err, flag.ErrHelp):
		fs.SetOutput(outw)
		fs.Usage()
		return flushed(outw, stderr, appshell.ExitOK)
	case errors.Is(err, clibase.ErrPrintedAndExitOK):
		clibase.PrintExamples(outw, t.Name, t.Examples)
		return flushed(outw, stderr, appshell.ExitOK)
	case err != nil:
		_, _ = fmt.Fprintln(stderr, "error:", err)
		fs.SetOutput(stderr)
		fs.Usage()
		return appshell.ExitUsage
	}

	base := opts.Base()
	if base.Version {
		_, _ = fmt.Fprintf(outw, "%s version %s\n", t.Name, version.Version)
		return flushed(outw, stderr, appshell.ExitOK)
	}

	logger.Initialize(logger.Options{
		Verbosity: base.LogVerbosity(),
		JSON:      base.LogJSON,
		Output:    stderr,
	})
	log := logger.ComponentLogger(t.Name)
	defer logger.Sync()

	m := metrics.New()
	start := time.Now()
	err = t.Exec(ctx, opts, Env{Stdout: outw, Stderr: stderr, Log: log, Metrics: m})
	if ferr := outw.Flush(); ferr != nil && !writers.IsBrokenPipe(ferr) && err == nil {
		err = errors.Wrap(ferr, "flush output")
	}
	if merr := m.WriteFile(base.MetricsFile); merr != nil {
		log.Warnw("metrics not written", logger.FieldError, merr)
	}

	code := appshell.ExitCode(err)
	switch code {
	case appshell.ExitOK:
		log.Infow("done", logger.FieldDuration, time.Since(start).Round(time.Millisecond))
	case appshell.ExitCanceled:
		log.Warnw("canceled", logger.FieldDuration, time.Since(start).Round(time.Millisecond))
	default:
		log.Errorw("failed", logger.FieldError, err.Error())
		if hint := errors.FlattenHints(err); hint != "" {
			log.Info(hint)
		}
	}
	return code
}

func flushed(w *bufio.Writer, stderr io.Writer, code int) int {
	if err := w.Flush(); writers.IsBrokenPipe(err) {
		return code
	} else if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return appshell.ExitRuntime
	}
	return code
}
