// Package appshell is the process entry point shared by the cmd/ binaries:
// signal handling and exit codes.
package appshell

import (
	"context"
	"io"
	"os"
	"os/signal"
	"syscall"

	"unipept/internal/errors"
)

// Exit codes.
const (
	ExitOK       = 0
	ExitUsage    = 2 // bad flags or bad input data
	ExitRuntime  = 3 // I/O, database and output failures
	ExitCanceled = 130
)

// ExitCode maps a run error to an exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, context.Canceled):
		return ExitCanceled
	case errors.IsInput(err), errors.Is(err, errors.ErrConfig):
		return ExitUsage
	default:
		return ExitRuntime
	}
}

// Main runs run with a context canceled on SIGINT/SIGTERM and exits with
// its code.
func Main(run func(context.Context, []string, io.Writer, io.Writer) int) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	argv := os.Args[1:]
	if len(argv) == 0 {
		argv = []string{"-h"}
	}

	code := run(ctx, argv, os.Stdout, os.Stderr)
	// Normalize cancellation exit code.
	if ctx.Err() != nil && code == ExitOK {
		code = ExitCanceled
	}

	stop()
	os.Exit(code)
}
