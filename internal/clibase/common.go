// Package clibase holds the flags and usage blocks shared by every tool.
package clibase

import (
	"flag"
	"strconv"

	"unipept/internal/errors"
)

// Common holds the flags every tool registers.
type Common struct {
	Verbosity   int
	Quiet       bool
	LogJSON     bool
	MetricsFile string
	Version     bool
	Examples    bool
}

// Base lets apps reach the shared flags of any options struct embedding
// Common.
func (c Common) Base() Common { return c }

// ErrPrintedAndExitOK is returned by ParseArgs when the caller requested examples.
// Apps should catch this and exit 0 after printing examples.
var ErrPrintedAndExitOK = errors.New("examples requested")

// NewFlagSet returns a clean FlagSet with ContinueOnError.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {}
	return fs
}

// countValue increments on every occurrence, so -v -v means 2.
type countValue struct{ n *int }

func (c countValue) String() string {
	if c.n == nil {
		return "0"
	}
	return strconv.Itoa(*c.n)
}

func (c countValue) Set(s string) error {
	// -v=3 sets the level directly.
	if s != "true" {
		v, err := strconv.Atoi(s)
		if err != nil {
			return err
		}
		*c.n = v
		return nil
	}
	*c.n++
	return nil
}

func (countValue) IsBoolFlag() bool { return true }

// Register wires the shared flags onto fs.
func Register(fs *flag.FlagSet, c *Common) {
	fs.Var(countValue{&c.Verbosity}, "v", "more log output (repeatable)")
	fs.Var(countValue{&c.Verbosity}, "verbose", "alias of -v")
	fs.BoolVar(&c.Quiet, "quiet", false, "warnings and errors only [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.LogJSON, "log-json", false, "log JSON lines instead of text [false]")
	fs.StringVar(&c.MetricsFile, "metrics-file", "", "write Prometheus metrics to this file at exit")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&c.Examples, "examples", false, "print usage examples and exit [false]")
}

// LogVerbosity folds --quiet into the -v count.
func (c Common) LogVerbosity() int {
	if c.Quiet {
		return -1
	}
	return c.Verbosity
}
