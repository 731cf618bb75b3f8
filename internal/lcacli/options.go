// Package lcacli parses the flags of calculate-lcas.
package lcacli

import (
	"flag"
	"fmt"
	"io"

	"unipept/internal/clibase"
	"unipept/internal/cliutil"
	"unipept/internal/errors"
)

// DefaultProgress is the number of input lines between progress messages.
const DefaultProgress = 10_000_000

// Options holds all flags of calculate-lcas.
type Options struct {
	clibase.Common

	Taxonomy string
	Input    string
	Output   string
	Progress int
}

// ParseArgs registers and parses all flags. A single positional argument is
// taken as the input file.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	clibase.Register(fs, &opt.Common)

	fs.StringVar(&opt.Taxonomy, "taxonomy", "", "lineage table (id + 27 ranks, tab-separated) [*]")
	fs.StringVar(&opt.Taxonomy, "t", "", "alias of --taxonomy")
	fs.StringVar(&opt.Input, "input", "", "sorted sequence<TAB>taxon_id lines, or '-' [-]")
	fs.StringVar(&opt.Input, "i", "", "alias of --input")
	fs.StringVar(&opt.Output, "output", "-", "output file, or '-' [-]")
	fs.StringVar(&opt.Output, "o", "-", "alias of --output")
	fs.IntVar(&opt.Progress, "progress", DefaultProgress, fmt.Sprintf("log progress every N lines (0 = off) [%d]", DefaultProgress))

	clibase.UsageCommon(fs, "calculate-lcas", "per-sequence lowest common ancestor", usageBlock)

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	if opt.Examples {
		return opt, clibase.ErrPrintedAndExitOK
	}
	if opt.Version {
		return opt, nil
	}

	pos, ok := cliutil.SinglePositional(posArgs, "")
	if !ok {
		return opt, usageError("at most one input file may be given")
	}
	switch {
	case pos != "" && opt.Input != "":
		return opt, usageError("input given both as --input and as an argument")
	case pos != "":
		opt.Input = pos
	case opt.Input == "":
		opt.Input = "-"
	}

	if opt.Taxonomy == "" {
		return opt, usageError("--taxonomy is required")
	}
	if opt.Progress < 0 {
		return opt, usageError("--progress must be ≥ 0")
	}
	return opt, nil
}

func usageBlock(out io.Writer, def func(string) string) {
	fmt.Fprintln(out, "\nUsage:")
	fmt.Fprintln(out, "  calculate-lcas --taxonomy lineages.tsv.lz4 [--output lcas.tsv] [input]")
	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "  -t, --taxonomy file         Lineage table, compressed allowed [*]")
	fmt.Fprintln(out, "  -i, --input file            Sorted sequence<TAB>taxon_id lines or '-' [-]")
	fmt.Fprintln(out, "\nOutput:")
	fmt.Fprintf(out, "  -o, --output file           sequence<TAB>lca lines; .gz/.zst/.lz4 compress [%s]\n", def("output"))
	fmt.Fprintf(out, "      --progress int          Log progress every N lines (0=off) [%s]\n", def("progress"))
}

// Examples prints the quickstart body.
func Examples(out io.Writer) {
	fmt.Fprintln(out, "  # consensus per sequence, reading stdin")
	fmt.Fprintln(out, "  sort -k1,1 sequences_taxa.tsv | calculate-lcas -t lineages.tsv.lz4 > lcas.tsv")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "  # compressed in, compressed out")
	fmt.Fprintln(out, "  calculate-lcas -t lineages.tsv.lz4 -o lcas.tsv.lz4 sequences_taxa.tsv.lz4")
}

func usageError(msg string) error {
	return errors.Mark(errors.New(msg), errors.ErrConfig)
}
