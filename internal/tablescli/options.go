// Package tablescli parses the flags of taxons-uniprots-tables.
package tablescli

import (
	"flag"
	"fmt"
	"io"
	"time"

	"unipept/internal/clibase"
	"unipept/internal/cliutil"
	"unipept/internal/digest"
	"unipept/internal/errors"
	"unipept/internal/runutil"
	"unipept/internal/tables"
)

// Options holds all flags of taxons-uniprots-tables.
type Options struct {
	clibase.Common

	Input  string
	Taxons string
	Paths  tables.Paths

	PeptideMin int
	PeptideMax int
	QueueSize  int

	SummaryInterval time.Duration
	Progress        int

	// Warnings collected while validating, for the app to log.
	Warnings []string
}

// ParseArgs registers and parses all flags. A single positional argument is
// taken as the UniProt input.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	clibase.Register(fs, &opt.Common)

	fs.StringVar(&opt.Input, "input", "", "UniProt TSV export with header, or '-' [-]")
	fs.StringVar(&opt.Taxons, "taxons", "", "taxons table; first column is the taxon id [*]")
	fs.StringVar(&opt.Paths.Peptides, "peptides", "", "peptides table output [*]")
	fs.StringVar(&opt.Paths.Entries, "uniprot-entries", "", "uniprot_entries table output [*]")
	fs.StringVar(&opt.Paths.GO, "go", "", "go_cross_references table output [*]")
	fs.StringVar(&opt.Paths.EC, "ec", "", "ec_cross_references table output [*]")
	fs.StringVar(&opt.Paths.InterPro, "interpro", "", "interpro_cross_references table output [*]")
	fs.IntVar(&opt.PeptideMin, "peptide-min", digest.DefaultMin, fmt.Sprintf("minimum peptide length [%d]", digest.DefaultMin))
	fs.IntVar(&opt.PeptideMax, "peptide-max", digest.DefaultMax, fmt.Sprintf("maximum peptide length (0 = unbounded) [%d]", digest.DefaultMax))
	fs.IntVar(&opt.QueueSize, "queue-size", tables.DefaultQueueSize, fmt.Sprintf("capacity of each table queue [%d]", tables.DefaultQueueSize))
	fs.DurationVar(&opt.SummaryInterval, "summary-interval", time.Minute, "interval between invalid-taxon summaries (0 = off) [1m0s]")
	fs.IntVar(&opt.Progress, "progress", 1_000_000, "log progress every N entries (0 = off) [1000000]")

	clibase.UsageCommon(fs, "taxons-uniprots-tables", "UniProt entries to database tables", usageBlock)

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

	if opt.Taxons == "" {
		return opt, usageError("--taxons is required")
	}
	if err := opt.Paths.Validate(); err != nil {
		return opt, err
	}
	lo, hi, warns, err := runutil.ValidatePeptideBounds(opt.PeptideMin, opt.PeptideMax)
	if err != nil {
		return opt, err
	}
	opt.PeptideMin, opt.PeptideMax, opt.Warnings = lo, hi, warns
	if opt.QueueSize < 1 {
		return opt, usageError("--queue-size must be ≥ 1")
	}
	if opt.SummaryInterval < 0 {
		return opt, usageError("--summary-interval must be ≥ 0")
	}
	if opt.Progress < 0 {
		return opt, usageError("--progress must be ≥ 0")
	}
	return opt, nil
}

func usageBlock(out io.Writer, def func(string) string) {
	fmt.Fprintln(out, "\nUsage:")
	fmt.Fprintln(out, "  taxons-uniprots-tables --taxons taxons.tsv.lz4 --peptides F --uniprot-entries F \\")
	fmt.Fprintln(out, "      --go F --ec F --interpro F [input]")
	fmt.Fprintln(out, "\nInput:")
	fmt.Fprintln(out, "      --input file            UniProt TSV with header or '-' [-]")
	fmt.Fprintln(out, "      --taxons file           Valid taxa, first column is the id [*]")
	fmt.Fprintln(out, "\nOutput tables (.gz/.zst/.lz4 compress):")
	fmt.Fprintln(out, "      --uniprot-entries file  id, accession, version, taxon, type, name, sequence [*]")
	fmt.Fprintln(out, "      --peptides file         id, sequence, original sequence, entry id, summary [*]")
	fmt.Fprintln(out, "      --go file               id, entry id, GO term [*]")
	fmt.Fprintln(out, "      --ec file               id, entry id, EC number [*]")
	fmt.Fprintln(out, "      --interpro file         id, entry id, InterPro entry [*]")
	fmt.Fprintln(out, "\nDigest:")
	fmt.Fprintf(out, "      --peptide-min int       Minimum peptide length [%s]\n", def("peptide-min"))
	fmt.Fprintf(out, "      --peptide-max int       Maximum peptide length (0=unbounded) [%s]\n", def("peptide-max"))
	fmt.Fprintln(out, "\nPerformance & reporting:")
	fmt.Fprintf(out, "      --queue-size int        Capacity of each table queue [%s]\n", def("queue-size"))
	fmt.Fprintf(out, "      --summary-interval dur  Invalid-taxon summary interval (0=off) [%s]\n", def("summary-interval"))
	fmt.Fprintf(out, "      --progress int          Log progress every N entries (0=off) [%s]\n", def("progress"))
}

// Examples prints the quickstart body.
func Examples(out io.Writer) {
	fmt.Fprintln(out, "  lz4 -dc uniprot.tsv.lz4 | taxons-uniprots-tables --taxons taxons.tsv.lz4 \\")
	fmt.Fprintln(out, "      --peptides peptides.tsv.lz4 --uniprot-entries uniprot_entries.tsv.lz4 \\")
	fmt.Fprintln(out, "      --go go_cross_references.tsv.lz4 --ec ec_cross_references.tsv.lz4 \\")
	fmt.Fprintln(out, "      --interpro interpro_cross_references.tsv.lz4")
}

func usageError(msg string) error {
	return errors.Mark(errors.New(msg), errors.ErrConfig)
}
