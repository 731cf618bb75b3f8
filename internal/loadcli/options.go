// Package loadcli parses the flags of db-load.
package loadcli

import (
	"flag"
	"fmt"
	"io"

	"unipept/internal/clibase"
	"unipept/internal/cliutil"
	"unipept/internal/config"
	"unipept/internal/errors"
)

// Options holds all flags of db-load. Only the flags given on the command
// line override the configuration file.
type Options struct {
	clibase.Common

	ConfigFile  string
	DatabaseURL string
	Schema      string
	MaxConns    int
	DataDir     string
	SchemaFile  string
	Workers     int
	Index       bool

	set map[string]bool
}

// ParseArgs registers and parses all flags. A single positional argument is
// taken as the data directory.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	clibase.Register(fs, &opt.Common)

	def := config.Default()
	fs.StringVar(&opt.ConfigFile, "config", "", "TOML configuration file")
	fs.StringVar(&opt.DatabaseURL, "database-url", "", "PostgreSQL connection URL (env "+config.EnvDatabaseURL+")")
	fs.StringVar(&opt.Schema, "schema", def.Database.Schema, fmt.Sprintf("target schema [%s]", def.Database.Schema))
	fs.IntVar(&opt.MaxConns, "max-conns", int(def.Database.MaxConns), fmt.Sprintf("maximum pool connections [%d]", def.Database.MaxConns))
	fs.StringVar(&opt.DataDir, "data-dir", "", "directory holding <table>.tsv[.gz|.zst|.lz4] files [*]")
	fs.StringVar(&opt.SchemaFile, "schema-file", "", "SQL script run before loading")
	fs.IntVar(&opt.Workers, "workers", def.Load.Workers, fmt.Sprintf("tables loaded in parallel [%d]", def.Load.Workers))
	fs.BoolVar(&opt.Index, "index", def.Load.Index, "create the secondary indexes after loading")

	clibase.UsageCommon(fs, "db-load", "load table files into PostgreSQL", usageBlock)

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

	opt.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opt.set[f.Name] = true })

	pos, ok := cliutil.SinglePositional(posArgs, "")
	if !ok {
		return opt, usageError("at most one data directory may be given")
	}
	if pos != "" {
		if opt.set["data-dir"] {
			return opt, usageError("data directory given both as --data-dir and as an argument")
		}
		opt.DataDir = pos
		opt.set["data-dir"] = true
	}

	if opt.Workers < 1 {
		return opt, usageError("--workers must be ≥ 1")
	}
	if opt.MaxConns < 1 {
		return opt, usageError("--max-conns must be ≥ 1")
	}
	return opt, nil
}

// Apply overrides c with every flag given on the command line.
func (o Options) Apply(c *config.Config) {
	if o.set["database-url"] {
		c.Database.URL = o.DatabaseURL
	}
	if o.set["schema"] {
		c.Database.Schema = o.Schema
	}
	if o.set["max-conns"] {
		c.Database.MaxConns = int32(o.MaxConns)
	}
	if o.set["data-dir"] {
		c.Load.DataDir = o.DataDir
	}
	if o.set["schema-file"] {
		c.Load.SchemaFile = o.SchemaFile
	}
	if o.set["workers"] {
		c.Load.Workers = o.Workers
	}
	if o.set["index"] {
		c.Load.Index = o.Index
	}
}

func usageBlock(out io.Writer, def func(string) string) {
	fmt.Fprintln(out, "\nUsage:")
	fmt.Fprintln(out, "  db-load [--config load.toml] [--database-url URL] [data-dir]")
	fmt.Fprintln(out, "\nConfiguration (flags override file and environment):")
	fmt.Fprintln(out, "      --config file           TOML file with [database] and [load] tables")
	fmt.Fprintf(out, "      --database-url url      PostgreSQL URL, or $%s\n", config.EnvDatabaseURL)
	fmt.Fprintf(out, "      --schema name           Target schema [%s]\n", def("schema"))
	fmt.Fprintf(out, "      --max-conns int         Maximum pool connections [%s]\n", def("max-conns"))
	fmt.Fprintln(out, "\nLoad:")
	fmt.Fprintln(out, "      --data-dir dir          Directory of <table>.tsv[.gz|.zst|.lz4] files [*]")
	fmt.Fprintln(out, "      --schema-file file      SQL script run before loading")
	fmt.Fprintf(out, "      --workers int           Tables loaded in parallel [%s]\n", def("workers"))
	fmt.Fprintln(out, "      --index                 Create secondary indexes afterwards")
}

// Examples prints the quickstart body.
func Examples(out io.Writer) {
	fmt.Fprintln(out, "  # Load every table in ./tables and index them")
	fmt.Fprintln(out, "  db-load --database-url postgres://unipept@localhost/unipept --index ./tables")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "  # Everything from a file; the URL from the environment")
	fmt.Fprintf(out, "  %s=postgres://... db-load --config load.toml\n", config.EnvDatabaseURL)
}

func usageError(msg string) error {
	return errors.Mark(errors.New(msg), errors.ErrConfig)
}
