package clibase

import (
	"flag"
	"fmt"
	"io"

	"unipept/internal/version"
)

// UsageCommon installs a shared Usage() handler on fs.
// extra prints the tool-specific sections.
func UsageCommon(fs *flag.FlagSet, name, summary string, extra func(out io.Writer, def func(string) string)) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – %s\n\n", name, summary)
		fmt.Fprintf(out, "Version: %s\n", version.Version)

		if extra != nil {
			extra(out, def)
		}

		fmt.Fprintln(out, "\nLogging & metrics:")
		fmt.Fprintln(out, "  -v, --verbose               More log output (repeat for debug)")
		fmt.Fprintf(out, "  -q, --quiet                 Warnings and errors only [%s]\n", def("quiet"))
		fmt.Fprintf(out, "      --log-json              Log JSON lines instead of text [%s]\n", def("log-json"))
		fmt.Fprintln(out, "      --metrics-file file     Write Prometheus metrics at exit")

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "      --examples              Print usage examples and exit")
		fmt.Fprintln(out, "      --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}

// PrintExamples prints a small quickstart header and body, followed by a
// one-line tip to discover full help.
func PrintExamples(out io.Writer, name string, body func(io.Writer)) {
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, "%s — quickstart\n\n", name)
	if body != nil {
		body(out)
	}
	_, _ = fmt.Fprintln(out, "\nTip: run with --help for all flags.")
}
