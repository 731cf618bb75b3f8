package lcacli

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unipept/internal/clibase"
	"unipept/internal/errors"
)

func parse(argv ...string) (Options, error) {
	return ParseArgs(clibase.NewFlagSet("calculate-lcas"), argv)
}

func TestParseDefaults(t *testing.T) {
	o, err := parse("--taxonomy", "lineages.tsv")
	require.NoError(t, err)
	assert.Equal(t, "lineages.tsv", o.Taxonomy)
	assert.Equal(t, "-", o.Input)
	assert.Equal(t, "-", o.Output)
	assert.Equal(t, DefaultProgress, o.Progress)
}

func TestParsePositionalInput(t *testing.T) {
	o, err := parse("in.tsv.lz4", "-t", "l.tsv", "-v", "-o", "out.tsv")
	require.NoError(t, err)
	assert.Equal(t, "in.tsv.lz4", o.Input)
	assert.Equal(t, "out.tsv", o.Output)
	assert.Equal(t, 1, o.Verbosity)
}

func TestParseErrors(t *testing.T) {
	tests := map[string][]string{
		"missing taxonomy": {"in.tsv"},
		"two inputs":       {"-t", "l", "a", "b"},
		"input twice":      {"-t", "l", "-i", "a", "b"},
		"negative":         {"-t", "l", "--progress", "-1"},
		"unknown flag":     {"-t", "l", "--nope"},
	}
	for name, argv := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parse(argv...)
			assert.Error(t, err)
		})
	}
}

func TestValidationErrorsAreConfigErrors(t *testing.T) {
	_, err := parse("in.tsv")
	assert.True(t, errors.Is(err, errors.ErrConfig))
	_, err = parse("-t", "l", "a", "b")
	assert.True(t, errors.Is(err, errors.ErrConfig))
}

func TestParseHelpAndExamples(t *testing.T) {
	_, err := parse("-h")
	assert.ErrorIs(t, err, flag.ErrHelp)
	_, err = parse("--examples")
	assert.ErrorIs(t, err, clibase.ErrPrintedAndExitOK)
	o, err := parse("--version")
	require.NoError(t, err)
	assert.True(t, o.Version)
}
