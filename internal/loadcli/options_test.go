package loadcli

import (
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unipept/internal/clibase"
	"unipept/internal/config"
	"unipept/internal/errors"
)

func parse(argv ...string) (Options, error) {
	return ParseArgs(clibase.NewFlagSet("db-load"), argv)
}

func TestApplyOnlyGivenFlags(t *testing.T) {
	o, err := parse("--workers", "2", "--index", "tables")
	require.NoError(t, err)

	c := config.Default()
	c.Database.URL = "postgres://from-file"
	c.Database.Schema = "fromfile"
	o.Apply(&c)

	assert.Equal(t, "postgres://from-file", c.Database.URL)
	assert.Equal(t, "fromfile", c.Database.Schema)
	assert.Equal(t, "tables", c.Load.DataDir)
	assert.Equal(t, 2, c.Load.Workers)
	assert.True(t, c.Load.Index)
}

func TestApplyOverridesFile(t *testing.T) {
	o, err := parse("--database-url", "postgres://flag", "--schema", "s2",
		"--max-conns", "3", "--data-dir", "d", "--schema-file", "x.sql")
	require.NoError(t, err)

	c := config.Default()
	c.Database.URL = "postgres://from-file"
	o.Apply(&c)

	assert.Equal(t, "postgres://flag", c.Database.URL)
	assert.Equal(t, "s2", c.Database.Schema)
	assert.EqualValues(t, 3, c.Database.MaxConns)
	assert.Equal(t, "d", c.Load.DataDir)
	assert.Equal(t, "x.sql", c.Load.SchemaFile)
}

func TestParseErrors(t *testing.T) {
	tests := map[string][]string{
		"two dirs":     {"a", "b"},
		"dir twice":    {"--data-dir", "a", "b"},
		"zero workers": {"--workers", "0"},
		"zero conns":   {"--max-conns", "0"},
		"unknown flag": {"--nope"},
	}
	for name, argv := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parse(argv...)
			assert.Error(t, err)
		})
	}
}

func TestValidationErrorsAreConfigErrors(t *testing.T) {
	_, err := parse("--workers", "0")
	assert.True(t, errors.Is(err, errors.ErrConfig))
	_, err = parse("a", "b")
	assert.True(t, errors.Is(err, errors.ErrConfig))
}

func TestParseHelpAndExamples(t *testing.T) {
	_, err := parse("--help")
	assert.ErrorIs(t, err, flag.ErrHelp)
	_, err = parse("--examples")
	assert.ErrorIs(t, err, clibase.ErrPrintedAndExitOK)
}
