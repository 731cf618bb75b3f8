package tablescli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unipept/internal/clibase"
	"unipept/internal/errors"
)

var outputs = []string{
	"--peptides", "p.tsv", "--uniprot-entries", "e.tsv", "--go", "g.tsv", "--ec", "ec.tsv", "--interpro", "ip.tsv",
}

func parse(argv ...string) (Options, error) {
	return ParseArgs(clibase.NewFlagSet("taxons-uniprots-tables"), argv)
}

func TestParseDefaults(t *testing.T) {
	o, err := parse(append([]string{"--taxons", "taxons.tsv"}, outputs...)...)
	require.NoError(t, err)
	assert.Equal(t, "-", o.Input)
	assert.Equal(t, 5, o.PeptideMin)
	assert.Equal(t, 50, o.PeptideMax)
	assert.Equal(t, 100, o.QueueSize)
	assert.Equal(t, time.Minute, o.SummaryInterval)
	assert.Equal(t, "g.tsv", o.Paths.GO)
	assert.Equal(t, "e.tsv", o.Paths.Entries)
}

func TestParseWarnsOnZeroMin(t *testing.T) {
	o, err := parse(append([]string{"--taxons", "t", "--peptide-min", "0", "in.tsv"}, outputs...)...)
	require.NoError(t, err)
	assert.Equal(t, 1, o.PeptideMin)
	assert.Equal(t, []string{"--peptide-min 0 raised to 1"}, o.Warnings)
	assert.Equal(t, "in.tsv", o.Input)
}

func TestParseErrors(t *testing.T) {
	tests := map[string][]string{
		"no taxons":     outputs,
		"missing table": {"--taxons", "t", "--peptides", "p"},
		"max below min": append([]string{"--taxons", "t", "--peptide-min", "9", "--peptide-max", "3"}, outputs...),
		"queue size":    append([]string{"--taxons", "t", "--queue-size", "0"}, outputs...),
	}
	for name, argv := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := parse(argv...)
			assert.True(t, errors.Is(err, errors.ErrConfig))
		})
	}
}
