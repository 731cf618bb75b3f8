package tablesapp

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unipept/internal/appshell"
	"unipept/internal/fileio"
)

const header = "Entry\tSequence\tProtein names\tVersion (entry)\tEC number\tGene ontology IDs\tCross-reference (InterPro)\tStatus\tOrganism ID\n"

func write(t *testing.T, path, body string) {
	t.Helper()
	w, err := fileio.Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, body)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func read(t *testing.T, path string) string {
	t.Helper()
	r, err := fileio.Open(path)
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

type run struct {
	dir    string
	input  string
	taxons string
	out    map[string]string
}

func setup(t *testing.T, ext, uniprot string) run {
	dir := t.TempDir()
	r := run{
		dir:    dir,
		input:  filepath.Join(dir, "uniprot.tsv"+ext),
		taxons: filepath.Join(dir, "taxons.tsv"+ext),
		out:    map[string]string{},
	}
	write(t, r.input, uniprot)
	write(t, r.taxons, "1\troot\tno rank\n9606\tHomo sapiens\tspecies\n562\tEscherichia coli\tspecies\n")
	for _, flag := range []string{"peptides", "uniprot-entries", "go", "ec", "interpro"} {
		r.out[flag] = filepath.Join(dir, flag+".tsv"+ext)
	}
	return r
}

func (r run) argv(extra ...string) []string {
	argv := []string{"--taxons", r.taxons, "--peptide-min", "2"}
	for flag, path := range r.out {
		argv = append(argv, "--"+flag, path)
	}
	return append(append(argv, extra...), r.input)
}

func TestRunWritesTables(t *testing.T) {
	r := setup(t, ".lz4", header+
		"P1\tMAIKGGR\tKinase\t3\t2.7.11.1\tGO:0001;GO:0002\tIPR000719\tswissprot\t9606\n"+
		"P2\tAAAAK\tBogus\t1\t\t\t\ttrembl\t4242\n"+
		"P3\tCCR\t\t\t\t\t\ttrembl\t562\n")

	var stdout, stderr bytes.Buffer
	code := Run(r.argv("--metrics-file", filepath.Join(r.dir, "m.prom")), &stdout, &stderr)
	require.Equal(t, appshell.ExitOK, code, stderr.String())

	assert.Equal(t,
		"1\tP1\t3\t9606\tswissprot\tKinase\tMAIKGGR\n"+
			"2\tP3\t\\N\t562\ttrembl\t\\N\tCCR\n",
		read(t, r.out["uniprot-entries"]))
	assert.Equal(t,
		"1\tMALK\tMAIK\t1\tGO:0001;GO:0002;EC:2.7.11.1;IPR:IPR000719\n"+
			"2\tGGR\tGGR\t1\tGO:0001;GO:0002;EC:2.7.11.1;IPR:IPR000719\n"+
			"3\tCCR\tCCR\t2\t\\N\n",
		read(t, r.out["peptides"]))
	assert.Equal(t, "1\t1\tGO:0001\n2\t1\tGO:0002\n", read(t, r.out["go"]))
	assert.Equal(t, "1\t1\t2.7.11.1\n", read(t, r.out["ec"]))
	assert.Equal(t, "1\t1\tIPR000719\n", read(t, r.out["interpro"]))

	assert.Contains(t, stderr.String(), "4242")

	m, err := os.ReadFile(filepath.Join(r.dir, "m.prom"))
	require.NoError(t, err)
	assert.Contains(t, string(m), "unipept_entries_rejected_total 1")
	assert.Contains(t, string(m), `unipept_rows_written_total{table="peptides"} 3`)
}

func TestRunBadOrganism(t *testing.T) {
	r := setup(t, "", header+"P1\tMK\tx\t1\t\t\t\tswissprot\thuman\n")
	var stdout, stderr bytes.Buffer
	assert.Equal(t, appshell.ExitUsage, Run(r.argv(), &stdout, &stderr))
	// Tables are still closed and complete up to the failure.
	assert.Empty(t, read(t, r.out["uniprot-entries"]))
}

func TestRunMissingHeaderColumn(t *testing.T) {
	r := setup(t, "", "Entry\tSequence\nP1\tMK\n")
	var stdout, stderr bytes.Buffer
	assert.Equal(t, appshell.ExitUsage, Run(r.argv(), &stdout, &stderr))
	assert.True(t, strings.Contains(stderr.String(), "Organism ID"))
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	assert.Equal(t, appshell.ExitUsage, Run([]string{"--taxons", "t"}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "no output path")
}

func TestRunLogsOptionWarnings(t *testing.T) {
	r := setup(t, "", header+"P1\tMK\tx\t1\t\t\t\tswissprot\t9606\n")
	argv := r.argv("--peptide-min", "0")
	var stdout, stderr bytes.Buffer
	require.Equal(t, appshell.ExitOK, Run(argv, &stdout, &stderr), stderr.String())
	assert.Contains(t, stderr.String(), "--peptide-min 0 raised to 1")
	assert.NotContains(t, stderr.String(), "warning:")
}
