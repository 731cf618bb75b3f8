package tables

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unipept/internal/errors"
	"unipept/internal/fileio"
	"unipept/internal/taxonomy"
)

func tempPaths(dir, ext string) Paths {
	p := func(name string) string { return filepath.Join(dir, name+".tsv"+ext) }
	return Paths{
		Entries:  p("uniprot_entries"),
		Peptides: p("peptides"),
		GO:       p("go_cross_references"),
		EC:       p("ec_cross_references"),
		InterPro: p("interpro_cross_references"),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	r, err := fileio.Open(path)
	require.NoError(t, err)
	defer r.Close()
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(b)
}

func TestOpenSinksWritesCompressedTables(t *testing.T) {
	paths := tempPaths(t.TempDir(), ".lz4")
	sinks, err := OpenSinks(paths)
	require.NoError(t, err)

	w := New(Config{}, sinks, taxonomy.NewTaxonList(1), trypsin, nil, nil)
	e := entry("P1", 1, "MK")
	e.GORefs = []string{"GO:1"}
	require.True(t, w.Store(e))
	_, err = w.Close()
	require.NoError(t, err)

	assert.Equal(t, "1\tP1\t1\t1\tswissprot\tprotein P1\tMK\n", readFile(t, paths.Entries))
	assert.Equal(t, "1\t1\tGO:1\n", readFile(t, paths.GO))
	assert.Equal(t, "1\tMK\tMK\t1\tGO:1\n", readFile(t, paths.Peptides))
	assert.Empty(t, readFile(t, paths.EC))
}

func TestOpenSinksMissingPath(t *testing.T) {
	p := tempPaths(t.TempDir(), "")
	p.EC = ""
	_, err := OpenSinks(p)
	assert.True(t, errors.Is(err, errors.ErrConfig))
}

func TestOpenSinksBadDirectory(t *testing.T) {
	p := tempPaths(filepath.Join(t.TempDir(), "missing"), "")
	_, err := OpenSinks(p)
	assert.Error(t, err)
}
