package fileio

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const table = "1\tP12345\t3\t9606\tswissprot\tname\tMKV\n2\tQ99999\t1\t10090\ttrembl\t\\N\tMKR\n"

func roundTrip(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)

	w, err := Create(path)
	require.NoError(t, err)
	_, err = io.WriteString(w, table)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(got)
}

func TestRoundTripByCodec(t *testing.T) {
	for _, name := range []string{"t.tsv", "t.tsv.gz", "t.tsv.zst", "t.tsv.lz4"} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, table, roundTrip(t, name))
		})
	}
}

func TestCompressedFilesAreNotPlainText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.tsv.lz4")
	w, err := Create(path)
	require.NoError(t, err)
	_, _ = io.WriteString(w, table)
	require.NoError(t, w.Close())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, magicLZ4, raw[:4])
}

func TestMagicWinsOverMissingSuffix(t *testing.T) {
	dir := t.TempDir()
	gz := filepath.Join(dir, "t.gz")
	w, err := Create(gz)
	require.NoError(t, err)
	_, _ = io.WriteString(w, table)
	require.NoError(t, w.Close())

	renamed := filepath.Join(dir, "t.tsv")
	require.NoError(t, os.Rename(gz, renamed))

	r, err := Open(renamed)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, table, string(got))
}

func TestSuffixWithoutMagicFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plain.tsv.zst")
	require.NoError(t, os.WriteFile(path, []byte(table), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "zst")
}

func TestEmptyCompressedFileReadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.tsv.lz4")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	r, err := Open(path)
	require.NoError(t, err)
	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Empty(t, got)
	require.NoError(t, r.Close())
}

func TestTrimCompression(t *testing.T) {
	assert.Equal(t, "peptides.tsv", TrimCompression("peptides.tsv.lz4"))
	assert.Equal(t, "peptides.tsv", TrimCompression("peptides.tsv"))
	assert.Equal(t, LZ4, CompressionFor("x.lz4"))
	assert.Equal(t, None, CompressionFor("x.txt"))
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.tsv"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
