// Package dbload bulk-loads the generated table files into PostgreSQL with
// COPY, one table per connection, and builds the secondary indexes.
package dbload

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"unipept/internal/config"
	"unipept/internal/errors"
	"unipept/internal/fileio"
	"unipept/internal/logger"
	"unipept/internal/metrics"
	"unipept/internal/output"
)

// TableFile is one data file and the table it loads into.
type TableFile struct {
	Table string
	Path  string
}

// Index is a single-column secondary index.
type Index struct {
	Table  string
	Column string
}

// DefaultIndexes are created by --index.
var DefaultIndexes = []Index{
	{output.TableEntries, "taxon_id"},
	{output.TableEntries, "uniprot_accession_number"},
	{output.TablePeptides, "sequence"},
	{output.TablePeptides, "original_sequence"},
	{output.TablePeptides, "uniprot_entry_id"},
	{output.TableGO, "uniprot_entry_id"},
	{output.TableEC, "uniprot_entry_id"},
	{output.TableInterPro, "uniprot_entry_id"},
}

// CopyStatement returns the COPY statement for schema.table. The file format
// matches the writer in package output.
func CopyStatement(schema, table string) string {
	return fmt.Sprintf(`COPY %s.%s FROM STDIN WITH (FORMAT text, DELIMITER E'\t', HEADER false, NULL '\N')`, schema, table)
}

// IndexStatement returns the CREATE INDEX statement for ix.
func IndexStatement(schema string, ix Index) string {
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS idx_%s_%s ON %s.%s(%s)", ix.Table, ix.Column, schema, ix.Table, ix.Column)
}

// Discover lists the table files in dir: every regular file named
// <table>.tsv, optionally followed by .gz, .zst or .lz4. The result is sorted
// by table name. Two files for one table are an error.
func Discover(dir string) ([]TableFile, error) {
	ents, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "read data directory %s", dir)
	}
	seen := make(map[string]string)
	var out []TableFile
	for _, e := range ents {
		if !e.Type().IsRegular() {
			continue
		}
		table, ok := strings.CutSuffix(fileio.TrimCompression(e.Name()), ".tsv")
		if !ok {
			continue
		}
		if !config.ValidIdent(table) {
			return nil, errors.Newf("data file %s: %q is not a valid table name", e.Name(), table)
		}
		if prev, dup := seen[table]; dup {
			return nil, errors.Newf("table %s has two data files: %s and %s", table, prev, e.Name())
		}
		seen[table] = e.Name()
		out = append(out, TableFile{Table: table, Path: filepath.Join(dir, e.Name())})
	}
	slices.SortFunc(out, func(a, b TableFile) int { return strings.Compare(a.Table, b.Table) })
	return out, nil
}

// Loader runs statements against one database schema.
type Loader struct {
	db      DB
	schema  string
	workers int
	log     *zap.SugaredLogger
	m       *metrics.Set
}

// NewLoader returns a loader running at most workers statements at once.
func NewLoader(db DB, schema string, workers int, log *zap.SugaredLogger, m *metrics.Set) *Loader {
	return &Loader{db: db, schema: schema, workers: max(workers, 1), log: logger.OrNop(log), m: m}
}

// ApplySchema executes the SQL script at path.
func (l *Loader) ApplySchema(ctx context.Context, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "read schema %s", path)
	}
	if err := l.db.Exec(ctx, string(b)); err != nil {
		return errors.Wrapf(err, "apply schema %s", path)
	}
	l.log.Infow("schema applied", logger.FieldFile, path)
	return nil
}

// LoadAll copies every file into its table in parallel and returns the row
// count per table. The first failure cancels the remaining copies.
func (l *Loader) LoadAll(ctx context.Context, files []TableFile) (map[string]int64, error) {
	counts := make([]int64, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)

	for i, f := range files {
		g.Go(func() error {
			n, err := l.load(ctx, f)
			counts[i] = n
			return err
		})
	}
	err := g.Wait()

	rows := make(map[string]int64, len(files))
	for i, f := range files {
		rows[f.Table] = counts[i]
	}
	return rows, err
}

func (l *Loader) load(ctx context.Context, f TableFile) (int64, error) {
	start := time.Now()
	r, err := fileio.Open(f.Path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n, err := l.db.CopyFrom(ctx, r, CopyStatement(l.schema, f.Table))
	if err != nil {
		return n, errors.Wrapf(err, "load table %s from %s", f.Table, f.Path)
	}
	l.m.RowsLoaded(f.Table, n)
	l.log.Infow("table loaded",
		logger.FieldTable, f.Table,
		logger.FieldCount, n,
		logger.FieldDuration, time.Since(start).Round(time.Millisecond))
	return n, nil
}

// CreateIndexes builds every index in parallel.
func (l *Loader) CreateIndexes(ctx context.Context, indexes []Index) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for _, ix := range indexes {
		g.Go(func() error {
			start := time.Now()
			if err := l.db.Exec(ctx, IndexStatement(l.schema, ix)); err != nil {
				return errors.Wrapf(err, "index %s(%s)", ix.Table, ix.Column)
			}
			l.log.Infow("index created",
				logger.FieldTable, ix.Table,
				"column", ix.Column,
				logger.FieldDuration, time.Since(start).Round(time.Millisecond))
			return nil
		})
	}
	return g.Wait()
}
