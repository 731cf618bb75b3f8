// Package loadapp implements db-load: it copies the generated table files
// into PostgreSQL and optionally indexes them.
package loadapp

import (
	"context"
	"io"
	"time"

	"unipept/internal/appcore"
	"unipept/internal/config"
	"unipept/internal/dbload"
	"unipept/internal/errors"
	"unipept/internal/loadcli"
	"unipept/internal/logger"
)

// Conn is an open database handle.
type Conn interface {
	dbload.DB
	Close()
}

// connect opens the database; tests replace it.
var connect = func(ctx context.Context, url string, maxConns int32) (Conn, error) {
	return dbload.Connect(ctx, url, maxConns)
}

var tool = appcore.Tool[loadcli.Options]{
	Name:     "db-load",
	Parse:    loadcli.ParseArgs,
	Examples: loadcli.Examples,
	Exec:     exec,
}

// RunContext runs the tool with argv and returns its exit code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	return tool.Run(ctx, argv, stdout, stderr)
}

// Run is RunContext without cancellation.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func exec(ctx context.Context, o loadcli.Options, env appcore.Env) error {
	log := env.Log

	cfg, err := config.Load(o.ConfigFile)
	if err != nil {
		return err
	}
	o.Apply(&cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	files, err := dbload.Discover(cfg.Load.DataDir)
	if err != nil {
		return errors.Mark(err, errors.ErrConfig)
	}
	if len(files) == 0 {
		return errors.WithHint(
			errors.Mark(errors.Newf("no table files in %s", cfg.Load.DataDir), errors.ErrConfig),
			"expected files named <table>.tsv, optionally compressed (.gz, .zst, .lz4)")
	}

	db, err := connect(ctx, cfg.Database.URL, cfg.Database.MaxConns)
	if err != nil {
		return err
	}
	defer db.Close()
	log.Infow("connected", "schema", cfg.Database.Schema, "tables", len(files))

	l := dbload.NewLoader(db, cfg.Database.Schema, cfg.Load.Workers, log.Named("load"), env.Metrics)
	if cfg.Load.SchemaFile != "" {
		if err := l.ApplySchema(ctx, cfg.Load.SchemaFile); err != nil {
			return err
		}
	}

	start := time.Now()
	rows, err := l.LoadAll(ctx, files)
	if err != nil {
		return err
	}
	var total int64
	for _, n := range rows {
		total += n
	}
	log.Infow("tables loaded",
		"tables", len(rows),
		logger.FieldCount, total,
		logger.FieldDuration, time.Since(start).Round(time.Millisecond))

	if !cfg.Load.Index {
		return nil
	}
	return l.CreateIndexes(ctx, dbload.DefaultIndexes)
}
