package dbload

import (
	"context"
	"io"

	"github.com/jackc/pgx/v5/pgxpool"

	"unipept/internal/errors"
)

// DB is what the loader needs from PostgreSQL.
type DB interface {
	// Exec runs one or more statements over the simple protocol.
	Exec(ctx context.Context, sql string) error
	// CopyFrom streams r into a COPY ... FROM STDIN statement and returns
	// the number of rows copied.
	CopyFrom(ctx context.Context, r io.Reader, sql string) (int64, error)
}

// Pool is a DB backed by a pgx connection pool.
type Pool struct {
	pool *pgxpool.Pool
}

var _ DB = (*Pool)(nil)

// Connect opens a pool on url and pings it. maxConns <= 0 keeps the pgx
// default.
func Connect(ctx context.Context, url string, maxConns int32) (*Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "parse database url"), errors.ErrConfig)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, errors.Wrap(err, "open postgres pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, errors.Wrap(err, "ping postgres")
	}
	return &Pool{pool: pool}, nil
}

// Exec implements DB.
func (p *Pool) Exec(ctx context.Context, sql string) error {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return errors.Wrap(err, "acquire connection")
	}
	defer conn.Release()
	_, err = conn.Conn().PgConn().Exec(ctx, sql).ReadAll()
	return err
}

// CopyFrom implements DB.
func (p *Pool) CopyFrom(ctx context.Context, r io.Reader, sql string) (int64, error) {
	conn, err := p.pool.Acquire(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "acquire connection")
	}
	defer conn.Release()
	tag, err := conn.Conn().PgConn().CopyFrom(ctx, r, sql)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Close closes every connection of the pool.
func (p *Pool) Close() { p.pool.Close() }
