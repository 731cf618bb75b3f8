// Package errors re-exports github.com/cockroachdb/errors so every package in
// this module wraps, marks and inspects errors the same way.
//
//	if err := build(); err != nil {
//	    return errors.Wrapf(err, "load taxonomy %s", path)
//	}
//
// Sentinels below are attached with Mark so errors.Is keeps working after
// wrapping and after the concrete error types in taxonomy, lca and uniprot.
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

var (
	WithHint     = crdb.WithHint
	WithHintf    = crdb.WithHintf
	WithDetail   = crdb.WithDetail
	WithDetailf  = crdb.WithDetailf
	FlattenHints = crdb.FlattenHints
)

var (
	Is        = crdb.Is
	IsAny     = crdb.IsAny
	As        = crdb.As
	Mark      = crdb.Mark
	Unwrap    = crdb.Unwrap
	UnwrapAll = crdb.UnwrapAll
	Join      = crdb.Join
)

var (
	// ErrParse marks malformed taxonomy dump rows.
	ErrParse = New("parse error")

	// ErrFormat marks malformed streaming input (sequence/taxon pairs, UniProt rows).
	ErrFormat = New("format error")

	// ErrConfig marks invalid or incomplete configuration.
	ErrConfig = New("invalid configuration")
)

// IsInput reports whether err stems from bad input data rather than I/O.
func IsInput(err error) bool {
	return err != nil && (Is(err, ErrParse) || Is(err, ErrFormat))
}
