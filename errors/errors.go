// Package errors provides error handling for the validator.
//
// This package re-exports github.com/cockroachdb/errors, providing stack
// traces, wrapping with context and user-facing hints.
//
// Usage:
//
//	if err := loadDAG(path); err != nil {
//	    return errors.Wrapf(err, "loading DAG for workflow %s", id)
//	}
//
//	return errors.WithHint(err, "check the counts in the log header")
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is            = crdb.Is
	IsAny         = crdb.IsAny
	As            = crdb.As
	Unwrap        = crdb.Unwrap
	UnwrapAll     = crdb.UnwrapAll
	GetAllHints   = crdb.GetAllHints
	FlattenHints  = crdb.FlattenHints
	GetAllDetails = crdb.GetAllDetails
)

// Mark attaches a sentinel to err so that Is(err, sentinel) holds while the
// message of err is kept intact.
func Mark(err error, sentinel error) error {
	return crdb.Mark(err, sentinel)
}
