package graphil

import "errors"

// Translation errors. Each maps to one translation category.
var (
	// ErrSyntax is returned when a query does not parse in its dialect.
	ErrSyntax = errors.New("syntax error")
	// ErrUnsupported is returned when a valid query cannot be represented in the IR.
	ErrUnsupported = errors.New("unsupported construct")
	// ErrLowering is returned when the IR cannot be rendered in the target dialect.
	ErrLowering = errors.New("lowering failed")
	// ErrDialectGap is returned when lowered text is rejected by the target grammar.
	ErrDialectGap = errors.New("no related standard")
	// ErrInvalidPattern is returned when a path pattern breaks the node/edge chain invariant.
	ErrInvalidPattern = errors.New("invalid path pattern")
)

// Registry and configuration errors.
var (
	ErrUnknownOracle  = errors.New("unknown oracle")
	ErrUnknownDialect = errors.New("unknown dialect")
	ErrConfigNotFound = errors.New("no config file found")
)
