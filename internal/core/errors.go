package core

import "github.com/pkg/errors"

// ErrorKind enumerates the error kinds the public Solver API can surface.
// Local conditions (a conflict, a limit, an interrupt) are never
// represented this way; only contract violations and allocation failures
// surface as errors.
type ErrorKind int

const (
	KindClauseAfterFreeze ErrorKind = iota
	KindRootConflict
	KindAssumptionConflict
	KindUserInterrupt
	KindLimitReached
	KindAllocationFailure
)

func (k ErrorKind) String() string {
	switch k {
	case KindClauseAfterFreeze:
		return "clause added after freeze"
	case KindRootConflict:
		return "conflict at root level"
	case KindAssumptionConflict:
		return "conflict under assumptions"
	case KindUserInterrupt:
		return "interrupted"
	case KindLimitReached:
		return "limit reached"
	case KindAllocationFailure:
		return "allocation failure"
	default:
		return "unknown"
	}
}

// Error is the typed error value surfaced by the public Solver API. It
// wraps github.com/pkg/errors so a stack trace is captured at the
// construction site for the fatal kinds (ClauseAfterFreeze,
// AllocationFailure), which matters for CLI-side diagnostics; the recovered
// kinds (RootConflict during setup, AssumptionConflict, UserInterrupt,
// LimitReached) are returned as ordinary solve results, not Go errors, and
// never reach this type.
type Error struct {
	Kind ErrorKind
	err  error
}

func newError(kind ErrorKind, msg string) *Error {
	return &Error{Kind: kind, err: errors.New(msg)}
}

func wrapError(kind ErrorKind, err error) *Error {
	return &Error{Kind: kind, err: errors.WithStack(err)}
}

func (e *Error) Error() string { return e.Kind.String() + ": " + e.err.Error() }
func (e *Error) Unwrap() error { return e.err }

// Is lets errors.Is(err, &Error{Kind: SomeKind}) match any *Error of the
// same Kind, independent of the wrapped message/stack.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	return ok && other.Kind == e.Kind
}
