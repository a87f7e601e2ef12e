package analyzer

import (
	"fmt"

	"github.com/pattyshack/gt/parseutil"
)

type ErrorKind int

const (
	DuplicateProcedure = ErrorKind(iota + 1)
	DuplicateDeclaration
	UndeclaredIdentifier
	TypeMismatch
	UnknownCallee
	ShadowedCallee
	ArityOrTypeMismatch
	UnsupportedProduction
)

func (kind ErrorKind) String() string {
	switch kind {
	case DuplicateProcedure:
		return "duplicate procedure"
	case DuplicateDeclaration:
		return "duplicate declaration"
	case UndeclaredIdentifier:
		return "undeclared identifier"
	case TypeMismatch:
		return "type mismatch"
	case UnknownCallee:
		return "unknown callee"
	case ShadowedCallee:
		return "shadowed callee"
	case ArityOrTypeMismatch:
		return "arity or type mismatch"
	case UnsupportedProduction:
		return "unsupported production"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(kind))
	}
}

// Error is a semantic error.  Any Error aborts the compilation.
type Error struct {
	Kind    ErrorKind
	Loc     parseutil.Location
	Message string
}

func newError(
	kind ErrorKind,
	loc parseutil.Location,
	format string,
	args ...interface{},
) *Error {
	return &Error{
		Kind:    kind,
		Loc:     loc,
		Message: fmt.Sprintf(format, args...),
	}
}

func (err *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", err.Loc, err.Kind, err.Message)
}
