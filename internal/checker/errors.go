// Package checker drives the global-context builder, type resolver and
// ownership engine over a Program AST (spec.md §4.4), producing either
// a typedast.Program or the first CheckError encountered. Checking is
// fail-fast: the first structural or ownership violation aborts the
// whole pass, matching the teacher's own resolver, which returns on
// the first wrapped error rather than collecting a batch internally.
package checker

import (
	"fmt"

	"github.com/ash-lang/ashc/internal/ownership"
	"github.com/ash-lang/ashc/internal/position"
)

// Kind names one entry of the internal error taxonomy (spec.md §7).
// Only Message is part of the string-matched external contract (§8's
// scenarios; CheckError.Error returns Message alone); Kind exists for
// tests and any future categorization, not for control flow inside the
// checker itself.
type Kind string

const (
	KindDuplicateDefinition           Kind = "DuplicateDefinition"
	KindUnknownType                   Kind = "UnknownType"
	KindUnknownFieldInStructLiteral   Kind = "UnknownFieldInStructLiteral"
	KindFieldSetMismatch              Kind = "FieldSetMismatch"
	KindUndefinedVariable             Kind = "UndefinedVariable"
	KindDuplicateLocalBinding         Kind = "DuplicateLocalBinding"
	KindUseOfMovedValue               Kind = "UseOfMovedValue"
	KindTypeMismatch                  Kind = "TypeMismatch"
	KindArityMismatch                 Kind = "ArityMismatch"
	KindDynamicCallNotSupported       Kind = "DynamicCallNotSupported"
	KindNoSuchFunction                Kind = "NoSuchFunction"
	KindFieldAccessOnNonStruct        Kind = "FieldAccessOnNonStruct"
	KindFieldAccessOnManagedNonStruct Kind = "FieldAccessOnManagedNonStruct"
	KindAssignToImmutable             Kind = "AssignToImmutable"
	KindMutableBorrowOfImmutable      Kind = "MutableBorrowOfImmutable"
	KindAssignTargetNotAPlace         Kind = "AssignTargetNotAPlace"
	KindMoveFromBorrowed              Kind = "MoveFromBorrowed"
	KindMoveAlreadyMoved              Kind = "MoveAlreadyMoved"
	KindBorrowConflict                Kind = "BorrowConflict"
	KindResourceNotManageable         Kind = "ResourceNotManageable"
	KindEqualityOperandsNotCopyKind   Kind = "EqualityOperandsNotCopyKind"
	KindArithmeticOperandsNotInt      Kind = "ArithmeticOperandsNotInt"
	KindReturnOutsideFunction         Kind = "ReturnOutsideFunction"
	KindMainMissing                   Kind = "MainMissing"
	KindMainHasParameters             Kind = "MainHasParameters"
)

// CheckError is the single error shape the checker surfaces (spec.md
// §7: "A single CheckError kind is surfaced, carrying a message and an
// optional location").
type CheckError struct {
	Kind    Kind
	Message string
	Span    position.Span
}

func (e *CheckError) Error() string { return e.Message }

func errf(kind Kind, span position.Span, format string, args ...interface{}) *CheckError {
	return &CheckError{Kind: kind, Message: fmt.Sprintf(format, args...), Span: span}
}

// wrapOwnership lifts an *ownership.Error into a *CheckError at span,
// preserving its Kind and message verbatim — the engine's messages are
// already part of the external contract (e.g. "Cannot assign to
// immutable variable 'p2'").
func wrapOwnership(err error, span position.Span) *CheckError {
	if oe, ok := err.(*ownership.Error); ok {
		return &CheckError{Kind: Kind(oe.Kind), Message: oe.Message, Span: span}
	}
	return errf(Kind("Internal"), span, "%v", err)
}
