// Package ownership implements the ownership engine (spec.md §4.3): the
// per-variable state machine that enforces move and borrow rules across
// nested block scopes. It is grounded on the pack's own move/borrow
// tracking (internal/mir/ownership.go and internal/mir/borrow.go in the
// teacher), simplified to the single-pass, non-flow-sensitive model
// spec.md actually calls for: no lifetimes, no borrow regions, no
// interprocedural move analysis — just one state per bound name, tracked
// through a stack of scope snapshots.
package ownership

import (
	"fmt"

	"github.com/ash-lang/ashc/internal/position"
	"github.com/ash-lang/ashc/internal/types"
)

// State is a variable's current ownership state (spec.md §3).
type State int

const (
	Owned State = iota
	Moved
	BorrowedRead
	BorrowedWrite
)

func (s State) String() string {
	switch s {
	case Owned:
		return "owned"
	case Moved:
		return "moved"
	case BorrowedRead:
		return "borrowed(read)"
	case BorrowedWrite:
		return "borrowed(write)"
	default:
		return "unknown"
	}
}

// VarInfo is the ownership engine's central record for one bound name.
type VarInfo struct {
	Type      types.Type
	State     State
	IsMutable bool
	DefSpan   position.Span
}

// Kind names the internal error taxonomy entries (spec.md §7) an Engine
// method can raise, so callers can categorize a returned error without
// string-matching its message.
type Kind string

const (
	KindUndefinedVariable    Kind = "UndefinedVariable"
	KindDuplicateLocalBind   Kind = "DuplicateLocalBinding"
	KindUseOfMovedValue      Kind = "UseOfMovedValue"
	KindMoveAlreadyMoved     Kind = "MoveAlreadyMoved"
	KindMoveFromBorrowed     Kind = "MoveFromBorrowed"
	KindBorrowConflict       Kind = "BorrowConflict"
	KindMutableBorrowOfImmut Kind = "MutableBorrowOfImmutable"
	KindAssignToImmutable    Kind = "AssignToImmutable"
)

// Error is every error the engine raises: a Kind plus a human-readable
// message, consistent with spec.md §7's single CheckError shape.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

func newErr(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Engine owns the scope stack: a stack of name -> VarInfo snapshots.
// EnterScope pushes a deep copy of the current top (scope tables are
// small value-typed maps, cheap to clone per spec.md §9's "arrays of
// open-addressed maps... cheaply cloned on block entry"); LeaveScope
// discards the top. Because VarInfo is a value type, mutating an entry
// in the cloned top can never alias the parent's copy — this is what
// gives block scoping its non-flow-sensitive, conservative semantics
// (spec.md §4.4 "Block": a move inside a block does not leak out).
type Engine struct {
	scopes []map[string]VarInfo
}

// New creates an engine with a single empty root scope (the function's
// parameter scope).
func New() *Engine {
	return &Engine{scopes: []map[string]VarInfo{{}}}
}

// EnterScope pushes a clone of the current scope.
func (e *Engine) EnterScope() {
	top := e.scopes[len(e.scopes)-1]
	clone := make(map[string]VarInfo, len(top))
	for k, v := range top {
		clone[k] = v
	}
	e.scopes = append(e.scopes, clone)
}

// LeaveScope discards the current scope, reverting to the parent.
func (e *Engine) LeaveScope() {
	e.scopes = e.scopes[:len(e.scopes)-1]
}

func (e *Engine) top() map[string]VarInfo {
	return e.scopes[len(e.scopes)-1]
}

// Define introduces a new binding in the current scope. It rejects
// shadowing within the same block (spec.md §4.4 "Let": "The name must
// not already be bound in the current scope (no shadowing within one
// block)"). Function-parameter and resource-cleanup-field introduction
// also goes through Define, since the root scope starts empty for each.
func (e *Engine) Define(name string, info VarInfo) error {
	top := e.top()
	if _, exists := top[name]; exists {
		return newErr(KindDuplicateLocalBind, "variable '%s' is already bound in this scope", name)
	}
	top[name] = info
	return nil
}

// Lookup returns the current VarInfo for name, or an UndefinedVariable
// error.
func (e *Engine) Lookup(name string) (VarInfo, error) {
	info, ok := e.top()[name]
	if !ok {
		return VarInfo{}, newErr(KindUndefinedVariable, "undefined variable '%s'", name)
	}
	return info, nil
}

// Read validates that name can be read right now (spec.md §4.4
// "Variable"): any state but Moved. Reading never changes state.
func (e *Engine) Read(name string) (types.Type, error) {
	info, err := e.Lookup(name)
	if err != nil {
		return types.Type{}, err
	}
	if info.State == Moved {
		return types.Type{}, newErr(KindUseOfMovedValue, "Use of moved value '%s'", name)
	}
	return info.Type, nil
}

// Move validates and performs a move of a move-kind variable (spec.md
// §4.3's state table): legal only from Owned, transitioning to Moved.
// Moving a non-variable source (a struct literal or call result) never
// calls this — there is no record to mutate, matching spec.md §4.3
// "Moves from non-variable sources... is a no-op on the engine".
func (e *Engine) Move(name string) error {
	info, err := e.Lookup(name)
	if err != nil {
		return err
	}
	switch info.State {
	case Owned:
		info.State = Moved
		e.top()[name] = info
		return nil
	case Moved:
		return newErr(KindMoveAlreadyMoved, "Cannot move already moved value '%s'", name)
	case BorrowedRead, BorrowedWrite:
		return newErr(KindMoveFromBorrowed, "Cannot move borrowed value '%s'", name)
	default:
		return newErr(KindMoveFromBorrowed, "Cannot move value '%s'", name)
	}
}

// BorrowRead validates an immutable borrow (`ref`) of name. Per spec.md
// §4.3's table, Owned and BorrowedRead sources are legal and unchanged;
// Moved and BorrowedWrite sources are errors.
func (e *Engine) BorrowRead(name string) error {
	info, err := e.Lookup(name)
	if err != nil {
		return err
	}
	switch info.State {
	case Owned, BorrowedRead:
		return nil
	case Moved:
		return newErr(KindUseOfMovedValue, "Use of moved value '%s'", name)
	case BorrowedWrite:
		return newErr(KindBorrowConflict, "Cannot borrow value '%s' while mutably borrowed", name)
	default:
		return newErr(KindBorrowConflict, "Cannot borrow value '%s'", name)
	}
}

// BorrowWrite validates a mutable borrow (`inout`) of name. Legal only
// from Owned when IsMutable; every borrowed state is a conflict,
// including BorrowedWrite itself — spec.md's table gives move/any
// borrow from BorrowedWrite no "(unchanged)" exception, and §7 names
// the mutable-mutable case as its own BorrowConflict sub-kind.
func (e *Engine) BorrowWrite(name string) error {
	info, err := e.Lookup(name)
	if err != nil {
		return err
	}
	switch info.State {
	case Owned:
		if !info.IsMutable {
			return newErr(KindMutableBorrowOfImmut, "Cannot mutably borrow immutable value '%s'", name)
		}
		return nil
	case BorrowedWrite:
		return newErr(KindBorrowConflict, "Cannot mutably borrow value '%s' while mutably borrowed", name)
	case BorrowedRead:
		return newErr(KindBorrowConflict, "Cannot mutably borrow value '%s' while immutably borrowed", name)
	case Moved:
		return newErr(KindUseOfMovedValue, "Use of moved value '%s'", name)
	default:
		return newErr(KindBorrowConflict, "Cannot mutably borrow value '%s'", name)
	}
}

// AssignTo validates that name is a legal assignment target: it must not
// be Moved, and it must be mutable (so a ref parameter, which is never
// mutable, is rejected, while an inout parameter is accepted). This
// backs the Place rule (spec.md §4.4 "Place expressions").
func (e *Engine) AssignTo(name string) error {
	info, err := e.Lookup(name)
	if err != nil {
		return err
	}
	if info.State == Moved {
		return newErr(KindUseOfMovedValue, "Use of moved value '%s'", name)
	}
	if !info.IsMutable {
		return newErr(KindAssignToImmutable, "Cannot assign to immutable variable '%s'", name)
	}
	return nil
}

// IsMutable reports whether name's current binding is mutable, without
// otherwise validating its state. The checker does not call it: its
// assignment check goes through AssignTo on the place's root variable.
func (e *Engine) IsMutable(name string) (bool, error) {
	info, err := e.Lookup(name)
	if err != nil {
		return false, err
	}
	return info.IsMutable, nil
}
