package ownership

import (
	"testing"

	"github.com/ash-lang/ashc/internal/types"
)

func define(t *testing.T, e *Engine, name string, ty types.Type, mutable bool) {
	t.Helper()
	if err := e.Define(name, VarInfo{Type: ty, State: Owned, IsMutable: mutable}); err != nil {
		t.Fatalf("Define(%s) failed: %v", name, err)
	}
}

func TestMoveThenReadIsRejected(t *testing.T) {
	e := New()
	define(t, e, "p", types.NamedType("Point"), true)

	if err := e.Move("p"); err != nil {
		t.Fatalf("first move should succeed: %v", err)
	}
	if _, err := e.Read("p"); err == nil {
		t.Fatal("expected read of moved value to fail")
	} else if err.(*Error).Kind != KindUseOfMovedValue {
		t.Errorf("got kind %v, want KindUseOfMovedValue", err.(*Error).Kind)
	}
}

func TestDoubleMoveIsRejected(t *testing.T) {
	e := New()
	define(t, e, "p", types.NamedType("Point"), true)

	if err := e.Move("p"); err != nil {
		t.Fatalf("first move should succeed: %v", err)
	}
	if err := e.Move("p"); err == nil {
		t.Fatal("expected second move to fail")
	} else if err.(*Error).Kind != KindMoveAlreadyMoved {
		t.Errorf("got kind %v, want KindMoveAlreadyMoved", err.(*Error).Kind)
	}
}

func TestBlockLocalMoveDoesNotLeakToParentScope(t *testing.T) {
	e := New()
	define(t, e, "p", types.NamedType("Point"), true)

	e.EnterScope()
	if err := e.Move("p"); err != nil {
		t.Fatalf("move inside block should succeed: %v", err)
	}
	e.LeaveScope()

	if _, err := e.Read("p"); err != nil {
		t.Fatalf("expected parent scope's 'p' to remain unmoved: %v", err)
	}
}

func TestBorrowedWriteRejectsMoveAndBorrow(t *testing.T) {
	e := New()
	if err := e.Define("pt", VarInfo{Type: types.NamedType("Point"), State: BorrowedWrite, IsMutable: true}); err != nil {
		t.Fatal(err)
	}

	if err := e.Move("pt"); err == nil {
		t.Fatal("expected move of inout parameter to fail")
	} else if err.(*Error).Kind != KindMoveFromBorrowed {
		t.Errorf("got kind %v, want KindMoveFromBorrowed", err.(*Error).Kind)
	}

	if err := e.BorrowRead("pt"); err == nil {
		t.Fatal("expected immutable borrow of an inout parameter to fail")
	}

	if err := e.BorrowWrite("pt"); err == nil {
		t.Fatal("expected re-lending an already mutably borrowed value to fail")
	} else if err.(*Error).Kind != KindBorrowConflict {
		t.Errorf("got kind %v, want KindBorrowConflict", err.(*Error).Kind)
	}
}

func TestBorrowedReadRejectsMutableBorrowAndMove(t *testing.T) {
	e := New()
	if err := e.Define("pt", VarInfo{Type: types.NamedType("Point"), State: BorrowedRead, IsMutable: false}); err != nil {
		t.Fatal(err)
	}

	if err := e.BorrowRead("pt"); err != nil {
		t.Fatalf("re-reading a ref parameter should succeed: %v", err)
	}
	if err := e.BorrowWrite("pt"); err == nil {
		t.Fatal("expected mutable borrow of a ref parameter to fail")
	}
	if err := e.Move("pt"); err == nil {
		t.Fatal("expected move of a ref parameter to fail")
	}
}

func TestAssignToImmutableIsRejected(t *testing.T) {
	e := New()
	define(t, e, "p2", types.NamedType("Point"), false)

	if err := e.AssignTo("p2"); err == nil {
		t.Fatal("expected assignment to immutable binding to fail")
	} else if err.(*Error).Kind != KindAssignToImmutable {
		t.Errorf("got kind %v, want KindAssignToImmutable", err.(*Error).Kind)
	}
}

func TestNoShadowingWithinOneBlock(t *testing.T) {
	e := New()
	define(t, e, "x", types.TInt, false)

	if err := e.Define("x", VarInfo{Type: types.TInt, State: Owned}); err == nil {
		t.Fatal("expected redefinition within the same scope to fail")
	} else if err.(*Error).Kind != KindDuplicateLocalBind {
		t.Errorf("got kind %v, want KindDuplicateLocalBind", err.(*Error).Kind)
	}
}

func TestMutableBorrowOfImmutableOwned(t *testing.T) {
	e := New()
	define(t, e, "p", types.NamedType("Point"), false)

	if err := e.BorrowWrite("p"); err == nil {
		t.Fatal("expected mutable borrow of an immutable owned value to fail")
	} else if err.(*Error).Kind != KindMutableBorrowOfImmut {
		t.Errorf("got kind %v, want KindMutableBorrowOfImmut", err.(*Error).Kind)
	}
}
