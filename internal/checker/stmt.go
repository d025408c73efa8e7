package checker

import (
	"github.com/ash-lang/ashc/internal/ast"
	"github.com/ash-lang/ashc/internal/ownership"
	"github.com/ash-lang/ashc/internal/typedast"
	"github.com/ash-lang/ashc/internal/types"
)

// checkBlock implements spec.md §4.4 "Block": clone the current scope,
// check children in order, discard the clone on exit — a move inside
// the block never leaks to the parent.
func (fc *funcChecker) checkBlock(b *ast.BlockStmt) (*typedast.Block, error) {
	fc.eng.EnterScope()
	defer fc.eng.LeaveScope()

	out := &typedast.Block{}
	for _, s := range b.Stmts {
		ts, err := fc.checkStmt(s)
		if err != nil {
			return nil, err
		}
		out.Stmts = append(out.Stmts, ts)
	}
	return out, nil
}

func (fc *funcChecker) checkStmt(s ast.Stmt) (typedast.Stmt, error) {
	switch n := s.(type) {
	case *ast.BlockStmt:
		block, err := fc.checkBlock(n)
		if err != nil {
			return nil, err
		}
		return &typedast.NestedBlockStmt{Block: block}, nil

	case *ast.LetStmt:
		return fc.checkLet(n)

	case *ast.AssignStmt:
		return fc.checkAssign(n)

	case *ast.ExprStmt:
		te, err := fc.checkExpr(n.Expr, false)
		if err != nil {
			return nil, err
		}
		return &typedast.ExprStmt{Expr: te}, nil

	case *ast.ReturnStmt:
		return fc.checkReturn(n)

	default:
		return nil, errf(Kind("Internal"), s.StmtSpan(), "unrecognized statement node %T", s)
	}
}

// checkLet implements spec.md §4.4 "Let".
func (fc *funcChecker) checkLet(n *ast.LetStmt) (typedast.Stmt, error) {
	init, err := fc.checkExpr(n.Init, false)
	if err != nil {
		return nil, err
	}

	finalType := init.ExprType()
	if n.Annotation != nil {
		if err := validateTypeNode(fc.ctx, n.Annotation); err != nil {
			return nil, err
		}
		annotated := resolveTypeNode(n.Annotation)
		if !types.Equal(annotated, init.ExprType()) {
			return nil, errf(KindTypeMismatch, n.Init.ExprSpan(),
				"Expected %s but got %s", types.String(annotated), types.String(init.ExprType()))
		}
		finalType = annotated
	}

	if err := fc.maybeMoveSource(n.Init, finalType); err != nil {
		return nil, err
	}

	info := ownership.VarInfo{Type: finalType, State: ownership.Owned, IsMutable: n.Mutable, DefSpan: n.Span}
	if err := fc.eng.Define(n.Name, info); err != nil {
		return nil, wrapOwnership(err, n.Span)
	}

	return &typedast.LetStmt{Name: n.Name, Type: finalType, Init: init}, nil
}

// checkAssign implements spec.md §4.4 "Assignment" and "Place
// expressions": the target must resolve to a place rooted in a
// mutable, unmoved variable.
func (fc *funcChecker) checkAssign(n *ast.AssignStmt) (typedast.Stmt, error) {
	target, err := fc.checkExpr(n.Target, false)
	if err != nil {
		return nil, err
	}

	root, ok := resolvePlace(n.Target)
	if !ok {
		return nil, errf(KindAssignTargetNotAPlace, n.Target.ExprSpan(),
			"assignment target is not a place expression")
	}
	if err := fc.eng.AssignTo(root); err != nil {
		return nil, wrapOwnership(err, n.Target.ExprSpan())
	}

	value, err := fc.checkExpr(n.Value, false)
	if err != nil {
		return nil, err
	}
	if !types.Equal(target.ExprType(), value.ExprType()) {
		return nil, errf(KindTypeMismatch, n.Value.ExprSpan(),
			"Expected %s but got %s", types.String(target.ExprType()), types.String(value.ExprType()))
	}
	if err := fc.maybeMoveSource(n.Value, value.ExprType()); err != nil {
		return nil, err
	}

	return &typedast.AssignStmt{Target: target, Value: value}, nil
}

// checkReturn implements spec.md §4.4 "Return". A bare `return;` (or
// falling off the end of the function) means Unit. There is no
// ReturnStmt reachable outside a function or resource-cleanup body in
// this AST shape — Stmt nodes only ever occur inside a FuncDef's Body
// or a ResourceDef's Cleanup — so ReturnOutsideFunction is defined in
// the taxonomy but structurally unreachable here. A cleanup block's
// expected return type is always Unit (spec.md §4.3 "Resource-cleanup
// scope"), set on fc.returnType by CheckResource.
func (fc *funcChecker) checkReturn(n *ast.ReturnStmt) (typedast.Stmt, error) {
	expected := fc.returnType

	if n.Expr == nil {
		if !types.Equal(expected, types.TUnit) {
			return nil, errf(KindTypeMismatch, n.Span,
				"Expected %s but got %s", types.String(expected), types.String(types.TUnit))
		}
		return &typedast.ReturnStmt{Expr: nil}, nil
	}

	value, err := fc.checkExpr(n.Expr, false)
	if err != nil {
		return nil, err
	}
	if !types.Equal(expected, value.ExprType()) {
		return nil, errf(KindTypeMismatch, n.Expr.ExprSpan(),
			"Expected %s but got %s", types.String(expected), types.String(value.ExprType()))
	}
	if err := fc.maybeMoveSource(n.Expr, value.ExprType()); err != nil {
		return nil, err
	}
	return &typedast.ReturnStmt{Expr: value}, nil
}
