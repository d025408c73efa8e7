package checker

import (
	"github.com/ash-lang/ashc/internal/ast"
	"github.com/ash-lang/ashc/internal/typedast"
	"github.com/ash-lang/ashc/internal/types"
)

// checkExpr dispatches on the expression's concrete AST shape and
// returns its typed form (spec.md §4.4 "Expressions"). inManaged
// threads the managed-boundary context: true while checking a field
// initializer that sits (directly or through nesting) inside a
// `managed T{...}` literal.
func (fc *funcChecker) checkExpr(e ast.Expr, inManaged bool) (typedast.Expr, error) {
	switch n := e.(type) {
	case *ast.IntLit:
		return &typedast.IntLit{Value: n.Value, Type: types.TInt}, nil

	case *ast.BoolLit:
		return &typedast.BoolLit{Value: n.Value, Type: types.TBool}, nil

	case *ast.VarExpr:
		t, err := fc.eng.Read(n.Name)
		if err != nil {
			return nil, wrapOwnership(err, n.Span)
		}
		return &typedast.VarRef{Name: n.Name, Type: t}, nil

	case *ast.BinaryExpr:
		return fc.checkBinary(n)

	case *ast.StructLit:
		return fc.checkStructLit(n, inManaged)

	case *ast.FieldAccessExpr:
		return fc.checkFieldAccess(n)

	case *ast.CallExpr:
		return fc.checkCall(n)

	case *ast.PrintlnExpr:
		return fc.checkPrintln(n)

	default:
		return nil, errf(Kind("Internal"), e.ExprSpan(), "unrecognized expression node %T", e)
	}
}

func (fc *funcChecker) checkBinary(n *ast.BinaryExpr) (typedast.Expr, error) {
	left, err := fc.checkExpr(n.Left, false)
	if err != nil {
		return nil, err
	}
	right, err := fc.checkExpr(n.Right, false)
	if err != nil {
		return nil, err
	}

	switch n.Op {
	case ast.OpAdd, ast.OpSub:
		if !types.Equal(left.ExprType(), types.TInt) || !types.Equal(right.ExprType(), types.TInt) {
			return nil, errf(KindArithmeticOperandsNotInt, n.Span,
				"arithmetic operator '%s' requires Int operands, got %s and %s",
				n.Op, types.String(left.ExprType()), types.String(right.ExprType()))
		}
		return &typedast.BinaryExpr{Op: n.Op, Left: left, Right: right, Type: types.TInt}, nil

	case ast.OpLt, ast.OpLe, ast.OpGt, ast.OpGe:
		if !types.Equal(left.ExprType(), types.TInt) || !types.Equal(right.ExprType(), types.TInt) {
			return nil, errf(KindArithmeticOperandsNotInt, n.Span,
				"comparison operator '%s' requires Int operands, got %s and %s",
				n.Op, types.String(left.ExprType()), types.String(right.ExprType()))
		}
		return &typedast.BinaryExpr{Op: n.Op, Left: left, Right: right, Type: types.TBool}, nil

	case ast.OpEq, ast.OpNe:
		if !types.Equal(left.ExprType(), right.ExprType()) {
			return nil, errf(KindTypeMismatch, n.Span,
				"equality operands must have the same type, got %s and %s",
				types.String(left.ExprType()), types.String(right.ExprType()))
		}
		if !types.IsCopy(left.ExprType()) {
			return nil, errf(KindEqualityOperandsNotCopyKind, n.Span,
				"equality operator '%s' rejects move-kind operand %s",
				n.Op, types.String(left.ExprType()))
		}
		return &typedast.BinaryExpr{Op: n.Op, Left: left, Right: right, Type: types.TBool}, nil

	default:
		return nil, errf(Kind("Internal"), n.Span, "unrecognized binary operator %v", n.Op)
	}
}

func (fc *funcChecker) checkCallArg(e ast.Expr) (typedast.Expr, error) {
	return fc.checkExpr(e, false)
}

// maybeMoveSource applies the move effect of a move-kind value whose
// source is a plain variable reference. Temporaries (struct literals,
// call results, field accesses) have no source record to mutate —
// spec.md §4.3 "Moves from non-variable sources" — so this is
// deliberately a no-op for anything but *ast.VarExpr.
func (fc *funcChecker) maybeMoveSource(src ast.Expr, t types.Type) error {
	if !types.IsMoveKind(t) {
		return nil
	}
	v, ok := src.(*ast.VarExpr)
	if !ok {
		return nil
	}
	if err := fc.eng.Move(v.Name); err != nil {
		return wrapOwnership(err, v.Span)
	}
	return nil
}

func (fc *funcChecker) checkPrintln(n *ast.PrintlnExpr) (typedast.Expr, error) {
	args := make([]typedast.Expr, 0, len(n.Args))
	for _, a := range n.Args {
		ta, err := fc.checkExpr(a, false)
		if err != nil {
			return nil, err
		}
		args = append(args, ta)
	}
	return &typedast.PrintlnExpr{Format: n.Format, Args: args, Type: types.TUnit}, nil
}
