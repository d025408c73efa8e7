package checker

import (
	"github.com/ash-lang/ashc/internal/ast"
	"github.com/ash-lang/ashc/internal/typedast"
	"github.com/ash-lang/ashc/internal/types"
)

// checkCall implements spec.md §4.4 "Function call". The surface AST
// only ever carries a bare-identifier callee (ast.CallExpr.Callee is a
// string, not an expression), so DynamicCallNotSupported is part of
// the external taxonomy but has no reachable source in this grammar —
// a future frontend that allows `(expr)(args)` callees would need to
// raise it here.
func (fc *funcChecker) checkCall(n *ast.CallExpr) (typedast.Expr, error) {
	fn, ok := fc.ctx.Funcs[n.Callee]
	if !ok {
		return nil, errf(KindNoSuchFunction, n.Span, "no such function '%s'", n.Callee)
	}
	if len(n.Args) != len(fn.Params) {
		return nil, errf(KindArityMismatch, n.Span,
			"function '%s' expects %d argument(s), got %d", n.Callee, len(fn.Params), len(n.Args))
	}

	args := make([]typedast.Expr, 0, len(n.Args))
	for i, argExpr := range n.Args {
		param := fn.Params[i]
		typedArg, err := fc.checkCallArg(argExpr)
		if err != nil {
			return nil, err
		}

		paramType := resolveTypeNode(param.Type)
		if !types.Equal(typedArg.ExprType(), paramType) {
			return nil, errf(KindTypeMismatch, argExpr.ExprSpan(),
				"Expected %s but got %s", types.String(paramType), types.String(typedArg.ExprType()))
		}

		if err := fc.applyParamMode(param, argExpr, typedArg.ExprType()); err != nil {
			return nil, err
		}

		args = append(args, typedArg)
	}

	return &typedast.CallExpr{Callee: n.Callee, Args: args, Type: resolveTypeNode(fn.ReturnType)}, nil
}

// applyParamMode performs the ownership effect a parameter's passing
// mode imposes on its argument (spec.md §4.4 "Function call").
func (fc *funcChecker) applyParamMode(param ast.Param, argExpr ast.Expr, argType types.Type) error {
	switch param.Mode.Kind {
	case ast.ModeMove:
		return fc.maybeMoveSource(argExpr, argType)

	case ast.ModeRef:
		root, ok := resolvePlace(argExpr)
		if !ok {
			return nil // borrowing a temporary: nothing to track
		}
		if err := fc.eng.BorrowRead(root); err != nil {
			return wrapOwnership(err, argExpr.ExprSpan())
		}
		return nil

	case ast.ModeInout:
		root, ok := resolvePlace(argExpr)
		if !ok {
			return errf(KindAssignTargetNotAPlace, argExpr.ExprSpan(),
				"inout argument must be a place expression")
		}
		if err := fc.eng.BorrowWrite(root); err != nil {
			return wrapOwnership(err, argExpr.ExprSpan())
		}
		return nil

	default:
		return nil
	}
}
