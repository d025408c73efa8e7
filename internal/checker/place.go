package checker

import "github.com/ash-lang/ashc/internal/ast"

// resolvePlace recurses a (possibly chained) field access down to its
// root variable (spec.md §4.4 "Place expressions": "a field access
// whose base is a place... recursing to the root"). Borrow and
// mutability checks on a field access are reduced to the same check
// on this root name (spec.md §4.3 "Borrow-from-field").
func resolvePlace(e ast.Expr) (string, bool) {
	switch n := e.(type) {
	case *ast.VarExpr:
		return n.Name, true
	case *ast.FieldAccessExpr:
		return resolvePlace(n.Object)
	default:
		return "", false
	}
}
