package checker

import (
	"github.com/ash-lang/ashc/internal/ast"
	"github.com/ash-lang/ashc/internal/typedast"
	"github.com/ash-lang/ashc/internal/types"
)

// checkStructLit implements struct/managed-struct literal checking and
// the managed-boundary propagation rule (spec.md §4.4, "The managed
// boundary rule"). inManaged is true when this literal is itself a
// field initializer nested (at any depth) inside an enclosing managed
// literal; the `managed` keyword written on the outermost literal
// distributes down through every nested struct construction that
// appears literally in the surface syntax.
func (fc *funcChecker) checkStructLit(n *ast.StructLit, inManaged bool) (typedast.Expr, error) {
	effectiveManaged := n.Managed || inManaged

	if effectiveManaged && fc.ctx.IsResource(n.TypeName) {
		return nil, errf(KindResourceNotManageable, n.Span,
			"resource '%s' cannot be allocated as managed", n.TypeName)
	}

	declared, ok := fc.ctx.Fields(n.TypeName)
	if !ok {
		return nil, errf(KindUnknownType, n.Span, "unknown type '%s'", n.TypeName)
	}
	byName := make(map[string]ast.FieldDef, len(declared))
	for _, f := range declared {
		byName[f.Name] = f
	}

	seen := make(map[string]bool, len(n.Fields))
	outFields := make([]typedast.FieldInit, 0, len(n.Fields))

	for _, fi := range n.Fields {
		field, ok := byName[fi.Name]
		if !ok {
			return nil, errf(KindUnknownFieldInStructLiteral, fi.Span,
				"type '%s' has no field '%s'", n.TypeName, fi.Name)
		}
		if seen[fi.Name] {
			return nil, errf(KindFieldSetMismatch, fi.Span,
				"field '%s' specified more than once in '%s' literal", fi.Name, n.TypeName)
		}
		seen[fi.Name] = true

		raw := resolveTypeNode(field.Type)
		expected := raw
		if effectiveManaged && types.IsNamedUserType(raw, fc.ctx) {
			expected = types.ManagedType(raw)
		}

		val, err := fc.checkExpr(fi.Value, effectiveManaged)
		if err != nil {
			return nil, err
		}
		if !types.Equal(val.ExprType(), expected) {
			return nil, errf(KindTypeMismatch, fi.Value.ExprSpan(),
				"Expected %s but got %s", types.String(expected), types.String(val.ExprType()))
		}
		if err := fc.maybeMoveSource(fi.Value, val.ExprType()); err != nil {
			return nil, err
		}

		outFields = append(outFields, typedast.FieldInit{Name: fi.Name, Value: val})
	}

	if len(seen) != len(declared) {
		return nil, errf(KindFieldSetMismatch, n.Span,
			"'%s' literal does not initialize every declared field", n.TypeName)
	}

	resultType := types.NamedType(n.TypeName)
	if effectiveManaged {
		resultType = types.ManagedType(resultType)
	}

	return &typedast.StructLit{
		TypeName: n.TypeName,
		Managed:  effectiveManaged,
		Fields:   outFields,
		Type:     resultType,
	}, nil
}

// checkFieldAccess implements the field-access rule and its
// managed-field lift (spec.md §4.4 "Field access").
func (fc *funcChecker) checkFieldAccess(n *ast.FieldAccessExpr) (typedast.Expr, error) {
	obj, err := fc.checkExpr(n.Object, false)
	if err != nil {
		return nil, err
	}
	objType := obj.ExprType()

	var typeName string
	objectManaged := false
	switch {
	case objType.Kind == types.Named:
		typeName = objType.Name
	case objType.Kind == types.Managed && objType.Inner != nil && objType.Inner.Kind == types.Named:
		typeName = objType.Inner.Name
		objectManaged = true
	case objType.Kind == types.Managed:
		return nil, errf(KindFieldAccessOnManagedNonStruct, n.Span,
			"cannot access field '%s' on %s", n.Field, types.String(objType))
	default:
		return nil, errf(KindFieldAccessOnNonStruct, n.Span,
			"cannot access field '%s' on %s", n.Field, types.String(objType))
	}

	declared, ok := fc.ctx.Fields(typeName)
	if !ok {
		return nil, errf(KindUnknownType, n.Span, "unknown type '%s'", typeName)
	}
	var raw types.Type
	found := false
	for _, f := range declared {
		if f.Name == n.Field {
			raw = resolveTypeNode(f.Type)
			found = true
			break
		}
	}
	if !found {
		return nil, errf(KindUnknownFieldInStructLiteral, n.Span,
			"type '%s' has no field '%s'", typeName, n.Field)
	}

	result := raw
	if objectManaged && types.IsNamedUserType(raw, fc.ctx) {
		result = types.ManagedType(raw)
	}

	return &typedast.FieldAccessExpr{
		Object:        obj,
		Field:         n.Field,
		ObjectManaged: objectManaged,
		Type:          result,
	}, nil
}
