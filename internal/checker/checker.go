package checker

import (
	"github.com/ash-lang/ashc/internal/ast"
	"github.com/ash-lang/ashc/internal/globalctx"
	"github.com/ash-lang/ashc/internal/ownership"
	"github.com/ash-lang/ashc/internal/position"
	"github.com/ash-lang/ashc/internal/typedast"
	"github.com/ash-lang/ashc/internal/types"
)

// Check runs the full pipeline (spec.md §2): build the global context,
// validate every declared type, enforce the main-function discipline,
// then check each function's body in declaration order. It returns the
// first error encountered — the checker never continues past a
// failure.
//
// Check is the sequential entry point. A host that wants to
// parallelize across functions (spec.md §5: "the global context, once
// built, is read-only and may be shared freely if the host ever chose
// to parallelize across functions") should call Prepare once and then
// CheckFunction concurrently per function — see cmd/ashc.
func Check(prog *ast.Program) (*typedast.Program, error) {
	ctx, err := Prepare(prog)
	if err != nil {
		return nil, err
	}

	out := &typedast.Program{Structs: prog.Structs}

	for _, name := range ctx.ResourceOrder {
		res, err := CheckResource(ctx, ctx.Resources[name])
		if err != nil {
			return nil, err
		}
		out.Resources = append(out.Resources, res)
	}

	for _, name := range ctx.FuncOrder {
		fn, err := CheckFunction(ctx, ctx.Funcs[name])
		if err != nil {
			return nil, err
		}
		out.Funcs = append(out.Funcs, fn)
	}
	return out, nil
}

// Prepare builds the global context and validates everything that can
// be validated without checking a single function body: declared
// types (invariant 1) and the main-function discipline (invariant 3).
// The returned Context is read-only and safe to share across
// concurrent CheckFunction calls.
func Prepare(prog *ast.Program) (*globalctx.Context, error) {
	ctx, err := globalctx.Build(prog)
	if err != nil {
		dup := err.(*globalctx.DuplicateDefinitionError)
		return nil, errf(KindDuplicateDefinition, dup.Span, "duplicate %s definition '%s'", dup.Kind, dup.Name)
	}

	if err := validateDeclaredTypes(ctx); err != nil {
		return nil, err
	}

	if err := checkMainDiscipline(ctx); err != nil {
		return nil, err
	}

	return ctx, nil
}

// validateDeclaredTypes enforces invariant 1 over every field,
// parameter and return-type annotation reachable without checking a
// single function body — so a malformed declaration is reported
// before any ownership analysis runs.
func validateDeclaredTypes(ctx *globalctx.Context) error {
	for _, name := range ctx.StructOrder {
		for _, f := range ctx.Structs[name].Fields {
			if err := validateTypeNode(ctx, f.Type); err != nil {
				return err
			}
		}
	}
	for _, name := range ctx.ResourceOrder {
		for _, f := range ctx.Resources[name].Fields {
			if err := validateTypeNode(ctx, f.Type); err != nil {
				return err
			}
		}
	}
	for _, name := range ctx.FuncOrder {
		fn := ctx.Funcs[name]
		for _, p := range fn.Params {
			if err := validateTypeNode(ctx, p.Type); err != nil {
				return err
			}
		}
		if err := validateTypeNode(ctx, fn.ReturnType); err != nil {
			return err
		}
	}
	return nil
}

func validateTypeNode(ctx *globalctx.Context, n ast.TypeNode) error {
	if n == nil { // an omitted return type means Unit, which is always valid
		return nil
	}
	t := resolveTypeNode(n)
	if err := types.Validate(t, ctx); err != nil {
		return errf(KindUnknownType, n.NodeSpan(), "%s", err.Error())
	}
	return nil
}

// resolveTypeNode lowers an ast.TypeNode (a source-level type
// annotation) into a types.Type, with no validation of its own —
// callers that need Named(n) to actually resolve call types.Validate
// afterward.
func resolveTypeNode(n ast.TypeNode) types.Type {
	switch tn := n.(type) {
	case *ast.BasicTypeNode:
		switch tn.Kind {
		case ast.KindInt:
			return types.TInt
		case ast.KindBool:
			return types.TBool
		default:
			return types.TUnit
		}
	case *ast.NamedTypeNode:
		return types.NamedType(tn.Name)
	case *ast.ManagedTypeNode:
		return types.ManagedType(resolveTypeNode(tn.Inner))
	default:
		return types.TUnit
	}
}

// checkMainDiscipline enforces invariant 3.
func checkMainDiscipline(ctx *globalctx.Context) error {
	main, ok := ctx.Funcs["main"]
	if !ok {
		return errf(KindMainMissing, position.Span{}, "No 'main' function")
	}
	if len(main.Params) != 0 {
		return errf(KindMainHasParameters, main.Span, "'main' function cannot have parameters")
	}
	return nil
}

// funcChecker is the per-function (or per-resource-cleanup) checking
// session: the global context plus one ownership engine seeded with
// this scope's introduced bindings, and the return type `return`
// statements in this body are checked against.
type funcChecker struct {
	ctx        *globalctx.Context
	fn         *ast.FuncDef
	eng        *ownership.Engine
	returnType types.Type
}

// CheckFunction checks a single function against an already-built,
// read-only Context. Each call constructs its own ownership engine, so
// concurrent calls for distinct functions share no mutable state
// (spec.md §5).
func CheckFunction(ctx *globalctx.Context, fn *ast.FuncDef) (*typedast.Func, error) {
	fc := &funcChecker{ctx: ctx, fn: fn, eng: ownership.New(), returnType: resolveTypeNode(fn.ReturnType)}

	for _, p := range fn.Params {
		info := paramVarInfo(p)
		if err := fc.eng.Define(p.Name, info); err != nil {
			return nil, wrapOwnership(err, p.Span)
		}
	}

	body, err := fc.checkBlock(fn.Body)
	if err != nil {
		return nil, err
	}
	return &typedast.Func{Decl: fn, Body: body}, nil
}

// CheckResource checks a resource's cleanup block, if it declares one.
// Per spec.md §4.3 "Resource-cleanup scope", every declared field is
// introduced as Owned with IsMutable true — the cleanup block runs with
// full ownership of the resource being torn down, mirroring how a
// function's own fields would be laid out if it took the resource by
// value. A resource with no cleanup block produces a Resource with a
// nil Cleanup, matching spec.md §6's "or absent".
func CheckResource(ctx *globalctx.Context, res *ast.ResourceDef) (*typedast.Resource, error) {
	if res.Cleanup == nil {
		return &typedast.Resource{Decl: res}, nil
	}

	fc := &funcChecker{ctx: ctx, eng: ownership.New(), returnType: types.TUnit}
	for _, f := range res.Fields {
		info := ownership.VarInfo{Type: resolveTypeNode(f.Type), State: ownership.Owned, IsMutable: true, DefSpan: f.Span}
		if err := fc.eng.Define(f.Name, info); err != nil {
			return nil, wrapOwnership(err, f.Span)
		}
	}

	cleanup, err := fc.checkBlock(res.Cleanup)
	if err != nil {
		return nil, err
	}
	return &typedast.Resource{Decl: res, Cleanup: cleanup}, nil
}

// paramVarInfo derives a parameter's initial ownership state from its
// passing mode (spec.md §4.3 "Function parameter introduction").
func paramVarInfo(p ast.Param) ownership.VarInfo {
	t := resolveTypeNode(p.Type)
	switch p.Mode.Kind {
	case ast.ModeRef:
		return ownership.VarInfo{Type: t, State: ownership.BorrowedRead, IsMutable: false, DefSpan: p.Span}
	case ast.ModeInout:
		return ownership.VarInfo{Type: t, State: ownership.BorrowedWrite, IsMutable: true, DefSpan: p.Span}
	default: // ast.ModeMove
		return ownership.VarInfo{Type: t, State: ownership.Owned, IsMutable: p.Mode.Mutable, DefSpan: p.Span}
	}
}
