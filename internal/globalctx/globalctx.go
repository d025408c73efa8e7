// Package globalctx implements the global-context builder (spec.md §4.1):
// it de-duplicates top-level definitions within each of the three
// namespaces (struct, resource, function) and exposes name-indexed
// lookups. It does not resolve field or parameter types — that is
// deferred to internal/types so error messages point at uses, not at
// declarations, matching the teacher's own two-pass
// collect-then-resolve shape (internal/resolver.Resolver in the pack).
package globalctx

import (
	"fmt"

	"github.com/ash-lang/ashc/internal/ast"
	"github.com/ash-lang/ashc/internal/position"
)

// DuplicateDefinitionError is the one failure mode of Build (spec.md
// §4.1): the second occurrence of a name within one namespace.
type DuplicateDefinitionError struct {
	Kind string // "struct", "resource", or "function"
	Name string
	Span position.Span
}

func (e *DuplicateDefinitionError) Error() string {
	return fmt.Sprintf("duplicate %s definition '%s'", e.Kind, e.Name)
}

// Context is the read-only, name-indexed triple of top-level tables
// spec.md §9 calls for ("a small read-only triple of name-keyed
// tables"). Order slices preserve declaration order for deterministic
// iteration (testable property 5).
type Context struct {
	Structs   map[string]*ast.StructDef
	Resources map[string]*ast.ResourceDef
	Funcs     map[string]*ast.FuncDef

	StructOrder   []string
	ResourceOrder []string
	FuncOrder     []string
}

// Build de-duplicates each namespace and returns the first structural
// error encountered (in declaration order), per spec.md §4.1.
func Build(prog *ast.Program) (*Context, error) {
	ctx := &Context{
		Structs:   make(map[string]*ast.StructDef),
		Resources: make(map[string]*ast.ResourceDef),
		Funcs:     make(map[string]*ast.FuncDef),
	}

	for _, s := range prog.Structs {
		if _, dup := ctx.Structs[s.Name]; dup {
			return nil, &DuplicateDefinitionError{Kind: "struct", Name: s.Name, Span: s.Span}
		}
		ctx.Structs[s.Name] = s
		ctx.StructOrder = append(ctx.StructOrder, s.Name)
	}

	for _, r := range prog.Resources {
		if _, dup := ctx.Resources[r.Name]; dup {
			return nil, &DuplicateDefinitionError{Kind: "resource", Name: r.Name, Span: r.Span}
		}
		ctx.Resources[r.Name] = r
		ctx.ResourceOrder = append(ctx.ResourceOrder, r.Name)
	}

	for _, f := range prog.Funcs {
		if _, dup := ctx.Funcs[f.Name]; dup {
			return nil, &DuplicateDefinitionError{Kind: "function", Name: f.Name, Span: f.Span}
		}
		ctx.Funcs[f.Name] = f
		ctx.FuncOrder = append(ctx.FuncOrder, f.Name)
	}

	return ctx, nil
}

// HasUserType reports whether name is a declared struct or resource,
// implementing types.Resolver.
func (c *Context) HasUserType(name string) bool {
	if _, ok := c.Structs[name]; ok {
		return true
	}
	_, ok := c.Resources[name]
	return ok
}

// IsResource reports whether name is specifically a resource, distinct
// from a struct — the managed-boundary rule rejects only resources
// (spec.md invariant 6 / ResourceNotManageable).
func (c *Context) IsResource(name string) bool {
	_, ok := c.Resources[name]
	return ok
}

// Fields returns the ordered field list of a struct or resource by name,
// whichever it is, and reports which (if either) it found.
func (c *Context) Fields(name string) ([]ast.FieldDef, bool) {
	if s, ok := c.Structs[name]; ok {
		return s.Fields, true
	}
	if r, ok := c.Resources[name]; ok {
		return r.Fields, true
	}
	return nil, false
}
