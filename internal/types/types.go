// Package types implements the Ash type resolver (spec.md §4.2): a
// closed, structural type sum plus the pure, stateless rules over it.
// Nothing here mutates or depends on per-variable ownership state; that
// lives in internal/ownership.
package types

import "fmt"

// Kind discriminates the closed type sum of spec.md §3.
type Kind int

const (
	Int Kind = iota
	Bool
	Unit
	Named
	Managed
)

// Type is a closed, structural value: Int/Bool/Unit carry no payload,
// Named carries a user-type name, Managed carries an Inner type.
type Type struct {
	Kind  Kind
	Name  string // set iff Kind == Named
	Inner *Type  // set iff Kind == Managed
}

var (
	TInt  = Type{Kind: Int}
	TBool = Type{Kind: Bool}
	TUnit = Type{Kind: Unit}
)

// NamedType constructs a Named(name) type.
func NamedType(name string) Type {
	return Type{Kind: Named, Name: name}
}

// ManagedType constructs a Managed(inner) type.
func ManagedType(inner Type) Type {
	cp := inner
	return Type{Kind: Managed, Inner: &cp}
}

// Equal implements the structural equality spec.md §3 requires, ignoring
// source locations (which Type carries none of in the first place).
func Equal(a, b Type) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Named:
		return a.Name == b.Name
	case Managed:
		return Equal(*a.Inner, *b.Inner)
	default:
		return true
	}
}

// IsCopy reports whether values of t are copy-kind (spec.md §3): every
// primitive and every Managed(_), but no Named(_).
func IsCopy(t Type) bool {
	return t.Kind != Named
}

// IsMoveKind is the complement of IsCopy, spelled out at call sites that
// read better phrased positively (every move/borrow rule in spec.md §4.3
// keys off move-kind-ness).
func IsMoveKind(t Type) bool {
	return t.Kind == Named
}

// Resolver validates Named(_) references against the declared struct and
// resource namespaces. internal/globalctx.Context implements this.
type Resolver interface {
	HasUserType(name string) bool
}

// Validate checks spec.md invariant 1: every occurring type is valid.
// Int/Bool/Unit are always valid; Named(n) is valid iff n resolves to a
// struct or resource; Managed(inner) is valid iff inner validates and is
// not itself Managed (no nested managed-of-managed).
func Validate(t Type, r Resolver) error {
	switch t.Kind {
	case Int, Bool, Unit:
		return nil
	case Named:
		if !r.HasUserType(t.Name) {
			return fmt.Errorf("unknown type '%s'", t.Name)
		}
		return nil
	case Managed:
		if t.Inner.Kind == Managed {
			return fmt.Errorf("managed %s: managed-of-managed is not a valid type", String(*t.Inner))
		}
		return Validate(*t.Inner, r)
	default:
		return fmt.Errorf("unknown type kind %d", t.Kind)
	}
}

// IsNamedUserType reports whether t is Named(n) for some n known to r.
// This is distinct from Validate: it is used by the managed-boundary
// field-access lift (spec.md §4.4), where we need to know specifically
// that the raw field type is a user type, not merely that it validates.
func IsNamedUserType(t Type, r Resolver) bool {
	return t.Kind == Named && r.HasUserType(t.Name)
}

// String renders t the way spec.md §4.2 requires verbatim in error
// messages: "int|bool|unit|<name>|managed <inner>".
func String(t Type) string {
	switch t.Kind {
	case Int:
		return "int"
	case Bool:
		return "bool"
	case Unit:
		return "unit"
	case Named:
		return t.Name
	case Managed:
		return "managed " + String(*t.Inner)
	default:
		return "?"
	}
}
