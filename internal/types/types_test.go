package types

import "testing"

type stubResolver map[string]bool

func (s stubResolver) HasUserType(name string) bool { return s[name] }

func TestEqualityIsReflexiveSymmetricTransitive(t *testing.T) {
	a := ManagedType(NamedType("Bar"))
	b := ManagedType(NamedType("Bar"))
	c := ManagedType(NamedType("Bar"))

	if !Equal(a, a) {
		t.Fatal("expected reflexivity")
	}
	if Equal(a, b) != Equal(b, a) {
		t.Fatal("expected symmetry")
	}
	if Equal(a, b) && Equal(b, c) && !Equal(a, c) {
		t.Fatal("expected transitivity")
	}

	if Equal(NamedType("Foo"), NamedType("Bar")) {
		t.Error("distinct named types must not be equal")
	}
}

func TestIsCopyIsConstantPerType(t *testing.T) {
	cases := []struct {
		t    Type
		copy bool
	}{
		{TInt, true},
		{TBool, true},
		{TUnit, true},
		{ManagedType(NamedType("Foo")), true},
		{NamedType("Foo"), false},
	}
	for _, c := range cases {
		if got := IsCopy(c.t); got != c.copy {
			t.Errorf("IsCopy(%s) = %v, want %v", String(c.t), got, c.copy)
		}
		if IsMoveKind(c.t) == c.copy {
			t.Errorf("IsMoveKind(%s) should be the complement of IsCopy", String(c.t))
		}
	}
}

func TestValidateRejectsUnknownNamedAndNestedManaged(t *testing.T) {
	r := stubResolver{"Foo": true}

	if err := Validate(NamedType("Foo"), r); err != nil {
		t.Errorf("expected Foo to validate, got %v", err)
	}
	if err := Validate(NamedType("Bar"), r); err == nil {
		t.Error("expected unknown named type to fail validation")
	}
	if err := Validate(ManagedType(ManagedType(NamedType("Foo"))), r); err == nil {
		t.Error("expected managed-of-managed to fail validation")
	}
}

func TestTypeToStringMatchesExternalContract(t *testing.T) {
	cases := []struct {
		t    Type
		want string
	}{
		{TInt, "int"},
		{TBool, "bool"},
		{TUnit, "unit"},
		{NamedType("Bar"), "Bar"},
		{ManagedType(NamedType("Bar")), "managed Bar"},
	}
	for _, c := range cases {
		if got := String(c.t); got != c.want {
			t.Errorf("String(%v) = %q, want %q", c.t, got, c.want)
		}
	}
}

func TestIsNamedUserType(t *testing.T) {
	r := stubResolver{"Foo": true}

	if !IsNamedUserType(NamedType("Foo"), r) {
		t.Error("Foo should be a named user type")
	}
	if IsNamedUserType(TInt, r) {
		t.Error("int is not a named user type")
	}
	if IsNamedUserType(ManagedType(NamedType("Foo")), r) {
		t.Error("managed Foo is not itself a named user type")
	}
}
