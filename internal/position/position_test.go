package position

import "testing"

func TestSpanValidity(t *testing.T) {
	valid := Span{
		Start: Position{Filename: "a.ash", Line: 1, Column: 1, Offset: 0},
		End:   Position{Filename: "a.ash", Line: 1, Column: 3, Offset: 2},
	}
	if !valid.IsValid() {
		t.Fatal("expected span to be valid")
	}

	mismatched := Span{
		Start: Position{Filename: "a.ash", Line: 1, Column: 1, Offset: 0},
		End:   Position{Filename: "b.ash", Line: 1, Column: 3, Offset: 2},
	}
	if mismatched.IsValid() {
		t.Fatal("expected cross-file span to be invalid")
	}
}

func TestExcerptCaret(t *testing.T) {
	sm := NewSourceMap()
	sm.AddFile("p.ash", "let p2 = p;\np2.x = 30;\n")

	span := Span{
		Start: Position{Filename: "p.ash", Line: 2, Column: 1, Offset: 12},
		End:   Position{Filename: "p.ash", Line: 2, Column: 3, Offset: 14},
	}

	got := sm.Excerpt(span)
	want := "p2.x = 30;\n^^"
	if got != want {
		t.Errorf("Excerpt() = %q, want %q", got, want)
	}
}

func TestExcerptMissingFile(t *testing.T) {
	sm := NewSourceMap()
	span := Span{
		Start: Position{Filename: "missing.ash", Line: 1, Column: 1, Offset: 0},
		End:   Position{Filename: "missing.ash", Line: 1, Column: 2, Offset: 1},
	}
	if got := sm.Excerpt(span); got != "" {
		t.Errorf("Excerpt() for unregistered file = %q, want empty", got)
	}
}
