// Package diagnostic renders CheckError values (see internal/checker) into
// human-readable reports, including the one-line source excerpt with a
// caret that spec.md's external contract requires whenever a location is
// available.
package diagnostic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ash-lang/ashc/internal/position"
)

// Level is the severity of a diagnostic. The checker itself only ever
// produces Error-level diagnostics (spec.md §7: "All errors abort the
// check; no recovery is attempted"); Warning is reserved for driver-level
// advisories such as an unused ash.mod directive.
type Level int

const (
	LevelError Level = iota
	LevelWarning
)

func (l Level) String() string {
	if l == LevelWarning {
		return "warning"
	}
	return "error"
}

// Diagnostic is one reportable finding, carrying everything needed to
// render a line like:
//
//	p.ash:2:1: error[AssignToImmutable]: Cannot assign to immutable variable 'p2'
//	p2.x = 30;
//	^^
type Diagnostic struct {
	Message string
	Kind    string // one of the §7 taxonomy names, e.g. "UseOfMovedValue"
	Span    position.Span
	Level   Level
}

// Builder constructs a Diagnostic with a small fluent API, matching the
// shape the checker's per-error constructors use.
type Builder struct {
	d Diagnostic
}

func New() *Builder {
	return &Builder{}
}

func (b *Builder) Warning() *Builder {
	b.d.Level = LevelWarning
	return b
}

func (b *Builder) Kind(kind string) *Builder {
	b.d.Kind = kind
	return b
}

func (b *Builder) Message(msg string) *Builder {
	b.d.Message = msg
	return b
}

func (b *Builder) Span(span position.Span) *Builder {
	b.d.Span = span
	return b
}

func (b *Builder) Build() Diagnostic {
	return b.d
}

// Engine collects diagnostics across one or more files and renders them
// together; the CLI driver uses this to present every function's first
// error in one report (see SPEC_FULL.md, "Diagnostic batching").
type Engine struct {
	sources     *position.SourceMap
	diagnostics []Diagnostic
}

func NewEngine(sources *position.SourceMap) *Engine {
	return &Engine{sources: sources}
}

func (e *Engine) Add(d Diagnostic) {
	e.diagnostics = append(e.diagnostics, d)
}

func (e *Engine) HasErrors() bool {
	for _, d := range e.diagnostics {
		if d.Level == LevelError {
			return true
		}
	}
	return false
}

// Sort orders diagnostics by file, then position, matching the order a
// reader scans a file top to bottom.
func (e *Engine) Sort() {
	sort.SliceStable(e.diagnostics, func(i, j int) bool {
		a, b := e.diagnostics[i].Span.Start, e.diagnostics[j].Span.Start
		if a.Filename != b.Filename {
			return a.Filename < b.Filename
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		return a.Column < b.Column
	})
}

// Format renders every collected diagnostic followed by a one-line
// summary, in the "file:line:col: level[kind]: message" + excerpt shape.
func (e *Engine) Format() string {
	e.Sort()

	var out strings.Builder

	for i, d := range e.diagnostics {
		if i > 0 {
			out.WriteString("\n")
		}
		out.WriteString(e.formatOne(d))
	}

	out.WriteString(e.summary())

	return out.String()
}

func (e *Engine) formatOne(d Diagnostic) string {
	var out strings.Builder

	if d.Span.Start.IsValid() {
		fmt.Fprintf(&out, "%s: %s[%s]: %s\n", d.Span.Start.String(), d.Level, d.Kind, d.Message)
	} else {
		fmt.Fprintf(&out, "%s[%s]: %s\n", d.Level, d.Kind, d.Message)
	}

	if e.sources != nil {
		if excerpt := e.sources.Excerpt(d.Span); excerpt != "" {
			out.WriteString(excerpt)
			out.WriteString("\n")
		}
	}

	return out.String()
}

func (e *Engine) summary() string {
	errs, warns := 0, 0
	for _, d := range e.diagnostics {
		if d.Level == LevelError {
			errs++
		} else {
			warns++
		}
	}

	if errs == 0 && warns == 0 {
		return "\nno issues found\n"
	}

	var parts []string
	if errs > 0 {
		parts = append(parts, fmt.Sprintf("%d error(s)", errs))
	}
	if warns > 0 {
		parts = append(parts, fmt.Sprintf("%d warning(s)", warns))
	}

	return fmt.Sprintf("\n%s\n", strings.Join(parts, ", "))
}
