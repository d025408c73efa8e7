package position

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Excerpt renders the one-line source preview with a caret under the
// offending column that spec.md's external contract requires for every
// diagnostic with a valid Span. A span without a registered source file
// (or an invalid span) renders as "".
func (sm *SourceMap) Excerpt(span Span) string {
	if !span.IsValid() {
		return ""
	}

	file := sm.File(span.Start.Filename)
	if file == nil {
		return ""
	}

	line := file.Line(span.Start.Line)

	var caret strings.Builder

	runes := []rune(line)
	for i := 1; i < span.Start.Column; i++ {
		if i <= len(runes) && runes[i-1] == '\t' {
			caret.WriteByte('\t')
		} else {
			caret.WriteByte(' ')
		}
	}

	width := 1
	if span.Start.Line == span.End.Line && span.End.Column > span.Start.Column {
		width = span.End.Column - span.Start.Column
	}
	width = min(width, utf8.RuneCountInString(line)-span.Start.Column+2)
	if width < 1 {
		width = 1
	}

	caret.WriteString(strings.Repeat("^", width))

	return fmt.Sprintf("%s\n%s", line, caret.String())
}
