// Package writer provides a small indentation-aware text writer used by the
// pattern-language emitter.
package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates generated source text with per-line indentation.
type Writer struct {
	sb          strings.Builder
	indentLevel int
	indent      string
	needsIndent bool
}

// New creates a writer with the given indentation unit.
func New(indent string) *Writer {
	return &Writer{indent: indent, needsIndent: true}
}

// Indent increases the indentation level.
func (w *Writer) Indent() {
	w.indentLevel++
}

// Dedent decreases the indentation level.
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// WriteLine writes s as one indented line followed by a newline.
func (w *Writer) WriteLine(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(strings.Repeat(w.indent, w.indentLevel))
	}
	w.sb.WriteString(s)
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// WriteLinef writes a formatted indented line followed by a newline.
func (w *Writer) WriteLinef(format string, args ...interface{}) {
	w.WriteLine(fmt.Sprintf(format, args...))
}

// String returns the accumulated text.
func (w *Writer) String() string {
	return w.sb.String()
}
