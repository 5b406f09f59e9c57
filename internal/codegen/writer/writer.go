package writer

import (
	"fmt"
	"strings"
)

// Writer accumulates generated source with indentation tracking. Indentation
// is applied lazily at the first write of each line, so expressions may be
// written piecewise and still break across indented lines.
type Writer struct {
	sb           strings.Builder
	indentLevel  int
	indentString string
	linePrefix   string
	needsIndent  bool
}

// NewWriter creates a new code writer with specified indentation string
func NewWriter(indentString string) *Writer {
	return &Writer{
		indentString: indentString,
		needsIndent:  true,
	}
}

// Indent increases the indentation level
func (w *Writer) Indent() {
	w.indentLevel++
	w.updatePrefix()
}

// Dedent decreases the indentation level
func (w *Writer) Dedent() {
	if w.indentLevel > 0 {
		w.indentLevel--
		w.updatePrefix()
	}
}

// Write writes a string without adding a newline
func (w *Writer) Write(s string) {
	if w.needsIndent && s != "" {
		w.sb.WriteString(w.linePrefix)
		w.needsIndent = false
	}
	w.sb.WriteString(s)
}

// Writef writes a formatted string without adding a newline
func (w *Writer) Writef(format string, args ...any) {
	w.Write(fmt.Sprintf(format, args...))
}

// WriteLine writes a string and adds a newline
func (w *Writer) WriteLine(s string) {
	w.Write(s)
	w.Newline()
}

// WriteLinef writes a formatted string and adds a newline
func (w *Writer) WriteLinef(format string, args ...any) {
	w.Writef(format, args...)
	w.Newline()
}

// Newline adds a newline character
func (w *Writer) Newline() {
	w.sb.WriteString("\n")
	w.needsIndent = true
}

// BlankLine adds an empty line unless the output is empty or already ends with one
func (w *Writer) BlankLine() {
	if w.sb.Len() > 0 && !strings.HasSuffix(w.sb.String(), "\n\n") {
		if !w.needsIndent {
			w.Newline()
		}
		w.Newline()
	}
}

// String returns the generated code as a string
func (w *Writer) String() string {
	return w.sb.String()
}

// Bytes returns the generated code as a byte slice
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

func (w *Writer) updatePrefix() {
	w.linePrefix = strings.Repeat(w.indentString, w.indentLevel)
}

// WriteComment writes a single-line comment
func (w *Writer) WriteComment(comment string) {
	w.WriteLinef("// %s", comment)
}

// WriteJSDoc writes a JSDoc comment. Single line docs stay on one line.
func (w *Writer) WriteJSDoc(doc string) {
	if doc == "" {
		return
	}

	lines := strings.Split(strings.TrimSpace(doc), "\n")
	if len(lines) == 1 {
		w.WriteLinef("/** %s */", escapeCommentEnd(lines[0]))
		return
	}

	w.WriteLine("/**")
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			w.WriteLine(" *")
			continue
		}
		w.WriteLinef(" * %s", escapeCommentEnd(line))
	}
	w.WriteLine(" */")
}

// escapeCommentEnd keeps user text from closing the comment early
func escapeCommentEnd(s string) string {
	return strings.ReplaceAll(s, "*/", "*\\/")
}
