package typescript

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/okra-platform/effectschema/internal/codegen/ast"
	"github.com/okra-platform/effectschema/internal/codegen/writer"
)

var identifierRegex = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Printer serializes syntax trees to TypeScript, or to plain ES module
// JavaScript when type syntax is disabled
type Printer struct {
	header string
	typed  bool // If false, drop type syntax and emit .js
}

// NewPrinter creates a new TypeScript printer. A non-empty header is written
// as a line comment at the top of every file.
func NewPrinter(header string) *Printer {
	return &Printer{
		header: header,
		typed:  true,
	}
}

// WithTypes configures whether type syntax is emitted
func (p *Printer) WithTypes(typed bool) *Printer {
	p.typed = typed
	return p
}

// Language returns the name of the target language
func (p *Printer) Language() string {
	if !p.typed {
		return "javascript"
	}
	return "typescript"
}

// FileExtension returns the file extension for generated files
func (p *Printer) FileExtension() string {
	if !p.typed {
		return ".js"
	}
	return ".ts"
}

// Print serializes a file: header, the import block, then each declaration
// separated by a blank line
func (p *Printer) Print(file *ast.File) ([]byte, error) {
	w := writer.NewWriter("  ") // TypeScript typically uses 2 spaces

	if p.header != "" {
		w.WriteComment(p.header)
		w.BlankLine()
	}

	inImports := false
	for _, stmt := range file.Stmts {
		imp, isImport := stmt.(*ast.ImportDecl)
		if !isImport || !inImports {
			w.BlankLine()
		}
		inImports = isImport

		switch s := stmt.(type) {
		case *ast.ImportDecl:
			p.printImport(w, imp)
		case *ast.ClassDecl:
			if err := p.printClass(w, s); err != nil {
				return nil, fmt.Errorf("print class %s: %w", s.Name, err)
			}
		case *ast.ConstDecl:
			if err := p.printConst(w, s); err != nil {
				return nil, fmt.Errorf("print const %s: %w", s.Name, err)
			}
		default:
			return nil, fmt.Errorf("unsupported statement kind %d", stmt.Kind())
		}
	}

	return w.Bytes(), nil
}

func (p *Printer) printImport(w *writer.Writer, imp *ast.ImportDecl) {
	w.WriteLinef("import { %s } from %s;", strings.Join(imp.Names, ", "), quote(p.modulePath(imp.From)))
}

// modulePath adds the .js extension ES modules require on relative imports
func (p *Printer) modulePath(from string) string {
	if p.typed {
		return from
	}
	if strings.HasPrefix(from, "./") || strings.HasPrefix(from, "../") {
		return from + ".js"
	}
	return from
}

func (p *Printer) printClass(w *writer.Writer, class *ast.ClassDecl) error {
	w.WriteJSDoc(class.Doc)
	if class.Export {
		w.Write("export ")
	}
	w.Writef("class %s extends ", class.Name)
	if err := p.printExpr(w, class.Extends); err != nil {
		return err
	}
	w.WriteLine(" {}")
	return nil
}

func (p *Printer) printConst(w *writer.Writer, c *ast.ConstDecl) error {
	w.WriteJSDoc(c.Doc)
	if c.Export {
		w.Write("export ")
	}
	w.Writef("const %s = ", c.Name)
	if err := p.printExpr(w, c.Value); err != nil {
		return err
	}
	w.WriteLine(";")
	return nil
}

func (p *Printer) printExpr(w *writer.Writer, expr ast.Expr) error {
	switch e := expr.(type) {
	case *ast.Ident:
		w.Write(e.Name)

	case *ast.Member:
		if err := p.printExpr(w, e.Object); err != nil {
			return err
		}
		w.Write("." + e.Name)

	case *ast.Call:
		if err := p.printExpr(w, e.Callee); err != nil {
			return err
		}
		if p.typed && len(e.TypeArgs) > 0 {
			w.Writef("<%s>", strings.Join(e.TypeArgs, ", "))
		}
		return p.printArgs(w, e.Args)

	case *ast.Pipe:
		if err := p.printExpr(w, e.Target); err != nil {
			return err
		}
		w.Write(".pipe")
		return p.printArgs(w, e.Steps)

	case *ast.StringLit:
		w.Write(quote(e.Value))

	case *ast.NumberLit:
		w.Write(e.Raw)

	case *ast.BigIntLit:
		w.Write(e.Raw + "n")

	case *ast.RegexLit:
		w.Write(regexLiteral(e.Pattern, e.Flags))

	case *ast.ObjectLit:
		return p.printObject(w, e)

	case *ast.Func:
		w.Write("() => ")
		return p.printExpr(w, e.Body)

	case *ast.DeferredRef:
		// A thunk is only evaluated after every module finished loading,
		// which breaks reference cycles between files
		if p.typed {
			w.Writef("(): typeof %s => %s", e.Name, e.Name)
		} else {
			w.Writef("() => %s", e.Name)
		}

	case nil:
		return fmt.Errorf("nil expression")

	default:
		return fmt.Errorf("unsupported expression kind %d", expr.Kind())
	}

	return nil
}

func (p *Printer) printArgs(w *writer.Writer, args []ast.Expr) error {
	w.Write("(")
	for i, arg := range args {
		if i > 0 {
			w.Write(", ")
		}
		if err := p.printExpr(w, arg); err != nil {
			return err
		}
	}
	w.Write(")")
	return nil
}

func (p *Printer) printObject(w *writer.Writer, obj *ast.ObjectLit) error {
	if len(obj.Props) == 0 {
		w.Write("{}")
		return nil
	}

	if !obj.Multiline {
		w.Write("{ ")
		for i, prop := range obj.Props {
			if i > 0 {
				w.Write(", ")
			}
			w.Write(propertyName(prop.Name) + ": ")
			if err := p.printExpr(w, prop.Value); err != nil {
				return err
			}
		}
		w.Write(" }")
		return nil
	}

	w.Write("{")
	w.Newline()
	w.Indent()
	for i, prop := range obj.Props {
		w.WriteJSDoc(prop.Doc)
		w.Write(propertyName(prop.Name) + ": ")
		if err := p.printExpr(w, prop.Value); err != nil {
			return err
		}
		if i < len(obj.Props)-1 {
			w.Write(",")
		}
		w.Newline()
	}
	w.Dedent()
	w.Write("}")
	return nil
}

func propertyName(name string) string {
	if identifierRegex.MatchString(name) {
		return name
	}
	return quote(name)
}

// quote produces a double-quoted JavaScript string literal
func quote(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04x`, r)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&sb, `\u%04x`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// regexLiteral escapes unescaped slashes and line terminators so the pattern
// can be embedded between slashes
func regexLiteral(pattern, flags string) string {
	if pattern == "" {
		return "/(?:)/" + flags
	}

	var sb strings.Builder
	sb.WriteByte('/')
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			sb.WriteRune(r)
			escaped = false
		case r == '\\':
			sb.WriteRune(r)
			escaped = true
		case r == '/':
			sb.WriteString(`\/`)
		case r == '\n':
			sb.WriteString(`\n`)
		case r == '\r':
			sb.WriteString(`\r`)
		default:
			sb.WriteRune(r)
		}
	}
	if escaped {
		// A trailing lone backslash would escape the closing slash
		sb.WriteByte('\\')
	}
	sb.WriteByte('/')
	sb.WriteString(flags)
	return sb.String()
}
