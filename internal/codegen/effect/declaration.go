package effect

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/okra-platform/effectschema/internal/codegen/ast"
	"github.com/okra-platform/effectschema/internal/schema"
)

// Translator turns declarations of one schema into syntax trees. A Translator
// is read-only after construction and may be shared between goroutines; all
// per-file state lives in the ImportTracker passed to each call.
type Translator struct {
	kinds  map[string]schema.DeclKind
	export bool
	logger zerolog.Logger
}

// NewTranslator creates a translator resolving references against s
func NewTranslator(s *schema.Schema, logger zerolog.Logger) *Translator {
	// Resolution is cached once so the translator stays read-only
	kinds := make(map[string]schema.DeclKind, len(s.Models)+len(s.TypeDefs)+len(s.Enums))
	for _, name := range s.Names() {
		kinds[name] = s.Resolve(name)
	}

	return &Translator{
		kinds:  kinds,
		export: true,
		logger: logger.With().Str("component", "effect").Logger(),
	}
}

// WithExport configures whether declarations are exported
func (t *Translator) WithExport(export bool) *Translator {
	t.export = export
	return t
}

// TranslateObject converts a model or type-def into a tagged class whose
// fields are ordered by name
func (t *Translator) TranslateObject(obj schema.ObjectType, imports *ImportTracker) *ast.ClassDecl {
	fields := make([]schema.Field, len(obj.Fields))
	copy(fields, obj.Fields)
	sort.SliceStable(fields, func(i, j int) bool {
		return fields[i].Name < fields[j].Name
	})

	props := make([]ast.Property, 0, len(fields))
	for _, field := range fields {
		props = append(props, t.TranslateField(obj.Name, field, imports))
	}

	// Schema.TaggedClass<Name>()("Name", { ... })
	tagged := &ast.Call{
		Callee:   ast.Sel(SchemaIdent, "TaggedClass"),
		TypeArgs: []string{obj.Name},
	}
	fieldsObj := &ast.ObjectLit{Props: props, Multiline: true}

	return &ast.ClassDecl{
		Name:    obj.Name,
		Export:  t.export,
		Doc:     obj.Doc,
		Extends: ast.CallOf(tagged, ast.Str(obj.Name), fieldsObj),
	}
}

// TranslateEnum converts an enum into a literal union of its value names in
// declaration order
func (t *Translator) TranslateEnum(enum schema.EnumType) *ast.ConstDecl {
	literals := make([]ast.Expr, 0, len(enum.Values))
	for _, v := range enum.Values {
		literals = append(literals, ast.Str(v.Name))
	}

	return &ast.ConstDecl{
		Name:   enum.Name,
		Export: t.export,
		Doc:    enum.Doc,
		Value:  ast.CallOf(ast.Sel(SchemaIdent, "Literal"), literals...),
	}
}
