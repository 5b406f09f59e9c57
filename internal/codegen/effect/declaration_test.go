package effect

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okra-platform/effectschema/internal/codegen/ast"
	"github.com/okra-platform/effectschema/internal/schema"
)

func str(name string, attrs ...schema.Attribute) schema.Field {
	return schema.Field{
		Name:       name,
		Type:       schema.TypeRef{Name: "String", Builtin: schema.BuiltinString},
		Attributes: attrs,
	}
}

func ref(name, target string) schema.Field {
	return schema.Field{Name: name, Type: schema.TypeRef{Name: target}}
}

func builtin(name string, b schema.BuiltinType) schema.Field {
	return schema.Field{Name: name, Type: schema.TypeRef{Name: string(b), Builtin: b}}
}

func TestTranslateField_Builtins(t *testing.T) {
	// Test: builtin scalars map directly, Decimal and Bytes reference the support bundle
	tr := NewTranslator(&schema.Schema{}, zerolog.Nop())

	tests := []struct {
		builtin  schema.BuiltinType
		expected string
		aux      []string
	}{
		{schema.BuiltinInt, "Schema.Int", nil},
		{schema.BuiltinFloat, "Schema.Number", nil},
		{schema.BuiltinBigInt, "Schema.BigInt", nil},
		{schema.BuiltinBoolean, "Schema.Boolean", nil},
		{schema.BuiltinString, "Schema.String", nil},
		{schema.BuiltinDateTime, "Schema.DateTimeUtc", nil},
		{schema.BuiltinJSON, "Schema.Object", nil},
		{schema.BuiltinDecimal, "Decimal", []string{"Decimal"}},
		{schema.BuiltinBytes, "Bytes", []string{"Bytes"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.builtin), func(t *testing.T) {
			imports := NewImportTracker()
			prop := tr.TranslateField("Owner", builtin("value", tt.builtin), imports)

			assert.Equal(t, "value", prop.Name)
			assert.Equal(t, tt.expected, renderExpr(t, prop.Value))
			assert.Equal(t, tt.aux, imports.Names(ImportAuxiliary))
			assert.Empty(t, imports.Names(ImportSibling))
		})
	}
}

func TestTranslateField_References(t *testing.T) {
	// Test: enum references are direct, type-def references are suspended,
	// models and unknown names fall back to Schema.Unknown
	s := &schema.Schema{
		Models:   []schema.ObjectType{{Name: "Post", Kind: schema.DeclModel}},
		TypeDefs: []schema.ObjectType{{Name: "Address", Kind: schema.DeclTypeDef}},
		Enums:    []schema.EnumType{{Name: "Role"}},
	}
	tr := NewTranslator(s, zerolog.Nop())

	tests := []struct {
		name     string
		field    schema.Field
		expected string
		siblings []string
	}{
		{"enum", ref("role", "Role"), "Role", []string{"Role"}},
		{"type-def", ref("address", "Address"), "Schema.suspend((): typeof Address => Address)", []string{"Address"}},
		{"model", ref("post", "Post"), "Schema.Unknown", nil},
		{"unknown", ref("ghost", "Ghost"), "Schema.Unknown", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			imports := NewImportTracker()
			prop := tr.TranslateField("User", tt.field, imports)

			assert.Equal(t, tt.expected, renderExpr(t, prop.Value))
			assert.Equal(t, tt.siblings, imports.Names(ImportSibling))
			assert.Empty(t, imports.Names(ImportAuxiliary))
		})
	}
}

func TestTranslateField_SelfReference(t *testing.T) {
	// Test: a type-def referencing itself is suspended but never imports itself
	s := &schema.Schema{
		TypeDefs: []schema.ObjectType{{Name: "Node", Kind: schema.DeclTypeDef}},
	}
	tr := NewTranslator(s, zerolog.Nop())

	imports := NewImportTracker()
	field := ref("children", "Node")
	field.Type.Array = true
	prop := tr.TranslateField("Node", field, imports)

	assert.Equal(t, "Schema.Array(Schema.suspend((): typeof Node => Node))", renderExpr(t, prop.Value))
	assert.Empty(t, imports.Snapshot())
}

func TestTranslateField_UnresolvedLogsDebug(t *testing.T) {
	// Test: an unresolved reference is not fatal and is logged at debug level
	var buf bytes.Buffer
	tr := NewTranslator(&schema.Schema{}, zerolog.New(&buf).Level(zerolog.DebugLevel))

	prop := tr.TranslateField("User", ref("ghost", "Ghost"), NewImportTracker())

	assert.Equal(t, "Schema.Unknown", renderExpr(t, prop.Value))
	assert.Contains(t, buf.String(), `"level":"debug"`)
	assert.Contains(t, buf.String(), `"type":"Ghost"`)
	assert.Contains(t, buf.String(), `"field":"ghost"`)
}

func TestTranslateField_Modifiers(t *testing.T) {
	// Test: array wrapping happens before the pipeline and optional comes last
	tr := NewTranslator(&schema.Schema{}, zerolog.Nop())

	tests := []struct {
		name     string
		field    schema.Field
		expected string
	}{
		{
			name:     "no modifiers stays unwrapped",
			field:    str("name"),
			expected: "Schema.String",
		},
		{
			name: "attribute order kept within a rank",
			field: str("email",
				attr("length", "min", "int", "3"),
				attr("trim"),
			),
			expected: "Schema.String.pipe(Schema.minLength(3), Schema.compose(Schema.Trim))",
		},
		{
			name:     "optional only",
			field:    schema.Field{Name: "nick", Type: schema.TypeRef{Name: "String", Builtin: schema.BuiltinString, Optional: true}},
			expected: "Schema.String.pipe(Schema.optional)",
		},
		{
			name: "url moves after preserving modifiers, optional last",
			field: schema.Field{
				Name: "site",
				Type: schema.TypeRef{Name: "String", Builtin: schema.BuiltinString, Optional: true},
				Attributes: []schema.Attribute{
					attr("url"),
					attr("startsWith", "text", "string", "https://"),
				},
			},
			expected: `Schema.String.pipe(Schema.startsWith("https://"), Schema.compose(Schema.URL), Schema.optional)`,
		},
		{
			name: "optional array",
			field: schema.Field{
				Name: "tags",
				Type: schema.TypeRef{Name: "String", Builtin: schema.BuiltinString, Array: true, Optional: true},
			},
			expected: "Schema.Array(Schema.String).pipe(Schema.optional)",
		},
		{
			name: "optional array with attributes",
			field: schema.Field{
				Name:       "links",
				Type:       schema.TypeRef{Name: "String", Builtin: schema.BuiltinString, Array: true, Optional: true},
				Attributes: []schema.Attribute{attr("url"), attr("trim")},
			},
			expected: "Schema.Array(Schema.String).pipe(Schema.compose(Schema.Trim), Schema.compose(Schema.URL), Schema.optional)",
		},
		{
			name: "inapplicable attribute ignored",
			field: schema.Field{
				Name:       "age",
				Type:       schema.TypeRef{Name: "Int", Builtin: schema.BuiltinInt},
				Attributes: []schema.Attribute{attr("trim"), attr("gte", "value", "int", "0")},
			},
			expected: "Schema.Int.pipe(Schema.greaterThanOrEqualTo(0))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prop := tr.TranslateField("Owner", tt.field, NewImportTracker())
			assert.Equal(t, tt.expected, renderExpr(t, prop.Value))
		})
	}
}

func TestTranslateField_CarriesDoc(t *testing.T) {
	tr := NewTranslator(&schema.Schema{}, zerolog.Nop())
	field := str("name")
	field.Doc = "Display name"

	prop := tr.TranslateField("User", field, NewImportTracker())
	assert.Equal(t, "Display name", prop.Doc)
}

func TestTranslateObject_SortsFields(t *testing.T) {
	// Test: fields are emitted in name order regardless of source order,
	// and the source declaration is left untouched
	obj := schema.ObjectType{
		Name: "User",
		Kind: schema.DeclModel,
		Fields: []schema.Field{
			str("name"),
			builtin("id", schema.BuiltinInt),
			str("email"),
		},
	}
	tr := NewTranslator(&schema.Schema{Models: []schema.ObjectType{obj}}, zerolog.Nop())

	class := tr.TranslateObject(obj, NewImportTracker())
	require.NotNil(t, class)
	assert.Equal(t, "User", class.Name)
	assert.True(t, class.Export)

	call, ok := class.Extends.(*ast.Call)
	require.True(t, ok)
	require.Len(t, call.Args, 2)
	assert.Equal(t, &ast.StringLit{Value: "User"}, call.Args[0])

	fields, ok := call.Args[1].(*ast.ObjectLit)
	require.True(t, ok)
	assert.True(t, fields.Multiline)

	var names []string
	for _, p := range fields.Props {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"email", "id", "name"}, names)
	assert.Equal(t, "name", obj.Fields[0].Name)
}

func TestTranslateObject_WithoutExport(t *testing.T) {
	obj := schema.ObjectType{Name: "Point", Kind: schema.DeclTypeDef}
	tr := NewTranslator(&schema.Schema{TypeDefs: []schema.ObjectType{obj}}, zerolog.Nop()).WithExport(false)

	assert.False(t, tr.TranslateObject(obj, NewImportTracker()).Export)
	assert.False(t, tr.TranslateEnum(schema.EnumType{Name: "E"}).Export)
}

func TestTranslateEnum_KeepsSourceOrder(t *testing.T) {
	// Test: enum values are not sorted
	enum := schema.EnumType{
		Name: "Color",
		Values: []schema.EnumValue{
			{Name: "RED"},
			{Name: "GREEN"},
			{Name: "BLUE"},
		},
	}
	tr := NewTranslator(&schema.Schema{Enums: []schema.EnumType{enum}}, zerolog.Nop())

	decl := tr.TranslateEnum(enum)
	assert.Equal(t, "Color", decl.Name)
	assert.Equal(t, `Schema.Literal("RED", "GREEN", "BLUE")`, renderExpr(t, decl.Value))
}
