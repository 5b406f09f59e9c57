package schema

// Schema is the root of a parsed data model
type Schema struct {
	Models   []ObjectType `json:"models"`
	TypeDefs []ObjectType `json:"typeDefs"`
	Enums    []EnumType   `json:"enums"`
}

// DeclKind identifies which kind of declaration a name refers to
type DeclKind int

const (
	DeclUnknown DeclKind = iota
	DeclModel
	DeclTypeDef
	DeclEnum
)

func (k DeclKind) String() string {
	switch k {
	case DeclModel:
		return "model"
	case DeclTypeDef:
		return "type"
	case DeclEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// ObjectType represents a "model" or "type" block
type ObjectType struct {
	Name   string   `json:"name"`
	Doc    string   `json:"doc"`
	Kind   DeclKind `json:"kind"`
	Fields []Field  `json:"fields"`
}

// Field represents a field inside a model or type-def
type Field struct {
	Name       string      `json:"name"`
	Doc        string      `json:"doc"`
	Type       TypeRef     `json:"type"`
	Attributes []Attribute `json:"attributes"`
}

// TypeRef describes the type of a field. Builtin is set when Name is one of the
// builtin scalars; otherwise Name refers to another declaration.
type TypeRef struct {
	Name     string      `json:"name"`
	Builtin  BuiltinType `json:"builtin,omitempty"`
	Array    bool        `json:"array"`
	Optional bool        `json:"optional"`
}

// IsBuiltin reports whether the type is a builtin scalar
func (t TypeRef) IsBuiltin() bool {
	return t.Builtin != ""
}

// EnumType represents an enum definition
type EnumType struct {
	Name   string      `json:"name"`
	Doc    string      `json:"doc"`
	Values []EnumValue `json:"values"`
}

// EnumValue represents a single value inside an enum
type EnumValue struct {
	Name string `json:"name"`
	Doc  string `json:"doc"`
}

// Attribute represents a validation or transform directive attached to a field
// (e.g. @length(min: 3), @trim)
type Attribute struct {
	Name string           `json:"name"`
	Args map[string]Value `json:"args"`
}

// Arg returns the named argument and whether it was present. Presence is what
// matters: a literal 0 is a valid argument.
func (a Attribute) Arg(name string) (Value, bool) {
	v, ok := a.Args[name]
	return v, ok
}

// ValueKind is the literal kind of an attribute argument
type ValueKind int

const (
	ValueString ValueKind = iota
	ValueInt
	ValueFloat
	ValueBoolean
	ValueEnum
)

// Value is a literal attribute argument. Raw holds the literal text: the
// unquoted content for strings, the source digits for numbers.
type Value struct {
	Kind ValueKind `json:"kind"`
	Raw  string    `json:"raw"`
}

// IsNumber reports whether the value is an integer or float literal
func (v Value) IsNumber() bool {
	return v.Kind == ValueInt || v.Kind == ValueFloat
}

// Resolve returns the kind of the declaration with the given name
func (s *Schema) Resolve(name string) DeclKind {
	for _, m := range s.Models {
		if m.Name == name {
			return DeclModel
		}
	}
	for _, t := range s.TypeDefs {
		if t.Name == name {
			return DeclTypeDef
		}
	}
	for _, e := range s.Enums {
		if e.Name == name {
			return DeclEnum
		}
	}
	return DeclUnknown
}

// Names returns the name of every declaration: models, type-defs, then enums
func (s *Schema) Names() []string {
	names := make([]string, 0, len(s.Models)+len(s.TypeDefs)+len(s.Enums))
	for _, obj := range s.Objects() {
		names = append(names, obj.Name)
	}
	for _, e := range s.Enums {
		names = append(names, e.Name)
	}
	return names
}

// Objects returns models followed by type-defs
func (s *Schema) Objects() []ObjectType {
	out := make([]ObjectType, 0, len(s.Models)+len(s.TypeDefs))
	out = append(out, s.Models...)
	out = append(out, s.TypeDefs...)
	return out
}
