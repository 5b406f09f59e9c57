package schema

// BuiltinType is one of the closed set of scalar type tags
type BuiltinType string

const (
	BuiltinInt      BuiltinType = "Int"
	BuiltinFloat    BuiltinType = "Float"
	BuiltinBigInt   BuiltinType = "BigInt"
	BuiltinBoolean  BuiltinType = "Boolean"
	BuiltinString   BuiltinType = "String"
	BuiltinDateTime BuiltinType = "DateTime"
	BuiltinJSON     BuiltinType = "Json"
	BuiltinDecimal  BuiltinType = "Decimal"
	BuiltinBytes    BuiltinType = "Bytes"
)

// Builtins lists every builtin scalar in a stable order
var Builtins = []BuiltinType{
	BuiltinInt,
	BuiltinFloat,
	BuiltinBigInt,
	BuiltinBoolean,
	BuiltinString,
	BuiltinDateTime,
	BuiltinJSON,
	BuiltinDecimal,
	BuiltinBytes,
}

// scalarAliases maps GraphQL spellings onto builtin scalars
var scalarAliases = map[string]BuiltinType{
	"ID": BuiltinString,
}

// LookupBuiltin returns the builtin scalar for a type name, if any
func LookupBuiltin(name string) (BuiltinType, bool) {
	if alias, ok := scalarAliases[name]; ok {
		return alias, true
	}
	for _, b := range Builtins {
		if string(b) == name {
			return b, true
		}
	}
	return "", false
}

// IsNumeric reports whether comparisons against number literals apply to the scalar
func (b BuiltinType) IsNumeric() bool {
	return b == BuiltinInt || b == BuiltinFloat || b == BuiltinBigInt
}
