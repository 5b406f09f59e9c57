// Package effect translates schema declarations into syntax trees that
// declare Effect Schema classes and literal unions.
package effect

import (
	"fmt"

	"github.com/okra-platform/effectschema/internal/codegen/ast"
	"github.com/okra-platform/effectschema/internal/schema"
)

const (
	// SchemaIdent is the namespace every schema constructor hangs off
	SchemaIdent = "Schema"

	// SchemaModule is the package exporting SchemaIdent
	SchemaModule = "effect"

	// CommonModule is the support bundle path relative to a generated model file
	CommonModule = "../common/index"
)

// auxiliaryScalars are builtins whose schema lives in the support bundle
var auxiliaryScalars = map[schema.BuiltinType]string{
	schema.BuiltinDecimal: "Decimal",
	schema.BuiltinBytes:   "Bytes",
}

// AuxiliarySymbol returns the support bundle export for a builtin, if it has one
func AuxiliarySymbol(t schema.BuiltinType) (string, bool) {
	name, ok := auxiliaryScalars[t]
	return name, ok
}

// MapBuiltin maps a builtin scalar to its Schema expression. Decimal and Bytes
// are not handled here; passing them is a programming error.
func MapBuiltin(t schema.BuiltinType) ast.Expr {
	switch t {
	case schema.BuiltinInt:
		return ast.Sel(SchemaIdent, "Int")
	case schema.BuiltinFloat:
		return ast.Sel(SchemaIdent, "Number")
	case schema.BuiltinBigInt:
		return ast.Sel(SchemaIdent, "BigInt")
	case schema.BuiltinBoolean:
		return ast.Sel(SchemaIdent, "Boolean")
	case schema.BuiltinString:
		return ast.Sel(SchemaIdent, "String")
	case schema.BuiltinDateTime:
		return ast.Sel(SchemaIdent, "DateTimeUtc")
	case schema.BuiltinJSON:
		return ast.Sel(SchemaIdent, "Object")
	}
	panic(fmt.Sprintf("effect: no builtin mapping for %q", t))
}

// unknownType is the placeholder for fields whose type cannot be resolved
func unknownType() ast.Expr {
	return ast.Sel(SchemaIdent, "Unknown")
}

func arrayOf(item ast.Expr) ast.Expr {
	return ast.CallOf(ast.Sel(SchemaIdent, "Array"), item)
}

func suspend(name string) ast.Expr {
	return ast.CallOf(ast.Sel(SchemaIdent, "suspend"), &ast.DeferredRef{Name: name})
}
