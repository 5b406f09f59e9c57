package effect

import (
	"github.com/okra-platform/effectschema/internal/codegen/ast"
	"github.com/okra-platform/effectschema/internal/schema"
)

// TranslateField converts a field of owner into a property assignment,
// recording the imports it needs in imports
func (t *Translator) TranslateField(owner string, field schema.Field, imports *ImportTracker) ast.Property {
	expr := t.baseExpr(owner, field, imports)

	if field.Type.Array {
		expr = arrayOf(expr)
	}

	mods := make([]Modifier, 0, len(field.Attributes)+1)
	for _, attr := range field.Attributes {
		if mod, ok := MapAttribute(attr, field.Type.Builtin); ok {
			mods = append(mods, mod)
			continue
		}
		if ParseAttributeKind(attr.Name) != AttrUnknown {
			t.logger.Debug().
				Str("declaration", owner).
				Str("field", field.Name).
				Str("attribute", attr.Name).
				Msg("attribute does not apply to field type, skipping")
		}
	}
	if field.Type.Optional {
		mods = append(mods, optionalModifier())
	}
	sortModifiers(mods)

	if len(mods) > 0 {
		steps := make([]ast.Expr, len(mods))
		for i, mod := range mods {
			steps[i] = mod.Expr
		}
		expr = &ast.Pipe{Target: expr, Steps: steps}
	}

	return ast.Property{
		Name:  field.Name,
		Value: expr,
		Doc:   field.Doc,
	}
}

// baseExpr resolves the field's element type before array wrapping
func (t *Translator) baseExpr(owner string, field schema.Field, imports *ImportTracker) ast.Expr {
	ref := field.Type

	if ref.IsBuiltin() {
		if symbol, ok := AuxiliarySymbol(ref.Builtin); ok {
			imports.Record(Import{Kind: ImportAuxiliary, Name: symbol})
			return ast.Id(symbol)
		}
		return MapBuiltin(ref.Builtin)
	}

	switch t.kinds[ref.Name] {
	case schema.DeclEnum:
		imports.Record(Import{Kind: ImportSibling, Name: ref.Name})
		return ast.Id(ref.Name)

	case schema.DeclTypeDef:
		if ref.Name != owner {
			imports.Record(Import{Kind: ImportSibling, Name: ref.Name})
		}
		return suspend(ref.Name)

	default:
		t.logger.Debug().
			Str("declaration", owner).
			Str("field", field.Name).
			Str("type", ref.Name).
			Str("kind", t.kinds[ref.Name].String()).
			Msg("unresolved field type, using Schema.Unknown")
		return unknownType()
	}
}
