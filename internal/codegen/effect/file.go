package effect

import (
	"github.com/okra-platform/effectschema/internal/codegen/ast"
	"github.com/okra-platform/effectschema/internal/schema"
)

// AssembleFile builds the complete file for a model or type-def
func (t *Translator) AssembleFile(obj schema.ObjectType) *ast.File {
	imports := NewImportTracker()
	class := t.TranslateObject(obj, imports)

	stmts := importStmts(imports)
	stmts = append(stmts, class)

	return &ast.File{Name: obj.Name, Stmts: stmts}
}

// AssembleEnumFile builds the complete file for an enum. Enums have no
// fields, so the schema import is the only one.
func (t *Translator) AssembleEnumFile(enum schema.EnumType) *ast.File {
	stmts := importStmts(NewImportTracker())
	stmts = append(stmts, t.TranslateEnum(enum))

	return &ast.File{Name: enum.Name, Stmts: stmts}
}

func importStmts(imports *ImportTracker) []ast.Stmt {
	stmts := []ast.Stmt{
		&ast.ImportDecl{Names: []string{SchemaIdent}, From: SchemaModule},
	}

	if aux := imports.Names(ImportAuxiliary); len(aux) > 0 {
		stmts = append(stmts, &ast.ImportDecl{Names: aux, From: CommonModule})
	}

	for _, sibling := range imports.Names(ImportSibling) {
		stmts = append(stmts, &ast.ImportDecl{Names: []string{sibling}, From: SiblingPath(sibling)})
	}

	return stmts
}

// SiblingPath is the module path of another generated declaration
func SiblingPath(name string) string {
	return "./" + name
}
