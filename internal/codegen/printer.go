package codegen

import "github.com/okra-platform/effectschema/internal/codegen/ast"

// Printer is the interface that all target-language printers must implement
type Printer interface {
	// Print serializes one file's syntax tree to source text
	Print(file *ast.File) ([]byte, error)

	// Language returns the name of the target language (e.g., "typescript")
	Language() string

	// FileExtension returns the file extension for generated files (e.g., ".ts")
	FileExtension() string
}

// GeneratedHeader is written at the top of every generated file
const GeneratedHeader = "Code generated by effectschema. DO NOT EDIT."
