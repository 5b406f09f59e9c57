package codegen

import (
	"github.com/okra-platform/effectschema/internal/codegen/typescript"
)

// DefaultRegistry is the global registry instance with pre-registered printers
var DefaultRegistry = NewRegistry()

func init() {
	DefaultRegistry.Register("typescript", func() Printer {
		return typescript.NewPrinter(GeneratedHeader)
	})
	DefaultRegistry.Register("ts", func() Printer {
		return typescript.NewPrinter(GeneratedHeader)
	})

	// Plain ES modules: no type syntax, explicit .js import extensions
	DefaultRegistry.Register("javascript", func() Printer {
		return typescript.NewPrinter(GeneratedHeader).WithTypes(false)
	})
	DefaultRegistry.Register("js", func() Printer {
		return typescript.NewPrinter(GeneratedHeader).WithTypes(false)
	})
}
