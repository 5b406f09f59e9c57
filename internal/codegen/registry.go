package codegen

import (
	"fmt"
	"sort"
)

// Registry manages available printers
type Registry struct {
	printers map[string]func() Printer
}

// NewRegistry creates a new printer registry
func NewRegistry() *Registry {
	return &Registry{
		printers: make(map[string]func() Printer),
	}
}

// Register adds a new printer factory to the registry
func (r *Registry) Register(language string, factory func() Printer) {
	r.printers[language] = factory
}

// Get returns a printer for the specified language
func (r *Registry) Get(language string) (Printer, error) {
	factory, exists := r.printers[language]
	if !exists {
		return nil, fmt.Errorf("unsupported target: %s", language)
	}

	return factory(), nil
}

// Has reports whether a printer is registered for the language
func (r *Registry) Has(language string) bool {
	_, exists := r.printers[language]
	return exists
}

// Languages returns the registered languages in sorted order
func (r *Registry) Languages() []string {
	languages := make([]string, 0, len(r.printers))
	for lang := range r.printers {
		languages = append(languages, lang)
	}
	sort.Strings(languages)
	return languages
}
