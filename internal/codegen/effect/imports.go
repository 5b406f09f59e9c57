package effect

import (
	"sort"
)

// ImportKind distinguishes what an import points at
type ImportKind int

const (
	// ImportAuxiliary is a symbol exported by the support bundle
	ImportAuxiliary ImportKind = iota
	// ImportSibling is another generated declaration
	ImportSibling
)

// Import is a dependency of one generated file
type Import struct {
	Kind ImportKind
	Name string
}

// ImportTracker records the imports one file needs. A tracker belongs to a
// single declaration's translation and is not safe for concurrent use.
type ImportTracker struct {
	seen map[Import]struct{}
}

// NewImportTracker creates an empty tracker
func NewImportTracker() *ImportTracker {
	return &ImportTracker{seen: make(map[Import]struct{})}
}

// Record adds an import. Recording the same import twice has no effect.
func (t *ImportTracker) Record(imp Import) {
	t.seen[imp] = struct{}{}
}

// Snapshot returns the recorded imports ordered by kind, then name
func (t *ImportTracker) Snapshot() []Import {
	out := make([]Import, 0, len(t.seen))
	for imp := range t.seen {
		out = append(out, imp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Kind != out[j].Kind {
			return out[i].Kind < out[j].Kind
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// Names returns the sorted names of recorded imports of one kind
func (t *ImportTracker) Names(kind ImportKind) []string {
	var names []string
	for _, imp := range t.Snapshot() {
		if imp.Kind == kind {
			names = append(names, imp.Name)
		}
	}
	return names
}
