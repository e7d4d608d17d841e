package export

// Registry is the deduplicated, insertion-ordered set of normalized paths
// copied during one export session. It only grows; nothing is ever removed.
//
// Exactly one registry instance is shared by reference through a session's
// whole recursive call tree, so membership checks happen against the full
// set, never against a slice of it. The exporter is single-threaded, so no
// locking.
type Registry struct {
	order []string
	seen  map[string]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[string]struct{})}
}

// Add inserts a normalized path and reports whether it was newly added.
func (r *Registry) Add(path string) bool {
	if _, ok := r.seen[path]; ok {
		return false
	}
	r.seen[path] = struct{}{}
	r.order = append(r.order, path)
	return true
}

// Has reports membership of a normalized path.
func (r *Registry) Has(path string) bool {
	_, ok := r.seen[path]
	return ok
}

// Len returns the number of registered paths.
func (r *Registry) Len() int { return len(r.order) }

// Paths returns the registered paths in insertion order.
func (r *Registry) Paths() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
