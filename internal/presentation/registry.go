package presentation

import (
	"slices"
	"sync"
)

// Registry tracks the widgets currently mounted for one result view.
// Every remount unmounts the previous set first, so no widget outlives the
// result it was planned for.
type Registry struct {
	mu      sync.Mutex
	mounted map[string]Widget
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{mounted: make(map[string]Widget)}
}

// Remount replaces the mounted set with widgets and returns how many were
// mounted. A key already mounted in this pass is skipped.
func (r *Registry) Remount(widgets []Widget) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.unmountLocked()
	for _, w := range widgets {
		if _, dup := r.mounted[w.Key]; dup {
			continue
		}
		r.mounted[w.Key] = w
		r.order = append(r.order, w.Key)
	}
	return len(r.order)
}

// Unmount removes every mounted widget.
func (r *Registry) Unmount() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.unmountLocked()
}

func (r *Registry) unmountLocked() {
	clear(r.mounted)
	r.order = r.order[:0]
}

// Mounted returns the mounted widgets in mount order.
func (r *Registry) Mounted() []Widget {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Widget, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.mounted[k])
	}
	return out
}

// IsMounted reports whether a widget with key is mounted.
func (r *Registry) IsMounted(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Contains(r.order, key)
}
