package componentstate

import (
	"fmt"

	"github.com/pthm/hxconnect/lib/state"
)

type entry struct {
	id      string
	reducer state.SliceReducer
}

func (r *Registry) entries() []entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]entry, len(r.order))
	for i, id := range r.order {
		out[i] = entry{id: id, reducer: r.reducers[id]}
	}
	return out
}

// Reduce is the SliceReducer for RootKey. Every mounted reducer receives its
// own previous slice (nil when it has none) and the result always is a new
// map, even when no reducer changed anything. Reducers run in mount order
// outside the registry lock.
func (r *Registry) Reduce(prev any, action state.Action) any {
	prevSlices := slicesOf(prev)
	entries := r.entries()

	next := make(map[string]any, len(entries))
	for _, e := range entries {
		next[e.id] = e.reducer(prevSlices[e.id], action)
	}
	return next
}

// Select returns the slice of instance id from a root snapshot, or nil when
// id has none. It fails with ErrNotCombined when root has no RootKey
// mapping, which means the host wiring is incomplete.
func Select(root state.State, id string) (any, error) {
	raw, ok := root[RootKey]
	if !ok || raw == nil {
		return nil, ErrNotCombined
	}
	slices := slicesOf(raw)
	if slices == nil {
		return nil, fmt.Errorf("%w: found %T", ErrNotCombined, raw)
	}
	return slices[id], nil
}

func slicesOf(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case state.State:
		return m
	}
	return nil
}
