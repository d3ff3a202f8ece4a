// Package componentstate keeps the reducers of component-level state.
//
// Each bound instance configured with a reducer owns one slice of the tree
// under RootKey, keyed by its instance id. The Registry folds every mounted
// reducer into a single SliceReducer (Reduce) that the host composes into its
// root reducer:
//
//	reg := componentstate.NewRegistry()
//	root := state.Combine(
//	    state.Slice{Key: "todos", Reducer: todos},
//	    state.Slice{Key: componentstate.RootKey, Reducer: reg.Reduce},
//	)
//
// A Registry belongs to exactly one store. Sharing one between stores mixes
// their component slices.
package componentstate

import (
	"errors"
	"fmt"
	"sync"

	"github.com/golang/glog"
	"github.com/oklog/ulid/v2"

	"github.com/pthm/hxconnect/lib/state"
)

// RootKey is the top-level key the registry's slice must be combined under.
const RootKey = "components"

// ActionUpdate is dispatched when an instance mounts its reducer so the new
// slice is computed before the instance first renders.
const ActionUpdate = "UPDATE_COMPONENT_STATE"

// ErrNotCombined indicates the store's root reducer does not carry the
// registry's slice under RootKey.
var ErrNotCombined = errors.New("componentstate: reducer not combined under \"" + RootKey + "\"")

// Registry holds the mounted reducers in insertion order.
// It is safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	order    []string
	reducers map[string]state.SliceReducer
	nextID   uint64
	epoch    ulid.ULID
}

// NewRegistry creates an empty registry with a fresh epoch.
func NewRegistry() *Registry {
	return &Registry{
		reducers: make(map[string]state.SliceReducer),
		epoch:    ulid.Make(),
	}
}

// Epoch identifies this registry's lifetime. Ids handed out by Allocate are
// only meaningful within one epoch.
func (r *Registry) Epoch() ulid.ULID {
	return r.epoch
}

// Allocate returns a new instance id of the form component-<name>-<n>.
//
// Ids are monotonic per registry and are NOT stable across remounts or store
// lifetimes. They must not be used where state has to be replayed
// deterministically; supply a stable key instead.
func (r *Registry) Allocate(name string) string {
	r.mu.Lock()
	n := r.nextID
	r.nextID++
	r.mu.Unlock()
	return fmt.Sprintf("component-%s-%d", name, n)
}

// Mount registers reducer under id. An existing reducer for id is replaced
// without error, which is what hot reloading relies on.
func (r *Registry) Mount(id string, reducer state.SliceReducer) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reducers[id]; !exists {
		r.order = append(r.order, id)
	}
	r.reducers[id] = reducer
	glog.V(2).Infof("[componentstate]mount %s\n", id)
}

// Unmount removes the reducer for id. Unknown ids are ignored.
func (r *Registry) Unmount(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.reducers[id]; !exists {
		return
	}
	delete(r.reducers, id)
	for i, o := range r.order {
		if o == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	glog.V(2).Infof("[componentstate]unmount %s\n", id)
}

// Mounted reports whether a reducer is registered for id.
func (r *Registry) Mounted(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.reducers[id]
	return ok
}

// IDs returns the mounted ids in mount order.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, len(r.order))
	copy(ids, r.order)
	return ids
}

// Len returns the number of mounted reducers.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
