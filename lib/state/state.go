// Package state defines the contract between bindings and the store they
// observe: immutable snapshots, actions, reducers and the Store interface.
//
// A snapshot is never mutated once a reducer has returned it. A reducer that
// changes anything returns a new State; a reducer that changes nothing
// returns its input unchanged. Change detection downstream relies only on
// snapshot identity (see Same), never on deep comparison.
package state

// ActionInit is dispatched once by stores when they are created so reducers
// can seed their initial slices.
const ActionInit = "@@hxconnect/INIT"

// State is an immutable snapshot of the store's tree.
type State map[string]any

// Action describes a state transition.
type Action struct {
	Type    string
	Payload any
}

// Reducer computes the next root snapshot.
type Reducer func(prev State, action Action) State

// SliceReducer computes the next value of one slice of the tree.
// prev is nil when the slice has never been computed.
type SliceReducer func(prev any, action Action) any

// Dispatch sends an action to the store.
type Dispatch func(action Action)

// Listener is notified synchronously after every dispatch.
type Listener func()

// Store is the state container a binding observes.
type Store interface {
	State() State
	Dispatch(action Action)
	// Subscribe registers l and returns a function that removes it.
	// The returned function is safe to call more than once.
	Subscribe(l Listener) (unsubscribe func())
}

// Same reports whether a and b are the same snapshot.
func Same(a, b State) bool {
	return Identical(a, b)
}
