// Package hxconnect binds templ components to a centralized store of
// immutable state snapshots.
//
// Connect wraps a component into a Binding. Each usage of the binding is an
// Instance that subscribes to the store, derives props through mapping
// functions and re-renders the wrapped component only when those props
// actually changed.
//
// # Mapping Functions
//
// Three functions produce the props a wrapped component sees:
//
//	stateProps    = mapState(state[, own])
//	dispatchProps = mapDispatch(dispatch[, own])
//	mergedProps   = merge(stateProps, dispatchProps, own)
//
// Whether a mapper reads own props is declared by the option used to
// register it (WithMapState vs WithMapStateProps), never inferred. Mappers
// that read own props are recomputed whenever own props change; the others
// only when their inputs change.
//
// # Change Detection
//
// Store snapshots are compared by identity only: a store must return a new
// State whenever anything changed and the same State otherwise. Derived
// props are compared with ShallowEqual. When nothing changed, Render returns
// the previous *Element pointer so the host can skip the subtree.
//
// Impure() turns all of this off: every notification and every update
// recomputes and re-renders.
//
// # Component-Level State
//
// WithReducer gives every instance a private slice of the store, kept by a
// componentstate.Registry under the "components" key and exposed to the
// wrapped component as the "state" prop:
//
//	st, _ := store.NewWithComponents()
//	toggle := hxconnect.Connect(
//	    hxconnect.WithMapState(func(hxconnect.State) hxconnect.Props { return hxconnect.Props{} }),
//	    hxconnect.WithReducer(func(prev any, a hxconnect.Action) any {
//	        on, _ := prev.(bool)
//	        if a.Type == "TOGGLE" {
//	            return !on
//	        }
//	        return on
//	    }),
//	)(ToggleView)
//
// Instance ids come from the registry and are not stable across remounts.
// Code that replays state deterministically must supply its own ids with
// WithInstanceKey.
//
// # Hosting
//
// An Instance follows the lifecycle New, Render, Mount, then any number of
// ReceiveProps / ShouldUpdate / WillUpdate / Render passes, and Unmount.
// MountRoot runs that loop for a single root instance; adapters/echo serves
// a Root over HTTP.
//
// # Errors
//
// Missing wiring (no store, no registry, root reducer not combined under
// "components", a mapper producing the reserved "state" prop) is reported as
// a configuration error. A mapper or merge function returning nil is a
// contract violation. See IsConfigurationError and IsContractViolation.
package hxconnect
