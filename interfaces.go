package hxconnect

import (
	"context"

	"github.com/a-h/templ"

	"github.com/pthm/hxconnect/lib/componentstate"
	"github.com/pthm/hxconnect/lib/state"
)

// Props is the mapping handed to a component. Values are compared one level
// deep by ShallowEqual.
type Props map[string]any

// Component is the unit a binding wraps. Render receives the merged props
// and should be pure.
//
// Example:
//
//	func (c *Counter) Render(ctx context.Context, props hxconnect.Props) templ.Component {
//	    return counterTemplate(props["count"].(int))
//	}
type Component interface {
	Render(ctx context.Context, props Props) templ.Component
}

// ComponentFunc adapts a function to Component.
type ComponentFunc func(ctx context.Context, props Props) templ.Component

// Render calls f.
func (f ComponentFunc) Render(ctx context.Context, props Props) templ.Component {
	return f(ctx, props)
}

// Namer is implemented by components that report their own display name.
type Namer interface {
	Name() string
}

// StaticsProvider is implemented by components carrying non-instance values
// (constants, default props, helpers) that a binding should expose as a
// drop-in replacement. Statics are copied when the component is wrapped.
type StaticsProvider interface {
	Statics() map[string]any
}

// RegistryProvider is implemented by stores that own a component-state
// registry. lib/store.Store implements it.
type RegistryProvider interface {
	ComponentRegistry() *componentstate.Registry
}

// Aliases for the store contract so callers rarely import lib/state.
type (
	State    = state.State
	Action   = state.Action
	Store    = state.Store
	Dispatch = state.Dispatch
	Listener = state.Listener
)

// Reducer computes a component's private slice. prev is nil on first use.
type Reducer = state.SliceReducer
