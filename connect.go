package hxconnect

import (
	"maps"
	"reflect"
	"sync/atomic"

	"github.com/golang/glog"
)

// StatePropName is the state prop that carries an instance's component-level
// state when the binding has a reducer.
const StatePropName = "state"

// DispatchPropName is the prop the default dispatch mapper provides.
const DispatchPropName = "dispatch"

// Mapping function shapes. The *Own variants receive the instance's own props
// and are recomputed when those change.
type (
	MapStateFunc       func(s State) Props
	MapStateOwnFunc    func(s State, own Props) Props
	MapDispatchFunc    func(dispatch Dispatch) Props
	MapDispatchOwnFunc func(dispatch Dispatch, own Props) Props
	MergeFunc          func(stateProps, dispatchProps, own Props) Props
	InstanceKeyFunc    func(own Props) string
)

// versions tracks binding generations for hot reloading.
var versions atomic.Uint64

// Option configures Connect.
type Option func(*options)

type options struct {
	mapState        MapStateOwnFunc
	stateUsesOwn    bool
	mapDispatch     MapDispatchOwnFunc
	dispatchUsesOwn bool
	merge           MergeFunc
	reducer         Reducer
	impure          bool
	withRef         bool
	instanceKey     InstanceKeyFunc
}

// WithMapState maps store state to props. The binding subscribes to the
// store. Changes to own props alone do not recompute fn.
func WithMapState(fn MapStateFunc) Option {
	return func(o *options) {
		if fn == nil {
			return
		}
		o.mapState = func(s State, _ Props) Props { return fn(s) }
		o.stateUsesOwn = false
	}
}

// WithMapStateProps is WithMapState for mappers that read own props.
// fn is recomputed whenever own props change.
func WithMapStateProps(fn MapStateOwnFunc) Option {
	return func(o *options) {
		o.mapState = fn
		o.stateUsesOwn = true
	}
}

// WithMapDispatch maps the store's dispatch to props, once per cache
// lifetime.
func WithMapDispatch(fn MapDispatchFunc) Option {
	return func(o *options) {
		if fn == nil {
			return
		}
		o.mapDispatch = func(d Dispatch, _ Props) Props { return fn(d) }
		o.dispatchUsesOwn = false
	}
}

// WithMapDispatchProps is WithMapDispatch for mappers that read own props.
func WithMapDispatchProps(fn MapDispatchOwnFunc) Option {
	return func(o *options) {
		o.mapDispatch = fn
		o.dispatchUsesOwn = true
	}
}

// WithActionCreators exposes each creator as a prop that builds and
// dispatches its action. See BindActionCreators.
func WithActionCreators(creators map[string]ActionCreator) Option {
	return WithMapDispatch(func(d Dispatch) Props {
		return BindActionCreators(creators, d)
	})
}

// WithMerge combines state, dispatch and own props. The default overlays
// own, then state, then dispatch props.
func WithMerge(fn MergeFunc) Option {
	return func(o *options) {
		o.merge = fn
	}
}

// WithReducer gives every instance a private slice of state reduced by fn
// and exposed as the "state" prop. After store.Restore, integer slices are
// int again but floats are float64, lists []any and maps map[string]any, so
// fn must accept those decoded shapes.
func WithReducer(fn Reducer) Option {
	return func(o *options) {
		o.reducer = fn
	}
}

// Impure disables memoization: every notification and every update
// recomputes all props and re-renders.
func Impure() Option {
	return func(o *options) {
		o.impure = true
	}
}

// WithRef keeps the rendered element reachable through WrappedInstance.
func WithRef() Option {
	return func(o *options) {
		o.withRef = true
	}
}

// WithInstanceKey derives instance ids from own props instead of the
// registry allocator. Use it when component-level state must survive
// remounts or be replayed deterministically.
func WithInstanceKey(fn InstanceKeyFunc) Option {
	return func(o *options) {
		o.instanceKey = fn
	}
}

// Binding connects a wrapped component to a store. Create instances with New.
type Binding struct {
	wrapped    Component
	name       string
	statics    map[string]any
	opts       options
	pure       bool
	needsStore bool
	version    atomic.Uint64
}

// Connect returns a function that wraps a component into a Binding.
//
//	counter := hxconnect.Connect(
//	    hxconnect.WithMapState(func(s hxconnect.State) hxconnect.Props {
//	        return hxconnect.Props{"count": s["count"]}
//	    }),
//	)(CounterView)
func Connect(opts ...Option) func(Component) *Binding {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	needsStore := o.mapState != nil || o.reducer != nil
	if o.mapState == nil {
		o.mapState = defaultMapState
	}
	if o.mapDispatch == nil {
		o.mapDispatch = defaultMapDispatch
	}
	if o.merge == nil {
		o.merge = defaultMerge
	}

	return func(wrapped Component) *Binding {
		b := &Binding{
			wrapped:    wrapped,
			name:       displayName(wrapped),
			statics:    hoistStatics(wrapped),
			opts:       o,
			pure:       !o.impure,
			needsStore: needsStore,
		}
		b.version.Store(versions.Add(1))
		return b
	}
}

// WrappedComponent returns the component this binding renders.
func (b *Binding) WrappedComponent() Component {
	return b.wrapped
}

// DisplayName returns "Connect(<name>)".
func (b *Binding) DisplayName() string {
	return "Connect(" + b.name + ")"
}

// Statics returns a copy of the statics hoisted from the wrapped component.
func (b *Binding) Statics() map[string]any {
	return maps.Clone(b.statics)
}

// Static returns one hoisted static.
func (b *Binding) Static(name string) (any, bool) {
	v, ok := b.statics[name]
	return v, ok
}

// Reload moves the binding to a new version. Each instance resubscribes
// and drops its cache on its next WillUpdate.
func (b *Binding) Reload() {
	b.version.Store(versions.Add(1))
	glog.Warningf("[connect]%s reloaded\n", b.DisplayName())
}

func defaultMapState(State, Props) Props {
	return Props{}
}

func defaultMapDispatch(d Dispatch, _ Props) Props {
	return Props{DispatchPropName: d}
}

func defaultMerge(stateProps, dispatchProps, own Props) Props {
	merged := make(Props, len(own)+len(stateProps)+len(dispatchProps))
	maps.Copy(merged, own)
	maps.Copy(merged, stateProps)
	maps.Copy(merged, dispatchProps)
	return merged
}

func displayName(c Component) string {
	if n, ok := c.(Namer); ok && n.Name() != "" {
		return n.Name()
	}
	if c == nil {
		return "Component"
	}
	t := reflect.TypeOf(c)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Name() == "" || t.Name() == "ComponentFunc" {
		return "Component"
	}
	return t.Name()
}

// reservedStatics are binding-level names a wrapped component cannot
// override.
var reservedStatics = map[string]bool{
	"DisplayName":      true,
	"WrappedComponent": true,
}

func hoistStatics(c Component) map[string]any {
	out := map[string]any{}
	sp, ok := c.(StaticsProvider)
	if !ok {
		return out
	}
	for k, v := range sp.Statics() {
		if reservedStatics[k] {
			continue
		}
		out[k] = v
	}
	return out
}
