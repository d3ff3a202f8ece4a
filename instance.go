package hxconnect

import (
	"context"
	"fmt"
	"maps"
	"sync/atomic"

	"github.com/golang/glog"

	"github.com/pthm/hxconnect/lib/componentstate"
	"github.com/pthm/hxconnect/lib/state"
)

// unregisteredIDs numbers instances that have no component registry.
var unregisteredIDs atomic.Uint64

// Instance is one live usage of a Binding.
//
// The host drives it through its lifecycle:
//
//	inst, err := binding.New(ctx, own)   // construct
//	el, err := inst.Render()             // first render
//	inst.Mount()                         // subscribe
//	inst.ReceiveProps(next)              // parent re-rendered
//	if inst.ShouldUpdate() {
//	    inst.WillUpdate()
//	    el, err = inst.Render()
//	}
//	inst.Unmount()
//
// An Instance is not safe for concurrent use. Store notifications arrive on
// the dispatching goroutine and must be serialized with the host's own calls.
type Instance struct {
	binding  *Binding
	store    Store
	registry *componentstate.Registry
	props    Props
	id       string
	version  uint64

	storeState  State
	unsubscribe func()
	onUpdate    func()

	stateProps        Props
	dispatchProps     Props
	mergedProps       Props
	rendered          *Element
	ownPropsChanged   bool
	storeStateChanged bool
}

// New constructs an instance with the given own props.
//
// The store comes from the "store" own prop, else from ctx (WithStore).
// When the binding has a reducer, the instance mounts it and dispatches
// componentstate.ActionUpdate so its slice exists before the first render.
func (b *Binding) New(ctx context.Context, own Props) (*Instance, error) {
	s := resolveStore(ctx, own)
	if s == nil {
		return nil, fmt.Errorf("%w: pass %q as a prop to %s or provide it with WithStore",
			ErrStoreNotFound, StorePropName, b.DisplayName())
	}

	in := &Instance{
		binding: b,
		store:   s,
		props:   own,
		version: b.version.Load(),
	}

	if b.opts.reducer != nil {
		in.registry = resolveRegistry(ctx, s)
		if in.registry == nil {
			return nil, fmt.Errorf("%w: %s has component level state", ErrRegistryNotFound, b.DisplayName())
		}
		in.registry.Mount(in.ID(), b.opts.reducer)
		s.Dispatch(state.Action{Type: componentstate.ActionUpdate})
	}

	in.storeState = s.State()
	in.clearCache()
	return in, nil
}

// MustNew is like New but panics on error.
func (b *Binding) MustNew(ctx context.Context, own Props) *Instance {
	in, err := b.New(ctx, own)
	if err != nil {
		panic(err)
	}
	return in
}

// ID returns the instance id, allocating it on first use.
//
// Allocated ids are not deterministic across remounts or store lifetimes;
// bindings that need replayable component state use WithInstanceKey.
func (in *Instance) ID() string {
	if in.id != "" {
		return in.id
	}
	if fn := in.binding.opts.instanceKey; fn != nil {
		in.id = fn(in.props)
	}
	if in.id == "" {
		if in.registry != nil {
			in.id = in.registry.Allocate(in.binding.name)
		} else {
			in.id = fmt.Sprintf("component-%s-u%d", in.binding.name, unregisteredIDs.Add(1))
		}
	}
	return in.id
}

// Binding returns the binding this instance was created from.
func (in *Instance) Binding() *Binding {
	return in.binding
}

// Props returns the current own props.
func (in *Instance) Props() Props {
	return in.props
}

// Store returns the store the instance observes.
func (in *Instance) Store() Store {
	return in.store
}

// OnUpdate sets the callback the instance uses to ask the host for a new
// render pass after a relevant store change.
func (in *Instance) OnUpdate(fn func()) {
	in.onUpdate = fn
}

// Mount subscribes to the store.
func (in *Instance) Mount() {
	in.trySubscribe()
}

// Unmount unsubscribes, removes the instance's reducer and drops every
// cached value. It is idempotent and also tears down an instance that was
// never mounted.
func (in *Instance) Unmount() {
	in.tryUnsubscribe()
	if in.binding.opts.reducer != nil && in.registry != nil {
		in.registry.Unmount(in.ID())
	}
	in.clearCache()
}

// Subscribed reports whether the instance is listening to the store.
func (in *Instance) Subscribed() bool {
	return in.unsubscribe != nil
}

// ReceiveProps replaces own props. They count as changed unless the binding
// is pure and next is shallow-equal to the current props.
func (in *Instance) ReceiveProps(next Props) {
	if !in.binding.pure || !ShallowEqual(next, in.props) {
		in.ownPropsChanged = true
	}
	in.props = next
}

// ShouldUpdate reports whether a render pass may produce new output.
func (in *Instance) ShouldUpdate() bool {
	return !in.binding.pure || in.ownPropsChanged || in.storeStateChanged
}

// WillUpdate runs before a render pass. After Binding.Reload it resubscribes
// and clears the cache.
func (in *Instance) WillUpdate() {
	v := in.binding.version.Load()
	if in.version == v {
		return
	}
	in.version = v
	if glog.V(2) {
		glog.Infof("[connect]%s reload\n", in.ID())
	}
	in.trySubscribe()
	in.clearCache()
}

// WrappedInstance returns the last rendered element.
func (in *Instance) WrappedInstance() (*Element, error) {
	if !in.binding.opts.withRef {
		return nil, ErrRefDisabled
	}
	return in.rendered, nil
}

// Render computes props and returns the element to show.
//
// When neither the store snapshot nor own props changed in a way the
// mappers depend on, and the merged props are unchanged, the previous
// element is returned as is. Hosts can compare elements by pointer to skip
// rendering the subtree. A failed pass drops the whole cache, so the next
// pass recomputes everything.
func (in *Instance) Render() (*Element, error) {
	b := in.binding
	ownChanged := in.ownPropsChanged
	storeChanged := in.storeStateChanged
	rendered := in.rendered

	updateState, updateDispatch := true, true
	if b.pure && rendered != nil {
		updateState = storeChanged || (ownChanged && b.opts.stateUsesOwn)
		updateDispatch = ownChanged && b.opts.dispatchUsesOwn
	}

	stateChanged, dispatchChanged := false, false
	var err error
	if updateState {
		if stateChanged, err = in.updateStateProps(); err != nil {
			in.clearCache()
			return nil, err
		}
	}
	if updateDispatch {
		if dispatchChanged, err = in.updateDispatchProps(); err != nil {
			in.clearCache()
			return nil, err
		}
	}

	if stateChanged || dispatchChanged || ownChanged {
		if err := in.updateMergedProps(); err != nil {
			in.clearCache()
			return nil, err
		}
	} else if rendered != nil {
		in.ownPropsChanged, in.storeStateChanged = false, false
		return rendered, nil
	}

	in.rendered = &Element{component: b.wrapped, props: in.mergedProps}
	in.ownPropsChanged, in.storeStateChanged = false, false
	return in.rendered, nil
}

func (in *Instance) computeStateProps() (Props, error) {
	b := in.binding
	s := in.store.State()
	props := b.opts.mapState(s, in.props)
	if props == nil {
		return nil, fmt.Errorf("%w: mapState of %s returned nil", ErrNotMapping, b.DisplayName())
	}

	if b.opts.reducer == nil {
		return props, nil
	}

	if _, taken := props[StatePropName]; taken {
		return nil, fmt.Errorf("%w (%s)", ErrReservedStateKey, b.DisplayName())
	}
	own, err := componentstate.Select(s, in.ID())
	if err != nil {
		return nil, err
	}
	withState := maps.Clone(props)
	withState[StatePropName] = own
	return withState, nil
}

func (in *Instance) computeDispatchProps() (Props, error) {
	props := in.binding.opts.mapDispatch(in.store.Dispatch, in.props)
	if props == nil {
		return nil, fmt.Errorf("%w: mapDispatch of %s returned nil", ErrNotMapping, in.binding.DisplayName())
	}
	return props, nil
}

func (in *Instance) updateStateProps() (bool, error) {
	next, err := in.computeStateProps()
	if err != nil {
		return false, err
	}
	if in.stateProps != nil && ShallowEqual(next, in.stateProps) {
		return false, nil
	}
	in.stateProps = next
	return true, nil
}

func (in *Instance) updateDispatchProps() (bool, error) {
	next, err := in.computeDispatchProps()
	if err != nil {
		return false, err
	}
	if in.dispatchProps != nil && ShallowEqual(next, in.dispatchProps) {
		return false, nil
	}
	in.dispatchProps = next
	return true, nil
}

func (in *Instance) updateMergedProps() error {
	merged := in.binding.opts.merge(in.stateProps, in.dispatchProps, in.props)
	if merged == nil {
		return fmt.Errorf("%w: merge of %s returned nil", ErrNotMapping, in.binding.DisplayName())
	}
	in.mergedProps = merged
	return nil
}

func (in *Instance) trySubscribe() {
	if !in.binding.needsStore || in.unsubscribe != nil {
		return
	}
	in.unsubscribe = in.store.Subscribe(in.handleChange)
	if glog.V(2) {
		glog.Infof("[connect]%s subscribed\n", in.ID())
	}
	in.handleChange()

	if r := in.binding.opts.reducer; r != nil && in.registry != nil {
		in.registry.Mount(in.ID(), r)
	}
}

func (in *Instance) tryUnsubscribe() {
	if in.unsubscribe == nil {
		return
	}
	in.unsubscribe()
	in.unsubscribe = nil
	if glog.V(2) {
		glog.Infof("[connect]%s unsubscribed\n", in.ID())
	}
}

func (in *Instance) handleChange() {
	if in.unsubscribe == nil {
		return
	}

	prev := in.storeState
	next := in.store.State()
	if in.binding.pure && state.Same(prev, next) {
		return
	}

	in.storeStateChanged = true
	in.storeState = next
	if in.onUpdate != nil {
		in.onUpdate()
	}
}

func (in *Instance) clearCache() {
	in.stateProps = nil
	in.dispatchProps = nil
	in.mergedProps = nil
	in.rendered = nil
	in.ownPropsChanged = true
	in.storeStateChanged = true
}
