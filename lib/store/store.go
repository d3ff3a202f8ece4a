// Package store is a small in-memory implementation of state.Store.
//
// Reducers run under the store lock; listeners run after the lock is
// released, in subscription order, on the dispatching goroutine. A listener
// may dispatch again.
package store

import (
	"sync"

	"github.com/golang/glog"

	"github.com/pthm/hxconnect/lib/componentstate"
	"github.com/pthm/hxconnect/lib/state"
)

// Option configures a Store.
type Option func(*options)

type options struct {
	registry *componentstate.Registry
}

// WithComponentRegistry attaches the registry whose Reduce the root reducer
// combines under componentstate.RootKey. Bindings find it through
// ComponentRegistry.
func WithComponentRegistry(reg *componentstate.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

type subscription struct {
	id       uint64
	listener state.Listener
}

// Store holds the current snapshot and the subscribed listeners.
type Store struct {
	mu        sync.RWMutex
	reducer   state.Reducer
	current   state.State
	listeners []subscription
	nextSub   uint64
	registry  *componentstate.Registry
}

var _ state.Store = (*Store)(nil)

// New creates a store and dispatches state.ActionInit once to seed it.
func New(reducer state.Reducer, initial state.State, opts ...Option) *Store {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	s := &Store{
		reducer:  reducer,
		current:  initial,
		registry: o.registry,
	}
	s.current = s.reducer(s.current, state.Action{Type: state.ActionInit})
	return s
}

// NewWithComponents creates a registry and a store whose root reducer is
// slices plus the registry under componentstate.RootKey.
func NewWithComponents(slices ...state.Slice) (*Store, *componentstate.Registry) {
	reg := componentstate.NewRegistry()
	all := append(append([]state.Slice(nil), slices...), state.Slice{
		Key:     componentstate.RootKey,
		Reducer: reg.Reduce,
	})
	return New(state.Combine(all...), nil, WithComponentRegistry(reg)), reg
}

// State returns the current snapshot.
func (s *Store) State() state.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// ComponentRegistry returns the attached registry, or nil.
func (s *Store) ComponentRegistry() *componentstate.Registry {
	return s.registry
}

// Dispatch reduces action into a new snapshot and notifies listeners.
func (s *Store) Dispatch(action state.Action) {
	s.mu.Lock()
	s.current = s.reducer(s.current, action)
	s.mu.Unlock()

	glog.V(3).Infof("[store]dispatch %s\n", action.Type)
	s.notify()
}

// Subscribe registers l. The returned function removes it and may be
// called any number of times.
func (s *Store) Subscribe(l state.Listener) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners = append(s.listeners, subscription{id: id, listener: l})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			for i, sub := range s.listeners {
				if sub.id == id {
					s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
					break
				}
			}
		})
	}
}

// Listeners returns the number of subscribed listeners.
func (s *Store) Listeners() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.listeners)
}

func (s *Store) notify() {
	s.mu.RLock()
	subs := make([]subscription, len(s.listeners))
	copy(subs, s.listeners)
	s.mu.RUnlock()

	for _, sub := range subs {
		sub.listener()
	}
}
