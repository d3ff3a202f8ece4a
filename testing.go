package hxconnect

import (
	"bytes"
	"context"
	"strings"
	"sync"

	"github.com/a-h/templ"

	"github.com/pthm/hxconnect/lib/componentstate"
)

// TestResult holds the output of rendering an element for testing.
type TestResult struct {
	HTML  string
	Props Props
}

// TestRender renders an element and returns its HTML and props.
//
//	el, _ := inst.Render()
//	result, err := hxconnect.TestRender(el)
//	if !result.HTMLContains("count: 1") {
//	    t.Fatal("missing count")
//	}
func TestRender(el *Element) (*TestResult, error) {
	return TestRenderWithContext(context.Background(), el)
}

// TestRenderWithContext renders an element with a custom context.
func TestRenderWithContext(ctx context.Context, el *Element) (*TestResult, error) {
	var buf bytes.Buffer
	if err := el.Render(ctx, &buf); err != nil {
		return nil, err
	}
	return &TestResult{HTML: buf.String(), Props: el.Props()}, nil
}

// RenderString renders any templ component to a string.
func RenderString(ctx context.Context, c templ.Component) (string, error) {
	var buf bytes.Buffer
	if err := c.Render(ctx, &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HTMLContains checks if the HTML contains a substring.
func (r *TestResult) HTMLContains(substr string) bool {
	return strings.Contains(r.HTML, substr)
}

// HTMLContainsAll checks if the HTML contains all the given substrings.
func (r *TestResult) HTMLContainsAll(substrs ...string) bool {
	for _, s := range substrs {
		if !strings.Contains(r.HTML, s) {
			return false
		}
	}
	return true
}

// HasProp checks if the rendered props carry key with a value identical to v.
func (r *TestResult) HasProp(key string, v any) bool {
	got, ok := r.Props[key]
	return ok && ShallowEqual(Props{key: got}, Props{key: v})
}

// RecordingStore wraps a Store and records dispatched actions and live
// subscriptions. It forwards ComponentRegistry when the wrapped store has one.
//
//	rec := hxconnect.NewRecordingStore(store.New(reducer, nil))
//	inst, _ := binding.New(ctx, hxconnect.Props{"store": rec})
//	inst.Mount()
//	if rec.Subscriptions() != 1 { ... }
type RecordingStore struct {
	Store

	mu            sync.Mutex
	actions       []Action
	subscriptions int
}

// NewRecordingStore wraps s.
func NewRecordingStore(s Store) *RecordingStore {
	return &RecordingStore{Store: s}
}

// Dispatch records action and forwards it.
func (r *RecordingStore) Dispatch(action Action) {
	r.mu.Lock()
	r.actions = append(r.actions, action)
	r.mu.Unlock()
	r.Store.Dispatch(action)
}

// Subscribe forwards l and counts the subscription until it is removed.
func (r *RecordingStore) Subscribe(l Listener) func() {
	r.mu.Lock()
	r.subscriptions++
	r.mu.Unlock()

	unsubscribe := r.Store.Subscribe(l)
	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			r.subscriptions--
			r.mu.Unlock()
			unsubscribe()
		})
	}
}

// Actions returns the recorded actions.
func (r *RecordingStore) Actions() []Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Action, len(r.actions))
	copy(out, r.actions)
	return out
}

// Subscriptions returns the number of live subscriptions.
func (r *RecordingStore) Subscriptions() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.subscriptions
}

// ComponentRegistry forwards to the wrapped store.
func (r *RecordingStore) ComponentRegistry() *componentstate.Registry {
	if p, ok := r.Store.(RegistryProvider); ok {
		return p.ComponentRegistry()
	}
	return nil
}
