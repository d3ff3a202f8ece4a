package hxconnect

import (
	"context"
	"io"
)

// Root is a minimal synchronous host for a single bound instance. It renders
// on mount, re-renders when the instance asks for an update, and keeps the
// latest element.
//
// Root is not safe for concurrent use; serialize store dispatches with calls
// into Root (the echo adapter does this with a mutex).
type Root struct {
	inst    *Instance
	current *Element
	renders int
	err     error
}

// MountRoot constructs an instance of b, renders it and subscribes it.
func MountRoot(ctx context.Context, b *Binding, own Props) (*Root, error) {
	inst, err := b.New(ctx, own)
	if err != nil {
		return nil, err
	}

	r := &Root{inst: inst}
	inst.OnUpdate(r.update)

	el, err := inst.Render()
	if err != nil {
		inst.Unmount()
		return nil, err
	}
	r.current = el
	r.renders = 1

	inst.Mount()
	return r, nil
}

// Instance returns the hosted instance.
func (r *Root) Instance() *Instance {
	return r.inst
}

// Element returns the latest element.
func (r *Root) Element() *Element {
	return r.current
}

// Renders counts how many distinct elements the instance has produced.
func (r *Root) Renders() int {
	return r.renders
}

// Err returns the error of the last failed render pass, or nil.
func (r *Root) Err() error {
	return r.err
}

// SetProps hands new own props to the instance and re-renders if needed.
func (r *Root) SetProps(own Props) {
	r.inst.ReceiveProps(own)
	r.update()
}

// Render writes the latest element to w.
func (r *Root) Render(ctx context.Context, w io.Writer) error {
	if r.err != nil {
		return r.err
	}
	if r.current == nil {
		return nil
	}
	return r.current.Render(ctx, w)
}

// Unmount tears the instance down.
func (r *Root) Unmount() {
	r.inst.Unmount()
	r.current = nil
}

func (r *Root) update() {
	if !r.inst.ShouldUpdate() {
		return
	}
	r.inst.WillUpdate()

	el, err := r.inst.Render()
	r.err = err
	if err != nil {
		return
	}
	if el != r.current {
		r.current = el
		r.renders++
	}
}
