package hxconnect

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// Element is a binding's render output: the wrapped component paired with
// the merged props it was rendered with. It is a templ.Component, so it can
// be placed anywhere in a templ tree.
//
// A binding returns the same *Element for as long as its merged props are
// unchanged; compare pointers to detect a re-render.
type Element struct {
	component Component
	props     Props
}

var _ templ.Component = (*Element)(nil)

// Render renders the wrapped component with the element's props.
func (e *Element) Render(ctx context.Context, w io.Writer) error {
	out := e.component.Render(ctx, e.props)
	if out == nil {
		return nil
	}
	return out.Render(ctx, w)
}

// Component returns the wrapped component.
func (e *Element) Component() Component {
	return e.component
}

// Props returns the merged props. Callers must not modify them.
func (e *Element) Props() Props {
	return e.props
}
