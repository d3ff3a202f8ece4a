package hxconnect

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/pthm/hxconnect/lib/store"
)

func TestRootEndToEnd(t *testing.T) {
	initial := State{"count": 0}
	s := counterStore(0)
	s.Dispatch(Action{Type: "SET", Payload: initial})
	ctx := WithStore(context.Background(), s)

	r, err := MountRoot(ctx, Connect(WithMapState(mapCount))(countView()), nil)
	assert.Equal(t, err, nil)
	assert.Equal(t, r.Renders(), 1)
	assert.Equal(t, r.Element().Props()["count"], 0)
	first := r.Element()

	// Same reference: cached output.
	s.Dispatch(Action{Type: "SET", Payload: initial})
	assert.Equal(t, r.Renders(), 1)
	assert.Equal(t, r.Element() == first, true)

	s.Dispatch(Action{Type: "SET", Payload: State{"count": 1}})
	assert.Equal(t, r.Renders(), 2)
	assert.Equal(t, r.Element() == first, false)
	assert.Equal(t, r.Element().Props()["count"], 1)

	var buf bytes.Buffer
	assert.Equal(t, r.Render(ctx, &buf), nil)
	assert.Equal(t, buf.String(), "<p>count: 1</p>")
}

func TestRootSetProps(t *testing.T) {
	ctx := WithStore(context.Background(), counterStore(0))
	r, err := MountRoot(ctx, Connect(WithMapState(mapCount))(labelView{}), Props{"label": "a"})
	assert.Equal(t, err, nil)

	r.SetProps(Props{"label": "a"})
	assert.Equal(t, r.Renders(), 1)

	r.SetProps(Props{"label": "b"})
	assert.Equal(t, r.Renders(), 2)

	html, err := RenderString(ctx, r.Element())
	assert.Equal(t, err, nil)
	assert.Equal(t, html, "<span>b</span>")
}

func TestRootRecoversAfterFailedPass(t *testing.T) {
	s := counterStore(0)
	ctx := WithStore(context.Background(), s)
	b := Connect(WithMapState(func(st State) Props {
		if st["count"] == 2 {
			return nil
		}
		return mapCount(st)
	}))(countView())

	r, err := MountRoot(ctx, b, nil)
	assert.Equal(t, err, nil)

	s.Dispatch(Action{Type: "SET", Payload: State{"count": 2}})
	assert.Equal(t, errors.Is(r.Err(), ErrNotMapping), true)
	assert.Equal(t, errors.Is(r.Render(ctx, &bytes.Buffer{}), ErrNotMapping), true)

	s.Dispatch(Action{Type: "SET", Payload: State{"count": 3}})
	assert.Equal(t, r.Err(), nil)
	assert.Equal(t, r.Element().Props()["count"], 3)
	assert.Equal(t, r.Renders(), 2)
}

func TestRootComponentState(t *testing.T) {
	s, _ := store.NewWithComponents()
	ctx := WithStore(context.Background(), s)

	r, err := MountRoot(ctx, Connect(WithReducer(increment))(countView()), nil)
	assert.Equal(t, err, nil)
	assert.Equal(t, r.Element().Props()[StatePropName], 0)

	s.Dispatch(Action{Type: "INC"})
	s.Dispatch(Action{Type: "INC"})
	assert.Equal(t, r.Element().Props()[StatePropName], 2)
	assert.Equal(t, r.Renders(), 3)

	r.Unmount()
	assert.Equal(t, r.Element() == nil, true)
	assert.Equal(t, r.Instance().Subscribed(), false)
}

func TestMountRootError(t *testing.T) {
	_, err := MountRoot(context.Background(), Connect(WithMapState(mapCount))(countView()), nil)
	assert.Equal(t, errors.Is(err, ErrStoreNotFound), true)

	ctx := WithStore(context.Background(), counterStore(0))
	_, err = MountRoot(ctx, Connect(WithMapState(func(State) Props { return nil }))(countView()), nil)
	assert.Equal(t, IsContractViolation(err), true)
}

func TestMountRootFailureRemovesReducer(t *testing.T) {
	s, reg := store.NewWithComponents()
	ctx := WithStore(context.Background(), s)
	b := Connect(
		WithMapState(func(State) Props { return nil }),
		WithReducer(increment),
	)(countView())

	_, err := MountRoot(ctx, b, nil)
	assert.Equal(t, IsContractViolation(err), true)
	assert.Equal(t, reg.Len(), 0)
	assert.Equal(t, len(reg.IDs()), 0)
}
