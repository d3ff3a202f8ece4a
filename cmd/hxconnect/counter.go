package main

import (
	"context"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/a-h/templ"

	"github.com/pthm/hxconnect"
	"github.com/pthm/hxconnect/lib/state"
	"github.com/pthm/hxconnect/lib/store"
)

// newCounterStore returns a store with a "count" slice and component-level
// state under "components".
func newCounterStore() *store.Store {
	s, _ := store.NewWithComponents(state.Slice{Key: "count", Reducer: reduceCount})
	return s
}

func reduceCount(prev any, a state.Action) any {
	n := toInt(prev)
	switch a.Type {
	case "INC":
		return n + 1
	case "DEC":
		return n - 1
	}
	if prev == nil {
		return n
	}
	return prev
}

// reduceExpanded is the panel's private state.
func reduceExpanded(prev any, a state.Action) any {
	open, _ := prev.(bool)
	if a.Type == "TOGGLE" {
		return !open
	}
	return open
}

// toInt accepts the int64 a restored snapshot carries.
func toInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case uint64:
		return int(n)
	}
	return 0
}

type counterPanel struct{}

func (counterPanel) Name() string { return "CounterPanel" }

func (counterPanel) Statics() map[string]any {
	return map[string]any{"Actions": []string{"INC", "DEC", "TOGGLE"}}
}

func (counterPanel) Render(_ context.Context, props hxconnect.Props) templ.Component {
	count := toInt(props["count"])
	open, _ := props[hxconnect.StatePropName].(bool)

	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := fmt.Fprintf(w, `<div id="counter" hx-target="#counter" hx-swap="outerHTML">`+
			`<p>count: %d</p>`, count); err != nil {
			return err
		}
		for _, typ := range []string{"INC", "DEC", "TOGGLE"} {
			attrs := hxconnect.WireDispatch("dispatch", hxconnect.Action{Type: typ}, hxconnect.SwapOuter)
			if _, err := fmt.Fprintf(w, `<button%s>%s</button>`, attrString(attrs), typ); err != nil {
				return err
			}
		}
		if open {
			if _, err := io.WriteString(w, `<p class="details">expanded</p>`); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, `</div>`)
		return err
	})
}

// attrString renders attrs in key order.
func attrString(attrs templ.Attributes) string {
	var b strings.Builder
	for _, k := range slices.Sorted(maps.Keys(attrs)) {
		fmt.Fprintf(&b, ` %s="%s"`, k, templ.EscapeString(fmt.Sprint(attrs[k])))
	}
	return b.String()
}

var connectCounter = hxconnect.Connect(
	hxconnect.WithMapState(func(s hxconnect.State) hxconnect.Props {
		return hxconnect.Props{"count": s["count"]}
	}),
	hxconnect.WithReducer(reduceExpanded),
	hxconnect.WithInstanceKey(func(hxconnect.Props) string { return "counter-panel" }),
)

// mountCounter mounts the demo panel on s.
func mountCounter(ctx context.Context, s *store.Store) (*hxconnect.Root, error) {
	return hxconnect.MountRoot(hxconnect.WithStore(ctx, s), connectCounter(counterPanel{}), nil)
}
