package hxconnect

import (
	"encoding/json"
	"fmt"

	"github.com/a-h/templ"
)

// WireDispatch builds the HTMX attributes for a button or form that posts
// action to a Handler's dispatch route.
//
// The action type and a string form of its payload travel in hx-vals.
// Other HTMX attributes (hx-target, hx-trigger, etc.) are written directly
// in templates.
//
//	<button { hxconnect.WireDispatch("/_c/dispatch", hxconnect.Action{Type: "INC"}, hxconnect.SwapOuter)... }>+</button>
func WireDispatch(path string, action Action, swap SwapMode) templ.Attributes {
	vals := map[string]string{"type": action.Type}
	if action.Payload != nil {
		vals["payload"] = fmt.Sprint(action.Payload)
	}
	data, _ := json.Marshal(vals)

	if swap == "" {
		swap = SwapOuter
	}
	return templ.Attributes{
		"hx-post": path,
		"hx-vals": string(data),
		"hx-swap": string(swap),
	}
}
