package hxconnect

// SwapMode defines HTMX swap strategies for how a re-rendered root replaces
// the target.
//
// Each mode corresponds to an HTMX hx-swap value. The default is SwapOuter.
//
// See https://htmx.org/attributes/hx-swap/ for visual examples.
type SwapMode string

const (
	// SwapOuter replaces the entire element including its tag (outerHTML).
	// This is the default swap mode.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the element's contents, preserving the outer tag (innerHTML).
	SwapInner SwapMode = "innerHTML"

	// SwapNone performs no swap - response is discarded.
	// Useful for dispatches whose effect shows up elsewhere on the page.
	SwapNone SwapMode = "none"
)
