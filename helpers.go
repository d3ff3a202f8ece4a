package hxconnect

import (
	"net/http"

	"github.com/a-h/templ"
)

// Render writes a templ component to the HTTP response.
//
// Sets Content-Type to text/html and renders the component using the
// request's context.
//
//	func handler(w http.ResponseWriter, r *http.Request) {
//	    hxconnect.Render(w, r, root.Element())
//	}
func Render(w http.ResponseWriter, r *http.Request, component templ.Component) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(r.Context(), w)
}

// IsHTMX returns true if the request originated from HTMX.
//
// HTMX sends HX-Request: true on all requests. Handler requires it on
// mutating requests.
func IsHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// TargetID returns the ID of the target element from the HX-Target header.
func TargetID(r *http.Request) string {
	return r.Header.Get("HX-Target")
}
