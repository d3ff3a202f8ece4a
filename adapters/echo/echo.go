// Package hxconnectecho provides Echo framework integration for hxconnect
// roots.
//
// Mount a root onto an Echo instance or group:
//
//	root, _ := hxconnect.MountRoot(ctx, counter, nil)
//	e := echo.New()
//	hxconnectecho.Mount(e, root)
//
// Or mount on a group with middleware:
//
//	g := e.Group("/app", authMiddleware)
//	hxconnectecho.MountGroup(g, root)
package hxconnectecho

import (
	"crypto/rand"
	"fmt"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxconnect"
)

// Option configures the Mount and MountGroup functions.
type Option func(*options)

type options struct {
	key       []byte
	path      string
	sensitive bool
}

// WithKey sets the key used to seal store snapshots.
// The key should be at least 32 bytes of cryptographically random data.
// If not provided, a random key is generated (suitable for development only).
func WithKey(key []byte) Option {
	return func(o *options) {
		o.key = key
	}
}

// WithPath sets the URL path prefix for the root's routes.
// Defaults to "/_c/".
func WithPath(path string) Option {
	return func(o *options) {
		o.path = path
	}
}

// WithSensitive encrypts snapshots instead of only signing them.
func WithSensitive() Option {
	return func(o *options) {
		o.sensitive = true
	}
}

// Mount creates a handler for root and mounts it on an Echo instance.
//
//	e := echo.New()
//	h := hxconnectecho.Mount(e, root)
//
//	// With options:
//	h := hxconnectecho.Mount(e, root, hxconnectecho.WithKey(key))
func Mount(e *echo.Echo, root *hxconnect.Root, opts ...Option) *hxconnect.Handler {
	h := newHandler(root, opts)
	e.Any(h.path+"*", h.serve)
	return h.Handler
}

// MountGroup creates a handler for root and mounts it on an Echo group.
// This allows the root to share middleware with the group (auth, logging, etc.).
func MountGroup(g *echo.Group, root *hxconnect.Root, opts ...Option) *hxconnect.Handler {
	h := newHandler(root, opts)
	g.Any(h.path+"*", h.serve)
	return h.Handler
}

type mountedHandler struct {
	*hxconnect.Handler
	path string
}

func newHandler(root *hxconnect.Root, opts []Option) *mountedHandler {
	o := &options{path: "/_c/"}
	for _, opt := range opts {
		opt(o)
	}

	key := o.key
	if key == nil {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			panic(fmt.Sprintf("hxconnectecho: failed to generate random key: %v", err))
		}
	}

	enc, err := hxconnect.NewEncoder(key)
	if err != nil {
		panic(fmt.Sprintf("hxconnectecho: failed to create encoder: %v", err))
	}

	h := hxconnect.NewHandler(root, o.path, hxconnect.WithSnapshots(enc, o.sensitive))
	return &mountedHandler{Handler: h, path: h.Prefix()}
}

// serve hands the request to the handler with the group prefix stripped, so
// the same routes work on an Echo instance and on any group.
func (h *mountedHandler) serve(c echo.Context) error {
	r := c.Request().Clone(c.Request().Context())
	r.URL.Path = h.path + c.Param("*")
	r.URL.RawPath = ""
	h.ServeHTTP(c.Response(), r)
	return nil
}

// Render writes a templ component to the Echo response.
//
//	func handler(c echo.Context) error {
//	    return hxconnectecho.Render(c, root.Element())
//	}
func Render(c echo.Context, component templ.Component) error {
	c.Response().Header().Set("Content-Type", "text/html; charset=utf-8")
	return component.Render(c.Request().Context(), c.Response())
}
