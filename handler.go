package hxconnect

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/golang/glog"

	"github.com/pthm/hxconnect/lib/store"
)

// Snapshotter is implemented by stores that can persist their tree as a
// token. lib/store.Store implements it.
type Snapshotter interface {
	Snapshot(enc *Encoder, sensitive bool) (string, error)
	Restore(enc *Encoder, token string, sensitive bool) error
}

var errMissingField = errors.New("hxconnect: missing form field")

// Handler serves a Root over HTTP.
//
//	GET  <prefix>          render the root
//	POST <prefix>dispatch  dispatch the form's "type" (and "payload"), then render
//	GET  <prefix>snapshot  encode the store tree (WithSnapshots)
//	POST <prefix>restore   restore the form's "token", then render (WithSnapshots)
//
// Requests are serialized: dispatching notifies the root synchronously, so
// no two requests touch the root at once.
type Handler struct {
	mu        sync.Mutex
	root      *Root
	prefix    string
	mux       *http.ServeMux
	encoder   *Encoder
	sensitive bool

	// OnError is called when a request fails.
	// Customize this to handle errors appropriately for your application.
	OnError func(http.ResponseWriter, *http.Request, error)
}

// HandlerOption configures NewHandler.
type HandlerOption func(*Handler)

// WithSnapshots enables the snapshot and restore routes. Tokens are signed,
// or encrypted when sensitive is set.
func WithSnapshots(enc *Encoder, sensitive bool) HandlerOption {
	return func(h *Handler) {
		h.encoder = enc
		h.sensitive = sensitive
	}
}

// NewHandler creates a handler for root with routes under prefix. prefix
// must start and end with "/".
func NewHandler(root *Root, prefix string, opts ...HandlerOption) *Handler {
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	h := &Handler{
		root:   root,
		prefix: prefix,
		mux:    http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(h)
	}

	// Default error handler
	h.OnError = func(w http.ResponseWriter, r *http.Request, err error) {
		switch {
		case errors.Is(err, errMissingField), IsSnapshotError(err):
			http.Error(w, "Bad request", http.StatusBadRequest)
		case errors.Is(err, store.ErrForeignSnapshot):
			http.Error(w, "Conflict", http.StatusConflict)
		default:
			glog.Errorf("[handler]%s %s: %v\n", r.Method, r.URL.Path, err)
			http.Error(w, "Internal error", http.StatusInternalServerError)
		}
	}

	h.mux.HandleFunc("GET "+prefix+"{$}", h.handleRender)
	h.mux.HandleFunc("POST "+prefix+"dispatch", h.handleDispatch)
	if h.encoder != nil {
		h.mux.HandleFunc("GET "+prefix+"snapshot", h.handleSnapshot)
		h.mux.HandleFunc("POST "+prefix+"restore", h.handleRestore)
	}
	return h
}

// Prefix returns the path prefix the routes live under.
func (h *Handler) Prefix() string {
	return h.prefix
}

// Root returns the hosted root.
func (h *Handler) Root() *Root {
	return h.root
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// CSRF protection: mutating methods require HX-Request header
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		if !IsHTMX(r) {
			http.Error(w, "Forbidden: HTMX request required", http.StatusForbidden)
			return
		}
	}

	h.mux.ServeHTTP(w, r)
}

func (h *Handler) handleRender(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.render(w, r)
}

func (h *Handler) handleDispatch(w http.ResponseWriter, r *http.Request) {
	typ := r.FormValue("type")
	if typ == "" {
		h.OnError(w, r, errMissingField)
		return
	}
	action := Action{Type: typ}
	if payload, ok := r.Form["payload"]; ok && len(payload) > 0 {
		action.Payload = payload[0]
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	glog.V(3).Infof("[handler]dispatch %s target=%q\n", typ, TargetID(r))
	h.root.Instance().Store().Dispatch(action)
	h.render(w, r)
}

func (h *Handler) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s, ok := h.root.Instance().Store().(Snapshotter)
	if !ok {
		http.NotFound(w, r)
		return
	}

	h.mu.Lock()
	token, err := s.Snapshot(h.encoder, h.sensitive)
	h.mu.Unlock()
	if err != nil {
		h.OnError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = io.WriteString(w, token)
}

func (h *Handler) handleRestore(w http.ResponseWriter, r *http.Request) {
	s, ok := h.root.Instance().Store().(Snapshotter)
	if !ok {
		http.NotFound(w, r)
		return
	}
	token := r.FormValue("token")
	if token == "" {
		h.OnError(w, r, errMissingField)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if err := s.Restore(h.encoder, token, h.sensitive); err != nil {
		h.OnError(w, r, err)
		return
	}
	h.render(w, r)
}

// render must be called with h.mu held.
func (h *Handler) render(w http.ResponseWriter, r *http.Request) {
	if err := h.root.Err(); err != nil {
		h.OnError(w, r, err)
		return
	}
	el := h.root.Element()
	if el == nil {
		http.NotFound(w, r)
		return
	}
	if err := Render(w, r, el); err != nil {
		h.OnError(w, r, err)
	}
}
