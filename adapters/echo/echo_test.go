package hxconnectecho

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"

	"github.com/pthm/hxconnect"
	"github.com/pthm/hxconnect/lib/store"
)

func counterReducer(prev hxconnect.State, a hxconnect.Action) hxconnect.State {
	n, _ := prev["count"].(int)
	if a.Type == "INC" {
		return hxconnect.State{"count": n + 1}
	}
	return prev
}

func newRoot(t *testing.T) *hxconnect.Root {
	t.Helper()
	s := store.New(counterReducer, hxconnect.State{"count": 0})
	view := hxconnect.ComponentFunc(func(_ context.Context, props hxconnect.Props) templ.Component {
		return templ.Raw(fmt.Sprintf("<p>%v</p>", props["count"]))
	})
	counter := hxconnect.Connect(hxconnect.WithMapState(func(st hxconnect.State) hxconnect.Props {
		return hxconnect.Props{"count": st["count"]}
	}))(view)

	root, err := hxconnect.MountRoot(hxconnect.WithStore(context.Background(), s), counter, nil)
	if err != nil {
		t.Fatalf("MountRoot() error = %v", err)
	}
	return root
}

func dispatch(path string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader("type=INC"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	return req
}

func TestMount(t *testing.T) {
	e := echo.New()
	h := Mount(e, newRoot(t))

	if h == nil {
		t.Fatal("Mount returned nil handler")
	}
	if h.Prefix() != "/_c/" {
		t.Errorf("Prefix() = %q, want /_c/", h.Prefix())
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_c/", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "<p>0</p>" {
		t.Errorf("GET /_c/ = %d %q", rec.Code, rec.Body.String())
	}
}

func TestMountWithPath(t *testing.T) {
	e := echo.New()
	Mount(e, newRoot(t), WithPath("/counter/"), WithKey(make([]byte, 32)))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, dispatch("/counter/dispatch"))
	if rec.Code != http.StatusOK || rec.Body.String() != "<p>1</p>" {
		t.Errorf("POST /counter/dispatch = %d %q", rec.Code, rec.Body.String())
	}
}

func TestMountGroup(t *testing.T) {
	e := echo.New()
	g := e.Group("/app")
	h := MountGroup(g, newRoot(t))

	if h == nil {
		t.Fatal("MountGroup returned nil handler")
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, dispatch("/app/_c/dispatch"))
	if rec.Code != http.StatusOK || rec.Body.String() != "<p>1</p>" {
		t.Errorf("POST /app/_c/dispatch = %d %q", rec.Code, rec.Body.String())
	}
}

func TestCSRFProtection(t *testing.T) {
	e := echo.New()
	Mount(e, newRoot(t))

	// POST without HX-Request header should be forbidden
	req := httptest.NewRequest(http.MethodPost, "/_c/dispatch", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected 403 for POST without HX-Request, got %d", rec.Code)
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	e := echo.New()
	Mount(e, newRoot(t), WithSensitive())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/_c/snapshot", nil))
	if rec.Code != http.StatusOK || rec.Body.Len() == 0 {
		t.Fatalf("GET /_c/snapshot = %d", rec.Code)
	}
	token := rec.Body.String()

	e.ServeHTTP(httptest.NewRecorder(), dispatch("/_c/dispatch"))

	req := httptest.NewRequest(http.MethodPost, "/_c/restore", strings.NewReader("token="+token))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK || rec.Body.String() != "<p>0</p>" {
		t.Errorf("POST /_c/restore = %d %q", rec.Code, rec.Body.String())
	}
}

func TestRender(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := Render(c, templ.Raw("<b>hi</b>")); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if rec.Body.String() != "<b>hi</b>" {
		t.Errorf("body = %q", rec.Body.String())
	}
}
