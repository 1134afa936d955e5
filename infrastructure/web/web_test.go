package web_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tasmag/tasmag/infrastructure/web"
)

type payload struct {
	Name string `json:"name"`
}

func TestHandle_JSONAndStatus(t *testing.T) {
	wh := web.NewWebHandler()
	wh.POST("/things", func(ctx context.Context, r *http.Request) web.Encoder {
		var p payload
		if err := web.Decode(r, &p); err != nil {
			return web.NewError(err.Error())
		}
		return web.NewJSONResponseWithStatus(p, http.StatusCreated)
	})

	req := httptest.NewRequest(http.MethodPost, "/things", strings.NewReader(`{"name":"a"}`))
	rr := httptest.NewRecorder()
	wh.ServeHTTP(rr, req)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"name":"a"}` {
		t.Errorf("unexpected body %s", got)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestHandle_NilIsNoContent(t *testing.T) {
	wh := web.NewWebHandler()
	wh.DELETE("/things/{id}", func(ctx context.Context, r *http.Request) web.Encoder {
		return nil
	})

	rr := httptest.NewRecorder()
	wh.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/things/1", nil))

	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rr.Code)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rr.Body.String())
	}
}

func TestGroup_PrefixMiddlewareAndParams(t *testing.T) {
	var order []string
	mw := func(name string) web.Middleware {
		return func(next web.HandlerFunc) web.HandlerFunc {
			return func(ctx context.Context, r *http.Request) web.Encoder {
				order = append(order, name)
				return next(ctx, r)
			}
		}
	}

	wh := web.NewWebHandler(web.WithGlobalMiddleware(mw("global")))
	api := wh.Group("/api/v1/", mw("group"))
	api.GET("/things/{id}", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewTextResponse(web.Param(r, "id") + ":" + web.QueryParam(r, "q"))
	}, mw("route"))

	rr := httptest.NewRecorder()
	wh.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/things/7?q=x", nil))

	body, _ := io.ReadAll(rr.Body)
	if string(body) != "7:x" {
		t.Errorf("expected body %q, got %q", "7:x", body)
	}
	if strings.Join(order, ",") != "global,group,route" {
		t.Errorf("unexpected middleware order %v", order)
	}
}

func TestDecode_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(""))
	var p payload
	if err := web.Decode(req, &p); err != web.ErrEmptyBody {
		t.Fatalf("expected ErrEmptyBody, got %v", err)
	}
}

func TestCORS(t *testing.T) {
	wh := web.NewWebHandler(web.WithCORS([]string{"https://app.example.com"}))
	wh.GET("/", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewTextResponse("ok")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	wh.ServeHTTP(rr, req)

	if got := rr.Header().Get("Access-Control-Allow-Origin"); got != "https://app.example.com" {
		t.Errorf("expected allow-origin header, got %q", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	wh := web.NewWebHandler(web.WithCORS([]string{"https://app.example.com"}))
	wh.GET("/tasks/{id}", func(ctx context.Context, r *http.Request) web.Encoder {
		t.Error("preflight reached the route handler")
		return nil
	})

	req := httptest.NewRequest(http.MethodOptions, "/tasks/1", nil)
	req.Header.Set("Origin", "https://app.example.com")
	rr := httptest.NewRecorder()
	wh.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rr.Code)
	}
	if got := rr.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "PUT") {
		t.Errorf("expected allow-methods header, got %q", got)
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected empty body, got %q", rr.Body.String())
	}
}

func TestRespond_NoResponseWritesNothing(t *testing.T) {
	wh := web.NewWebHandler()
	wh.GET("/raw", func(ctx context.Context, r *http.Request) web.Encoder {
		w := web.GetWriter(ctx)
		w.WriteHeader(http.StatusAccepted)
		io.WriteString(w, "handled")
		return web.NewNoResponse()
	})

	rr := httptest.NewRecorder()
	wh.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/raw", nil))

	if rr.Code != http.StatusAccepted || rr.Body.String() != "handled" {
		t.Errorf("expected handler output untouched, got %d %q", rr.Code, rr.Body.String())
	}
}

func TestDefaultHeaders(t *testing.T) {
	wh := web.NewWebHandler(
		web.WithDefaultHeaders(map[string]string{"X-Content-Type-Options": "nosniff"}),
		web.WithDefaultHeaders(map[string]string{"Cache-Control": "no-store"}),
	)
	wh.GET("/", func(ctx context.Context, r *http.Request) web.Encoder {
		return web.NewTextResponse("ok")
	})

	rr := httptest.NewRecorder()
	wh.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("expected nosniff, got %q", got)
	}
	if got := rr.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected no-store, got %q", got)
	}
}
