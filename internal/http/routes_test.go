package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"task_tracker/internal/http/middleware"
	"task_tracker/internal/repository"
	"task_tracker/internal/service"
	"task_tracker/internal/ws"

	"github.com/gin-gonic/gin"
)

func newTestHandler(t *testing.T, origins []string) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	hub := ws.NewHub()
	return NewHandler(RouterConfig{
		Tasks:              service.NewTaskService(repository.NewMemoryTaskRepository(), hub),
		Hub:                hub,
		Version:            "test",
		RateLimit:          1000,
		RateWindow:         time.Minute,
		CORSAllowedOrigins: origins,
	})
}

func serve(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes_RootAndAPIPrefixShareStorage(t *testing.T) {
	h := newTestHandler(t, nil)

	w := serve(h, http.MethodPost, "/api/register/", `{"title":"Pay water","description":"Magnit","completed":false}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &created)

	w = serve(h, http.MethodGet, "/tasks/", "")
	var list []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 || list[0]["title"] != "Pay water" {
		t.Fatalf("unexpected list %v", list)
	}

	w = serve(h, http.MethodDelete, "/api/delete-all/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	w = serve(h, http.MethodGet, "/api/tasks/", "")
	if strings.TrimSpace(w.Body.String()) != "[]" {
		t.Fatalf("expected empty list, got %s", w.Body.String())
	}
}

func TestRoutes_RequestIDAndCORS(t *testing.T) {
	h := newTestHandler(t, []string{"https://tasks.example"})

	req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	req.Header.Set("Origin", "https://tasks.example")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Header().Get(middleware.RequestIDHeader) == "" {
		t.Fatalf("expected request id header")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://tasks.example" {
		t.Fatalf("expected CORS allow origin, got %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	req.Header.Set("Origin", "https://other.example")
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin must not be allowed, got %q", got)
	}
}

func TestRoutes_HealthAndMetrics(t *testing.T) {
	h := newTestHandler(t, nil)

	for _, path := range []string{"/health", "/healthz", "/readyz"} {
		if w := serve(h, http.MethodGet, path, ""); w.Code != http.StatusOK {
			t.Fatalf("%s: expected 200, got %d", path, w.Code)
		}
	}

	w := serve(h, http.MethodGet, "/readyz", "")
	var ready struct {
		Checks map[string]string `json:"checks"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &ready)
	if ready.Checks["storage"] != "healthy" || ready.Checks["ws_subscribers"] != "0" {
		t.Fatalf("unexpected readiness checks %v", ready.Checks)
	}

	serve(h, http.MethodGet, "/tasks/", "")
	w = serve(h, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "http_requests_total") {
		t.Fatalf("expected prometheus exposition with http_requests_total")
	}
}

func TestRoutes_RateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(RouterConfig{
		Tasks:      service.NewTaskService(repository.NewMemoryTaskRepository(), nil),
		RateLimit:  2,
		RateWindow: time.Minute,
	})

	// both mounts draw from one budget
	serve(h, http.MethodGet, "/tasks/", "")
	serve(h, http.MethodGet, "/api/tasks/", "")
	if w := serve(h, http.MethodGet, "/tasks/", ""); w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", w.Code)
	}
	// health endpoints are not limited
	if w := serve(h, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Fatalf("expected 200 from healthz, got %d", w.Code)
	}
}

func TestRoutes_ZeroRateLimitIsUnlimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewHandler(RouterConfig{
		Tasks:     service.NewTaskService(repository.NewMemoryTaskRepository(), nil),
		RateLimit: 0,
	})

	for i := 0; i < 300; i++ {
		path := "/tasks/"
		if i%2 == 1 {
			path = "/api/tasks/"
		}
		if w := serve(h, http.MethodGet, path, ""); w.Code != http.StatusOK {
			t.Fatalf("request %d to %s got %d %s", i+1, path, w.Code, w.Body.String())
		}
	}
}
