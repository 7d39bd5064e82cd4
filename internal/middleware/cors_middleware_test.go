package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newCORSEngine(origins []string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(CORS(origins))
	engine.GET("/api/pomodoro/events", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	engine := newCORSEngine([]string{" http://localhost:5173/ "})

	req := httptest.NewRequest(http.MethodOptions, "/api/pomodoro/events", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Headers", "last-event-id")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("unexpected allow-origin %q", got)
	}
	if recorder.Header().Get("Access-Control-Allow-Credentials") != "true" {
		t.Fatal("expected credentials for a listed origin")
	}
	if !strings.Contains(recorder.Header().Get("Access-Control-Allow-Headers"), "Last-Event-ID") {
		t.Fatalf("Last-Event-ID not allowed: %s", recorder.Header().Get("Access-Control-Allow-Headers"))
	}
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	engine := newCORSEngine([]string{"http://localhost:5173"})

	req := httptest.NewRequest(http.MethodGet, "/api/pomodoro/events", nil)
	req.Header.Set("Origin", "http://evil.test")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected request to pass through, got %d", recorder.Code)
	}
	if got := recorder.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unknown origin was allowed: %q", got)
	}
	if recorder.Header().Get("Vary") != "Origin" {
		t.Fatal("expected Vary: Origin")
	}
}

func TestCORSWildcardOmitsCredentials(t *testing.T) {
	engine := newCORSEngine([]string{"*"})

	req := httptest.NewRequest(http.MethodGet, "/api/pomodoro/events", nil)
	req.Header.Set("Origin", "http://anything.test")
	recorder := httptest.NewRecorder()
	engine.ServeHTTP(recorder, req)

	if recorder.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected allow-origin %q", recorder.Header().Get("Access-Control-Allow-Origin"))
	}
	if recorder.Header().Get("Access-Control-Allow-Credentials") != "" {
		t.Fatal("wildcard origin must not allow credentials")
	}
}
