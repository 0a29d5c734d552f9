package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/fxpulse/internal/domain/dto"
	"github.com/guttosm/fxpulse/internal/domain/models"
)

func TestNewRouter_WiringAndMiddlewares(t *testing.T) {
	gin.SetMode(gin.TestMode)

	svc := &mockDashboard{snapshot: models.RateSnapshot{Base: "USD", Rates: map[string]float64{"EUR": 0.85}}}
	r := NewRouter(NewHandler(svc))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/rates/current?currency=EUR", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}

	var out dto.CurrentRatesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json response: %v", err)
	}
	if out.Base != "USD" || out.Rates["EUR"] != 0.85 {
		t.Fatalf("unexpected body: %+v", out)
	}
}

func TestNewRouter_Routes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockDashboard{}))

	want := map[string]bool{
		"GET /api/v1/years":             true,
		"GET /api/v1/currencies":        true,
		"GET /api/v1/trend":             true,
		"GET /api/v1/basket/currencies": true,
		"POST /api/v1/basket":           true,
		"GET /api/v1/rates/current":     true,
		"GET /swagger/*any":             true,
	}
	for _, ri := range r.Routes() {
		delete(want, ri.Method+" "+ri.Path)
	}
	if len(want) != 0 {
		t.Fatalf("routes not registered: %v", want)
	}
}

func TestNewRouter_UnknownRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := NewRouter(NewHandler(&mockDashboard{}))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/unknown", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
