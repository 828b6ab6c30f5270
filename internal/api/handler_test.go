package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"github.com/eugenenazirov/json-properties/internal/environment"
	"github.com/eugenenazirov/json-properties/internal/flatten"
	"github.com/eugenenazirov/json-properties/internal/propsource"
)

var fixedNow = time.Date(2024, 11, 1, 12, 0, 0, 0, time.UTC)

func newTestEnvironment() *environment.Environment {
	env := environment.New()
	env.AddLast(
		propsource.New("applicationConfig: [file:/conf/a.json]", "file:/conf/a.json", flatten.FlatMap{
			"customize.property.message": "override",
		}),
		propsource.New("applicationConfig: [classpath:/application.json]", "classpath:/application.json", flatten.FlatMap{
			"customize.property.message": "default",
			"server.port":                "8080",
		}),
	)
	return env
}

func setupTestRouter(t *testing.T) http.Handler {
	t.Helper()

	handler := NewHandler(newTestEnvironment(), WithClock(func() time.Time { return fixedNow }))
	logger := zaptest.NewLogger(t)
	return NewRouter(handler, logger, WithLogging(false), WithRateLimit(0, 0))
}

func serve(t *testing.T, router http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequestIDHelpers(t *testing.T) {
	ctx := contextWithRequestID(context.Background(), "abc")
	if got := requestIDFromContext(ctx); got != "abc" {
		t.Fatalf("expected abc, got %s", got)
	}
	if got := requestIDFromContext(context.Background()); got != "" {
		t.Fatalf("expected empty request ID, got %s", got)
	}
	resp := httptest.NewRecorder()
	writeInternalError(resp, assertError("boom"))
	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 status, got %d", resp.Code)
	}
}

type assertError string

func (a assertError) Error() string { return string(a) }

func TestHealthEndpoint(t *testing.T) {
	rec := serve(t, setupTestRouter(t), "/api/health")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp healthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" || resp.Sources != 2 || !resp.Timestamp.Equal(fixedNow) {
		t.Fatalf("unexpected health response %+v", resp)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("expected X-Request-ID header")
	}
}

func TestSourcesEndpoint(t *testing.T) {
	rec := serve(t, setupTestRouter(t), "/api/sources")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp sourcesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(resp.Sources))
	}
	if resp.Sources[0].Origin != "file:/conf/a.json" || resp.Sources[0].Properties != 1 {
		t.Fatalf("unexpected first source %+v", resp.Sources[0])
	}
	if resp.Sources[1].Properties != 2 {
		t.Fatalf("unexpected second source %+v", resp.Sources[1])
	}
}

func TestPropertiesEndpoint(t *testing.T) {
	rec := serve(t, setupTestRouter(t), "/api/properties")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}

	var resp propertiesResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []propertyResponse{
		{Key: "customize.property.message", Value: "override", Source: "applicationConfig: [file:/conf/a.json]", Origin: "file:/conf/a.json"},
		{Key: "server.port", Value: "8080", Source: "applicationConfig: [classpath:/application.json]", Origin: "classpath:/application.json"},
	}
	if len(resp.Properties) != len(want) {
		t.Fatalf("expected %d properties, got %d", len(want), len(resp.Properties))
	}
	for i := range want {
		if resp.Properties[i] != want[i] {
			t.Fatalf("property %d: expected %+v, got %+v", i, want[i], resp.Properties[i])
		}
	}
}

func TestPropertyEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	rec := serve(t, router, "/api/properties/server.port")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	var resp propertyResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Value != "8080" || resp.Origin != "classpath:/application.json" {
		t.Fatalf("unexpected property %+v", resp)
	}

	rec = serve(t, router, "/api/properties/missing.key")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
	var errResp errorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if errResp.Error != "Property not found" {
		t.Fatalf("unexpected error response %+v", errResp)
	}
}

func TestUnknownRoute(t *testing.T) {
	rec := serve(t, setupTestRouter(t), "/api/unknown")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", rec.Code)
	}
}
