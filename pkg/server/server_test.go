package server

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/plotkit/plotkit/pkg/cache"
)

func postRender(t *testing.T, h http.Handler, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	s := New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("missing X-Request-ID header")
	}
}

func TestRenderReturnsPNG(t *testing.T) {
	s := New()
	rec := postRender(t, s, RenderRequest{
		XS:     []float64{1, 2, 3, 4, 5},
		YS:     []float64{2, 4, 6, 8, 10},
		Width:  320,
		Height: 240,
	})

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, http.StatusOK, rec.Body)
	}
	if got := rec.Header().Get("Content-Type"); got != "image/png" {
		t.Errorf("Content-Type = %q, want image/png", got)
	}

	img, err := png.Decode(rec.Body)
	if err != nil {
		t.Fatalf("response is not decodable PNG: %v", err)
	}
	b := img.Bounds()
	if b.Dx() != 320 || b.Dy() != 240 {
		t.Errorf("image size = %dx%d, want 320x240", b.Dx(), b.Dy())
	}
}

func TestRenderValidationErrors(t *testing.T) {
	s := New()

	tests := []struct {
		name string
		req  RenderRequest
	}{
		{
			name: "empty series",
			req:  RenderRequest{XS: []float64{}, YS: []float64{}},
		},
		{
			name: "mismatched series",
			req:  RenderRequest{XS: []float64{1, 2}, YS: []float64{1}},
		},
		{
			name: "inverted explicit range",
			req: RenderRequest{
				XS: []float64{1, 2}, YS: []float64{1, 2},
				AutoRange: boolPtr(false),
				XMin:      5, XMax: 1, YMin: 0, YMax: 1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postRender(t, s, tt.req)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusBadRequest)
			}
			var body map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("error body is not JSON: %v", err)
			}
			if body["error"] == "" {
				t.Error("error body has no message")
			}
		})
	}
}

func TestRenderRejectsBadJSON(t *testing.T) {
	s := New()
	req := httptest.NewRequest(http.MethodPost, "/render", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
}

func TestRenderCacheHitAndMiss(t *testing.T) {
	s := New(WithCache(cache.NewMemoryCache()))
	body := RenderRequest{
		XS:     []float64{1, 2, 3},
		YS:     []float64{3, 2, 1},
		Width:  200,
		Height: 150,
	}

	first := postRender(t, s, body)
	if first.Code != http.StatusOK {
		t.Fatalf("first status = %d, want %d (body %s)", first.Code, http.StatusOK, first.Body)
	}
	if got := first.Header().Get("X-Cache"); got != "miss" {
		t.Errorf("first X-Cache = %q, want miss", got)
	}

	second := postRender(t, s, body)
	if second.Code != http.StatusOK {
		t.Fatalf("second status = %d, want %d", second.Code, http.StatusOK)
	}
	if got := second.Header().Get("X-Cache"); got != "hit" {
		t.Errorf("second X-Cache = %q, want hit", got)
	}
	if !bytes.Equal(first.Body.Bytes(), second.Body.Bytes()) {
		t.Error("cached response differs from rendered response")
	}
}

func TestRequestIDPassthrough(t *testing.T) {
	s := New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "caller-supplied-id")
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Request-ID"); got != "caller-supplied-id" {
		t.Errorf("X-Request-ID = %q, want caller-supplied-id", got)
	}
}

func TestRequestOptionsDefaults(t *testing.T) {
	opts := RenderRequest{XS: []float64{1}, YS: []float64{1}}.Options()
	if opts.Width != 800 || opts.Height != 600 {
		t.Errorf("default size = %dx%d, want 800x600", opts.Width, opts.Height)
	}
	if !opts.AutoRange {
		t.Error("AutoRange should default to true")
	}

	explicit := RenderRequest{
		XS: []float64{1}, YS: []float64{1},
		AutoRange: boolPtr(false),
		XMin:      0, XMax: 10, YMin: -1, YMax: 1,
	}.Options()
	if explicit.AutoRange {
		t.Error("AutoRange = true, want false")
	}
	if explicit.XMax != 10 || explicit.YMin != -1 {
		t.Errorf("explicit range not carried: %+v", explicit)
	}
}

func boolPtr(b bool) *bool { return &b }
