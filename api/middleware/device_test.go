package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireDeviceIDMissingHeader(t *testing.T) {
	handler := RequireDeviceID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestRequireDeviceIDSeedsContext(t *testing.T) {
	var captured string
	handler := RequireDeviceID(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = DeviceIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	req.Header.Set("X-Device-Id", " device-42 ")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if captured != "device-42" {
		t.Fatalf("expected trimmed device id, got %q", captured)
	}
}
