package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mesaesabores/mesa-backend/pkg/logger"
)

func TestHealthCheck(t *testing.T) {
	handler := NewHealthHandler("Mesa e Sabores", logger.New("error"))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var resp HealthResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Service != "Mesa e Sabores" {
		t.Errorf("service = %q", resp.Service)
	}
	if resp.Timestamp.IsZero() {
		t.Error("expected a timestamp")
	}
}
