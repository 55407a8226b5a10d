package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mesaesabores/mesa-backend/internal/menu"
	"github.com/mesaesabores/mesa-backend/internal/repository"
	"github.com/mesaesabores/mesa-backend/internal/service"
	"github.com/mesaesabores/mesa-backend/internal/whatsapp"
	"github.com/mesaesabores/mesa-backend/pkg/logger"
)

// 2025-06-02 is a Monday (segunda).
var cartTestToday = time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)

func newCartTestServer() *chi.Mux {
	repo := repository.NewInMemoryOrderRepository()
	formatter := whatsapp.NewFormatter("Mesa e Sabores", "5532984218936", "32984218936")
	orders := service.NewOrderService(repo, formatter)
	carts := service.NewCartService(repository.NewCartStore(), menu.NewCatalog(), menu.DefaultPrices(), orders).
		WithClock(func() time.Time { return cartTestToday })
	handler := NewCartHandler(carts, logger.New("error"))

	r := chi.NewRouter()
	r.Post("/api/cart", handler.Create)
	r.Get("/api/cart/{cartId}", handler.Get)
	r.Post("/api/cart/{cartId}/items", handler.AddItem)
	r.Put("/api/cart/{cartId}/items/{itemId}", handler.UpdateItem)
	r.Delete("/api/cart/{cartId}/items/{itemId}", handler.RemoveItem)
	r.Post("/api/cart/{cartId}/checkout", handler.Checkout)
	return r
}

type cartTestView struct {
	CartID string `json:"cartId"`
	Items  []struct {
		CartID     string `json:"cartId"`
		Title      string `json:"title"`
		Quantity   int    `json:"quantity"`
		TotalPrice string `json:"totalPrice"`
	} `json:"items"`
	TotalPrice string `json:"totalPrice"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartTestView {
	t.Helper()
	var view cartTestView
	if err := json.NewDecoder(w.Body).Decode(&view); err != nil {
		t.Fatalf("decode cart view: %v", err)
	}
	return view
}

func createCart(t *testing.T, router http.Handler) string {
	t.Helper()
	w := postJSON(t, router, "/api/cart", nil)
	if w.Code != http.StatusCreated {
		t.Fatalf("create cart: expected 201, got %d", w.Code)
	}
	return decodeCart(t, w).CartID
}

func addItemBody(day, optionID string, quantity int, size string) map[string]interface{} {
	return map[string]interface{}{
		"day":      day,
		"optionId": optionID,
		"quantity": quantity,
		"size":     size,
	}
}

func TestCartFlow(t *testing.T) {
	router := newCartTestServer()
	cartID := createCart(t, router)

	// Add today's option.
	w := postJSON(t, router, "/api/cart/"+cartID+"/items", addItemBody("segunda", "segunda_opcao_1", 2, "M"))
	if w.Code != http.StatusOK {
		t.Fatalf("add item: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	view := decodeCart(t, w)
	if len(view.Items) != 1 {
		t.Fatalf("expected 1 item, got %d", len(view.Items))
	}
	if view.TotalPrice != "40" {
		t.Errorf("total = %s, want 40", view.TotalPrice)
	}

	// Update quantity.
	itemID := view.Items[0].CartID
	body, _ := json.Marshal(map[string]int{"quantity": 3})
	req := httptest.NewRequest(http.MethodPut, "/api/cart/"+cartID+"/items/"+itemID, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("update item: expected 200, got %d", rec.Code)
	}
	view = decodeCart(t, rec)
	if view.Items[0].Quantity != 3 {
		t.Errorf("quantity = %d, want 3", view.Items[0].Quantity)
	}

	// Remove.
	req = httptest.NewRequest(http.MethodDelete, "/api/cart/"+cartID+"/items/"+itemID, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("remove item: expected 200, got %d", rec.Code)
	}
	view = decodeCart(t, rec)
	if len(view.Items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(view.Items))
	}
}

func TestAddItemSilentlyRefusesOtherDays(t *testing.T) {
	router := newCartTestServer()
	cartID := createCart(t, router)

	w := postJSON(t, router, "/api/cart/"+cartID+"/items", addItemBody("terca", "terca_opcao_1", 1, "P"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	view := decodeCart(t, w)
	if len(view.Items) != 0 {
		t.Errorf("expected unchanged empty cart, got %d items", len(view.Items))
	}
}

func TestAddItemUnknownOption(t *testing.T) {
	router := newCartTestServer()
	cartID := createCart(t, router)

	w := postJSON(t, router, "/api/cart/"+cartID+"/items", addItemBody("segunda", "nope", 1, "P"))
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCartNotFound(t *testing.T) {
	router := newCartTestServer()

	req := httptest.NewRequest(http.MethodGet, "/api/cart/missing", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestCheckoutFromCart(t *testing.T) {
	router := newCartTestServer()
	cartID := createCart(t, router)

	postJSON(t, router, "/api/cart/"+cartID+"/items", addItemBody("segunda", "segunda_opcao_1", 2, "M"))

	w := postJSON(t, router, "/api/cart/"+cartID+"/checkout", map[string]string{
		"customer_name":     "Maria Silva",
		"customer_whatsapp": "(32) 98421-0000",
		"customer_address":  "Rua das Flores, 100",
		"payment_method":    "pix",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		OrderID         string `json:"order_id"`
		WhatsAppSuccess bool   `json:"whatsapp_success"`
	}
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OrderID == "" || !resp.WhatsAppSuccess {
		t.Errorf("unexpected checkout response: %+v", resp)
	}

	// The cart session is gone after checkout.
	req := httptest.NewRequest(http.MethodGet, "/api/cart/"+cartID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404 after checkout, got %d", rec.Code)
	}
}

func TestCheckoutValidation(t *testing.T) {
	router := newCartTestServer()
	cartID := createCart(t, router)

	postJSON(t, router, "/api/cart/"+cartID+"/items", addItemBody("segunda", "segunda_opcao_1", 1, "P"))

	w := postJSON(t, router, "/api/cart/"+cartID+"/checkout", map[string]string{
		"customer_name":     "Maria Silva",
		"customer_whatsapp": "32984210000",
		"payment_method":    "pix",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}

	// The cart survives a validation failure.
	req := httptest.NewRequest(http.MethodGet, "/api/cart/"+cartID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected cart to survive, got %d", rec.Code)
	}
}
