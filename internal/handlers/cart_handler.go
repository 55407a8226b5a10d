package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/mesaesabores/mesa-backend/internal/cart"
	"github.com/mesaesabores/mesa-backend/internal/order"
	"github.com/mesaesabores/mesa-backend/internal/repository"
	"github.com/mesaesabores/mesa-backend/internal/service"
)

// CartHandler exposes the session cart over HTTP.
type CartHandler struct {
	carts  *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:  carts,
		logger: logger,
	}
}

// cartResponse is the wire view of a session cart.
type cartResponse struct {
	CartID     string          `json:"cartId"`
	Items      []cart.LineItem `json:"items"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

func cartView(c *cart.Cart) cartResponse {
	return cartResponse{
		CartID:     c.ID,
		Items:      c.Items(),
		TotalPrice: c.Total(),
	}
}

// Create handles POST /api/cart
func (h *CartHandler) Create(w http.ResponseWriter, r *http.Request) {
	c := h.carts.CreateCart()
	h.logger.Info("cart session started", "cart_id", c.ID)
	WriteJSON(w, http.StatusCreated, cartView(c), h.logger)
}

// Get handles GET /api/cart/{cartId}
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.carts.GetCart(chi.URLParam(r, "cartId"))
	if err != nil {
		WriteError(w, http.StatusNotFound, "Cart not found", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, cartView(c), h.logger)
}

// addItemRequest mirrors the customer UI's add-to-order form.
type addItemRequest struct {
	Day                string `json:"day"`
	OptionID           string `json:"optionId"`
	Quantity           int    `json:"quantity"`
	Size               string `json:"size"`
	RemovedIngredients string `json:"removedIngredients"`
	Observations       string `json:"observations"`
}

// AddItem handles POST /api/cart/{cartId}/items
// An unavailable option is refused silently: the response is the
// unchanged cart. The availability rule always runs here again; the
// client's own gating is not trusted.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode add item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	c, item, err := h.carts.AddItem(cartID, req.Day, req.OptionID, req.Quantity, req.Size, req.RemovedIngredients, req.Observations)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrCartNotFound):
			WriteError(w, http.StatusNotFound, "Cart not found", h.logger)
		case errors.Is(err, service.ErrOptionNotFound):
			WriteError(w, http.StatusNotFound, "Menu option not found", h.logger)
		default:
			h.logger.Error("failed to add cart item", "cart_id", cartID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	if item == nil {
		h.logger.Info("cart add refused", "cart_id", cartID, "option_id", req.OptionID, "day", req.Day)
	}
	WriteJSON(w, http.StatusOK, cartView(c), h.logger)
}

// updateItemRequest carries the new quantity for a line item.
type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

// UpdateItem handles PUT /api/cart/{cartId}/items/{itemId}
// Quantity zero or less removes the item.
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")
	itemID := chi.URLParam(r, "itemId")

	var req updateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode update item request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	c, err := h.carts.UpdateItemQuantity(cartID, itemID, req.Quantity)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Cart not found", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, cartView(c), h.logger)
}

// RemoveItem handles DELETE /api/cart/{cartId}/items/{itemId}
// Removal is idempotent.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")
	itemID := chi.URLParam(r, "itemId")

	c, err := h.carts.RemoveItem(cartID, itemID)
	if err != nil {
		WriteError(w, http.StatusNotFound, "Cart not found", h.logger)
		return
	}
	WriteJSON(w, http.StatusOK, cartView(c), h.logger)
}

// checkoutRequest mirrors the customer UI's checkout form.
type checkoutRequest struct {
	CustomerName     string `json:"customer_name"`
	CustomerWhatsApp string `json:"customer_whatsapp"`
	CustomerAddress  string `json:"customer_address"`
	PaymentMethod    string `json:"payment_method"`
}

// Checkout handles POST /api/cart/{cartId}/checkout
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	cartID := chi.URLParam(r, "cartId")

	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode checkout request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	customer := order.Customer{
		Name:     req.CustomerName,
		WhatsApp: req.CustomerWhatsApp,
		Address:  req.CustomerAddress,
	}

	result, err := h.carts.Checkout(r.Context(), cartID, customer, order.PaymentMethod(req.PaymentMethod))
	if err != nil {
		writeCreateFailure(w, cartID, result, err, h.logger)
		return
	}

	h.logger.Info("order created from cart", "cart_id", cartID, "order_id", result.OrderID)
	WriteJSON(w, http.StatusCreated, createOrderResponse{
		OrderID:         result.OrderID,
		Message:         result.Message,
		WhatsAppURL:     result.WhatsAppURL,
		WhatsAppSuccess: result.Notified,
	}, h.logger)
}
