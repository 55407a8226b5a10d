package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mesaesabores/mesa-backend/internal/order"
	"github.com/mesaesabores/mesa-backend/internal/service"
)

// OrderHandler handles order intake and the vendor-facing order views.
type OrderHandler struct {
	orders *service.OrderService
	logger *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(orders *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders: orders,
		logger: logger,
	}
}

// createOrderRequest is the raw submission payload sent by the customer
// UI. TotalPrice is accepted for shape compatibility but never trusted;
// the total is recomputed from the items.
type createOrderRequest struct {
	CustomerName     string          `json:"customer_name"`
	CustomerWhatsApp string          `json:"customer_whatsapp"`
	CustomerAddress  string          `json:"customer_address"`
	PaymentMethod    string          `json:"payment_method"`
	Items            []order.Item    `json:"items"`
	TotalPrice       json.RawMessage `json:"total_price"`
}

// createOrderResponse mirrors the contract the customer UI expects.
type createOrderResponse struct {
	OrderID         string `json:"order_id,omitempty"`
	Message         string `json:"message"`
	WhatsAppURL     string `json:"whatsapp_url"`
	WhatsAppSuccess bool   `json:"whatsapp_success"`
	Error           string `json:"error,omitempty"`
}

// Create handles POST /api/orders
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode order request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	customer := order.Customer{
		Name:     req.CustomerName,
		WhatsApp: req.CustomerWhatsApp,
		Address:  req.CustomerAddress,
	}

	sub, err := order.NewSubmission(customer, order.PaymentMethod(req.PaymentMethod), req.Items)
	if err != nil {
		h.logger.Warn("order submission rejected", "error", err)
		WriteError(w, http.StatusBadRequest, validationMessage(err), h.logger)
		return
	}

	result, err := h.orders.Create(r.Context(), sub)
	if err != nil {
		writeCreateFailure(w, "", result, err, h.logger)
		return
	}

	h.logger.Info("order created", "order_id", result.OrderID, "items_count", len(sub.Items))
	WriteJSON(w, http.StatusCreated, createOrderResponse{
		OrderID:         result.OrderID,
		Message:         result.Message,
		WhatsAppURL:     result.WhatsAppURL,
		WhatsAppSuccess: result.Notified,
	}, h.logger)
}

// List handles GET /api/orders and GET /api/vendor/orders
// Accepts an optional ?status= filter.
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	statusFilter := r.URL.Query().Get("status")

	orders, err := h.orders.List(r.Context(), statusFilter)
	if err != nil {
		if errors.Is(err, order.ErrUnknownStatus) {
			WriteError(w, http.StatusBadRequest, "Unknown status filter", h.logger)
			return
		}
		h.logger.Error("failed to list orders", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	if orders == nil {
		orders = []order.Order{}
	}
	WriteJSON(w, http.StatusOK, map[string]interface{}{"orders": orders}, h.logger)
}

// Get handles GET /api/orders/{orderId}
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	o, err := h.orders.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.logger)
			return
		}
		h.logger.Error("failed to get order", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, o, h.logger)
}

// Stats handles GET /api/orders/stats
func (h *OrderHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.Stats(r.Context())
	if err != nil {
		h.logger.Error("failed to compute order stats", "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"stats": stats}, h.logger)
}

// updateStatusRequest carries the vendor's direct status selection.
type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles PUT /api/orders/{orderId}/status
// This is the direct-set capability: any of the six statuses may be
// assigned regardless of the current one.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode status request", "error", err)
		WriteError(w, http.StatusBadRequest, "Invalid request body", h.logger)
		return
	}

	status, err := order.ParseStatus(req.Status)
	if err != nil {
		WriteError(w, http.StatusBadRequest, "Unknown status", h.logger)
		return
	}

	o, err := h.orders.SetStatus(r.Context(), orderID, status)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.logger)
			return
		}
		h.logger.Error("failed to update order status", "order_id", orderID, "status", status, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	h.logger.Info("order status updated", "order_id", orderID, "status", o.Status)
	WriteJSON(w, http.StatusOK, o, h.logger)
}

// Advance handles POST /api/orders/{orderId}/advance
// Single-step transition along the canonical flow.
func (h *OrderHandler) Advance(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	o, err := h.orders.Advance(r.Context(), orderID)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrOrderNotFound):
			WriteError(w, http.StatusNotFound, "Order not found", h.logger)
		case errors.Is(err, order.ErrAlreadyDelivered):
			WriteError(w, http.StatusConflict, "Order is already delivered", h.logger)
		default:
			h.logger.Error("failed to advance order", "order_id", orderID, "error", err)
			WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		}
		return
	}

	h.logger.Info("order advanced", "order_id", orderID, "status", o.Status)
	WriteJSON(w, http.StatusOK, o, h.logger)
}

// WhatsAppMessage handles GET /api/orders/{orderId}/whatsapp-message
func (h *OrderHandler) WhatsAppMessage(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderId")

	message, link, err := h.orders.NotificationMessage(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, order.ErrOrderNotFound) {
			WriteError(w, http.StatusNotFound, "Order not found", h.logger)
			return
		}
		h.logger.Error("failed to build whatsapp message", "order_id", orderID, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"message":      message,
		"whatsapp_url": link,
	}, h.logger)
}

// writeCreateFailure reports a failed order creation without losing the
// submission: when the store rejected the order the response still
// carries the formatted message and deep link for the manual fallback.
func writeCreateFailure(w http.ResponseWriter, cartID string, result *service.CreateResult, err error, logger *slog.Logger) {
	var validationErr error
	for _, known := range []error{
		order.ErrEmptyCart, order.ErrMissingName, order.ErrMissingWhatsApp,
		order.ErrMissingAddress, order.ErrMissingPayment,
	} {
		if errors.Is(err, known) {
			validationErr = known
			break
		}
	}
	if validationErr != nil {
		logger.Warn("order submission rejected", "cart_id", cartID, "error", err)
		WriteError(w, http.StatusBadRequest, validationMessage(validationErr), logger)
		return
	}

	if result != nil {
		// Store failure after successful validation: degrade to the
		// manual notification path.
		logger.Error("order store rejected submission", "cart_id", cartID, "error", err)
		WriteJSON(w, http.StatusBadGateway, createOrderResponse{
			Message:         result.Message,
			WhatsAppURL:     result.WhatsAppURL,
			WhatsAppSuccess: false,
			Error:           "Failed to store order; use the WhatsApp link to send it manually",
		}, logger)
		return
	}

	logger.Error("failed to create order", "cart_id", cartID, "error", err)
	WriteError(w, http.StatusNotFound, "Cart not found", logger)
}

// validationMessage maps assembly errors to operator-facing text.
func validationMessage(err error) string {
	switch {
	case errors.Is(err, order.ErrEmptyCart):
		return "Order must contain at least one item"
	case errors.Is(err, order.ErrMissingName):
		return "Customer name is required"
	case errors.Is(err, order.ErrMissingWhatsApp):
		return "Customer WhatsApp is required"
	case errors.Is(err, order.ErrMissingAddress):
		return "Customer address is required"
	case errors.Is(err, order.ErrMissingPayment):
		return "Payment method is required"
	default:
		return "Invalid order submission"
	}
}
