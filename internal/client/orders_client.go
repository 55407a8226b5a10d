// Package client provides an HTTP client for the vendor-facing order
// endpoints, used by the monitor CLI.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mesaesabores/mesa-backend/internal/order"
)

// OrdersClient talks to a running server's vendor endpoints.
type OrdersClient struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

// NewOrdersClient creates a client for baseURL (e.g. http://localhost:8080).
// The API key is sent in the "api_key" header on every request.
func NewOrdersClient(baseURL, apiKey string) *OrdersClient {
	return &OrdersClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// ListOrders fetches the vendor order list, newest first. An empty
// status fetches every order.
func (c *OrdersClient) ListOrders(ctx context.Context, status string) ([]order.Order, error) {
	endpoint := c.baseURL + "/api/vendor/orders"
	if status != "" {
		endpoint += "?status=" + url.QueryEscape(status)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("api_key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list orders: unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Orders []order.Order `json:"orders"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}

	return payload.Orders, nil
}

// UpdateStatus sets an order's status directly.
func (c *OrdersClient) UpdateStatus(ctx context.Context, orderID string, status order.Status) error {
	body := strings.NewReader(fmt.Sprintf(`{"status":%q}`, status))
	endpoint := c.baseURL + "/api/orders/" + url.PathEscape(orderID) + "/status"

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("api_key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("update status: unexpected status %d", resp.StatusCode)
	}
	return nil
}
