package service

import (
	"context"
	"errors"
	"time"

	"github.com/mesaesabores/mesa-backend/internal/cart"
	"github.com/mesaesabores/mesa-backend/internal/menu"
	"github.com/mesaesabores/mesa-backend/internal/order"
	"github.com/mesaesabores/mesa-backend/internal/repository"
)

var ErrOptionNotFound = errors.New("menu option not found")

// CartService manages session carts: creation, item mutation against
// the availability rule, and checkout into the order pipeline.
type CartService struct {
	store   *repository.CartStore
	catalog *menu.Catalog
	prices  menu.PricingTable
	orders  *OrderService
	now     func() time.Time
}

// NewCartService creates a new cart service.
func NewCartService(store *repository.CartStore, catalog *menu.Catalog, prices menu.PricingTable, orders *OrderService) *CartService {
	return &CartService{
		store:   store,
		catalog: catalog,
		prices:  prices,
		orders:  orders,
		now:     time.Now,
	}
}

// WithClock replaces the wall clock used to resolve "today". Intended
// for tests; production wiring keeps time.Now.
func (s *CartService) WithClock(now func() time.Time) *CartService {
	s.now = now
	return s
}

// CreateCart starts a new session cart.
func (s *CartService) CreateCart() *cart.Cart {
	c := cart.New(s.prices)
	s.store.Put(c)
	return c
}

// GetCart returns the session cart or repository.ErrCartNotFound.
func (s *CartService) GetCart(cartID string) (*cart.Cart, error) {
	return s.store.Get(cartID)
}

// AddItem resolves the option in the catalog and adds it to the cart.
// Availability is re-validated here, at the mutation boundary, with
// "today" evaluated at call time; an unavailable option leaves the
// cart unchanged and returns a nil line item without error.
func (s *CartService) AddItem(cartID, dayKey, optionID string, quantity int, size, removedIngredients, observations string) (*cart.Cart, *cart.LineItem, error) {
	c, err := s.store.Get(cartID)
	if err != nil {
		return nil, nil, err
	}

	option, ok := s.catalog.Option(dayKey, optionID)
	if !ok {
		return nil, nil, ErrOptionNotFound
	}

	today := menu.CurrentDay(s.now())
	item := c.Add(option, dayKey, today, quantity, size, removedIngredients, observations)
	return c, item, nil
}

// UpdateItemQuantity changes a line item's quantity; zero or less
// removes the item.
func (s *CartService) UpdateItemQuantity(cartID, itemID string, quantity int) (*cart.Cart, error) {
	c, err := s.store.Get(cartID)
	if err != nil {
		return nil, err
	}
	c.UpdateQuantity(itemID, quantity)
	return c, nil
}

// RemoveItem deletes a line item. Idempotent.
func (s *CartService) RemoveItem(cartID, itemID string) (*cart.Cart, error) {
	c, err := s.store.Get(cartID)
	if err != nil {
		return nil, err
	}
	c.Remove(itemID)
	return c, nil
}

// Checkout assembles the cart into a submission and hands it to the
// order pipeline. The cart session ends only when the order was stored;
// on store failure the cart is kept so the customer can retry.
func (s *CartService) Checkout(ctx context.Context, cartID string, customer order.Customer, payment order.PaymentMethod) (*CreateResult, error) {
	c, err := s.store.Get(cartID)
	if err != nil {
		return nil, err
	}

	sub, err := order.Assemble(c, customer, payment)
	if err != nil {
		return nil, err
	}

	result, err := s.orders.Create(ctx, sub)
	if err != nil {
		return result, err
	}

	s.store.Delete(cartID)
	return result, nil
}
