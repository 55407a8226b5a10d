// Package poller implements the vendor monitor's fetch loop: periodic
// order-list refreshes with at most one request in flight. A manual
// refresh or tick arriving while a fetch is outstanding is dropped
// rather than queued.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/mesaesabores/mesa-backend/internal/order"
)

// FetchFunc retrieves the current order list.
type FetchFunc func(ctx context.Context) ([]order.Order, error)

// ApplyFunc receives each fetch result. On a fetch error the orders
// slice is nil; the consumer keeps its last-known list.
type ApplyFunc func(orders []order.Order, err error)

// Poller drives periodic fetches and manual refreshes.
type Poller struct {
	interval time.Duration
	fetch    FetchFunc
	apply    ApplyFunc

	refresh chan struct{}

	mu       sync.Mutex
	inFlight bool
}

// New creates a poller that calls fetch every interval and hands each
// result to apply.
func New(interval time.Duration, fetch FetchFunc, apply ApplyFunc) *Poller {
	return &Poller{
		interval: interval,
		fetch:    fetch,
		apply:    apply,
		refresh:  make(chan struct{}, 1),
	}
}

// Refresh requests an immediate fetch. It never blocks: if a refresh is
// already pending or a fetch is in flight, the request is coalesced.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Run polls until ctx is cancelled. It performs one fetch immediately,
// then on every tick and every manual refresh.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Poll(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Poll(ctx)
		case <-p.refresh:
			p.Poll(ctx)
		}
	}
}

// Poll starts a fetch unless one is already outstanding. It reports
// whether a fetch was started; the result is delivered to apply
// asynchronously.
func (p *Poller) Poll(ctx context.Context) bool {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return false
	}
	p.inFlight = true
	p.mu.Unlock()

	go func() {
		orders, err := p.fetch(ctx)

		// apply runs before inFlight is released: the next fetch is
		// only admitted once this result has landed, so results are
		// always applied in fetch order.
		p.apply(orders, err)

		p.mu.Lock()
		p.inFlight = false
		p.mu.Unlock()
	}()

	return true
}
