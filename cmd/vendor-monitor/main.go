package main

import (
	"context"
	"flag"
	"log/slog"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/mesaesabores/mesa-backend/internal/client"
	"github.com/mesaesabores/mesa-backend/internal/order"
	"github.com/mesaesabores/mesa-backend/internal/poller"
	"github.com/mesaesabores/mesa-backend/pkg/logger"
)

func main() {
	var (
		addr     = flag.String("addr", "http://localhost:8080", "base URL of the order server")
		apiKey   = flag.String("api-key", "apitest", "vendor API key")
		interval = flag.Duration("interval", 30*time.Second, "polling interval")
		logLevel = flag.String("log-level", "info", "log level (debug, info, warn, error)")
	)
	flag.Parse()

	log := logger.New(*logLevel)
	slog.SetDefault(log)

	log.Info("starting vendor monitor",
		"addr", *addr,
		"interval", interval.String(),
	)

	ordersClient := client.NewOrdersClient(*addr, *apiKey)

	// Last-known status per order id. A failed fetch leaves it untouched
	// so the monitor keeps reporting from the last good list.
	var mu sync.Mutex
	known := make(map[string]order.Status)

	apply := func(orders []order.Order, err error) {
		if err != nil {
			log.Warn("fetch failed, keeping last-known orders", "error", err)
			return
		}

		mu.Lock()
		defer mu.Unlock()

		for i := range orders {
			o := &orders[i]
			prev, seen := known[o.ID]
			switch {
			case !seen:
				log.Info("new order",
					"order_id", o.ID,
					"customer", o.CustomerName,
					"total", o.TotalPrice.StringFixed(2),
					"status", o.Status,
				)
			case prev != o.Status:
				log.Info("order status changed",
					"order_id", o.ID,
					"from", prev,
					"to", o.Status,
					"label", o.Status.DisplayLabel(),
				)
			}
			known[o.ID] = o.Status
		}
	}

	fetch := func(ctx context.Context) ([]order.Order, error) {
		return ordersClient.ListOrders(ctx, "")
	}

	p := poller.New(*interval, fetch, apply)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p.Run(ctx)

	log.Info("vendor monitor stopped")
}
