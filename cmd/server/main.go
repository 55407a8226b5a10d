package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mesaesabores/mesa-backend/internal/config"
	"github.com/mesaesabores/mesa-backend/internal/handlers"
	"github.com/mesaesabores/mesa-backend/internal/menu"
	"github.com/mesaesabores/mesa-backend/internal/middleware"
	"github.com/mesaesabores/mesa-backend/internal/repository"
	"github.com/mesaesabores/mesa-backend/internal/service"
	"github.com/mesaesabores/mesa-backend/internal/whatsapp"
	"github.com/mesaesabores/mesa-backend/pkg/logger"
)

func main() {
	// Load configuration from environment
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	log.Info("starting order and status engine",
		"service", cfg.Service.Name,
		"port", cfg.Server.Port,
		"host", cfg.Server.Host,
		"log_level", cfg.LogLevel,
	)

	// Order store: Postgres when DATABASE_URL is set, in-memory otherwise
	var orderRepo service.OrderRepository
	if cfg.Database.URL != "" {
		pg, err := repository.OpenPostgres(cfg.Database.URL)
		if err != nil {
			log.Error("failed to connect to postgres", "error", err)
			os.Exit(1)
		}
		defer pg.Close()
		orderRepo = pg
		log.Info("using postgres order store")
	} else {
		orderRepo = repository.NewInMemoryOrderRepository()
		log.Info("using in-memory order store")
	}

	// Static weekly catalog and size pricing
	catalog := menu.NewCatalog()
	prices := menu.DefaultPrices()

	formatter := whatsapp.NewFormatter(cfg.Service.Name, cfg.Service.VendorWhatsApp, cfg.Service.PixKey)

	// Initialize services
	orderService := service.NewOrderService(orderRepo, formatter)
	cartService := service.NewCartService(repository.NewCartStore(), catalog, prices, orderService)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.Service.Name, log)
	menuHandler := handlers.NewMenuHandler(catalog, prices, log)
	cartHandler := handlers.NewCartHandler(cartService, log)
	orderHandler := handlers.NewOrderHandler(orderService, log)

	// Create router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "api_key"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Register health check endpoint
	r.Get("/health", healthHandler.ServeHTTP)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Menu endpoints
		r.Get("/menu", menuHandler.Week)
		r.Get("/menu/today", menuHandler.Today)
		r.Get("/menu/{day}", menuHandler.Day)
		r.Get("/prices", menuHandler.Prices)

		// Cart endpoints
		r.Route("/cart", func(r chi.Router) {
			r.Post("/", cartHandler.Create)
			r.Get("/{cartId}", cartHandler.Get)
			r.Post("/{cartId}/items", cartHandler.AddItem)
			r.Put("/{cartId}/items/{itemId}", cartHandler.UpdateItem)
			r.Delete("/{cartId}/items/{itemId}", cartHandler.RemoveItem)
			r.Post("/{cartId}/checkout", cartHandler.Checkout)
		})

		// Order endpoints
		r.Route("/orders", func(r chi.Router) {
			r.Post("/", orderHandler.Create)
			r.Get("/", orderHandler.List)
			r.Get("/stats", orderHandler.Stats)
			r.Get("/{orderId}", orderHandler.Get)
			r.Get("/{orderId}/whatsapp-message", orderHandler.WhatsAppMessage)

			// Status changes are a vendor concern
			r.Group(func(r chi.Router) {
				r.Use(middleware.APIKeyAuth(cfg.Auth))
				r.Put("/{orderId}/status", orderHandler.UpdateStatus)
				r.Post("/{orderId}/advance", orderHandler.Advance)
			})
		})

		// Vendor dashboard endpoints
		r.Route("/vendor", func(r chi.Router) {
			r.Use(middleware.APIKeyAuth(cfg.Auth))
			r.Get("/orders", orderHandler.List)
		})
	})

	// Create HTTP server
	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info("server listening", "address", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("server stopped gracefully")
}
