package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/mesaesabores/mesa-backend/internal/menu"
)

// MenuHandler serves the static weekly menu and pricing table.
type MenuHandler struct {
	catalog *menu.Catalog
	prices  menu.PricingTable
	logger  *slog.Logger
	now     func() time.Time
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(catalog *menu.Catalog, prices menu.PricingTable, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		catalog: catalog,
		prices:  prices,
		logger:  logger,
		now:     time.Now,
	}
}

// Week handles GET /api/menu
func (h *MenuHandler) Week(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"days":    h.catalog.Week(),
		"dayKeys": menu.DayKeys,
	}, h.logger)
}

// Day handles GET /api/menu/{day}
func (h *MenuHandler) Day(w http.ResponseWriter, r *http.Request) {
	dayKey := chi.URLParam(r, "day")

	day, err := h.catalog.Day(dayKey)
	if err != nil {
		if errors.Is(err, menu.ErrDayNotFound) {
			WriteError(w, http.StatusNotFound, "Day menu not found", h.logger)
			return
		}
		h.logger.Error("failed to load day menu", "day", dayKey, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, day, h.logger)
}

// Today handles GET /api/menu/today
// "Today" is resolved per request; it is never cached.
func (h *MenuHandler) Today(w http.ResponseWriter, r *http.Request) {
	todayKey := menu.CurrentDay(h.now())

	day, err := h.catalog.Day(todayKey)
	if err != nil {
		h.logger.Error("failed to load today's menu", "day", todayKey, "error", err)
		WriteError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"day":  todayKey,
		"menu": day,
	}, h.logger)
}

// Prices handles GET /api/prices
func (h *MenuHandler) Prices(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, h.prices, h.logger)
}
