package stats

import (
	"net/http"

	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/web"
)

// Handler handles HTTP requests for the statistics endpoints
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new statistics handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register wires the statistics routes onto the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /orders/statistics", web.WithLogging(h.logger, h.OrderStatistics))
	mux.HandleFunc("GET /menu/statistics", web.WithLogging(h.logger, h.MenuStatistics))
	mux.HandleFunc("GET /tables/statistics", web.WithLogging(h.logger, h.TableStatistics))
}

// OrderStatistics handles GET /orders/statistics
func (h *Handler) OrderStatistics(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	stats, err := h.service.OrderStatistics(r.Context())
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, stats)
}

// MenuStatistics handles GET /menu/statistics
func (h *Handler) MenuStatistics(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	stats, err := h.service.MenuStatistics(r.Context())
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, stats)
}

// TableStatistics handles GET /tables/statistics
func (h *Handler) TableStatistics(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	stats, err := h.service.TableStatistics(r.Context())
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, stats)
}
