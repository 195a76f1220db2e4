package menu

import (
	"encoding/json"
	"net/http"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
	"github.com/HelloTanvir/scan-and-dine/internal/web"
)

// Handler handles HTTP requests for the menu catalog
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new menu handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register wires the menu routes onto the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /menu", web.WithLogging(h.logger, h.CreateMenuItem))
	mux.HandleFunc("GET /menu", web.WithLogging(h.logger, h.ListMenuItems))
	mux.HandleFunc("GET /menu/available", web.WithLogging(h.logger, h.ListAvailable))
	mux.HandleFunc("GET /menu/featured", web.WithLogging(h.logger, h.ListFeatured))
	mux.HandleFunc("GET /menu/name/{name}", web.WithLogging(h.logger, h.GetMenuItemByName))
	mux.HandleFunc("GET /menu/category/{category}", web.WithLogging(h.logger, h.ListByCategory))
	mux.HandleFunc("GET /menu/{id}", web.WithLogging(h.logger, h.GetMenuItem))
	mux.HandleFunc("PUT /menu/{id}", web.WithLogging(h.logger, h.UpdateMenuItem))
	mux.HandleFunc("PATCH /menu/{id}/availability", web.WithLogging(h.logger, h.UpdateAvailability))
	mux.HandleFunc("DELETE /menu/{id}", web.WithLogging(h.logger, h.DeleteMenuItem))
}

// CreateMenuItem handles POST /menu
func (h *Handler) CreateMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.CreateMenuItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	item, err := h.service.Create(r.Context(), &req, requestID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, item)
}

// ListMenuItems handles GET /menu
func (h *Handler) ListMenuItems(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	filter, page := parseMenuListQuery(r)
	items, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, items)
}

// ListAvailable handles GET /menu/available
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	items, err := h.service.ListAvailable(r.Context())
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, items)
}

// ListFeatured handles GET /menu/featured
func (h *Handler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	items, err := h.service.ListFeatured(r.Context())
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, items)
}

// ListByCategory handles GET /menu/category/{category}
func (h *Handler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	items, err := h.service.ListByCategory(r.Context(), r.PathValue("category"))
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, items)
}

// GetMenuItem handles GET /menu/{id}
func (h *Handler) GetMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	item, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, item)
}

// GetMenuItemByName handles GET /menu/name/{name}
func (h *Handler) GetMenuItemByName(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	item, err := h.service.GetByName(r.Context(), r.PathValue("name"))
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, item)
}

// UpdateMenuItem handles PUT /menu/{id}
func (h *Handler) UpdateMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	var req models.UpdateMenuItemRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	item, err := h.service.Update(r.Context(), id, &req, requestID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, item)
}

// UpdateAvailability handles PATCH /menu/{id}/availability
func (h *Handler) UpdateAvailability(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	var req models.UpdateMenuAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	item, err := h.service.UpdateAvailability(r.Context(), id, req.IsAvailable, requestID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, item)
}

// DeleteMenuItem handles DELETE /menu/{id}
func (h *Handler) DeleteMenuItem(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	if err := h.service.Delete(r.Context(), id, requestID); err != nil {
		web.WriteStateError(w, requestID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseMenuListQuery builds the filter and page from query parameters
func parseMenuListQuery(r *http.Request) (models.MenuFilter, models.Page) {
	q := r.URL.Query()

	filter := models.MenuFilter{Name: q.Get("name")}
	if raw := q.Get("category"); raw != "" {
		if category, err := models.ParseMenuCategory(raw); err == nil {
			filter.Category = &category
		}
	}
	if raw := q.Get("available"); raw != "" {
		available := raw == "true"
		filter.IsAvailable = &available
	}
	if raw := q.Get("featured"); raw != "" {
		featured := raw == "true"
		filter.IsFeatured = &featured
	}

	page := models.Page{
		Limit:  web.QueryIntDefault(r, "limit", 50),
		Offset: web.QueryIntDefault(r, "offset", 0),
	}
	return filter, page
}
