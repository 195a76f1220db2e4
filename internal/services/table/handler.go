package table

import (
	"encoding/json"
	"net/http"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
	"github.com/HelloTanvir/scan-and-dine/internal/web"
)

// Handler handles HTTP requests for the table registry
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new table handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{service: service, logger: log}
}

// Register wires the table routes onto the mux
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /tables", web.WithLogging(h.logger, h.CreateTable))
	mux.HandleFunc("GET /tables", web.WithLogging(h.logger, h.ListTables))
	mux.HandleFunc("GET /tables/available", web.WithLogging(h.logger, h.ListAvailable))
	mux.HandleFunc("GET /tables/number/{number}", web.WithLogging(h.logger, h.GetTableByNumber))
	mux.HandleFunc("GET /tables/status/{status}", web.WithLogging(h.logger, h.ListTablesByStatus))
	mux.HandleFunc("GET /tables/{id}", web.WithLogging(h.logger, h.GetTable))
	mux.HandleFunc("GET /tables/{id}/qr-code", web.WithLogging(h.logger, h.GetQRCode))
	mux.HandleFunc("PUT /tables/{id}", web.WithLogging(h.logger, h.UpdateTable))
	mux.HandleFunc("PATCH /tables/{id}/status", web.WithLogging(h.logger, h.UpdateTableStatus))
	mux.HandleFunc("PATCH /tables/{id}/seat", web.WithLogging(h.logger, h.SeatCustomers))
	mux.HandleFunc("PATCH /tables/bulk-status", web.WithLogging(h.logger, h.BulkUpdateStatus))
	mux.HandleFunc("DELETE /tables/{id}", web.WithLogging(h.logger, h.DeleteTable))
}

// CreateTable handles POST /tables
func (h *Handler) CreateTable(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.CreateTableRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	table, err := h.service.Create(r.Context(), &req, requestID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, table)
}

// ListTables handles GET /tables
func (h *Handler) ListTables(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	filter, page := parseTableListQuery(r)
	tables, err := h.service.List(r.Context(), filter, page)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, tables)
}

// ListAvailable handles GET /tables/available
func (h *Handler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	tables, err := h.service.ListAvailable(r.Context())
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, tables)
}

// GetTable handles GET /tables/{id}
func (h *Handler) GetTable(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	table, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, table)
}

// GetTableByNumber handles GET /tables/number/{number}
func (h *Handler) GetTableByNumber(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	table, err := h.service.GetByNumber(r.Context(), r.PathValue("number"))
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, table)
}

// ListTablesByStatus handles GET /tables/status/{status}
func (h *Handler) ListTablesByStatus(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	tables, err := h.service.ListByStatus(r.Context(), r.PathValue("status"))
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, tables)
}

// GetQRCode handles GET /tables/{id}/qr-code
func (h *Handler) GetQRCode(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	data, err := h.service.QRCodeData(r.Context(), id)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]string{"qr_code_data": data})
}

// UpdateTable handles PUT /tables/{id}
func (h *Handler) UpdateTable(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	var req models.UpdateTableRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	table, err := h.service.Update(r.Context(), id, &req, requestID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, table)
}

// UpdateTableStatus handles PATCH /tables/{id}/status
func (h *Handler) UpdateTableStatus(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	var req models.UpdateTableStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	table, err := h.service.UpdateStatus(r.Context(), id, req.Status, requestID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, table)
}

// SeatCustomers handles PATCH /tables/{id}/seat
func (h *Handler) SeatCustomers(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	var req models.SeatCustomersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	table, err := h.service.SeatCustomers(r.Context(), id, &req, requestID)
	if err != nil {
		h.logger.Error("seat_customers_failed", "Failed to seat customers", requestID, err, map[string]interface{}{
			"table_id": id.String(),
		})
		web.WriteStateError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, table)
}

// BulkUpdateStatus handles PATCH /tables/bulk-status
func (h *Handler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.BulkTableStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	tables, err := h.service.BulkUpdateStatus(r.Context(), &req, requestID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, tables)
}

// DeleteTable handles DELETE /tables/{id}
func (h *Handler) DeleteTable(w http.ResponseWriter, r *http.Request) {
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

// parseTableListQuery builds the filter and page from query parameters
func parseTableListQuery(r *http.Request) (models.TableFilter, models.Page) {
	q := r.URL.Query()

	filter := models.TableFilter{
		Number:   q.Get("number"),
		Location: q.Get("location"),
	}
	if raw := q.Get("status"); raw != "" {
		if status, err := models.ParseTableStatus(raw); err == nil {
			filter.Status = &status
		}
	}
	if raw := q.Get("occupied"); raw != "" {
		occupied := raw == "true"
		filter.IsOccupied = &occupied
	}

	page := models.Page{
		Limit:  web.QueryIntDefault(r, "limit", 50),
		Offset: web.QueryIntDefault(r, "offset", 0),
	}
	return filter, page
}
