package order

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/HelloTanvir/scan-and-dine/internal/apperrors"
	"github.com/HelloTanvir/scan-and-dine/internal/logger"
	"github.com/HelloTanvir/scan-and-dine/internal/models"
	"github.com/HelloTanvir/scan-and-dine/internal/web"
)

// Handler handles HTTP requests for the order engine
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register sets up the order routes
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /orders", web.WithLogging(h.logger, h.CreateOrder))
	mux.HandleFunc("GET /orders", web.WithLogging(h.logger, h.ListOrders))
	mux.HandleFunc("GET /orders/{id}", web.WithLogging(h.logger, h.GetOrder))
	mux.HandleFunc("GET /orders/status/{status}", web.WithLogging(h.logger, h.ListOrdersByStatus))
	mux.HandleFunc("GET /orders/kitchen/active", web.WithLogging(h.logger, h.KitchenActiveOrders))
	mux.HandleFunc("GET /orders/kitchen/ready", web.WithLogging(h.logger, h.ReadyOrders))
	mux.HandleFunc("GET /orders/table/{tableId}", web.WithLogging(h.logger, h.ListOrdersByTable))
	mux.HandleFunc("PATCH /orders/{id}/status", web.WithLogging(h.logger, h.UpdateStatus))
	mux.HandleFunc("PATCH /orders/bulk-status", web.WithLogging(h.logger, h.BulkUpdateStatus))
	mux.HandleFunc("DELETE /orders/{id}", web.WithLogging(h.logger, h.DeleteOrder))
}

// CreateOrder handles POST /orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.CreateOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &req, requestID)
	if err != nil {
		h.logger.Error("order_creation_failed", "Failed to create order", requestID, err, map[string]interface{}{
			"customer_name": req.CustomerName,
			"table_id":      req.TableID,
		})
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, order)
}

// ListOrders handles GET /orders
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	filter, page, err := parseOrderListQuery(r)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	orders, err := h.service.ListOrders(r.Context(), filter, page)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, orders)
}

// GetOrder handles GET /orders/{id}
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	order, err := h.service.GetOrder(r.Context(), id)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, order)
}

// ListOrdersByStatus handles GET /orders/status/{status}
func (h *Handler) ListOrdersByStatus(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	orders, err := h.service.ListOrdersByStatus(r.Context(), r.PathValue("status"))
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, orders)
}

// KitchenActiveOrders handles GET /orders/kitchen/active
func (h *Handler) KitchenActiveOrders(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	orders, err := h.service.KitchenActiveOrders(r.Context())
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, orders)
}

// ReadyOrders handles GET /orders/kitchen/ready
func (h *Handler) ReadyOrders(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	orders, err := h.service.ReadyOrders(r.Context())
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, orders)
}

// ListOrdersByTable handles GET /orders/table/{tableId}
func (h *Handler) ListOrdersByTable(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	tableID, err := web.PathUUID(r, "tableId")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	orders, err := h.service.ListOrdersByTable(r.Context(), tableID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, orders)
}

// UpdateStatus handles PATCH /orders/{id}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	var req models.UpdateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	order, err := h.service.UpdateStatus(r.Context(), id, req.Status, requestID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, order)
}

// BulkUpdateStatus handles PATCH /orders/bulk-status
func (h *Handler) BulkUpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	var req models.BulkOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, requestID, apperrors.InvalidInput("invalid JSON format"))
		return
	}

	orders, err := h.service.BulkUpdateStatus(r.Context(), &req, requestID)
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, orders)
}

// DeleteOrder handles DELETE /orders/{id}
func (h *Handler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	requestID := web.RequestID(r)

	id, err := web.PathUUID(r, "id")
	if err != nil {
		web.WriteError(w, requestID, err)
		return
	}

	if err := h.service.DeleteOrder(r.Context(), id, requestID); err != nil {
		web.WriteStateError(w, requestID, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseOrderListQuery builds the filter and page from query parameters
func parseOrderListQuery(r *http.Request) (models.OrderFilter, models.Page, error) {
	q := r.URL.Query()
	filter := models.OrderFilter{
		CustomerName:  q.Get("customer_name"),
		CustomerPhone: q.Get("customer_phone"),
	}

	if raw := q.Get("table_id"); raw != "" {
		tableID, err := uuid.Parse(raw)
		if err != nil {
			return filter, models.Page{}, apperrors.InvalidInput("invalid table_id: %s", raw)
		}
		filter.TableID = &tableID
	}
	if raw := q.Get("status"); raw != "" {
		status, err := models.ParseOrderStatus(raw)
		if err != nil {
			return filter, models.Page{}, err
		}
		filter.Status = &status
	}
	if raw := q.Get("priority"); raw != "" {
		priority, err := models.ParseOrderPriority(raw)
		if err != nil {
			return filter, models.Page{}, err
		}
		filter.Priority = &priority
	}
	if raw := q.Get("payment_status"); raw != "" {
		paymentStatus, err := models.ParsePaymentStatus(raw)
		if err != nil {
			return filter, models.Page{}, err
		}
		filter.PaymentStatus = &paymentStatus
	}

	page := models.Page{
		Limit:  web.QueryIntDefault(r, "limit", 20),
		Offset: web.QueryIntDefault(r, "offset", 0),
	}
	return filter, page, nil
}
