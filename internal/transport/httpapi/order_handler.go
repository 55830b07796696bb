package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdemo/internal/domain"
	"github.com/vladislavdragonenkov/orderdemo/internal/service/order"
)

// OrderHandler обрабатывает REST-операции над заказами.
type OrderHandler struct {
	service *order.Service
	logger  *log.Entry
}

// NewOrderHandler конструирует обработчик заказов.
func NewOrderHandler(service *order.Service, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.WithField("component", "order-handler")
	}
	return &OrderHandler{service: service, logger: logger}
}

// Create обрабатывает POST /api/orders.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items, customer, details := validateCreateOrder(req)
	if details != nil {
		h.logger.WithField("field_errors", len(details.FieldErrors)).Info("order validation failed")
		writeValidationError(w, details)
		return
	}

	created, err := h.service.Create(r.Context(), items, customer)
	if err != nil {
		// Нерешённая ссылка на меню — 400 с текстом, называющим позицию.
		if errors.Is(err, domain.ErrMenuItemNotFound) {
			writeError(w, http.StatusBadRequest, capitalizeMenuError(err))
			return
		}
		h.logger.WithError(err).Error("failed to create order")
		writeError(w, http.StatusBadRequest, "Failed to create order")
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// Get обрабатывает GET /api/orders/{id}.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	found, err := h.service.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, found)
}

// List обрабатывает GET /api/orders.
func (h *OrderHandler) List(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.service.List())
}

// UpdateStatus обрабатывает PATCH /api/orders/{id}/status.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	status, details := validateUpdateStatus(req)
	if details != nil {
		writeValidationError(w, details)
		return
	}

	updated, err := h.service.UpdateStatus(chi.URLParam(r, "id"), status)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			writeError(w, http.StatusNotFound, "Order not found")
			return
		}
		h.logger.WithError(err).Error("failed to update order status")
		writeError(w, http.StatusBadRequest, "Failed to update order status")
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// capitalizeMenuError приводит доменный текст "menu item not found: X"
// к API-формату "Menu item not found: X".
func capitalizeMenuError(err error) string {
	var notFound *domain.MenuItemNotFoundError
	if errors.As(err, &notFound) {
		return "Menu item not found: " + notFound.ID
	}
	return "Menu item not found"
}
