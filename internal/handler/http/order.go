package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/AngelsParadise/internal/domain"
	"github.com/utafrali/AngelsParadise/internal/service"
	"github.com/utafrali/AngelsParadise/pkg/httputil"
	"github.com/utafrali/AngelsParadise/pkg/validator"
)

// OrderHandler handles HTTP requests for order endpoints.
type OrderHandler struct {
	service *service.OrderService
	logger  *slog.Logger
}

// NewOrderHandler creates a new order HTTP handler.
func NewOrderHandler(svc *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		service: svc,
		logger:  logger,
	}
}

// CreateOrderRequest is the JSON body of POST /api/v1/orders.
type CreateOrderRequest struct {
	User            string             `json:"user" validate:"notblank"`
	Items           []domain.OrderItem `json:"items" validate:"required,min=1,dive"`
	Total           float64            `json:"total" validate:"gte=0"`
	ShippingAddress string             `json:"shippingAddress" validate:"notblank"`
	PaymentID       string             `json:"paymentId"`
	Status          string             `json:"status" validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
}

// UpdateOrderRequest is the JSON body of PUT /api/v1/orders/{id}.
type UpdateOrderRequest struct {
	Status          *string `json:"status" validate:"omitempty,oneof=pending paid shipped delivered cancelled"`
	ShippingAddress *string `json:"shippingAddress"`
	PaymentID       *string `json:"paymentId"`
}

// CreateOrder handles POST /api/v1/orders
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := validator.DecodeStrict(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	order, err := h.service.CreateOrder(r.Context(), &service.CreateOrderInput{
		User:            req.User,
		Items:           req.Items,
		Total:           req.Total,
		ShippingAddress: req.ShippingAddress,
		PaymentID:       req.PaymentID,
		Status:          req.Status,
	})
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to create order"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusCreated, order)
}

// ListOrders handles GET /api/v1/orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to fetch orders"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, orders)
}

// GetOrder handles GET /api/v1/orders/{id}
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to fetch order"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, order)
}

// UpdateOrder handles PUT /api/v1/orders/{id}
func (h *OrderHandler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if err := validator.DecodeStrict(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	order, err := h.service.UpdateOrder(r.Context(), chi.URLParam(r, "id"), domain.OrderPatch{
		Status:          req.Status,
		ShippingAddress: req.ShippingAddress,
		PaymentID:       req.PaymentID,
	})
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to update order"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, order)
}
