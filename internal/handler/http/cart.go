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

// CartHandler handles HTTP requests for cart endpoints. The cart owner comes
// from the X-User-ID header via UserIDFromHeader.
type CartHandler struct {
	service *service.CartService
	logger  *slog.Logger
}

// NewCartHandler creates a new cart HTTP handler.
func NewCartHandler(svc *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		service: svc,
		logger:  logger,
	}
}

// AddItemRequest is the JSON body of POST /api/v1/cart/items.
type AddItemRequest struct {
	ProductID string  `json:"productId" validate:"notblank"`
	Name      string  `json:"name" validate:"notblank"`
	Image     string  `json:"image"`
	Price     float64 `json:"price" validate:"gte=0"`
	Quantity  int     `json:"quantity" validate:"gte=1,lte=100"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Category  string  `json:"category"`
}

// UpdateQuantityRequest is the JSON body of PUT /api/v1/cart/items/{productId}.
// Size and color select the line; quantity 0 removes it.
type UpdateQuantityRequest struct {
	Size     string `json:"size"`
	Color    string `json:"color"`
	Quantity int    `json:"quantity" validate:"gte=0,lte=100"`
}

// GetCart handles GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	snap, err := h.service.Snapshot(r.Context(), userIDFromContext(r.Context()))
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to fetch cart"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, snap)
}

// AddItem handles POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := validator.DecodeStrict(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	snap, err := h.service.Add(r.Context(), userIDFromContext(r.Context()), &service.AddItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		Image:     req.Image,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Size:      req.Size,
		Color:     req.Color,
		Category:  req.Category,
	})
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to update cart"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, snap)
}

// UpdateItemQuantity handles PUT /api/v1/cart/items/{productId}
func (h *CartHandler) UpdateItemQuantity(w http.ResponseWriter, r *http.Request) {
	var req UpdateQuantityRequest
	if err := validator.DecodeStrict(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	key := domain.LineKey{ProductID: chi.URLParam(r, "productId"), Size: req.Size, Color: req.Color}
	snap, err := h.service.UpdateQuantity(r.Context(), userIDFromContext(r.Context()), key, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to update cart"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, snap)
}

// RemoveItem handles DELETE /api/v1/cart/items/{productId}?size=&color=
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	key := domain.LineKey{
		ProductID: chi.URLParam(r, "productId"),
		Size:      r.URL.Query().Get("size"),
		Color:     r.URL.Query().Get("color"),
	}

	snap, err := h.service.Remove(r.Context(), userIDFromContext(r.Context()), key)
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to update cart"), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, snap)
}

// ClearCart handles DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Clear(r.Context(), userIDFromContext(r.Context())); err != nil {
		httputil.WriteError(w, r, orInternal(err, "failed to clear cart"), h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
