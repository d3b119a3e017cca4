package http

import (
	"log/slog"
	"net/http"

	"github.com/utafrali/AngelsParadise/internal/service"
	"github.com/utafrali/AngelsParadise/pkg/httputil"
	"github.com/utafrali/AngelsParadise/pkg/validator"
)

const msgPaymentFailed = "failed to create payment intent"

// PaymentHandler opens payment intents for checkout.
type PaymentHandler struct {
	service *service.PaymentService
	logger  *slog.Logger
}

// NewPaymentHandler creates a new payment HTTP handler.
func NewPaymentHandler(svc *service.PaymentService, logger *slog.Logger) *PaymentHandler {
	return &PaymentHandler{
		service: svc,
		logger:  logger,
	}
}

// CreatePaymentIntentRequest is the JSON body of
// POST /api/v1/payments/create-payment-intent. Amount is in minor units.
type CreatePaymentIntentRequest struct {
	Amount   int64  `json:"amount" validate:"gt=0"`
	Currency string `json:"currency" validate:"len=3"`
}

// PaymentIntentResponse carries the secret the browser confirms the payment with.
type PaymentIntentResponse struct {
	ClientSecret    string `json:"clientSecret"`
	PaymentIntentID string `json:"paymentIntentId"`
}

// CreatePaymentIntent handles POST /api/v1/payments/create-payment-intent
func (h *PaymentHandler) CreatePaymentIntent(w http.ResponseWriter, r *http.Request) {
	var req CreatePaymentIntentRequest
	if err := validator.DecodeStrict(r.Body, &req); err != nil {
		httputil.WriteValidationError(w, r, err)
		return
	}

	intent, err := h.service.CreatePaymentIntent(r.Context(), &service.CreatePaymentIntentInput{
		Amount:   req.Amount,
		Currency: req.Currency,
	})
	if err != nil {
		httputil.WriteError(w, r, orInternal(err, msgPaymentFailed), h.logger)
		return
	}

	httputil.WriteData(w, http.StatusOK, PaymentIntentResponse{
		ClientSecret:    intent.ClientSecret,
		PaymentIntentID: intent.ID,
	})
}
