package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/utafrali/AngelsParadise/internal/payment"
	apperrors "github.com/utafrali/AngelsParadise/pkg/errors"
	"github.com/utafrali/AngelsParadise/pkg/validator"
)

// CreatePaymentIntentInput holds the parameters for a payment intent. Amount
// is in minor units.
type CreatePaymentIntentInput struct {
	Amount   int64  `json:"amount" validate:"gt=0"`
	Currency string `json:"currency" validate:"len=3"`
}

// PaymentService opens payment intents with the configured provider.
type PaymentService struct {
	provider payment.Provider
	logger   *slog.Logger
}

// NewPaymentService creates a new payment service.
func NewPaymentService(provider payment.Provider, logger *slog.Logger) *PaymentService {
	return &PaymentService{
		provider: provider,
		logger:   logger,
	}
}

// CreatePaymentIntent returns a provider intent whose client secret the
// storefront uses to confirm the payment.
func (s *PaymentService) CreatePaymentIntent(ctx context.Context, input *CreatePaymentIntentInput) (*payment.Intent, error) {
	if err := validator.Validate(input); err != nil {
		return nil, apperrors.InvalidInput(err.Error())
	}

	intent, err := s.provider.CreatePaymentIntent(ctx, &payment.IntentInput{
		Amount:   input.Amount,
		Currency: strings.ToLower(input.Currency),
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			return nil, err
		}
		return nil, apperrors.PaymentFailed("failed to create payment intent", err)
	}

	s.logger.InfoContext(ctx, "payment intent created",
		slog.String("provider", s.provider.Name()),
		slog.String("intent_id", intent.ID),
		slog.Int64("amount", input.Amount),
	)

	return intent, nil
}
