package mock

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/utafrali/AngelsParadise/internal/payment"
)

// Provider is a mock payment provider that always succeeds.
// It is intended for development and testing purposes.
type Provider struct{}

// NewProvider creates a new mock payment provider.
func NewProvider() *Provider {
	return &Provider{}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "mock"
}

// CreatePaymentIntent returns an intent with a Stripe-shaped client secret.
func (p *Provider) CreatePaymentIntent(_ context.Context, _ *payment.IntentInput) (*payment.Intent, error) {
	id := "pi_mock_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	return &payment.Intent{
		ID:           id,
		ClientSecret: id + "_secret_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:16],
		Status:       "requires_payment_method",
	}, nil
}
