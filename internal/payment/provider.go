package payment

import (
	"context"
)

// IntentInput holds the parameters for creating a payment intent.
type IntentInput struct {
	Amount      int64 // minor units
	Currency    string
	Description string
	Metadata    map[string]string
}

// Intent is a payment intent created by the provider. The client secret is
// handed to the browser, which confirms the payment directly with the provider.
type Intent struct {
	ID           string
	ClientSecret string
	Status       string
}

// Provider defines the interface for payment provider integrations.
type Provider interface {
	// Name returns the provider name (e.g., "mock", "stripe").
	Name() string

	// CreatePaymentIntent opens a payment intent for the given amount.
	CreatePaymentIntent(ctx context.Context, input *IntentInput) (*Intent, error)
}
