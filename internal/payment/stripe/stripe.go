package stripe

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/utafrali/AngelsParadise/internal/payment"
	"github.com/utafrali/AngelsParadise/pkg/httpclient"
)

const intentsPath = "/v1/payment_intents"

// Config holds Stripe API settings.
type Config struct {
	SecretKey string
	BaseURL   string
}

// Provider creates payment intents through the Stripe REST API.
type Provider struct {
	client httpclient.Doer
	cfg    Config
	logger *slog.Logger
}

// NewProvider creates a Stripe provider. client is normally a
// circuit-breaker client wrapping httpclient.New.
func NewProvider(client httpclient.Doer, cfg Config, logger *slog.Logger) *Provider {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Provider{client: client, cfg: cfg, logger: logger}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "stripe"
}

type intentResponse struct {
	ID           string `json:"id"`
	ClientSecret string `json:"client_secret"`
	Status       string `json:"status"`
}

// CreatePaymentIntent posts a form-encoded payment intent with automatic
// payment methods enabled.
func (p *Provider) CreatePaymentIntent(ctx context.Context, input *payment.IntentInput) (*payment.Intent, error) {
	form := url.Values{}
	form.Set("amount", strconv.FormatInt(input.Amount, 10))
	form.Set("currency", strings.ToLower(input.Currency))
	form.Set("automatic_payment_methods[enabled]", "true")
	if input.Description != "" {
		form.Set("description", input.Description)
	}
	keys := make([]string, 0, len(input.Metadata))
	for k := range input.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		form.Set("metadata["+k+"]", input.Metadata[k])
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.cfg.BaseURL+intentsPath, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.cfg.SecretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("stripe create payment intent: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, httpclient.ParseResponseError(resp, "stripe")
	}
	defer func() { _ = resp.Body.Close() }()

	var body intentResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode stripe response: %w", err)
	}
	if body.ClientSecret == "" {
		return nil, fmt.Errorf("stripe response for %s has no client secret", body.ID)
	}

	p.logger.InfoContext(ctx, "payment intent created",
		slog.String("intent_id", body.ID),
		slog.Int64("amount", input.Amount),
		slog.String("currency", strings.ToLower(input.Currency)),
	)

	return &payment.Intent{
		ID:           body.ID,
		ClientSecret: body.ClientSecret,
		Status:       body.Status,
	}, nil
}
