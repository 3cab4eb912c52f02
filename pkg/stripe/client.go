package stripe

import (
	"context"
	"errors"
	"strings"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

// Session is the gateway-side payment session a checkout pays against.
// Amount is in minor units.
type Session struct {
	ID       string
	Amount   int64
	Currency string
}

// defines the methods that any of payment client must implement.
type Client interface {
	CreateSession(ctx context.Context, amount int64, currency, receipt string) (*Session, error)
	Ping(ctx context.Context) error
}

// stripeClient is the implementation of the Client interface.
type stripeClient struct {
	api *client.API
}

func NewStripeClient(apiKey string) Client {
	return NewStripeClientWithBackend(apiKey, stripe.GetBackend(stripe.APIBackend))
}

// NewStripeClientWithBackend lets callers point the client at another API host.
func NewStripeClientWithBackend(apiKey string, backend stripe.Backend) Client {
	api := &client.API{}
	api.Init(apiKey, &stripe.Backends{API: backend, Connect: backend, Uploads: backend})

	return &stripeClient{api: api}
}

// CreateSession implements Client.
func (s *stripeClient) CreateSession(ctx context.Context, amount int64, currency, receipt string) (*Session, error) {
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(strings.ToLower(currency)),
	}
	params.Context = ctx

	if receipt != "" {
		params.Description = stripe.String(receipt)
		params.AddMetadata("receipt", receipt)
	}

	intent, err := s.api.PaymentIntents.New(params)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:       intent.ID,
		Amount:   intent.Amount,
		Currency: strings.ToUpper(string(intent.Currency)),
	}, nil
}

// Ping implements Client. Used by the readiness check.
func (s *stripeClient) Ping(ctx context.Context) error {
	params := &stripe.BalanceParams{}
	params.Context = ctx

	_, err := s.api.Balance.Get(params)

	return err
}
