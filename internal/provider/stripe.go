package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"

	"github.com/vitormoschetta/go-gateway/internal/service"
)

// StripeHTTPTimeout replica o timeout padrão do client HTTP do SDK da Stripe
const StripeHTTPTimeout = 80 * time.Second

// StripeConfig configura o provedor de cobrança
type StripeConfig struct {
	SecretKey  string
	APIURL     string
	HTTPClient *http.Client
	Logger     stripe.LeveledLoggerInterface
}

// Stripe implementa service.BillingProvider
type Stripe struct {
	api *client.API
}

var _ service.BillingProvider = (*Stripe)(nil)

// NewStripe cria o client da Stripe sem retentativas de rede
func NewStripe(cfg StripeConfig) *Stripe {
	backendConfig := &stripe.BackendConfig{
		HTTPClient:        cfg.HTTPClient,
		LeveledLogger:     cfg.Logger,
		MaxNetworkRetries: stripe.Int64(0),
	}
	if cfg.APIURL != "" {
		backendConfig.URL = stripe.String(cfg.APIURL)
	}

	api := &client.API{}
	api.Init(cfg.SecretKey, stripe.NewBackendsWithConfig(backendConfig))

	return &Stripe{api: api}
}

// CreateCustomer cria o cliente. email e paymentSource vazios não são enviados.
func (s *Stripe) CreateCustomer(ctx context.Context, email, paymentSource string) (string, error) {
	params := &stripe.CustomerParams{}
	params.Context = ctx
	if email != "" {
		params.Email = stripe.String(email)
	}
	if paymentSource != "" {
		params.Source = stripe.String(paymentSource)
	}

	customer, err := s.api.Customers.New(params)
	if err != nil {
		return "", toBillingError(err)
	}

	return customer.ID, nil
}

// CreateSubscription assina o cliente em um único item com o preço informado
func (s *Stripe) CreateSubscription(ctx context.Context, customerID, priceID string) (string, error) {
	params := &stripe.SubscriptionParams{
		Customer: stripe.String(customerID),
		Items: []*stripe.SubscriptionItemsParams{
			{Price: stripe.String(priceID)},
		},
	}
	params.Context = ctx

	subscription, err := s.api.Subscriptions.New(params)
	if err != nil {
		return "", toBillingError(err)
	}

	return subscription.ID, nil
}

// BillingError carrega a mensagem de um erro da API da Stripe.
// Error() devolve apenas a mensagem; o *stripe.Error serializa o objeto inteiro em JSON.
type BillingError struct {
	Code       string
	StatusCode int
	RequestID  string
	Message    string
	err        error
}

func (e *BillingError) Error() string {
	return e.Message
}

func (e *BillingError) Unwrap() error {
	return e.err
}

func toBillingError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return &BillingError{
			Code:       string(stripeErr.Code),
			StatusCode: stripeErr.HTTPStatusCode,
			RequestID:  stripeErr.RequestID,
			Message:    stripeErr.Msg,
			err:        err,
		}
	}
	return err
}
