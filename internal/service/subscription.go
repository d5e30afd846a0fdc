package service

import (
	"context"
	"log/slog"
)

// Subscription guarda os identificadores criados por uma assinatura bem sucedida
type Subscription struct {
	CustomerID     string
	SubscriptionID string
}

// SubscriptionService cria o cliente e a assinatura recorrente no provedor de cobrança
type SubscriptionService struct {
	billing BillingProvider
	priceID string
	logger  *slog.Logger
}

// NewSubscriptionService cria o serviço de assinatura com o preço fixo informado
func NewSubscriptionService(billing BillingProvider, priceID string, logger *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		billing: billing,
		priceID: priceID,
		logger:  logger,
	}
}

// Subscribe cria o cliente e em seguida a assinatura.
// Se a assinatura falhar o cliente já criado permanece na Stripe; não há rollback.
func (s *SubscriptionService) Subscribe(ctx context.Context, email, token string) (*Subscription, error) {
	customerID, err := s.billing.CreateCustomer(ctx, email, token)
	if err != nil {
		return nil, err
	}

	subscriptionID, err := s.billing.CreateSubscription(ctx, customerID, s.priceID)
	if err != nil {
		s.logger.WarnContext(ctx, "subscription failed after customer creation",
			"customer_id", customerID,
			"price_id", s.priceID,
			"error", err,
		)
		return nil, err
	}

	s.logger.InfoContext(ctx, "subscription created",
		"customer_id", customerID,
		"subscription_id", subscriptionID,
	)

	return &Subscription{CustomerID: customerID, SubscriptionID: subscriptionID}, nil
}
