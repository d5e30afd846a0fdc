package service

import "context"

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// Role identifica o autor de uma mensagem enviada ao provedor de completion
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message é uma mensagem da conversa enviada ao provedor de completion
type Message struct {
	Role    Role
	Content string
}

// CompletionProvider gera uma resposta de texto para uma lista ordenada de mensagens
type CompletionProvider interface {
	Generate(ctx context.Context, messages []Message, model string) (string, error)
}

// BillingProvider cria clientes e assinaturas no provedor de cobrança
type BillingProvider interface {
	// CreateCustomer cria o cliente e devolve o seu identificador
	CreateCustomer(ctx context.Context, email, paymentSource string) (string, error)
	// CreateSubscription assina o cliente no preço informado e devolve o identificador da assinatura
	CreateSubscription(ctx context.Context, customerID, priceID string) (string, error)
}
