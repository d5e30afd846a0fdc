package service

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoMessage indica que a requisição de chat chegou sem mensagem
var ErrNoMessage = errors.New("no message provided")

// ChatService encaminha a mensagem do usuário ao provedor de completion
type ChatService struct {
	provider CompletionProvider
	model    string
	logger   *slog.Logger
}

// NewChatService cria o serviço de chat com o modelo fixo informado
func NewChatService(provider CompletionProvider, model string, logger *slog.Logger) *ChatService {
	return &ChatService{
		provider: provider,
		model:    model,
		logger:   logger,
	}
}

// Reply envia a mensagem como única mensagem do usuário e devolve o texto gerado.
// Erros do provedor são devolvidos sem embrulho para que o texto chegue intacto ao cliente.
func (s *ChatService) Reply(ctx context.Context, message string) (string, error) {
	if message == "" {
		return "", ErrNoMessage
	}

	s.logger.DebugContext(ctx, "requesting completion", "model", s.model, "length", len(message))

	reply, err := s.provider.Generate(ctx, []Message{{Role: RoleUser, Content: message}}, s.model)
	if err != nil {
		return "", err
	}

	return reply, nil
}
