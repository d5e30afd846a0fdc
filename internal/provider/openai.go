package provider

import (
	"context"
	"errors"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"github.com/vitormoschetta/go-gateway/internal/service"
)

// ErrNoChoices indica que a OpenAI respondeu sem nenhuma escolha
var ErrNoChoices = errors.New("no response choices returned")

// OpenAI implementa service.CompletionProvider com a API de chat completions
type OpenAI struct {
	client *openai.Client
}

var _ service.CompletionProvider = (*OpenAI)(nil)

// NewOpenAI cria o provedor. baseURL vazio usa o endpoint padrão do SDK.
func NewOpenAI(apiKey, baseURL string, httpClient *http.Client) *OpenAI {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if httpClient != nil {
		cfg.HTTPClient = httpClient
	}

	return &OpenAI{client: openai.NewClientWithConfig(cfg)}
}

// Generate envia as mensagens e devolve o conteúdo da primeira escolha
func (p *OpenAI) Generate(ctx context.Context, messages []service.Message, model string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    model,
		Messages: make([]openai.ChatCompletionMessage, len(messages)),
	}
	for i, msg := range messages {
		req.Messages[i] = openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrNoChoices
	}

	return resp.Choices[0].Message.Content, nil
}
