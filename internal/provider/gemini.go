package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/adk/model"
	"google.golang.org/adk/model/gemini"
	"google.golang.org/genai"

	"github.com/vitormoschetta/go-gateway/internal/service"
)

// Gemini implementa service.CompletionProvider sobre o modelo Gemini do ADK
type Gemini struct {
	llm model.LLM
}

var _ service.CompletionProvider = (*Gemini)(nil)

// NewGemini cria o modelo Gemini com a chave da API do Google
func NewGemini(ctx context.Context, apiKey, modelName string, httpClient *http.Client) (*Gemini, error) {
	llm, err := gemini.NewModel(ctx, modelName, &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: httpClient,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create model: %w", err)
	}

	return NewGeminiWithModel(llm), nil
}

// NewGeminiWithModel usa um model.LLM já construído
func NewGeminiWithModel(llm model.LLM) *Gemini {
	return &Gemini{llm: llm}
}

// Generate executa o modelo sem streaming e concatena o texto de todas as partes
func (p *Gemini) Generate(ctx context.Context, messages []service.Message, modelName string) (string, error) {
	llmRequest := &model.LLMRequest{
		Model:    modelName,
		Contents: make([]*genai.Content, 0, len(messages)),
	}

	for _, msg := range messages {
		switch msg.Role {
		case service.RoleSystem:
			llmRequest.Config = &genai.GenerateContentConfig{
				SystemInstruction: genai.NewContentFromText(msg.Content, genai.RoleUser),
			}
		case service.RoleAssistant:
			llmRequest.Contents = append(llmRequest.Contents, genai.NewContentFromText(msg.Content, genai.RoleModel))
		default:
			llmRequest.Contents = append(llmRequest.Contents, genai.NewContentFromText(msg.Content, genai.RoleUser))
		}
	}

	var responseText strings.Builder
	for response, err := range p.llm.GenerateContent(ctx, llmRequest, false) {
		if err != nil {
			return "", err
		}
		if response == nil || response.Content == nil {
			continue
		}
		for _, part := range response.Content.Parts {
			if part != nil && part.Text != "" {
				responseText.WriteString(part.Text)
			}
		}
	}

	return responseText.String(), nil
}
