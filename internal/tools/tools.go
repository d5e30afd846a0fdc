package tools

import (
	"context"
	"errors"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/vitormoschetta/go-gateway/internal/model"
	"github.com/vitormoschetta/go-gateway/internal/service"
)

// Chatter é implementado por service.ChatService
type Chatter interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Subscriber é implementado por service.SubscriptionService
type Subscriber interface {
	Subscribe(ctx context.Context, email, token string) (*service.Subscription, error)
}

type ChatInput struct {
	Message string `json:"message" jsonschema:"the user message sent to the completion model"`
}

type ChatOutput struct {
	Response string `json:"response"`
}

type SubscribeInput struct {
	Email string `json:"email,omitempty" jsonschema:"customer email"`
	Token string `json:"token,omitempty" jsonschema:"payment source token"`
}

type SubscribeOutput struct {
	Success bool `json:"success"`
}

// NewServer cria o servidor MCP com as ferramentas chat e subscribe.
// Os erros seguem o mesmo texto dos endpoints HTTP.
func NewServer(chat Chatter, subscriber Subscriber, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "go-gateway", Version: version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "chat",
		Description: "Send a message to the completion model and return its reply",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in ChatInput) (*mcp.CallToolResult, ChatOutput, error) {
		reply, err := chat.Reply(ctx, in.Message)
		if err != nil {
			if errors.Is(err, service.ErrNoMessage) {
				return nil, ChatOutput{}, errors.New(model.MsgNoMessage)
			}
			return nil, ChatOutput{}, err
		}
		return nil, ChatOutput{Response: reply}, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        "subscribe",
		Description: "Create a billing customer and a recurring subscription on the fixed plan",
	}, func(ctx context.Context, req *mcp.CallToolRequest, in SubscribeInput) (*mcp.CallToolResult, SubscribeOutput, error) {
		if _, err := subscriber.Subscribe(ctx, in.Email, in.Token); err != nil {
			return nil, SubscribeOutput{}, err
		}
		return nil, SubscribeOutput{Success: true}, nil
	})

	return server
}

// Handler expõe o servidor MCP pelo transporte streamable HTTP
func Handler(server *mcp.Server) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)
}
