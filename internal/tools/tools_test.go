package tools_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/vitormoschetta/go-gateway/internal/service"
	"github.com/vitormoschetta/go-gateway/internal/service/mocks"
	"github.com/vitormoschetta/go-gateway/internal/tools"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func connect(t *testing.T, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	ctx := context.Background()

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	_, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := mcp.NewClient(&mcp.Implementation{Name: "test-client", Version: "v0.0.1"}, nil)
	cs, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { cs.Close() })

	return cs
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func newServer(t *testing.T) (*mcp.Server, *mocks.MockCompletionProvider, *mocks.MockBillingProvider) {
	ctrl := gomock.NewController(t)
	completion := mocks.NewMockCompletionProvider(ctrl)
	billing := mocks.NewMockBillingProvider(ctrl)

	server := tools.NewServer(
		service.NewChatService(completion, "gpt-3.5-turbo", discard),
		service.NewSubscriptionService(billing, "price_monthly_subscription", discard),
		"test",
	)
	return server, completion, billing
}

func TestTools_List(t *testing.T) {
	server, _, _ := newServer(t)
	cs := connect(t, server)

	res, err := cs.ListTools(context.Background(), nil)
	require.NoError(t, err)

	names := make([]string, 0, len(res.Tools))
	for _, tool := range res.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"chat", "subscribe"}, names)
}

func TestTools_Chat(t *testing.T) {
	server, completion, _ := newServer(t)
	completion.EXPECT().
		Generate(gomock.Any(), []service.Message{{Role: service.RoleUser, Content: "hello"}}, "gpt-3.5-turbo").
		Return("hi there", nil)
	cs := connect(t, server)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "chat",
		Arguments: map[string]any{"message": "hello"},
	})

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"response": "hi there"}`, textOf(t, res))
}

func TestTools_ChatEmptyMessage(t *testing.T) {
	server, _, _ := newServer(t)
	cs := connect(t, server)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "chat",
		Arguments: map[string]any{"message": ""},
	})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "No message provided", textOf(t, res))
}

func TestTools_SubscribeProviderError(t *testing.T) {
	server, _, billing := newServer(t)
	billing.EXPECT().CreateCustomer(gomock.Any(), "a@b.com", "").
		Return("", errors.New("This customer has no attached payment source"))
	cs := connect(t, server)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "subscribe",
		Arguments: map[string]any{"email": "a@b.com"},
	})

	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Equal(t, "This customer has no attached payment source", textOf(t, res))
}

func TestTools_Subscribe(t *testing.T) {
	server, _, billing := newServer(t)
	billing.EXPECT().CreateCustomer(gomock.Any(), "a@b.com", "tok_123").Return("cus_1", nil)
	billing.EXPECT().CreateSubscription(gomock.Any(), "cus_1", "price_monthly_subscription").Return("sub_1", nil)
	cs := connect(t, server)

	res, err := cs.CallTool(context.Background(), &mcp.CallToolParams{
		Name:      "subscribe",
		Arguments: map[string]any{"email": "a@b.com", "token": "tok_123"},
	})

	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.JSONEq(t, `{"success": true}`, textOf(t, res))
}
