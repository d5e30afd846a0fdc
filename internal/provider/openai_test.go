package provider

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitormoschetta/go-gateway/internal/service"
)

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

type chatCompletionBody struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestOpenAI_Generate(t *testing.T) {
	var got chatCompletionBody
	var gotAuth, gotReqID string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get(ClientRequestIDHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{
			"id": "chatcmpl-123",
			"object": "chat.completion",
			"model": "gpt-3.5-turbo",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "hi there"}, "finish_reason": "stop"}]
		}`)
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", srv.URL+"/v1", NewHTTPClient(0, discard))
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-42")

	reply, err := p.Generate(ctx, []service.Message{{Role: service.RoleUser, Content: "hello"}}, "gpt-3.5-turbo")

	require.NoError(t, err)
	assert.Equal(t, "hi there", reply)
	assert.Equal(t, "Bearer sk-test", gotAuth)
	assert.Equal(t, "req-42", gotReqID)
	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Equal(t, "hello", got.Messages[0].Content)
}

func TestOpenAI_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"error": {"message": "Incorrect API key provided", "type": "invalid_request_error", "code": "invalid_api_key"}}`)
	}))
	defer srv.Close()

	p := NewOpenAI("bad", srv.URL+"/v1", nil)
	_, err := p.Generate(context.Background(), []service.Message{{Role: service.RoleUser, Content: "x"}}, "gpt-3.5-turbo")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect API key provided")
}

func TestOpenAI_NoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"id": "chatcmpl-1", "object": "chat.completion", "choices": []}`)
	}))
	defer srv.Close()

	p := NewOpenAI("sk-test", srv.URL+"/v1", nil)
	_, err := p.Generate(context.Background(), []service.Message{{Role: service.RoleUser, Content: "x"}}, "gpt-3.5-turbo")

	assert.ErrorIs(t, err, ErrNoChoices)
}
