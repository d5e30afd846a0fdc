package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"github.com/vitormoschetta/go-gateway/internal/model"
	"github.com/vitormoschetta/go-gateway/internal/server"
	"github.com/vitormoschetta/go-gateway/internal/service"
)

// Handler contém as dependências necessárias para os handlers HTTP
type Handler struct {
	server *server.Server
}

// NewHandler cria uma nova instância do Handler
func NewHandler(srv *server.Server) *Handler {
	return &Handler{
		server: srv,
	}
}

// HandleRoot retorna informações sobre o serviço
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	endpoints := map[string]any{
		"chat": map[string]any{
			"path":        "/chat",
			"method":      http.MethodPost,
			"description": "Send a message to the completion model",
			"example":     map[string]string{"message": "Hello, how can you help me?"},
		},
		"subscribe": map[string]any{
			"path":        "/subscribe",
			"method":      http.MethodPost,
			"description": "Create a customer and a monthly subscription",
			"example":     map[string]string{"email": "user@example.com", "token": "tok_visa"},
		},
		"health": map[string]any{
			"path":        "/health",
			"method":      http.MethodGet,
			"description": "Health check endpoint",
		},
	}
	if h.server.MCPHandler != nil {
		endpoints["mcp"] = map[string]any{
			"path":        "/mcp",
			"description": "MCP streamable HTTP endpoint with the chat and subscribe tools",
		}
	}

	render.JSON(w, r, map[string]any{
		"service":   "go-gateway",
		"provider":  h.server.Config.Completion.Provider,
		"model":     h.server.Config.Completion.Model,
		"endpoints": endpoints,
	})
}

// HandleHealth retorna o status de saúde do servidor
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}

// HandleChat encaminha a mensagem ao provedor de completion
func (h *Handler) HandleChat(w http.ResponseWriter, r *http.Request) {
	var req model.ChatRequest
	if !h.decode(w, r, &req) {
		return
	}

	reply, err := h.server.ChatService.Reply(r.Context(), req.Text())
	if err != nil {
		if errors.Is(err, service.ErrNoMessage) {
			h.fail(w, r, http.StatusBadRequest, model.MsgNoMessage)
			return
		}
		h.server.Logger.ErrorContext(r.Context(), "chat failed",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		h.fail(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, r, model.ChatResponse{Response: reply})
}

// HandleSubscribe cria o cliente e a assinatura na Stripe
func (h *Handler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	var req model.SubscribeRequest
	if !h.decode(w, r, &req) {
		return
	}

	if _, err := h.server.SubscriptionService.Subscribe(r.Context(), req.Email, req.Token); err != nil {
		h.server.Logger.ErrorContext(r.Context(), "subscribe failed",
			"request_id", middleware.GetReqID(r.Context()),
			"error", err,
		)
		h.fail(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	render.JSON(w, r, model.SubscribeResponse{Success: true})
}

// decode lê o corpo JSON; corpo vazio equivale a {}
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	err := render.DecodeJSON(r.Body, v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	h.server.Logger.WarnContext(r.Context(), "invalid request body",
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	h.fail(w, r, http.StatusBadRequest, model.MsgInvalidJSON)
	return false
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, model.ErrorResponse{Error: msg})
}
