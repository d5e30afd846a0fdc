package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/vitormoschetta/go-gateway/internal/config"
	"github.com/vitormoschetta/go-gateway/internal/logging"
	"github.com/vitormoschetta/go-gateway/internal/provider"
	"github.com/vitormoschetta/go-gateway/internal/service"
	"github.com/vitormoschetta/go-gateway/internal/tools"
)

// Version é informada ao cliente MCP
const Version = "0.1.0"

// Server representa o servidor HTTP com todas as dependências
type Server struct {
	ChatService         *service.ChatService
	SubscriptionService *service.SubscriptionService
	MCPHandler          http.Handler
	Router              chi.Router
	Config              *config.Config
	Logger              *slog.Logger
}

// NewServer cria os provedores a partir da configuração e monta o servidor
func NewServer(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Server, error) {
	completion, err := newCompletionProvider(ctx, cfg.Completion, logger)
	if err != nil {
		return nil, err
	}

	billing := provider.NewStripe(provider.StripeConfig{
		SecretKey:  cfg.Billing.StripeSecretKey,
		APIURL:     cfg.Billing.APIURL,
		HTTPClient: provider.NewHTTPClient(provider.StripeHTTPTimeout, logger),
		Logger:     logging.NewStripeLogger(logger),
	})

	logger.Info("providers initialized",
		"completion", cfg.Completion.Provider,
		"model", cfg.Completion.Model,
		"price_id", cfg.Billing.PriceID,
	)

	return New(cfg, logger, completion, billing), nil
}

// New monta o servidor com provedores já criados
func New(cfg *config.Config, logger *slog.Logger, completion service.CompletionProvider, billing service.BillingProvider) *Server {
	s := &Server{
		ChatService:         service.NewChatService(completion, cfg.Completion.Model, logger),
		SubscriptionService: service.NewSubscriptionService(billing, cfg.Billing.PriceID, logger),
		Config:              cfg,
		Logger:              logger,
	}

	if cfg.Server.MCPOn() {
		s.MCPHandler = tools.Handler(tools.NewServer(s.ChatService, s.SubscriptionService, Version))
	}

	return s
}

func newCompletionProvider(ctx context.Context, cfg config.CompletionConfig, logger *slog.Logger) (service.CompletionProvider, error) {
	// sem timeout no cliente: a chamada dura o quanto o provedor levar
	httpClient := provider.NewHTTPClient(0, logger)

	switch cfg.Provider {
	case config.ProviderOpenAI:
		return provider.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL, httpClient), nil
	case config.ProviderGemini:
		return provider.NewGemini(ctx, cfg.GoogleAPIKey, cfg.Model, httpClient)
	default:
		return nil, fmt.Errorf("unsupported completion provider %q", cfg.Provider)
	}
}

// requestID garante um X-Request-Id em formato UUID antes do middleware do chi
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(middleware.RequestIDHeader) == "" {
			r.Header.Set(middleware.RequestIDHeader, uuid.NewString())
		}
		w.Header().Set(middleware.RequestIDHeader, r.Header.Get(middleware.RequestIDHeader))
		next.ServeHTTP(w, r)
	})
}

// SetupRouter configura as rotas e middlewares do Chi
func (s *Server) SetupRouter(
	handleRoot http.HandlerFunc,
	handleHealth http.HandlerFunc,
	handleChat http.HandlerFunc,
	handleSubscribe http.HandlerFunc,
) {
	r := chi.NewRouter()

	// Middlewares
	r.Use(requestID)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger(s.Logger))
	r.Use(middleware.Recoverer)

	// Rotas
	r.Get("/", handleRoot)
	r.Get("/health", handleHealth)
	r.Post("/chat", handleChat)
	r.Post("/subscribe", handleSubscribe)

	if s.MCPHandler != nil {
		r.Handle("/mcp", s.MCPHandler)
	}

	s.Router = r
}

// Start inicia o servidor HTTP e bloqueia até o contexto ser cancelado.
// O encerramento aguarda as requisições em andamento até o timeout configurado.
func (s *Server) Start(ctx context.Context) error {
	cfg := s.Config.Server
	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.Logger.Info("http server started",
			"addr", cfg.Addr,
			"mcp", s.MCPHandler != nil,
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.Logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	s.Logger.Info("server stopped gracefully")
	return nil
}
