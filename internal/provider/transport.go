package provider

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// ClientRequestIDHeader leva o id da requisição de entrada até o provedor
const ClientRequestIDHeader = "X-Client-Request-Id"

// RequestIDTransport repassa o id da requisição de entrada em cada chamada
// feita aos provedores e registra a chamada em nível debug
type RequestIDTransport struct {
	Base   http.RoundTripper
	Logger *slog.Logger
}

func (t *RequestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clonar a requisição para não modificar a original
	reqCopy := req.Clone(req.Context())

	reqID := middleware.GetReqID(req.Context())
	if reqID != "" {
		reqCopy.Header.Set(ClientRequestIDHeader, reqID)
	}

	if t.Logger != nil {
		t.Logger.DebugContext(req.Context(), "provider request",
			"method", reqCopy.Method,
			"host", reqCopy.URL.Host,
			"path", reqCopy.URL.Path,
			"request_id", reqID,
		)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(reqCopy)
}

// NewHTTPClient cria o client HTTP usado pelos SDKs dos provedores.
// timeout zero mantém o client sem limite, como o padrão do SDK da OpenAI.
func NewHTTPClient(timeout time.Duration, logger *slog.Logger) *http.Client {
	return &http.Client{
		Transport: &RequestIDTransport{
			Base:   http.DefaultTransport,
			Logger: logger,
		},
		Timeout: timeout,
	}
}
