package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Provedores de completion suportados
const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

// Valores padrão
const (
	DefaultAddr            = ":8080"
	DefaultReadTimeout     = 15 * time.Second
	DefaultShutdownTimeout = 5 * time.Second
	DefaultOpenAIModel     = "gpt-3.5-turbo"
	DefaultGeminiModel     = "gemini-2.5-flash"
	DefaultPriceID         = "price_monthly_subscription"
)

// Config representa a configuração completa do gateway
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Completion CompletionConfig `yaml:"completion"`
	Billing    BillingConfig    `yaml:"billing"`
	Log        LogConfig        `yaml:"log"`
}

// ServerConfig configura o servidor HTTP
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MCPEnabled      *bool         `yaml:"mcp_enabled"`
}

// CompletionConfig configura o provedor de completion
type CompletionConfig struct {
	Provider      string `yaml:"provider"`
	Model         string `yaml:"model"`
	OpenAIAPIKey  string `yaml:"openai_api_key"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	GoogleAPIKey  string `yaml:"google_api_key"`
}

// BillingConfig configura o provedor de cobrança (Stripe)
type BillingConfig struct {
	StripeSecretKey string `yaml:"stripe_secret_key"`
	PriceID         string `yaml:"price_id"`
	APIURL          string `yaml:"api_url"`
}

// LogConfig configura o logger
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// MCPOn informa se o endpoint MCP deve ser montado
func (s ServerConfig) MCPOn() bool {
	return s.MCPEnabled == nil || *s.MCPEnabled
}

// Load lê o arquivo YAML opcional, aplica as variáveis de ambiente,
// preenche os valores padrão e valida o resultado.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	setString := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	setDuration := func(key string, dst *time.Duration) error {
		v, ok := lookup(key)
		if !ok || v == "" {
			return nil
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: invalid duration %q: %w", key, v, err)
		}
		*dst = d
		return nil
	}

	setString("HTTP_ADDR", &c.Server.Addr)
	if err := setDuration("HTTP_READ_TIMEOUT", &c.Server.ReadTimeout); err != nil {
		return err
	}
	if err := setDuration("HTTP_WRITE_TIMEOUT", &c.Server.WriteTimeout); err != nil {
		return err
	}
	if err := setDuration("HTTP_SHUTDOWN_TIMEOUT", &c.Server.ShutdownTimeout); err != nil {
		return err
	}
	if v, ok := lookup("MCP_ENABLED"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("MCP_ENABLED: invalid bool %q: %w", v, err)
		}
		c.Server.MCPEnabled = &b
	}

	setString("COMPLETION_PROVIDER", &c.Completion.Provider)
	setString("COMPLETION_MODEL", &c.Completion.Model)
	setString("OPENAI_API_KEY", &c.Completion.OpenAIAPIKey)
	setString("OPENAI_BASE_URL", &c.Completion.OpenAIBaseURL)
	setString("GOOGLE_API_KEY", &c.Completion.GoogleAPIKey)

	setString("STRIPE_SECRET_KEY", &c.Billing.StripeSecretKey)
	setString("STRIPE_PRICE_ID", &c.Billing.PriceID)
	setString("STRIPE_API_URL", &c.Billing.APIURL)

	setString("LOG_LEVEL", &c.Log.Level)
	setString("LOG_FORMAT", &c.Log.Format)

	return nil
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = DefaultAddr
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = DefaultReadTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	c.Completion.Provider = strings.ToLower(c.Completion.Provider)
	if c.Completion.Provider == "" {
		c.Completion.Provider = ProviderOpenAI
	}
	if c.Completion.Model == "" {
		switch c.Completion.Provider {
		case ProviderGemini:
			c.Completion.Model = DefaultGeminiModel
		default:
			c.Completion.Model = DefaultOpenAIModel
		}
	}

	if c.Billing.PriceID == "" {
		c.Billing.PriceID = DefaultPriceID
	}
}

func (c *Config) validate() error {
	if err := validateAddr(c.Server.Addr); err != nil {
		return fmt.Errorf("server.addr: %w", err)
	}

	switch c.Completion.Provider {
	case ProviderOpenAI:
		if c.Completion.OpenAIAPIKey == "" {
			return errors.New("completion.openai_api_key: must not be empty (set OPENAI_API_KEY)")
		}
		if c.Completion.OpenAIBaseURL != "" {
			if err := validateBaseURL(c.Completion.OpenAIBaseURL); err != nil {
				return fmt.Errorf("completion.openai_base_url: %w", err)
			}
		}
	case ProviderGemini:
		if c.Completion.GoogleAPIKey == "" {
			return errors.New("completion.google_api_key: must not be empty (set GOOGLE_API_KEY)")
		}
	default:
		return fmt.Errorf("completion.provider: unsupported provider %q", c.Completion.Provider)
	}

	if c.Billing.StripeSecretKey == "" {
		return errors.New("billing.stripe_secret_key: must not be empty (set STRIPE_SECRET_KEY)")
	}
	if c.Billing.APIURL != "" {
		if err := validateBaseURL(c.Billing.APIURL); err != nil {
			return fmt.Errorf("billing.api_url: %w", err)
		}
	}

	return nil
}

func validateAddr(addr string) error {
	if _, _, err := net.SplitHostPort(addr); err != nil {
		return fmt.Errorf("invalid address format: %w", err)
	}
	return nil
}

func validateBaseURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return errors.New("must include scheme and host")
	}
	return nil
}
