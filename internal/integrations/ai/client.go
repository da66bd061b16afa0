// Package ai normalizes three generative-text providers behind a single
// client. Every call is single-shot: the caller decides whether the user
// retries, never this package.
package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/models"
)

const (
	defaultOpenAIURL    = "https://api.openai.com/v1/chat/completions"
	defaultAnthropicURL = "https://api.anthropic.com/v1/messages"
	defaultGoogleURL    = "https://generativelanguage.googleapis.com/v1beta"

	fallbackSystemPrompt = "Você é um especialista em análise financeira brasileira."
)

// Client dispatches prompts to the configured provider and maps every
// failure into the shared error taxonomy.
type Client struct {
	config     *ConfigStore
	httpClient *http.Client
	log        *logrus.Logger

	// Endpoint overrides for tests; zero values mean the public APIs.
	openAIURL    string
	anthropicURL string
	googleURL    string
}

// NewClient initializes a narrative client.
func NewClient(config *ConfigStore, log *logrus.Logger) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		log:          log,
		openAIURL:    defaultOpenAIURL,
		anthropicURL: defaultAnthropicURL,
		googleURL:    defaultGoogleURL,
	}
}

// invoke sends one prompt to the configured provider and returns the reply
// as plain text.
func (c *Client) invoke(ctx context.Context, prompt string) (string, error) {
	cfg := c.config.Config()
	if !cfg.Enabled || cfg.APIKey == "" {
		return "", apperrors.NewValidation("assistente de IA não configurado ou desabilitado")
	}

	start := time.Now()
	var text string
	var err error
	switch cfg.Provider {
	case models.ProviderOpenAI:
		text, err = c.callOpenAI(ctx, cfg, prompt)
	case models.ProviderAnthropic:
		text, err = c.callAnthropic(ctx, cfg, prompt)
	case models.ProviderGoogle:
		text, err = c.callGoogle(ctx, cfg, prompt)
	default:
		return "", apperrors.NewValidation("provedor de IA não suportado: %s", cfg.Provider)
	}
	if err != nil {
		c.log.Errorf("AI call failed (provider=%s model=%s): %v", cfg.Provider, cfg.Model, err)
		return "", err
	}
	c.log.Infof("AI call completed (provider=%s model=%s) in %s", cfg.Provider, cfg.Model, time.Since(start))
	return text, nil
}

// TestConnection issues one minimal round-trip to validate credentials and
// model choice. The probe reply must contain "ok".
func (c *Client) TestConnection(ctx context.Context) error {
	reply, err := c.invoke(ctx, "Responda exatamente: ok")
	if err != nil {
		return err
	}
	if !strings.Contains(strings.ToLower(reply), "ok") {
		return apperrors.NewValidation("conexão estabelecida, mas a resposta não foi válida; verifique o modelo escolhido")
	}
	return nil
}

// providerErrorBody is the error envelope all three providers share in
// practice: {"error": {"message": "..."}}.
type providerErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// normalizeError maps a non-2xx provider reply into the shared taxonomy.
// All three providers funnel through here so the error surface never
// diverges per backend.
func normalizeError(provider, model string, status int, body []byte) error {
	switch status {
	case http.StatusTooManyRequests:
		return &apperrors.RateLimitError{Provider: provider}
	case http.StatusUnauthorized, http.StatusForbidden:
		return &apperrors.AuthError{Provider: provider}
	case http.StatusNotFound:
		return &apperrors.ModelNotFoundError{Provider: provider, Model: model}
	}

	var parsed providerErrorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error.Message != "" {
		return &apperrors.ProviderError{Provider: provider, Message: parsed.Error.Message}
	}
	return &apperrors.ProviderError{Provider: provider, Message: "erro inesperado do provedor"}
}

func systemPrompt(cfg models.AIConfig) string {
	if cfg.SystemPrompt != "" {
		return cfg.SystemPrompt
	}
	return fallbackSystemPrompt
}
