package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/models"
)

const anthropicVersion = "2023-06-01"

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system,omitempty"`
	Messages    []anthropicMessage `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
}

// callAnthropic issues one messages request authenticated via x-api-key.
func (c *Client) callAnthropic(ctx context.Context, cfg models.AIConfig, prompt string) (string, error) {
	const provider = "Anthropic"

	body, err := json.Marshal(anthropicRequest{
		Model:       cfg.Model,
		MaxTokens:   2000,
		Temperature: cfg.Temperature,
		System:      systemPrompt(cfg),
		Messages: []anthropicMessage{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.anthropicURL, bytes.NewReader(body))
	if err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", cfg.APIKey)
	req.Header.Set("anthropic-version", anthropicVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", normalizeError(provider, cfg.Model, resp.StatusCode, raw)
	}

	var parsed anthropicResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}
	if len(parsed.Content) == 0 || parsed.Content[0].Text == "" {
		return "", &apperrors.ProviderError{Provider: provider, Message: "resposta sem conteúdo"}
	}
	return parsed.Content[0].Text, nil
}
