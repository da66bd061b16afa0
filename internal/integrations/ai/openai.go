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

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	Temperature float64         `json:"temperature"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message openAIMessage `json:"message"`
	} `json:"choices"`
}

// callOpenAI issues one chat-completions request with bearer-token auth.
func (c *Client) callOpenAI(ctx context.Context, cfg models.AIConfig, prompt string) (string, error) {
	const provider = "OpenAI"

	body, err := json.Marshal(openAIRequest{
		Model: cfg.Model,
		Messages: []openAIMessage{
			{Role: "system", Content: systemPrompt(cfg)},
			{Role: "user", Content: prompt},
		},
		Temperature: cfg.Temperature,
		MaxTokens:   2000,
	})
	if err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.openAIURL, bytes.NewReader(body))
	if err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

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

	var parsed openAIResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}
	if len(parsed.Choices) == 0 {
		return "", &apperrors.ProviderError{Provider: provider, Message: "resposta sem conteúdo"}
	}
	return parsed.Choices[0].Message.Content, nil
}
