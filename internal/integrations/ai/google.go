package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/models"
)

type googlePart struct {
	Text string `json:"text"`
}

type googleContent struct {
	Parts []googlePart `json:"parts"`
}

type googleGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
	TopP            float64 `json:"topP"`
	TopK            int     `json:"topK"`
}

type googleRequest struct {
	Contents         []googleContent        `json:"contents"`
	GenerationConfig googleGenerationConfig `json:"generationConfig"`
}

type googleResponse struct {
	Candidates []struct {
		Content googleContent `json:"content"`
	} `json:"candidates"`
}

// callGoogle issues one generateContent request; the API key travels as a
// query parameter and the system prompt is prepended to the user prompt,
// which is how this endpoint expects untyped instructions.
func (c *Client) callGoogle(ctx context.Context, cfg models.AIConfig, prompt string) (string, error) {
	const provider = "Google"

	model := cfg.Model
	if !strings.HasPrefix(model, "models/") {
		model = "models/" + model
	}
	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", c.googleURL, model, url.QueryEscape(cfg.APIKey))

	body, err := json.Marshal(googleRequest{
		Contents: []googleContent{
			{Parts: []googlePart{{Text: systemPrompt(cfg) + "\n\n" + prompt}}},
		},
		GenerationConfig: googleGenerationConfig{
			Temperature:     cfg.Temperature,
			MaxOutputTokens: 4000,
			TopP:            0.95,
			TopK:            40,
		},
	})
	if err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

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

	var parsed googleResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", &apperrors.ProviderError{Provider: provider, Err: err}
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", &apperrors.ProviderError{Provider: provider, Message: "nenhuma resposta gerada"}
	}
	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
