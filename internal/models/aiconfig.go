package models

// Provider identifies one of the supported generative-text backends.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderGoogle    Provider = "google"
)

// Valid reports whether p is one of the supported providers.
func (p Provider) Valid() bool {
	switch p {
	case ProviderOpenAI, ProviderAnthropic, ProviderGoogle:
		return true
	}
	return false
}

// AIConfig is the persisted configuration of the narrative client.
type AIConfig struct {
	Enabled      bool     `json:"enabled"`
	Provider     Provider `json:"provider"`
	APIKey       string   `json:"api_key"`
	Model        string   `json:"model"`
	Temperature  float64  `json:"temperature"`
	SystemPrompt string   `json:"system_prompt"`
}

// AIConfigUpdate is a partial update of AIConfig; nil fields keep their
// current value. Switching Provider without supplying Model resets the model
// to the new provider's first default.
type AIConfigUpdate struct {
	Enabled      *bool     `json:"enabled,omitempty"`
	Provider     *Provider `json:"provider,omitempty"`
	APIKey       *string   `json:"api_key,omitempty"`
	Model        *string   `json:"model,omitempty"`
	Temperature  *float64  `json:"temperature,omitempty"`
	SystemPrompt *string   `json:"system_prompt,omitempty"`
}

// DefaultModels lists the selectable models per provider; the first entry
// is the one applied when the provider changes without an explicit model.
var DefaultModels = map[Provider][]string{
	ProviderOpenAI:    {"gpt-4o-mini", "gpt-4o", "gpt-4.1-mini"},
	ProviderAnthropic: {"claude-3-5-haiku-latest", "claude-sonnet-4-20250514"},
	ProviderGoogle:    {"gemini-1.5-flash", "gemini-2.0-flash"},
}

// DefaultAIConfig returns the factory AI configuration: disabled, OpenAI,
// neutral financial-analyst system prompt.
func DefaultAIConfig() AIConfig {
	return AIConfig{
		Enabled:      false,
		Provider:     ProviderOpenAI,
		Model:        DefaultModels[ProviderOpenAI][0],
		Temperature:  0.7,
		SystemPrompt: "Você é um especialista em análise financeira e tributária brasileira.",
	}
}
