package ai

import (
	"encoding/json"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/models"
	"github.com/uniquecreditos/taxsim-service/internal/repository"
)

const configRecordKey = "ai_config"

// ConfigStore persists the narrative client configuration.
type ConfigStore struct {
	store repository.RecordStore
	log   *logrus.Logger

	mu     sync.Mutex
	config models.AIConfig
}

// NewConfigStore loads the persisted AI configuration merged over defaults.
func NewConfigStore(store repository.RecordStore, log *logrus.Logger) *ConfigStore {
	s := &ConfigStore{store: store, log: log, config: models.DefaultAIConfig()}
	data, err := store.LoadRecord(configRecordKey)
	if err != nil {
		log.Warnf("Failed to load AI config, using defaults: %v", err)
		return s
	}
	if data == nil {
		return s
	}
	config := models.DefaultAIConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		log.Warnf("Corrupt AI config record, using defaults: %v", err)
		return s
	}
	s.config = config
	return s
}

// Config returns a copy of the current configuration.
func (s *ConfigStore) Config() models.AIConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.config
}

// Update applies a partial update and persists the record. A provider
// switch without an explicit model resets the model to the new provider's
// first default.
func (s *ConfigStore) Update(update models.AIConfigUpdate) (models.AIConfig, error) {
	if update.Provider != nil && !update.Provider.Valid() {
		return models.AIConfig{}, apperrors.NewValidation("provedor de IA não suportado: %s", *update.Provider)
	}
	if update.Temperature != nil && (*update.Temperature < 0 || *update.Temperature > 2) {
		return models.AIConfig{}, apperrors.NewValidation("temperatura deve estar entre 0.0 e 2.0")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.config
	if update.Enabled != nil {
		s.config.Enabled = *update.Enabled
	}
	if update.Provider != nil && *update.Provider != s.config.Provider {
		s.config.Provider = *update.Provider
		s.config.Model = models.DefaultModels[*update.Provider][0]
	}
	if update.Model != nil && *update.Model != "" {
		s.config.Model = *update.Model
	}
	if update.APIKey != nil {
		s.config.APIKey = *update.APIKey
	}
	if update.Temperature != nil {
		s.config.Temperature = *update.Temperature
	}
	if update.SystemPrompt != nil {
		s.config.SystemPrompt = *update.SystemPrompt
	}

	data, err := json.Marshal(s.config)
	if err != nil {
		s.config = previous
		return models.AIConfig{}, &apperrors.PersistenceError{Err: err}
	}
	if err := s.store.SaveRecord(configRecordKey, data); err != nil {
		s.config = previous
		return models.AIConfig{}, &apperrors.PersistenceError{Err: err}
	}
	s.log.Infof("AI config updated: provider=%s model=%s enabled=%t",
		s.config.Provider, s.config.Model, s.config.Enabled)
	return s.config, nil
}
