// Package letterhead manages the persisted company-identity record that
// brands generated reports: company data, logo, theme and the report
// sequence counter.
package letterhead

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/models"
	"github.com/uniquecreditos/taxsim-service/internal/repository"
)

const recordKey = "letterhead_config"

// MaxLogoSize is the upload ceiling for logo images.
const MaxLogoSize = 5 * 1024 * 1024

var allowedLogoTypes = map[string]bool{
	"image/png":     true,
	"image/jpeg":    true,
	"image/jpg":     true,
	"image/svg+xml": true,
}

// Store holds the letterhead singleton in memory and persists every
// mutation immediately. All operations share one mutex; in particular the
// sequence allocation is a critical section and never hands out the same
// number twice.
type Store struct {
	store repository.RecordStore
	log   *logrus.Logger

	mu     sync.Mutex
	config models.LetterheadConfig
}

// NewStore loads the persisted record merged over defaults. A missing or
// unreadable record falls back to defaults; fields absent from older saves
// keep their default value.
func NewStore(store repository.RecordStore, log *logrus.Logger) *Store {
	s := &Store{store: store, log: log, config: models.DefaultLetterhead()}
	data, err := store.LoadRecord(recordKey)
	if err != nil {
		log.Warnf("Failed to load letterhead config, using defaults: %v", err)
		return s
	}
	if data == nil {
		return s
	}
	config := models.DefaultLetterhead()
	if err := json.Unmarshal(data, &config); err != nil {
		log.Warnf("Corrupt letterhead record, using defaults: %v", err)
		return s
	}
	s.config = config
	return s
}

// Config returns a defensive copy of the current letterhead.
func (s *Store) Config() models.LetterheadConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneConfig(s.config)
}

// Update shallow-merges the supplied fields and persists the record.
func (s *Store) Update(update models.LetterheadUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.config
	if update.LegalName != nil {
		s.config.LegalName = *update.LegalName
	}
	if update.TaxID != nil {
		s.config.TaxID = *update.TaxID
	}
	if update.Address != nil {
		s.config.Address = *update.Address
	}
	if update.Contact != nil {
		s.config.Contact = *update.Contact
	}
	if update.Theme != nil {
		s.config.Theme = *update.Theme
	}
	if update.ReportPrefix != nil {
		s.config.ReportPrefix = *update.ReportPrefix
	}
	if err := s.persist(); err != nil {
		s.config = previous
		return err
	}
	return nil
}

// SetLogo validates and stores an uploaded logo image.
func (s *Store) SetLogo(fileName, mimeType string, data []byte) error {
	if !allowedLogoTypes[mimeType] {
		return apperrors.NewValidation("tipo de arquivo não suportado, use PNG, JPG ou SVG")
	}
	if int64(len(data)) > MaxLogoSize {
		return apperrors.NewValidation("arquivo muito grande, máximo 5MB")
	}
	if mimeType == "image/svg+xml" {
		if err := validateSVG(data); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.config.Logo
	s.config.Logo = &models.Logo{
		ImageData: base64.StdEncoding.EncodeToString(data),
		FileName:  fileName,
		MimeType:  mimeType,
	}
	if err := s.persist(); err != nil {
		s.config.Logo = previous
		return err
	}
	s.log.Infof("Letterhead logo updated: %s (%d bytes)", fileName, len(data))
	return nil
}

// RemoveLogo drops the stored logo.
func (s *Store) RemoveLogo() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.config.Logo
	s.config.Logo = nil
	if err := s.persist(); err != nil {
		s.config.Logo = previous
		return err
	}
	return nil
}

// AllocateNextReportNumber formats the current sequence token and advances
// the counter, persisting it before the token is handed out. Callers invoke
// this at most once per generated report.
func (s *Store) AllocateNextReportNumber() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	number := fmt.Sprintf("%s-%04d", s.config.ReportPrefix, s.config.SequenceNumber)
	s.config.SequenceNumber++
	if err := s.persist(); err != nil {
		s.config.SequenceNumber--
		return "", err
	}
	return number, nil
}

// ResetToDefaults restores the factory record, discarding the logo and the
// sequence counter.
func (s *Store) ResetToDefaults() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.config
	s.config = models.DefaultLetterhead()
	if err := s.persist(); err != nil {
		s.config = previous
		return err
	}
	s.log.Info("Letterhead config reset to defaults")
	return nil
}

// ExportJSON serializes the current record for download.
func (s *Store) ExportJSON() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(s.config, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to export letterhead config: %w", err)
	}
	return string(data), nil
}

// ImportJSON replaces the record with an exported document merged onto
// defaults. Legal name and tax id are required.
func (s *Store) ImportJSON(text string) error {
	var probe models.LetterheadConfig
	if err := json.Unmarshal([]byte(text), &probe); err != nil {
		return apperrors.NewValidation("arquivo de configuração inválido: %v", err)
	}
	if probe.LegalName == "" || probe.TaxID == "" {
		return apperrors.NewValidation("arquivo de configuração inválido: razão social e CNPJ são obrigatórios")
	}

	config := models.DefaultLetterhead()
	if err := json.Unmarshal([]byte(text), &config); err != nil {
		return apperrors.NewValidation("arquivo de configuração inválido: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.config
	s.config = config
	if err := s.persist(); err != nil {
		s.config = previous
		return err
	}
	s.log.Infof("Letterhead config imported for %s", config.LegalName)
	return nil
}

// persist writes the record; callers hold s.mu.
func (s *Store) persist() error {
	data, err := json.Marshal(s.config)
	if err != nil {
		return &apperrors.PersistenceError{Err: err}
	}
	if err := s.store.SaveRecord(recordKey, data); err != nil {
		return &apperrors.PersistenceError{Err: err}
	}
	return nil
}

func validateSVG(data []byte) error {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return apperrors.NewValidation("arquivo SVG inválido: %v", err)
	}
	root := doc.Root()
	if root == nil || root.Tag != "svg" {
		return apperrors.NewValidation("arquivo SVG inválido: elemento raiz deve ser <svg>")
	}
	return nil
}

func cloneConfig(config models.LetterheadConfig) models.LetterheadConfig {
	copied := config
	if config.Logo != nil {
		logo := *config.Logo
		copied.Logo = &logo
	}
	return copied
}
