// Package documents manages the persisted collection of uploaded template
// files (contract drafts, assignment terms and other supporting documents).
package documents

import (
	"encoding/base64"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/models"
	"github.com/uniquecreditos/taxsim-service/internal/repository"
)

const recordKey = "document_config"

// MaxDocumentSize is the upload ceiling for template documents.
const MaxDocumentSize = 10 * 1024 * 1024

var allowedDocumentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"application/vnd.ms-powerpoint":                                             true,
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": true,
}

// Store keeps the document collection in memory and persists every
// mutation immediately.
type Store struct {
	store repository.RecordStore
	log   *logrus.Logger

	mu     sync.Mutex
	config models.DocumentConfig
}

// NewStore loads the persisted collection merged over the empty default.
func NewStore(store repository.RecordStore, log *logrus.Logger) *Store {
	s := &Store{store: store, log: log, config: models.DefaultDocumentConfig()}
	data, err := store.LoadRecord(recordKey)
	if err != nil {
		log.Warnf("Failed to load document config, starting empty: %v", err)
		return s
	}
	if data == nil {
		return s
	}
	config := models.DefaultDocumentConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		log.Warnf("Corrupt document record, starting empty: %v", err)
		return s
	}
	s.config = config
	return s
}

// Add validates and stores an uploaded document. Contract and term uploads
// also take over their current-template slot; the previous occupant stays in
// the collection but loses the slot.
func (s *Store) Add(fileName, mimeType string, data []byte, category models.DocumentCategory) (models.UploadedDocument, error) {
	if !category.Valid() {
		return models.UploadedDocument{}, apperrors.NewValidation("categoria de documento inválida: %s", category)
	}
	if !allowedDocumentTypes[mimeType] {
		return models.UploadedDocument{}, apperrors.NewValidation("tipo de arquivo não suportado, use PDF, DOC, DOCX, PPT ou PPTX")
	}
	if int64(len(data)) > MaxDocumentSize {
		return models.UploadedDocument{}, apperrors.NewValidation("arquivo muito grande, máximo 10MB")
	}

	document := models.UploadedDocument{
		ID:         uuid.NewString(),
		FileName:   fileName,
		MimeType:   mimeType,
		Content:    base64.StdEncoding.EncodeToString(data),
		SizeBytes:  int64(len(data)),
		UploadedAt: time.Now().UTC(),
		Category:   category,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.config
	s.config.Documents = append(s.config.Documents, document)
	switch category {
	case models.CategoryContract:
		s.config.Templates.ContractDraft = &document
	case models.CategoryTerm:
		s.config.Templates.AssignmentTerm = &document
	default:
		s.config.Templates.Others = append(s.config.Templates.Others, document)
	}
	if err := s.persist(); err != nil {
		s.config = previous
		return models.UploadedDocument{}, err
	}
	s.log.Infof("Document stored: %s (%s, %d bytes)", fileName, category, len(data))
	return document, nil
}

// List returns a copy of the current collection.
func (s *Store) List() models.DocumentConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneConfig(s.config)
}

// Get finds a document by id.
func (s *Store) Get(id string) (models.UploadedDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, document := range s.config.Documents {
		if document.ID == id {
			return document, nil
		}
	}
	return models.UploadedDocument{}, apperrors.NewValidation("documento não encontrado: %s", id)
}

// Content decodes the stored bytes of a document for download.
func (s *Store) Content(id string) ([]byte, models.UploadedDocument, error) {
	document, err := s.Get(id)
	if err != nil {
		return nil, models.UploadedDocument{}, err
	}
	data, err := base64.StdEncoding.DecodeString(document.Content)
	if err != nil {
		return nil, models.UploadedDocument{}, apperrors.NewValidation("conteúdo do documento corrompido: %v", err)
	}
	return data, document, nil
}

// Remove deletes a document and clears any template slot it occupied.
func (s *Store) Remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous := s.config
	found := false
	kept := s.config.Documents[:0:0]
	for _, document := range s.config.Documents {
		if document.ID == id {
			found = true
			continue
		}
		kept = append(kept, document)
	}
	if !found {
		return apperrors.NewValidation("documento não encontrado: %s", id)
	}
	s.config.Documents = kept

	if s.config.Templates.ContractDraft != nil && s.config.Templates.ContractDraft.ID == id {
		s.config.Templates.ContractDraft = nil
	}
	if s.config.Templates.AssignmentTerm != nil && s.config.Templates.AssignmentTerm.ID == id {
		s.config.Templates.AssignmentTerm = nil
	}
	others := s.config.Templates.Others[:0:0]
	for _, document := range s.config.Templates.Others {
		if document.ID != id {
			others = append(others, document)
		}
	}
	s.config.Templates.Others = others

	if err := s.persist(); err != nil {
		s.config = previous
		return err
	}
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

func cloneConfig(config models.DocumentConfig) models.DocumentConfig {
	copied := models.DocumentConfig{
		Documents: append([]models.UploadedDocument(nil), config.Documents...),
		Templates: models.DocumentTemplates{
			Others: append([]models.UploadedDocument(nil), config.Templates.Others...),
		},
	}
	if config.Templates.ContractDraft != nil {
		draft := *config.Templates.ContractDraft
		copied.Templates.ContractDraft = &draft
	}
	if config.Templates.AssignmentTerm != nil {
		term := *config.Templates.AssignmentTerm
		copied.Templates.AssignmentTerm = &term
	}
	return copied
}
