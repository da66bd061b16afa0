package models

import "time"

// DocumentCategory classifies uploaded templates.
type DocumentCategory string

const (
	CategoryContract DocumentCategory = "contract"
	CategoryTerm     DocumentCategory = "term"
	CategoryTemplate DocumentCategory = "template"
	CategoryOther    DocumentCategory = "other"
)

// Valid reports whether c is a known document category.
func (c DocumentCategory) Valid() bool {
	switch c {
	case CategoryContract, CategoryTerm, CategoryTemplate, CategoryOther:
		return true
	}
	return false
}

// UploadedDocument is one stored template file, content base64-encoded.
type UploadedDocument struct {
	ID         string           `json:"id"`
	FileName   string           `json:"file_name"`
	MimeType   string           `json:"mime_type"`
	Content    string           `json:"content"`
	SizeBytes  int64            `json:"size_bytes"`
	UploadedAt time.Time        `json:"uploaded_at"`
	Category   DocumentCategory `json:"category"`
}

// DocumentTemplates holds the current-template slots. Contract and term
// uploads overwrite their slot; the last upload wins.
type DocumentTemplates struct {
	ContractDraft  *UploadedDocument  `json:"contract_draft,omitempty"`
	AssignmentTerm *UploadedDocument  `json:"assignment_term,omitempty"`
	Others         []UploadedDocument `json:"others"`
}

// DocumentConfig is the persisted document collection.
type DocumentConfig struct {
	Documents []UploadedDocument `json:"documents"`
	Templates DocumentTemplates  `json:"templates"`
}

// DefaultDocumentConfig returns an empty document collection.
func DefaultDocumentConfig() DocumentConfig {
	return DocumentConfig{
		Documents: []UploadedDocument{},
		Templates: DocumentTemplates{Others: []UploadedDocument{}},
	}
}
