// Package apperrors defines the error taxonomy shared by the simulation,
// letterhead, AI and report pipelines. Handlers translate these into HTTP
// status codes; nothing below the handler layer inspects them.
package apperrors

import "fmt"

// ValidationError marks user-correctable input problems (bad MIME type,
// oversized upload, malformed import payload).
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// NewValidation builds a ValidationError with a formatted message.
func NewValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// AuthError means the configured provider credentials were rejected.
type AuthError struct {
	Provider string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: credenciais de API inválidas", e.Provider)
}

// RateLimitError means the provider answered 429.
type RateLimitError struct {
	Provider string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s: limite de requisições atingido, tente novamente em alguns minutos", e.Provider)
}

// ModelNotFoundError names the model the provider refused to serve.
type ModelNotFoundError struct {
	Provider string
	Model    string
}

func (e *ModelNotFoundError) Error() string {
	return fmt.Sprintf("%s: modelo '%s' não encontrado", e.Provider, e.Model)
}

// ProviderError covers every other provider failure: unexpected status,
// network error, malformed body.
type ProviderError struct {
	Provider string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Provider, e.Message)
	}
	return fmt.Sprintf("%s: falha na chamada ao provedor", e.Provider)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// PersistenceError means a record-store write failed. Callers surface it,
// they never retry silently.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("falha ao salvar configurações: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ReportGenerationError is the single catch-all of the render pipeline.
// No partial file is ever produced alongside it.
type ReportGenerationError struct {
	Err error
}

func (e *ReportGenerationError) Error() string {
	return fmt.Sprintf("falha na geração do relatório: %v", e.Err)
}

func (e *ReportGenerationError) Unwrap() error { return e.Err }

// ConflictError rejects a duplicate in-flight generation of the same
// report kind.
type ConflictError struct {
	Kind string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("já existe uma geração de relatório '%s' em andamento", e.Kind)
}
