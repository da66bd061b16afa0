package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/documents"
	"github.com/uniquecreditos/taxsim-service/internal/integrations/ai"
	"github.com/uniquecreditos/taxsim-service/internal/letterhead"
	"github.com/uniquecreditos/taxsim-service/internal/models"
	"github.com/uniquecreditos/taxsim-service/internal/service"
)

type Handler struct {
	svc        *service.Service
	letterhead *letterhead.Store
	documents  *documents.Store
	aiConfig   *ai.ConfigStore
	log        *logrus.Logger
}

func NewHandler(svc *service.Service, lh *letterhead.Store, docs *documents.Store, aiCfg *ai.ConfigStore, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, letterhead: lh, documents: docs, aiConfig: aiCfg, log: log}
}

// RegisterRoutes wires every endpoint onto the router.
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/simulate", h.Simulate).Methods(http.MethodPost)

	r.HandleFunc("/reports/custom", h.CustomReport).Methods(http.MethodPost)
	r.HandleFunc("/reports/email", h.EmailReport).Methods(http.MethodPost)
	r.HandleFunc("/reports/{kind}", h.GenerateReport).Methods(http.MethodPost)

	r.HandleFunc("/letterhead", h.GetLetterhead).Methods(http.MethodGet)
	r.HandleFunc("/letterhead", h.UpdateLetterhead).Methods(http.MethodPut)
	r.HandleFunc("/letterhead/logo", h.UploadLogo).Methods(http.MethodPost)
	r.HandleFunc("/letterhead/logo", h.DeleteLogo).Methods(http.MethodDelete)
	r.HandleFunc("/letterhead/reset", h.ResetLetterhead).Methods(http.MethodPost)
	r.HandleFunc("/letterhead/export", h.ExportLetterhead).Methods(http.MethodGet)
	r.HandleFunc("/letterhead/import", h.ImportLetterhead).Methods(http.MethodPost)

	r.HandleFunc("/ai-config", h.GetAIConfig).Methods(http.MethodGet)
	r.HandleFunc("/ai-config", h.UpdateAIConfig).Methods(http.MethodPut)
	r.HandleFunc("/ai-config/test", h.TestAIConnection).Methods(http.MethodPost)

	r.HandleFunc("/documents", h.ListDocuments).Methods(http.MethodGet)
	r.HandleFunc("/documents", h.UploadDocument).Methods(http.MethodPost)
	r.HandleFunc("/documents/{id}/download", h.DownloadDocument).Methods(http.MethodGet)
	r.HandleFunc("/documents/{id}", h.DeleteDocument).Methods(http.MethodDelete)
}

// Simulate computes savings metrics for one input.
func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var input models.SimulationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.writeError(w, apperrors.NewValidation("corpo da requisição inválido: %v", err))
		return
	}

	result, err := h.svc.Simulate(input)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, result)
}

type reportRequest struct {
	Input  models.SimulationInput `json:"input"`
	Prompt string                 `json:"prompt,omitempty"`
}

// GenerateReport runs the report pipeline and streams the file back as an
// attachment.
func (h *Handler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	kind := models.ReportKind(mux.Vars(r)["kind"])
	h.generateAndServe(w, r, kind)
}

// CustomReport generates the free-prompt report.
func (h *Handler) CustomReport(w http.ResponseWriter, r *http.Request) {
	h.generateAndServe(w, r, models.ReportCustom)
}

func (h *Handler) generateAndServe(w http.ResponseWriter, r *http.Request, kind models.ReportKind) {
	var req reportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.NewValidation("corpo da requisição inválido: %v", err))
		return
	}

	file, err := h.svc.GenerateReport(r.Context(), kind, req.Input, req.Prompt)
	if err != nil {
		h.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(file.Content)
}

type emailReportRequest struct {
	To     string                 `json:"to"`
	Kind   models.ReportKind      `json:"kind"`
	Input  models.SimulationInput `json:"input"`
	Prompt string                 `json:"prompt,omitempty"`
}

// EmailReport generates a report and delivers it by email.
func (h *Handler) EmailReport(w http.ResponseWriter, r *http.Request) {
	var req emailReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, apperrors.NewValidation("corpo da requisição inválido: %v", err))
		return
	}

	file, err := h.svc.GenerateReport(r.Context(), req.Kind, req.Input, req.Prompt)
	if err != nil {
		h.writeError(w, err)
		return
	}
	if err := h.svc.EmailReport(req.To, req.Input.CompanyName, file); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{
		"message":   "relatório enviado com sucesso",
		"file_name": file.FileName,
	})
}

// GetLetterhead returns the current letterhead.
func (h *Handler) GetLetterhead(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.letterhead.Config())
}

// UpdateLetterhead applies a partial letterhead update.
func (h *Handler) UpdateLetterhead(w http.ResponseWriter, r *http.Request) {
	var update models.LetterheadUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, apperrors.NewValidation("corpo da requisição inválido: %v", err))
		return
	}
	if err := h.letterhead.Update(update); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.letterhead.Config())
}

// UploadLogo stores a logo image sent as multipart form field "logo".
func (h *Handler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(letterhead.MaxLogoSize + 1<<20); err != nil {
		h.writeError(w, apperrors.NewValidation("upload inválido: %v", err))
		return
	}
	file, header, err := r.FormFile("logo")
	if err != nil {
		h.writeError(w, apperrors.NewValidation("arquivo de logo ausente"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, apperrors.NewValidation("falha ao ler o arquivo enviado"))
		return
	}

	if err := h.letterhead.SetLogo(header.Filename, header.Header.Get("Content-Type"), data); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.letterhead.Config())
}

// DeleteLogo removes the stored logo.
func (h *Handler) DeleteLogo(w http.ResponseWriter, r *http.Request) {
	if err := h.letterhead.RemoveLogo(); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.letterhead.Config())
}

// ResetLetterhead restores the factory letterhead.
func (h *Handler) ResetLetterhead(w http.ResponseWriter, r *http.Request) {
	if err := h.letterhead.ResetToDefaults(); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.letterhead.Config())
}

// ExportLetterhead downloads the letterhead as a JSON backup.
func (h *Handler) ExportLetterhead(w http.ResponseWriter, r *http.Request) {
	text, err := h.letterhead.ExportJSON()
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="timbrado.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(text))
}

// ImportLetterhead replaces the letterhead with an exported backup.
func (h *Handler) ImportLetterhead(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.writeError(w, apperrors.NewValidation("falha ao ler o corpo da requisição"))
		return
	}
	if err := h.letterhead.ImportJSON(string(body)); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.letterhead.Config())
}

// aiConfigResponse mirrors AIConfig with the key redacted; only its presence
// is exposed.
type aiConfigResponse struct {
	models.AIConfig
	APIKeySet bool `json:"api_key_set"`
}

func redactAIConfig(cfg models.AIConfig) aiConfigResponse {
	resp := aiConfigResponse{AIConfig: cfg, APIKeySet: cfg.APIKey != ""}
	resp.AIConfig.APIKey = ""
	return resp
}

// GetAIConfig returns the AI configuration with the key redacted.
func (h *Handler) GetAIConfig(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, redactAIConfig(h.aiConfig.Config()))
}

// UpdateAIConfig applies a partial AI configuration update.
func (h *Handler) UpdateAIConfig(w http.ResponseWriter, r *http.Request) {
	var update models.AIConfigUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.writeError(w, apperrors.NewValidation("corpo da requisição inválido: %v", err))
		return
	}
	cfg, err := h.aiConfig.Update(update)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, redactAIConfig(cfg))
}

// TestAIConnection probes the configured provider with a minimal prompt.
func (h *Handler) TestAIConnection(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.TestAIConnection(r.Context()); err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, map[string]string{"message": "conexão estabelecida com sucesso"})
}

// ListDocuments returns the full document collection.
func (h *Handler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, h.documents.List())
}

// UploadDocument stores a template file sent as multipart form field "file",
// with the category in form field "category".
func (h *Handler) UploadDocument(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(documents.MaxDocumentSize + 1<<20); err != nil {
		h.writeError(w, apperrors.NewValidation("upload inválido: %v", err))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(w, apperrors.NewValidation("arquivo ausente"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.writeError(w, apperrors.NewValidation("falha ao ler o arquivo enviado"))
		return
	}

	doc, err := h.documents.Add(header.Filename, header.Header.Get("Content-Type"), data, models.DocumentCategory(r.FormValue("category")))
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, doc)
}

// DownloadDocument streams one stored document back decoded.
func (h *Handler) DownloadDocument(w http.ResponseWriter, r *http.Request) {
	content, doc, err := h.documents.Content(mux.Vars(r)["id"])
	if err != nil {
		h.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", doc.MimeType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.FileName))
	w.WriteHeader(http.StatusOK)
	w.Write(content)
}

// DeleteDocument removes one stored document.
func (h *Handler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.documents.Remove(mux.Vars(r)["id"]); err != nil {
		h.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.log.Errorf("failed to encode response: %v", err)
	}
}

// writeError maps the error taxonomy onto HTTP statuses and a single JSON
// envelope. Unknown errors never leak their message to the client.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	var (
		validation *apperrors.ValidationError
		conflict   *apperrors.ConflictError
		rateLimit  *apperrors.RateLimitError
		auth       *apperrors.AuthError
		notFound   *apperrors.ModelNotFoundError
		provider   *apperrors.ProviderError
	)

	status := http.StatusInternalServerError
	message := "erro interno do servidor"

	switch {
	case errors.As(err, &validation):
		status, message = http.StatusBadRequest, validation.Error()
	case errors.As(err, &conflict):
		status, message = http.StatusConflict, conflict.Error()
	case errors.As(err, &rateLimit):
		status, message = http.StatusTooManyRequests, rateLimit.Error()
	case errors.As(err, &auth):
		status, message = http.StatusBadGateway, auth.Error()
	case errors.As(err, &notFound):
		status, message = http.StatusBadGateway, notFound.Error()
	case errors.As(err, &provider):
		status, message = http.StatusBadGateway, provider.Error()
	default:
		var persistence *apperrors.PersistenceError
		var generation *apperrors.ReportGenerationError
		if errors.As(err, &persistence) {
			message = persistence.Error()
		} else if errors.As(err, &generation) {
			message = generation.Error()
		}
	}

	if status >= http.StatusInternalServerError {
		h.log.Errorf("request failed: %v", err)
	} else {
		h.log.Warnf("request rejected: %v", err)
	}

	h.respondJSON(w, status, map[string]string{"error": message})
}
