package service

import (
	"context"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/uniquecreditos/taxsim-service/internal/apperrors"
	"github.com/uniquecreditos/taxsim-service/internal/calculation"
	"github.com/uniquecreditos/taxsim-service/internal/integrations/ai"
	"github.com/uniquecreditos/taxsim-service/internal/models"
	"github.com/uniquecreditos/taxsim-service/internal/report"
)

// NarrativeClient is the slice of the AI client the service depends on.
type NarrativeClient interface {
	GenerateExecutiveReport(ctx context.Context, input models.SimulationInput) (*models.GeneratedNarrative, error)
	GenerateDetailedAnalysis(ctx context.Context, input models.SimulationInput) (*models.GeneratedNarrative, error)
	GenerateAnnualProjection(ctx context.Context, input models.SimulationInput) (*models.GeneratedNarrative, error)
	GenerateCustomReport(ctx context.Context, input models.SimulationInput, prompt string) (*models.GeneratedNarrative, error)
	TestConnection(ctx context.Context) error
}

// ReportRenderer builds finished report files.
type ReportRenderer interface {
	Render(kind models.ReportKind, input models.SimulationInput, result models.SimulationResult, narrative *models.GeneratedNarrative) (*report.GeneratedFile, error)
	RenderCustom(text, fileName string) (*report.GeneratedFile, error)
}

// ReportMailer delivers a generated file as an email attachment.
type ReportMailer interface {
	SendReport(to, companyName, fileName string, content []byte, contentType string) error
}

// Service handles business logic
type Service struct {
	aiConfig *ai.ConfigStore
	client   NarrativeClient
	renderer ReportRenderer
	mailer   ReportMailer
	log      *logrus.Logger

	mu       sync.Mutex
	inFlight map[models.ReportKind]bool
}

// NewService initializes a new service
func NewService(aiConfig *ai.ConfigStore, client NarrativeClient, renderer ReportRenderer, mailer ReportMailer, log *logrus.Logger) *Service {
	return &Service{
		aiConfig: aiConfig,
		client:   client,
		renderer: renderer,
		mailer:   mailer,
		log:      log,
		inFlight: make(map[models.ReportKind]bool),
	}
}

// Simulate validates the input and computes the savings metrics.
func (s *Service) Simulate(input models.SimulationInput) (models.SimulationResult, error) {
	if err := calculation.Validate(input); err != nil {
		return models.SimulationResult{}, err
	}
	return calculation.Compute(input), nil
}

// GenerateReport runs the full pipeline for one report kind: in-flight guard,
// optional AI narrative, then rendering. customPrompt is only read for the
// custom kind.
//
// Provider errors propagate unmodified and nothing is rendered, so a
// rate-limited call never consumes a report number.
func (s *Service) GenerateReport(ctx context.Context, kind models.ReportKind, input models.SimulationInput, customPrompt string) (*report.GeneratedFile, error) {
	if !kind.Valid() {
		return nil, apperrors.NewValidation("tipo de relatório inválido: %s", kind)
	}
	if err := calculation.Validate(input); err != nil {
		return nil, err
	}

	if err := s.acquire(kind); err != nil {
		return nil, err
	}
	defer s.release(kind)

	result := calculation.Compute(input)

	narrative, err := s.narrativeFor(ctx, kind, input, customPrompt)
	if err != nil {
		return nil, err
	}

	if kind == models.ReportCustom {
		return s.renderCustom(narrative)
	}

	file, err := s.renderer.Render(kind, input, result, narrative)
	if err != nil {
		return nil, err
	}
	s.log.Infof("report generated (kind=%s file=%s)", kind, file.FileName)
	return file, nil
}

// narrativeFor obtains the AI narrative when the assistant is enabled. The
// numeric report kinds render without one; the custom kind has no content
// besides the narrative and therefore requires the assistant.
func (s *Service) narrativeFor(ctx context.Context, kind models.ReportKind, input models.SimulationInput, customPrompt string) (*models.GeneratedNarrative, error) {
	enabled := s.aiConfig.Config().Enabled
	if !enabled {
		if kind == models.ReportCustom {
			return nil, apperrors.NewValidation("relatórios personalizados exigem o assistente de IA habilitado")
		}
		return nil, nil
	}

	switch kind {
	case models.ReportExecutive:
		return s.client.GenerateExecutiveReport(ctx, input)
	case models.ReportDetailed:
		return s.client.GenerateDetailedAnalysis(ctx, input)
	case models.ReportProjection:
		return s.client.GenerateAnnualProjection(ctx, input)
	case models.ReportCustom:
		if strings.TrimSpace(customPrompt) == "" {
			return nil, apperrors.NewValidation("informe a solicitação do relatório personalizado")
		}
		return s.client.GenerateCustomReport(ctx, input, customPrompt)
	}
	return nil, nil
}

// renderCustom flows the narrative body into a PDF; when the PDF pipeline
// fails the text is still delivered as a plain-text attachment.
func (s *Service) renderCustom(narrative *models.GeneratedNarrative) (*report.GeneratedFile, error) {
	file, err := s.renderer.RenderCustom(narrative.Body, "")
	if err == nil {
		return file, nil
	}

	s.log.Warnf("custom report PDF failed, falling back to plain text: %v", err)
	return &report.GeneratedFile{
		FileName:    "relatorio_personalizado.txt",
		Content:     []byte(narrative.Body),
		ContentType: "text/plain; charset=utf-8",
	}, nil
}

// EmailReport sends an already generated file to one recipient.
func (s *Service) EmailReport(to, companyName string, file *report.GeneratedFile) error {
	if !strings.Contains(to, "@") {
		return apperrors.NewValidation("endereço de e-mail inválido: %s", to)
	}
	if file == nil || len(file.Content) == 0 {
		return apperrors.NewValidation("nenhum relatório para enviar")
	}
	return s.mailer.SendReport(to, companyName, file.FileName, file.Content, file.ContentType)
}

// TestAIConnection probes the configured provider.
func (s *Service) TestAIConnection(ctx context.Context) error {
	return s.client.TestConnection(ctx)
}

func (s *Service) acquire(kind models.ReportKind) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight[kind] {
		return &apperrors.ConflictError{Kind: string(kind)}
	}
	s.inFlight[kind] = true
	return nil
}

func (s *Service) release(kind models.ReportKind) {
	s.mu.Lock()
	delete(s.inFlight, kind)
	s.mu.Unlock()
}
