package email

import (
	"bytes"
	"fmt"
	"net/smtp"
	"time"

	"github.com/jordan-wright/email"
	"github.com/sirupsen/logrus"

	"github.com/uniquecreditos/taxsim-service/internal/config"
)

// Sender handles sending emails via SMTP
type Sender struct {
	cfg    *config.Config
	logger *logrus.Logger
}

// NewSender creates a new email sender
func NewSender(cfg *config.Config, logger *logrus.Logger) *Sender {
	return &Sender{
		cfg:    cfg,
		logger: logger,
	}
}

// SendReport delivers a generated report as an attachment.
func (s *Sender) SendReport(to, companyName, fileName string, content []byte, contentType string) error {
	e := email.NewEmail()
	e.From = s.cfg.SenderEmail
	e.To = []string{to}
	e.Subject = fmt.Sprintf("Relatório de economia tributária - %s", companyName)

	body := fmt.Sprintf(
		"Olá,\n\n"+
			"Segue em anexo o relatório de simulação de economia tributária gerado em %s.\n\n"+
			"Em caso de dúvidas sobre os valores apresentados, responda a este e-mail.\n\n"+
			"Atenciosamente,\nEquipe Unique Assessoria",
		time.Now().Format("02/01/2006 15:04"),
	)
	e.Text = []byte(body)

	if _, err := e.Attach(bytes.NewReader(content), fileName, contentType); err != nil {
		return fmt.Errorf("failed to attach report: %w", err)
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.SMTPHost, s.cfg.SMTPPort)
	auth := smtp.PlainAuth("", s.cfg.SMTPUsername, s.cfg.SMTPPassword, s.cfg.SMTPHost)
	if err := e.Send(addr, auth); err != nil {
		s.logger.Errorf("Failed to send report to %s: %v", to, err)
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Infof("Email sent to %s: %s", to, e.Subject)
	return nil
}
