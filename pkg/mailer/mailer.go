package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/tiendaqr/backend/pkg/config"
	"github.com/tiendaqr/backend/pkg/logger"
)

// Mailer delivers transactional mail.
type Mailer interface {
	SendPasswordReset(ctx context.Context, to, resetURL string) error
}

type smtpMailer struct {
	cfg config.MailConfig
}

// NewSMTP returns a Mailer that delivers over plain SMTP.
func NewSMTP(cfg config.MailConfig) (Mailer, error) {
	if cfg.SMTPHost == "" {
		return nil, fmt.Errorf("smtp host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("from address is required")
	}
	return &smtpMailer{cfg: cfg}, nil
}

func (m *smtpMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if strings.TrimSpace(to) == "" {
		return fmt.Errorf("recipient is required")
	}
	msg := buildResetMessage(m.cfg.From, to, resetURL)
	addr := fmt.Sprintf("%s:%d", m.cfg.SMTPHost, m.cfg.SMTPPort)
	var auth smtp.Auth
	if m.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", m.cfg.SMTPUser, m.cfg.SMTPPass, m.cfg.SMTPHost)
	}
	if err := smtp.SendMail(addr, auth, m.cfg.From, []string{to}, msg); err != nil {
		return fmt.Errorf("sending reset mail: %w", err)
	}
	return nil
}

func buildResetMessage(from, to, resetURL string) []byte {
	var b strings.Builder
	b.WriteString("From: " + from + "\r\n")
	b.WriteString("To: " + to + "\r\n")
	b.WriteString("Subject: Restablecer contraseña\r\n")
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	b.WriteString("\r\n")
	b.WriteString("Recibimos una solicitud para restablecer tu contraseña.\r\n\r\n")
	b.WriteString("Abre este enlace para continuar: " + resetURL + "\r\n\r\n")
	b.WriteString("Si no solicitaste el cambio, ignora este correo.\r\n")
	return []byte(b.String())
}

type logMailer struct {
	logg *logger.Logger
}

// NewLogOnly returns a Mailer that only logs deliveries. Used in dev when no
// SMTP host is configured.
func NewLogOnly(logg *logger.Logger) Mailer {
	return &logMailer{logg: logg}
}

func (m *logMailer) SendPasswordReset(ctx context.Context, to, resetURL string) error {
	if m.logg != nil {
		ctx = m.logg.WithFields(ctx, map[string]any{"to": to, "reset_url": resetURL})
		m.logg.Info(ctx, "password reset mail (log only)")
	}
	return nil
}
