package mailer

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tiendaqr/backend/pkg/config"
)

func TestNewSMTPRequiresHostAndFrom(t *testing.T) {
	_, err := NewSMTP(config.MailConfig{From: "tienda@example.com"})
	assert.Error(t, err)

	_, err = NewSMTP(config.MailConfig{SMTPHost: "smtp.example.com"})
	assert.Error(t, err)

	m, err := NewSMTP(config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, From: "tienda@example.com"})
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestBuildResetMessage(t *testing.T) {
	msg := string(buildResetMessage("tienda@example.com", "ana@example.com", "https://tienda.example.com/reset?token=abc"))

	assert.True(t, strings.HasPrefix(msg, "From: tienda@example.com\r\n"))
	assert.Contains(t, msg, "To: ana@example.com\r\n")
	assert.Contains(t, msg, "Subject: Restablecer contraseña\r\n")
	assert.Contains(t, msg, "https://tienda.example.com/reset?token=abc")
}

func TestSMTPMailerRejectsBlankRecipient(t *testing.T) {
	m, err := NewSMTP(config.MailConfig{SMTPHost: "smtp.example.com", SMTPPort: 587, From: "tienda@example.com"})
	require.NoError(t, err)

	err = m.SendPasswordReset(context.Background(), "  ", "https://tienda.example.com/reset")
	assert.Error(t, err)
}

func TestLogOnlyMailer(t *testing.T) {
	m := NewLogOnly(nil)
	assert.NoError(t, m.SendPasswordReset(context.Background(), "ana@example.com", "https://tienda.example.com/reset"))
}
