package mailer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmationMessageHeaders(t *testing.T) {
	m := New("smtp.example.com", 465, "noreply@example.com", "secret")

	msg := m.confirmationMessage("user@example.com", "http://localhost/register/confirm/abc")

	assert.Equal(t, []string{"noreply@example.com"}, msg.GetHeader("From"))
	assert.Equal(t, []string{"user@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Email confirmation"}, msg.GetHeader("Subject"))
}

func TestConfirmationMessageBodyCarriesLink(t *testing.T) {
	m := New("smtp.example.com", 465, "noreply@example.com", "secret")
	link := "http://localhost/register/set_password/a1b2c3d4e5f6a7b8"

	msg := m.confirmationMessage("user@example.com", link)

	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), link)
	assert.Contains(t, buf.String(), "text/plain")
}

func TestNewKeepsDialerSettings(t *testing.T) {
	m := New("smtp.example.com", 587, "noreply@example.com", "secret")

	assert.Equal(t, "smtp.example.com", m.host)
	assert.Equal(t, 587, m.port)
	assert.Equal(t, "noreply@example.com", m.from)
}
