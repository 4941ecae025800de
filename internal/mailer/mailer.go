package mailer

import (
	"gopkg.in/gomail.v2"
)

// Sender delivers outgoing mail. The jobs runner depends on this interface
// so tests can swap in a mock.
type Sender interface {
	SendConfirmationEmail(toEmail, link string) error
}

type Mailer struct {
	host     string
	port     int
	from     string
	password string
}

func New(host string, port int, from, password string) *Mailer {
	return &Mailer{host: host, port: port, from: from, password: password}
}

func (m *Mailer) confirmationMessage(toEmail, link string) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", toEmail)
	msg.SetHeader("Subject", "Email confirmation")
	msg.SetBody("text/plain", "To finish registration, follow the link - "+link)
	return msg
}

func (m *Mailer) SendConfirmationEmail(toEmail, link string) error {
	d := gomail.NewDialer(m.host, m.port, m.from, m.password)
	return d.DialAndSend(m.confirmationMessage(toEmail, link))
}
