package mail

import (
	"time"

	"gopkg.in/gomail.v2"
)

// Message is one outgoing notification with file attachments.
type Message struct {
	Subject string
	Body    string
	Files   []string
}

// Mailer sends over SMTP with STARTTLS and login auth. One shot, no retry:
// a failed mail is a failed run the operator re-triggers.
type Mailer struct {
	host     string
	port     int
	username string
	password string

	from string
	to   []string
}

func NewMailer(host string, port int, username, password, from string, to []string) *Mailer {
	return &Mailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
		to:       to,
	}
}

// compose builds the MIME message. Attachments are read from disk and
// base64 encoded by the transport.
func (m *Mailer) compose(msg *Message) *gomail.Message {
	gm := gomail.NewMessage()
	gm.SetHeader("From", m.from)
	gm.SetHeader("To", m.to...)
	gm.SetDateHeader("Date", time.Now())
	gm.SetHeader("Subject", msg.Subject)
	gm.SetBody("text/plain", msg.Body)

	for _, path := range msg.Files {
		gm.Attach(path)
	}
	return gm
}

// Send delivers the message.
func (m *Mailer) Send(msg *Message) error {
	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(m.compose(msg))
}
