package contact

import (
	"bytes"
	"context"
	"fmt"
	"net"
	"net/mail"
	"net/smtp"
	"strconv"
	"strings"
	"time"

	"github.com/doodlesbykumbi/portfolio-cms/pkg/model"
)

// Mail is a composed plain-text message.
type Mail struct {
	From    string
	To      string
	ReplyTo string
	Subject string
	Body    string
	Date    time.Time
}

// Bytes renders m as an RFC 5322 message.
func (m Mail) Bytes() []byte {
	var buf bytes.Buffer
	header := func(k, v string) {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, headerSafe(v))
	}
	header("From", m.From)
	header("To", m.To)
	if m.ReplyTo != "" {
		header("Reply-To", m.ReplyTo)
	}
	header("Subject", m.Subject)
	header("Date", m.Date.Format(time.RFC1123Z))
	header("MIME-Version", "1.0")
	header("Content-Type", `text/plain; charset="utf-8"`)
	buf.WriteString("\r\n")
	buf.WriteString(strings.ReplaceAll(m.Body, "\n", "\r\n"))
	return buf.Bytes()
}

func headerSafe(v string) string {
	return strings.NewReplacer("\r", " ", "\n", " ").Replace(v)
}

// Mailer delivers composed mail.
type Mailer interface {
	Send(ctx context.Context, m Mail) error
}

func composeMail(from, recipient string, msg *model.ContactMessage) Mail {
	subject := msg.Subject
	if subject == "" {
		subject = "New inquiry"
	}

	var body strings.Builder
	fmt.Fprintf(&body, "Name: %s\n", msg.Name)
	fmt.Fprintf(&body, "Email: %s\n", msg.Email)
	for _, field := range []struct{ label, value string }{
		{"Phone", msg.Phone},
		{"Event date", msg.EventDate},
		{"Shoot type", msg.ShootType},
		{"Budget", msg.Budget},
	} {
		if field.value != "" {
			fmt.Fprintf(&body, "%s: %s\n", field.label, field.value)
		}
	}
	body.WriteString("\n")
	body.WriteString(msg.Message)
	body.WriteString("\n")

	if from == "" {
		from = recipient
	}
	return Mail{
		From:    from,
		To:      recipient,
		ReplyTo: (&mail.Address{Name: msg.Name, Address: msg.Email}).String(),
		Subject: "[Portfolio] " + subject,
		Body:    body.String(),
		Date:    time.Now(),
	}
}

// SMTPMailer sends mail through an SMTP server using STARTTLS when offered.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string

	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewSMTPMailer returns a mailer for host:port. Auth is used only when
// username is set.
func NewSMTPMailer(host string, port int, username, password string) *SMTPMailer {
	return &SMTPMailer{
		Host:     host,
		Port:     port,
		Username: username,
		Password: password,
		sendMail: smtp.SendMail,
	}
}

// Send delivers m. The context bounds the whole exchange.
func (s *SMTPMailer) Send(ctx context.Context, m Mail) error {
	from, err := mail.ParseAddress(m.From)
	if err != nil {
		return fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	to, err := mail.ParseAddress(m.To)
	if err != nil {
		return fmt.Errorf("invalid recipient %q: %w", m.To, err)
	}

	var auth smtp.Auth
	if s.Username != "" {
		auth = smtp.PlainAuth("", s.Username, s.Password, s.Host)
	}
	addr := net.JoinHostPort(s.Host, strconv.Itoa(s.Port))

	done := make(chan error, 1)
	go func() {
		done <- s.sendMail(addr, auth, from.Address, []string{to.Address}, m.Bytes())
	}()
	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("smtp send via %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
