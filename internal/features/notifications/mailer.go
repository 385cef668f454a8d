package notifications

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

type Mailer interface {
	Send(ctx context.Context, to string, subject string, body string) error
}

// LogMailer writes emails to the log. It is used when no SMTP server is
// configured.
type LogMailer struct {
	logger *slog.Logger
}

func NewLogMailer(logger *slog.Logger) *LogMailer {
	return &LogMailer{logger: logger}
}

func (m *LogMailer) Send(_ context.Context, to string, subject string, body string) error {
	m.logger.Info("Email not sent, SMTP is not configured",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("bodyLength", len(body)))

	return nil
}

type SmtpMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSmtpMailer(host string, port int, username, password, from string) *SmtpMailer {
	return &SmtpMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (m *SmtpMailer) Send(ctx context.Context, to string, subject string, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if m.username != "" {
		auth = smtp.PlainAuth("", m.username, m.password, m.host)
	}

	address := net.JoinHostPort(m.host, strconv.Itoa(m.port))
	if err := smtp.SendMail(address, auth, m.from, []string{to}, m.buildMessage(to, subject, body)); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}

	return nil
}

func (m *SmtpMailer) buildMessage(to string, subject string, body string) []byte {
	var message strings.Builder

	message.WriteString("From: " + m.from + "\r\n")
	message.WriteString("To: " + to + "\r\n")
	message.WriteString("Subject: " + subject + "\r\n")
	message.WriteString("MIME-Version: 1.0\r\n")
	message.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	message.WriteString("\r\n")
	message.WriteString(body)

	return []byte(message.String())
}
