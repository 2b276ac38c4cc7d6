package services

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"sort"
	"strings"

	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/internal/config"
	"github.com/Code-the-Dream-School/ii-practicum-team-6-back/pkg/logger"
)

type EmailService struct {
	config config.SMTPConfig
	// send is swapped out in tests
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	s := &EmailService{config: cfg}
	s.send = s.deliver
	return s
}

// Enabled reports whether an SMTP host is configured. Without one, messages
// are logged instead of sent.
func (s *EmailService) Enabled() bool {
	return s.config.Host != ""
}

// PasswordResetEmail builds the message carrying a reset link.
func PasswordResetEmail(to, username, resetURL string) *EmailTask {
	var sb strings.Builder
	sb.WriteString("<html><body style=\"font-family: Arial, sans-serif;\">")
	sb.WriteString(fmt.Sprintf("<p>Hi %s,</p>", html.EscapeString(username)))
	sb.WriteString("<p>We received a request to reset your password. The link below is valid for one hour.</p>")
	sb.WriteString(fmt.Sprintf("<p><a href=\"%s\">Reset your password</a></p>", html.EscapeString(resetURL)))
	sb.WriteString("<p>If you did not ask for this, you can ignore this email.</p>")
	sb.WriteString("</body></html>")

	return &EmailTask{
		To:      []string{to},
		Subject: "Reset your password",
		Body:    sb.String(),
	}
}

// ProcessEmailTask is the task queue processor for outgoing mail.
func (s *EmailService) ProcessEmailTask(_ context.Context, task *EmailTask) error {
	if len(task.To) == 0 {
		return nil
	}
	if !s.Enabled() {
		logger.Infof("[Email] SMTP not configured, message not sent: to=%v, subject=%q", task.To, task.Subject)
		return nil
	}
	return s.sendEmail(task.To, task.Subject, task.Body)
}

func (s *EmailService) sendEmail(to []string, subject, body string) error {
	from := s.config.From
	if from == "" {
		from = s.config.Username
	}

	message := buildMessage(from, to, subject, body)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var auth smtp.Auth
	if s.config.Username != "" && s.config.Password != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	if err := s.send(addr, auth, from, to, []byte(message)); err != nil {
		logger.Errorf("[Email] Failed to send email: %v", err)
		return err
	}

	logger.Infof("[Email] Sent %q to %v", subject, to)
	return nil
}

func buildMessage(from string, to []string, subject, body string) string {
	headers := map[string]string{
		"From":         from,
		"To":           strings.Join(to, ","),
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var message strings.Builder
	for _, k := range keys {
		message.WriteString(fmt.Sprintf("%s: %s\r\n", k, headers[k]))
	}
	message.WriteString("\r\n")
	message.WriteString(body)
	return message.String()
}

func (s *EmailService) deliver(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
	if !s.config.UseTLS {
		return smtp.SendMail(addr, auth, from, to, msg)
	}

	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: s.config.Host})
	if err != nil {
		return err
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth != nil {
		if err := client.Auth(auth); err != nil {
			return err
		}
	}
	if err := client.Mail(from); err != nil {
		return err
	}
	for _, rcpt := range to {
		if err := client.Rcpt(rcpt); err != nil {
			return err
		}
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}
