package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// StatusNotifier tells an applicant that their application changed state
type StatusNotifier interface {
	NotifyStatusChange(ctx context.Context, toEmail, studentName, status string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host       string
	Port       int
	Username   string
	Password   string
	FromName   string
	FromEmail  string
	UseTLS     bool
	SchoolName string
}

// Configured reports whether enough settings are present to send mail
func (c SMTPConfig) Configured() bool {
	return c.Host != "" && c.Username != "" && c.Password != ""
}

// SMTPNotifier implements StatusNotifier over SMTP. Without credentials it
// only logs the notification.
type SMTPNotifier struct {
	config SMTPConfig
	logger zerolog.Logger
	send   func(to string, msg []byte) error
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	n := &SMTPNotifier{config: config, logger: logger}
	n.send = n.sendMail
	return n
}

var statusText = map[string]string{
	"approved": "has been approved. You can now download your admit card from the admissions portal.",
	"rejected": "was not approved. Please contact the school office for details.",
	"pending":  "is under review again. We will notify you once a decision is made.",
}

// NotifyStatusChange sends the status-change email for one applicant
func (n *SMTPNotifier) NotifyStatusChange(ctx context.Context, toEmail, studentName, status string) error {
	if !n.config.Configured() {
		n.logger.Warn().
			Str("toEmail", toEmail).
			Str("status", status).
			Msg("SMTP credentials not configured - status email not sent.")
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	text, ok := statusText[status]
	if !ok {
		return fmt.Errorf("no notification text for status %q", status)
	}

	subject := fmt.Sprintf("Application Update - %s", n.config.SchoolName)
	body := fmt.Sprintf(`
		<html>
		<body>
			<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
				<h2 style="color: #2E86C1;">%s</h2>
				<p>Dear Parent,</p>
				<p>The admission application for <strong>%s</strong> %s</p>
				<p>Regards,<br>Admissions Office</p>
			</div>
		</body>
		</html>
	`, n.config.SchoolName, studentName, text)

	if err := n.send(toEmail, n.buildMessage(toEmail, subject, body)); err != nil {
		n.logger.Error().Err(err).Str("toEmail", toEmail).Msg("Failed to send status email")
		return err
	}
	n.logger.Info().Str("toEmail", toEmail).Str("status", status).Msg("Status email sent")
	return nil
}

func (n *SMTPNotifier) buildMessage(toEmail, subject, htmlBody string) []byte {
	headers := map[string]string{
		"From":         fmt.Sprintf("%s <%s>", n.config.FromName, n.config.FromEmail),
		"To":           toEmail,
		"Subject":      subject,
		"MIME-Version": "1.0",
		"Content-Type": "text/html; charset=UTF-8",
	}
	keys := make([]string, 0, len(headers))
	for k := range headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "%s: %s\r\n", k, headers[k])
	}
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}

func (n *SMTPNotifier) sendMail(toEmail string, message []byte) error {
	auth := smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)
	serverAddress := n.config.Host + ":" + strconv.Itoa(n.config.Port)

	if !n.config.UseTLS {
		if err := smtp.SendMail(serverAddress, auth, n.config.FromEmail, []string{toEmail}, message); err != nil {
			return fmt.Errorf("failed to send email: %w", err)
		}
		return nil
	}

	conn, err := tls.Dial("tcp", serverAddress, &tls.Config{ServerName: n.config.Host})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(auth); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(n.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(toEmail); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	if err = w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}
	return nil
}
