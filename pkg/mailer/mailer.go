package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"strings"

	"github.com/marcp/critics-eye-backend/config"
	"github.com/marcp/critics-eye-backend/pkg/logger"
)

const resetSubject = "Reset Your Password"

var resetTemplate = template.Must(template.New("reset").Parse(`<html>
<body style="font-family: 'Poppins', Arial, sans-serif; padding: 20px; background-color: #e0e0e0;">
	<div style="max-width: 600px; margin: 0 auto; background-color: #fff; padding: 32px; border: 1px solid #ddd; border-radius: 8px;">
		<h2 style="color: #333;">Hello, {{.Name}}!</h2>
		<p style="color: #555; line-height: 1.5;">
			We received a request to reset the password of your {{.AppName}} account.
			Click the button below to choose a new one.
		</p>
		<div style="text-align: center; margin: 24px 0;">
			<a href="{{.Link}}" style="display: inline-block; padding: 12px 24px; background-color: #1f2937; color: #fff; text-decoration: none; font-weight: bold; border-radius: 4px;">Reset Password</a>
		</div>
		<p style="color: #888; font-size: 14px;">This link is valid for one hour.</p>
		<p style="color: #888; font-size: 14px;">If the button does not work, paste this address into your browser:</p>
		<p style="color: #555; font-size: 12px; word-break: break-all;">{{.Link}}</p>
		<p style="color: #888; font-size: 14px;">If you did not request a reset, you can ignore this email.</p>
	</div>
</body>
</html>
`))

// SendFunc matches smtp.SendMail.
type SendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPMailer delivers transactional email through an SMTP relay.
type SMTPMailer struct {
	cfg  config.MailConfig
	send SendFunc
}

func NewSMTPMailer(cfg config.MailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg, send: smtp.SendMail}
}

// WithSendFunc replaces the transport, mostly for tests.
func (m *SMTPMailer) WithSendFunc(send SendFunc) *SMTPMailer {
	m.send = send
	return m
}

// ResetLink builds the frontend URL that carries the reset token.
func (m *SMTPMailer) ResetLink(token string) string {
	return fmt.Sprintf("%s/password-reset/%s", strings.TrimRight(m.cfg.FrontendURL, "/"), token)
}

// SendPasswordReset blocks until the relay accepts the message.
func (m *SMTPMailer) SendPasswordReset(toEmail, toName, token string) error {
	link := m.ResetLink(token)

	// without credentials there is nothing to relay through
	if m.cfg.Username == "" || m.cfg.Password == "" {
		logger.Info("[DEV MODE] Password reset link", map[string]interface{}{
			"to":   toEmail,
			"link": link,
		})
		return nil
	}

	var body bytes.Buffer
	if err := resetTemplate.Execute(&body, map[string]string{
		"Name":    toName,
		"Link":    link,
		"AppName": m.cfg.FromName,
	}); err != nil {
		return fmt.Errorf("failed to render reset email: %w", err)
	}

	message := buildMessage(fmt.Sprintf("%s <%s>", m.cfg.FromName, m.cfg.Username), toEmail, resetSubject, body.String())
	auth := smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)

	if err := m.send(m.cfg.Host+":"+m.cfg.Port, auth, m.cfg.Username, []string{toEmail}, message); err != nil {
		logger.Error("Failed to send password reset email", err, map[string]interface{}{
			"to": toEmail,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}

	logger.Info("Password reset email sent", map[string]interface{}{
		"to": toEmail,
	})
	return nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		from, to, subject, htmlBody,
	))
}
