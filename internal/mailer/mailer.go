// Package mailer delivers verification emails. Delivery is fire-and-forget:
// a failed send never rolls back the token that was already persisted, since
// the token stays valid and can be re-delivered via resend.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/filemanager/backend/internal/config"
	"github.com/filemanager/backend/pkg/logger"
)

type Mailer interface {
	SendVerificationEmail(ctx context.Context, toAddress, displayName, token string) error
}

// New builds the mailer variant selected by configuration: a real SMTP
// sender when email is enabled, otherwise a log-only sender for development.
func New(cfg config.SMTPConfig) Mailer {
	if cfg.Enabled {
		return &SMTPMailer{cfg: cfg}
	}
	return &LogMailer{baseURL: cfg.BaseURL}
}

type SMTPMailer struct {
	cfg config.SMTPConfig
}

func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, toAddress, displayName, token string) error {
	link := fmt.Sprintf("%s/verify-email?token=%s", m.cfg.BaseURL, token)
	body := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: Verify your email address\r\n\r\n"+
			"Hello %s,\r\n\r\n"+
			"Please verify your email address by opening the link below:\r\n\r\n%s\r\n\r\n"+
			"The link expires in 24 hours. If you did not create an account, ignore this message.\r\n",
		m.cfg.From, toAddress, displayName, link,
	)

	addr := m.cfg.Host + ":" + m.cfg.Port
	if err := smtp.SendMail(addr, nil, m.cfg.From, []string{toAddress}, []byte(body)); err != nil {
		logger.Error("verification_email_send_failed", err, map[string]interface{}{
			"to":        toAddress,
			"smtp_addr": addr,
		})
		return err
	}

	logger.Info("verification_email_sent", map[string]interface{}{
		"to": toAddress,
	})
	return nil
}

// LogMailer writes the verification link to the log instead of sending mail.
// Used when EMAIL_ENABLED is false.
type LogMailer struct {
	baseURL string
}

func (m *LogMailer) SendVerificationEmail(ctx context.Context, toAddress, displayName, token string) error {
	logger.Info("verification_email_logged", map[string]interface{}{
		"to":   toAddress,
		"name": displayName,
		"link": fmt.Sprintf("%s/verify-email?token=%s", m.baseURL, token),
	})
	return nil
}
