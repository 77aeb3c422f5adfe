package mail

import (
	"errors"

	"go.uber.org/zap"
	gomail "gopkg.in/gomail.v2"

	"work-diary/backend/config"
)

// ErrNotConfigured is returned when mail credentials are missing.
// Callers treat every mail failure as non-fatal, so sending simply
// degrades to a logged warning without credentials.
var ErrNotConfigured = errors.New("mail credentials not configured")

// Mailer sends HTML mail through an SMTP relay.
type Mailer struct {
	cfg    *config.MailConfig
	logger *zap.Logger
}

// NewMailer creates a Mailer. It never fails: an unconfigured mailer
// returns ErrNotConfigured from Send instead.
func NewMailer(cfg *config.MailConfig, logger *zap.Logger) *Mailer {
	return &Mailer{cfg: cfg, logger: logger}
}

// Enabled reports whether SMTP credentials are present.
func (m *Mailer) Enabled() bool {
	return m.cfg.Username != "" && m.cfg.Password != ""
}

// Send delivers one HTML message. Every caller of Send swallows the
// error after logging it; a mail failure must never fail the primary
// operation.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		m.logger.Warn("mail sending skipped, credentials missing",
			zap.String("to", to),
			zap.String("subject", subject),
		)
		return ErrNotConfigured
	}

	from := m.cfg.From
	if from == "" {
		from = m.cfg.Username
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	dialer := gomail.NewDialer(m.cfg.SMTPHost, m.cfg.SMTPPort, m.cfg.Username, m.cfg.Password)
	if err := dialer.DialAndSend(msg); err != nil {
		m.logger.Error("mail send failed",
			zap.String("to", to),
			zap.String("subject", subject),
			zap.Error(err),
		)
		return err
	}

	m.logger.Info("mail sent", zap.String("to", to), zap.String("subject", subject))
	return nil
}
