package mail

import (
	"context"

	"fitness-tracker/internal/config"
	"fitness-tracker/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"
)

var _ adapter.MailSender = (*SMTPSender)(nil)

// SMTPSender delivers plain-text mail through an SMTP relay. Each Send dials
// a fresh connection; at the dispatcher's concurrency bound that is cheap
// enough and avoids a long-lived connection going stale between monthly runs.
type SMTPSender struct {
	dialer *gomail.Dialer
	from   string
	log    *zerolog.Logger
}

func NewSMTPSender(cfg config.MailConfig, logger *zerolog.Logger) *SMTPSender {
	compLog := logger.With().Str("component", "SMTPSender").Logger()
	return &SMTPSender{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    &compLog,
	}
}

func (s *SMTPSender) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return err
	}
	s.log.Debug().Str("to", to).Msg("mail sent")
	return nil
}
