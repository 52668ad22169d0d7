package mail

import (
	"context"

	"fitness-tracker/internal/domain/ports/adapter"

	"github.com/rs/zerolog"
)

var _ adapter.MailSender = (*NoopSender)(nil)

// NoopSender stands in when no SMTP host is configured. It logs the message
// instead of sending it, which keeps dev environments mail-free.
type NoopSender struct {
	log *zerolog.Logger
}

func NewNoopSender(logger *zerolog.Logger) *NoopSender {
	compLog := logger.With().Str("component", "NoopSender").Logger()
	return &NoopSender{log: &compLog}
}

func (s *NoopSender) Send(ctx context.Context, to, subject, body string) error {
	s.log.Info().Str("to", to).Str("subject", subject).Msg("mail transport disabled; dropping message")
	return nil
}
