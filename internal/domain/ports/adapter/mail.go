package adapter

import "context"

// MailSender is the outbound mail transport consumed by the dispatcher.
// Implementations must be safe for concurrent use by the worker pool.
type MailSender interface {
	Send(ctx context.Context, to, subject, body string) error
}
