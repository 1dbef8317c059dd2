// Package notify is the outcome-reporting boundary: after every mutating
// store operation the core emits a human-readable notification. Delivery is
// fire-and-forget and never part of the operation's success/failure contract.
package notify

import "github.com/rs/zerolog/log"

// Notifier receives operation outcomes. event is a stable machine-readable
// tag ("invoice.created", "product.deleted", …); subject and detail are the
// human-readable lines.
type Notifier interface {
	Notify(event, subject, detail string)
}

// LogNotifier writes notifications to the structured log.
type LogNotifier struct{}

func NewLogNotifier() LogNotifier { return LogNotifier{} }

func (LogNotifier) Notify(event, subject, detail string) {
	log.Info().Str("event", event).Str("subject", subject).Msg(detail)
}

// Nop discards notifications. Used in tests.
type Nop struct{}

func (Nop) Notify(string, string, string) {}
