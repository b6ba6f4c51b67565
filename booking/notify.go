package booking

import "context"

// =============================================================================
// NOTIFIER - Fire-and-forget outbound notifications
// =============================================================================

// Notifier delivers booking notifications (email in production).
// All calls are best-effort: the workflow logs failures and continues, so a
// broken mail server never blocks a submission or a decision.
type Notifier interface {
	// RequestSubmitted notifies the site operator about a new request.
	RequestSubmitted(ctx context.Context, req RentalRequest) error

	// RequestDecided notifies the customer about the decision outcome.
	// req carries the final status and admin note.
	RequestDecided(ctx context.Context, req RentalRequest) error
}

// NopNotifier discards all notifications. Used in tests and when no SMTP
// server is configured.
type NopNotifier struct{}

func (NopNotifier) RequestSubmitted(ctx context.Context, req RentalRequest) error { return nil }
func (NopNotifier) RequestDecided(ctx context.Context, req RentalRequest) error   { return nil }
