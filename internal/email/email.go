package email

import (
	"context"
	"time"
)

// Reminder carries everything an expiry notification mail needs. One value
// per send; the sweep does not batch recipients.
type Reminder struct {
	To              string
	RecipientName   string
	DocumentTitle   string
	ParentName      string
	ExpiryDate      time.Time
	DocumentURL     string
	DaysUntilExpiry int
}

// Sender delivers expiry reminder mails. Implementations must not retry;
// callers treat delivery as best-effort.
type Sender interface {
	Send(ctx context.Context, r Reminder) error
}
