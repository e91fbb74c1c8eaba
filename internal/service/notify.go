package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"smartsuite/internal/email"
	"smartsuite/internal/model"
	"smartsuite/internal/repository"
)

// Band is the day-count range an expiring document falls into. Exactly one
// band applies per sweep pass.
type Band int

const (
	BandNone Band = iota
	Band30        // (14, 30] days out
	Band14        // (7, 14] days out
	Band7         // (1, 7] days out
	Band1         // exactly 1 day out
)

func (b Band) String() string {
	switch b {
	case Band30:
		return "30d"
	case Band14:
		return "14d"
	case Band7:
		return "7d"
	case Band1:
		return "1d"
	default:
		return "none"
	}
}

// DaysUntil computes the ceiling of the day difference between now and
// expiry. A document expiring later today counts as 1 day away.
func DaysUntil(now, expiry time.Time) int {
	return int(math.Ceil(expiry.Sub(now).Hours() / 24))
}

// BandFor maps remaining days to a reminder band. Expired documents and
// anything more than lookahead days out map to BandNone.
func BandFor(days, lookahead int) Band {
	switch {
	case days <= 0 || days > lookahead:
		return BandNone
	case days == 1:
		return Band1
	case days <= 7:
		return Band7
	case days <= 14:
		return Band14
	default:
		return Band30
	}
}

// DedupWindow is how long after a send the same document stays quiet.
// The final-day band uses a tighter window so the last reminder can still
// fire the morning before expiry.
func (b Band) DedupWindow() time.Duration {
	if b == Band1 {
		return 12 * time.Hour
	}
	return 24 * time.Hour
}

// EnabledIn reports whether this band's reminder is switched on in the
// user's merged settings.
func (b Band) EnabledIn(s model.NotificationSettings) bool {
	if !s.Enabled {
		return false
	}
	switch b {
	case Band30:
		return s.Notify30
	case Band14:
		return s.Notify14
	case Band7:
		return s.Notify7
	case Band1:
		return s.Notify1
	default:
		return false
	}
}

// SweepResult summarizes one sweep execution.
type SweepResult struct {
	Scanned int `json:"scanned"`
	Sent    int `json:"sent"`
	Skipped int `json:"skipped"`
	Failed  int `json:"failed"`
}

// Sweeper scans assigned, expiring documents and sends at most one reminder
// per band crossing. It is best-effort: the dedup signal is the document's
// last_notified_at timestamp, and nothing prevents two overlapping sweeps
// in separate processes from double-sending inside the window.
type Sweeper interface {
	Run(ctx context.Context) (SweepResult, error)
}

type sweeper struct {
	docs      repository.DocumentRepository
	registers repository.RegisterRepository
	users     repository.UserRepository
	settings  SettingsService
	mail      email.Sender
	baseURL   string
	lookahead int
	log       *zap.Logger
	now       func() time.Time
}

// NewSweeper constructs the expiry-notification sweep.
func NewSweeper(
	docs repository.DocumentRepository,
	registers repository.RegisterRepository,
	users repository.UserRepository,
	settings SettingsService,
	mail email.Sender,
	baseURL string,
	lookaheadDays int,
	log *zap.Logger,
) Sweeper {
	if lookaheadDays <= 0 {
		lookaheadDays = 30
	}
	return &sweeper{
		docs:      docs,
		registers: registers,
		users:     users,
		settings:  settings,
		mail:      mail,
		baseURL:   baseURL,
		lookahead: lookaheadDays,
		log:       log,
		now:       time.Now,
	}
}

func (s *sweeper) Run(ctx context.Context) (SweepResult, error) {
	now := s.now()
	var res SweepResult

	docs, err := s.docs.ListExpiring(ctx, now.AddDate(0, 0, s.lookahead))
	if err != nil {
		return res, fmt.Errorf("list expiring documents: %w", err)
	}
	res.Scanned = len(docs)

	for i := range docs {
		doc := &docs[i]
		sent, err := s.process(ctx, doc, now)
		if err != nil {
			res.Failed++
			s.log.Warn("sweep: document skipped after error",
				zap.String("document_id", doc.ID),
				zap.Error(err),
			)
			continue
		}
		if sent {
			res.Sent++
		} else {
			res.Skipped++
		}
	}

	s.log.Info("sweep finished",
		zap.Int("scanned", res.Scanned),
		zap.Int("sent", res.Sent),
		zap.Int("skipped", res.Skipped),
		zap.Int("failed", res.Failed),
	)
	return res, nil
}

// process decides whether one document gets a reminder and sends it.
// The mail goes out before last_notified_at is written; a failed write is
// logged but the send is not retracted (no transaction wraps the loop).
func (s *sweeper) process(ctx context.Context, doc *model.Document, now time.Time) (bool, error) {
	if doc.AssignedTo == nil || doc.ExpiryDate == nil {
		return false, nil
	}

	days := DaysUntil(now, *doc.ExpiryDate)
	band := BandFor(days, s.lookahead)
	if band == BandNone {
		return false, nil
	}

	if doc.LastNotifiedAt != nil && now.Sub(*doc.LastNotifiedAt) < band.DedupWindow() {
		return false, nil
	}

	settings, err := s.settings.Get(ctx, *doc.AssignedTo)
	if err != nil {
		return false, fmt.Errorf("load settings: %w", err)
	}
	if !band.EnabledIn(settings) {
		return false, nil
	}

	user, err := s.users.FindByID(ctx, *doc.AssignedTo)
	if err != nil {
		return false, fmt.Errorf("load assignee: %w", err)
	}

	parentName := doc.ParentID
	if parent, err := s.registers.FindByID(ctx, doc.Module, doc.ParentID); err == nil {
		parentName = parent.Title
	}

	r := email.Reminder{
		To:              user.Email,
		RecipientName:   user.Name,
		DocumentTitle:   doc.Title,
		ParentName:      parentName,
		ExpiryDate:      *doc.ExpiryDate,
		DocumentURL:     fmt.Sprintf("%s/api/documents/%s", s.baseURL, doc.ID),
		DaysUntilExpiry: days,
	}
	if err := s.mail.Send(ctx, r); err != nil {
		return false, fmt.Errorf("send reminder: %w", err)
	}

	if err := s.docs.MarkNotified(ctx, doc.ID, now); err != nil {
		s.log.Warn("sweep: mark notified failed, mail already sent",
			zap.String("document_id", doc.ID),
			zap.String("band", band.String()),
			zap.Error(err),
		)
	}
	return true, nil
}
