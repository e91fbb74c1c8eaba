package scheduler

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"smartsuite/internal/service"
)

// Scheduler runs the expiry-notification sweep on a cron schedule inside a
// single process. SkipIfStillRunning guards against overlapping runs here;
// mutual exclusion across multiple instances is a deployment concern.
type Scheduler struct {
	c   *cron.Cron
	log *zap.Logger
}

// New builds a scheduler with the standard 5-field cron parser.
func New(log *zap.Logger) *Scheduler {
	c := cron.New(cron.WithChain(
		cron.SkipIfStillRunning(cron.DiscardLogger),
		cron.Recover(cron.DiscardLogger),
	))
	return &Scheduler{c: c, log: log}
}

// AddSweep registers the sweep under the given cron expression.
func (s *Scheduler) AddSweep(spec string, sweep service.Sweeper) error {
	_, err := s.c.AddFunc(spec, func() {
		res, err := sweep.Run(context.Background())
		if err != nil {
			s.log.Error("scheduled sweep failed", zap.Error(err))
			return
		}
		s.log.Info("scheduled sweep done",
			zap.Int("scanned", res.Scanned),
			zap.Int("sent", res.Sent),
			zap.Int("skipped", res.Skipped),
			zap.Int("failed", res.Failed),
		)
	})
	return err
}

// Start begins running jobs in their own goroutines.
func (s *Scheduler) Start() {
	s.c.Start()
}

// Stop halts scheduling and waits for a running job to finish.
func (s *Scheduler) Stop() {
	<-s.c.Stop().Done()
}
