package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"portfoliopal/api/internal/repository"
	"portfoliopal/api/internal/timeutil"
)

// Scheduler runs periodic maintenance. Right now that is a single job:
// purging password-reset records past their expiry, so the collection does
// not accumulate dead tokens.
type Scheduler struct {
	cron   *cron.Cron
	resets *repository.ResetRepository
	log    zerolog.Logger
}

func NewScheduler(resets *repository.ResetRepository, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		resets: resets,
		log:    log,
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("@hourly", s.purgeExpiredResets); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits for any running job to finish, up to a short grace period.
func (s *Scheduler) Stop() {
	select {
	case <-s.cron.Stop().Done():
	case <-time.After(5 * time.Second):
		s.log.Warn().Msg("scheduler stop timed out")
	}
}

func (s *Scheduler) purgeExpiredResets() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	purged, err := s.resets.PurgeExpired(ctx, timeutil.Now())
	if err != nil {
		s.log.Error().Err(err).Msg("purge expired reset records failed")
		return
	}
	if purged > 0 {
		s.log.Info().Int64("purged", purged).Msg("expired reset records removed")
	}
}
