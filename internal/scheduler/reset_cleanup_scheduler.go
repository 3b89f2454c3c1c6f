package scheduler

import (
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// ExpiredResetPurger deletes password resets whose window has closed.
type ExpiredResetPurger interface {
	PurgeExpired() (int64, error)
}

// ResetCleanupScheduler periodically purges expired password-reset tokens
type ResetCleanupScheduler struct {
	cron     *cron.Cron
	schedule string
	purger   ExpiredResetPurger
}

func NewResetCleanupScheduler(schedule string, purger ExpiredResetPurger) *ResetCleanupScheduler {
	return &ResetCleanupScheduler{
		cron:     cron.New(),
		schedule: schedule,
		purger:   purger,
	}
}

// Start registers the purge job and starts the cron loop
func (s *ResetCleanupScheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, s.runOnce); err != nil {
		logger.Error("Failed to add cron job for reset cleanup", err, map[string]interface{}{
			"schedule": s.schedule,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Reset cleanup scheduler started", map[string]interface{}{
		"schedule": s.schedule,
	})
	return nil
}

func (s *ResetCleanupScheduler) runOnce() {
	n, err := s.purger.PurgeExpired()
	if err != nil {
		logger.Error("Failed to purge expired password resets", err)
		return
	}
	logger.Info("Purged expired password resets", map[string]interface{}{
		"count": n,
	})
}

// Stop waits for a running job to finish
func (s *ResetCleanupScheduler) Stop() {
	logger.Info("Stopping reset cleanup scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Reset cleanup scheduler stopped")
}
