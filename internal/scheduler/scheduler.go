package scheduler

import (
	"time"

	"github.com/go-co-op/gocron"

	"github.com/i474232898/forecast-compare/internal/log"
)

// Purger is anything holding entries that expire.
type Purger interface {
	Purge() int
}

// Scheduler periodically evicts expired comparisons.
type Scheduler struct {
	scheduler *gocron.Scheduler
	target    Purger
	interval  time.Duration
}

// New creates a new Scheduler.
func New(target Purger, interval time.Duration) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		target:    target,
		interval:  interval,
	}
}

// Start schedules the purge job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if s.target == nil {
		log.Infof("scheduler: no purge target configured; nothing to schedule")
		return nil
	}

	interval := s.interval
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	_, err := s.scheduler.Every(interval).WaitForSchedule().Do(func() { s.purge() })
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) purge() int {
	removed := s.target.Purge()
	if removed > 0 {
		log.Debugf("scheduler: purged %d expired comparisons", removed)
	}
	return removed
}
