package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/ogrishko/polygon-weather/internal/region"
)

// Scheduler periodically refreshes the cached temperature series for all
// stored regions.
type Scheduler struct {
	scheduler *gocron.Scheduler
	service   *region.Service
	interval  time.Duration
}

// New creates a new Scheduler.
func New(interval time.Duration, service *region.Service) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		service:   service,
		interval:  interval,
	}
}

// Start schedules the periodic refresh job and starts the underlying
// scheduler.
func (s *Scheduler) Start() error {
	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 60
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(func() {
		log.Println("scheduler: refreshing region series")
		s.service.RefreshAll(context.Background())
		log.Println("scheduler: region series refresh complete")
	})
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
