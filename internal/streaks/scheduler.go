package streaks

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

type Scheduler struct {
	repo *Repo
	cron *cron.Cron
}

func NewScheduler(repo *Repo) *Scheduler {
	return &Scheduler{repo: repo}
}

// Start initializes cron tasks
func (s *Scheduler) Start() {
	c := cron.New(cron.WithSeconds())

	// (12:05 AM, after the day boundary has settled)
	_, err := c.AddFunc("0 5 0 * * *", func() {
		s.runNightly()
	})

	if err != nil {
		log.Printf("Failed to create cron job: %v", err)
		return
	}

	log.Println("Cron scheduler started (streak recompute nightly at 12:05AM)")
	c.Start()
	s.cron = c
}

// Stop halts the scheduler and waits for a running job to finish.
func (s *Scheduler) Stop() {
	if s.cron == nil {
		return
	}
	<-s.cron.Stop().Done()
	log.Println("Cron scheduler stopped")
}

func (s *Scheduler) runNightly() {
	log.Println("Nightly streak recompute started...")

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	n, err := s.repo.Recompute(ctx)
	if err != nil {
		log.Printf("Streak recompute failed: %v", err)
		return
	}

	log.Printf("Streak recompute completed: %d users updated at %s", n, time.Now().Format(time.RFC1123))
}
