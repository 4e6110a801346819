package streaks

import (
	"testing"
	"time"
)

func TestScheduler_StartStop(t *testing.T) {
	s := NewScheduler(NewRepo(nil))
	s.Start()
	if s.cron == nil {
		t.Fatal("scheduler did not register its cron job")
	}

	done := make(chan struct{})
	go func() {
		s.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return with no job running")
	}
}

func TestScheduler_StopBeforeStart(t *testing.T) {
	// Stop on a never-started scheduler must be a safe no-op.
	NewScheduler(NewRepo(nil)).Stop()
}
