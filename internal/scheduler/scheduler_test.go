package scheduler

import (
	"context"
	"testing"
	"time"

	"finsight/internal/fetcher"
	"finsight/internal/recorder"
	"finsight/internal/updater"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	u := updater.New(nil, fetcher.NewMockFetcher(), recorder.NewNoopRecorder(), t.TempDir())
	return New(context.Background(), u)
}

func TestScheduleDaily_FiresAtRequestedClock(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.ScheduleDaily("09:30"); err != nil {
		t.Fatalf("ScheduleDaily: %v", err)
	}
	if s.Entries() != 1 {
		t.Fatalf("expected 1 trigger, got %d", s.Entries())
	}

	next := s.NextRuns()
	if len(next) != 1 {
		t.Fatalf("expected 1 next run, got %d", len(next))
	}
	if next[0].Hour() != 9 || next[0].Minute() != 30 {
		t.Errorf("next run at %s, want 09:30 local", next[0].Format("15:04"))
	}
	if until := time.Until(next[0]); until <= 0 || until > 24*time.Hour {
		t.Errorf("next run must be within the coming 24h, got %s away", until)
	}

	// Exactly one fire per 24-hour period: the fire after the next is a
	// full day later, same clock time.
	second := s.cron.Entry(s.ids[0]).Schedule.Next(next[0])
	if want := next[0].Add(24 * time.Hour); !second.Equal(want) {
		t.Errorf("second fire at %s, want %s", second, want)
	}
}

func TestScheduleWeekly_FiresOnRequestedWeekday(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.ScheduleWeekly("Monday", "09:00"); err != nil {
		t.Fatalf("ScheduleWeekly: %v", err)
	}
	next := s.NextRuns()
	if len(next) != 1 {
		t.Fatalf("expected 1 next run, got %d", len(next))
	}
	if next[0].Weekday() != time.Monday {
		t.Errorf("next run on %s, want Monday", next[0].Weekday())
	}
	if next[0].Hour() != 9 || next[0].Minute() != 0 {
		t.Errorf("next run at %s, want 09:00 local", next[0].Format("15:04"))
	}
}

func TestSchedules_AreAdditive(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.ScheduleDaily("09:30"); err != nil {
		t.Fatalf("ScheduleDaily: %v", err)
	}
	if err := s.ScheduleWeekly("friday", "16:00"); err != nil {
		t.Fatalf("ScheduleWeekly: %v", err)
	}
	if s.Entries() != 2 {
		t.Fatalf("daily and weekly must coexist, got %d triggers", s.Entries())
	}

	s.Clear()
	if s.Entries() != 0 {
		t.Fatalf("Clear must remove all triggers, got %d", s.Entries())
	}
	if len(s.NextRuns()) != 0 {
		t.Error("cleared scheduler must report no next runs")
	}
}

func TestSchedule_RejectsBadInput(t *testing.T) {
	s := newTestScheduler(t)
	tests := []struct {
		name string
		err  error
	}{
		{"bad clock", s.ScheduleDaily("9h30")},
		{"out of range", s.ScheduleDaily("25:00")},
		{"bad weekday", s.ScheduleWeekly("someday", "09:00")},
		{"bad weekly clock", s.ScheduleWeekly("monday", "midnight")},
	}
	for _, tc := range tests {
		if tc.err == nil {
			t.Errorf("%s: expected error", tc.name)
		}
	}
	if s.Entries() != 0 {
		t.Errorf("rejected schedules must not register triggers, got %d", s.Entries())
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	s := newTestScheduler(t)
	if err := s.ScheduleDaily("09:30"); err != nil {
		t.Fatalf("ScheduleDaily: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}
