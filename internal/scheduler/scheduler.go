package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"finsight/internal/updater"

	"github.com/robfig/cron/v3"
)

// Scheduler fires batch updates at configured wall-clock times. Daily and
// weekly registrations are additive; both may be active at once.
type Scheduler struct {
	cron    *cron.Cron
	updater *updater.Updater
	ctx     context.Context

	mu  sync.Mutex
	ids []cron.EntryID
}

// New creates a Scheduler. The context bounds batches started by triggers.
func New(ctx context.Context, u *updater.Updater) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		updater: u,
		ctx:     ctx,
	}
}

// parseClock parses "HH:MM" into hour and minute.
func parseClock(timeOfDay string) (hour, minute int, err error) {
	t, err := time.Parse("15:04", timeOfDay)
	if err != nil {
		return 0, 0, fmt.Errorf("time of day %q: %w", timeOfDay, err)
	}
	return t.Hour(), t.Minute(), nil
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ScheduleDaily registers a trigger firing every day at the given local time.
func (s *Scheduler) ScheduleDaily(timeOfDay string) error {
	hour, minute, err := parseClock(timeOfDay)
	if err != nil {
		return err
	}
	spec := fmt.Sprintf("0 %d %d * * *", minute, hour)
	if err := s.register(spec); err != nil {
		return fmt.Errorf("register daily trigger: %w", err)
	}
	log.Printf("[INFO] daily update scheduled at %s", timeOfDay)
	return nil
}

// ScheduleWeekly registers a trigger firing every week on the named weekday
// at the given local time. Weekday names are English, case-insensitive.
func (s *Scheduler) ScheduleWeekly(weekday, timeOfDay string) error {
	day, ok := weekdays[strings.ToLower(weekday)]
	if !ok {
		return fmt.Errorf("unknown weekday %q", weekday)
	}
	hour, minute, err := parseClock(timeOfDay)
	if err != nil {
		return err
	}
	spec := fmt.Sprintf("0 %d %d * * %d", minute, hour, int(day))
	if err := s.register(spec); err != nil {
		return fmt.Errorf("register weekly trigger: %w", err)
	}
	log.Printf("[INFO] weekly update scheduled on %s at %s", strings.ToLower(weekday), timeOfDay)
	return nil
}

func (s *Scheduler) register(spec string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.cron.AddFunc(spec, s.runBatch)
	if err != nil {
		return err
	}
	s.ids = append(s.ids, id)
	return nil
}

func (s *Scheduler) runBatch() {
	if err := s.updater.UpdateAll(s.ctx); err != nil {
		log.Printf("[ERROR] scheduled batch: %v", err)
	}
}

// Clear removes all registered triggers.
func (s *Scheduler) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.ids {
		s.cron.Remove(id)
	}
	s.ids = nil
	log.Println("[INFO] all scheduled triggers cleared")
}

// Entries returns the number of active triggers.
func (s *Scheduler) Entries() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}

// NextRuns returns the next fire time of each active trigger.
func (s *Scheduler) NextRuns() []time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	next := make([]time.Time, 0, len(s.ids))
	for _, id := range s.ids {
		e := s.cron.Entry(id)
		if e.ID == id {
			next = append(next, e.Schedule.Next(now))
		}
	}
	return next
}

// Run starts the cron runner and blocks until ctx is cancelled, then stops
// gracefully, waiting for an in-flight batch to finish.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	log.Println("[INFO] scheduler running")
	<-ctx.Done()
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	log.Println("[INFO] scheduler stopped")
}
