// Package scheduler runs background jobs on an injected clock. A job never
// overlaps itself: the next run is planned only after the previous one
// returns.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/anonymousnfts/stake-reward-service/internal/observability/metrics"
)

type Job func(ctx context.Context)

// nextFunc returns the first fire time strictly after now.
type nextFunc func(now time.Time) time.Time

type entry struct {
	name string
	next nextFunc
	job  Job
}

type Scheduler struct {
	clock    clock.Clock
	location *time.Location
	entries  []entry

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New creates a scheduler. Cron expressions are evaluated in loc.
func New(clk clock.Clock, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{clock: clk, location: loc}
}

// Every runs job every interval, the first run one interval after Start.
func (s *Scheduler) Every(name string, interval time.Duration, job Job) error {
	if interval <= 0 {
		return fmt.Errorf("job %s: interval must be positive", name)
	}
	s.add(entry{
		name: name,
		next: func(now time.Time) time.Time { return now.Add(interval) },
		job:  job,
	})
	return nil
}

// Cron runs job on a standard five-field cron expression.
func (s *Scheduler) Cron(name, spec string, job Job) error {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return fmt.Errorf("job %s: invalid cron expression %q: %w", name, spec, err)
	}
	s.add(entry{
		name: name,
		next: func(now time.Time) time.Time { return schedule.Next(now.In(s.location)) },
		job:  job,
	})
	return nil
}

func (s *Scheduler) add(e entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, e)
}

// Start launches one goroutine per job. It is a no-op when already running.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}
	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	for _, e := range s.entries {
		s.wg.Add(1)
		go s.loop(ctx, e)
	}
	log.Info().Int("jobs", len(s.entries)).Msg("scheduler started")
}

// Stop cancels all jobs and waits for running ones to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.cancel()
	s.running = false
	s.mu.Unlock()

	s.wg.Wait()
	log.Info().Msg("scheduler stopped")
}

func (s *Scheduler) loop(ctx context.Context, e entry) {
	defer s.wg.Done()

	logger := log.With().Str("job", e.name).Logger()
	ctx = logger.WithContext(ctx)

	for {
		now := s.clock.Now()
		next := e.next(now)
		timer := s.clock.Timer(next.Sub(now))
		logger.Debug().Time("next", next).Msg("job scheduled")

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		s.run(ctx, e)
	}
}

func (s *Scheduler) run(ctx context.Context, e entry) {
	logger := log.Ctx(ctx)
	start := s.clock.Now()
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Msg("job panicked")
		}
		elapsed := s.clock.Since(start)
		metrics.ObserveJobDuration(e.name, elapsed)
		logger.Info().Dur("elapsed", elapsed).Msg("job finished")
	}()

	logger.Info().Msg("job started")
	e.job(ctx)
}
