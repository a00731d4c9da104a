package healthcheck

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var logger zerolog.Logger = log.Logger

// terminate is swapped in tests.
var terminate = terminateService

func SetLogger(customLogger zerolog.Logger) {
	logger = customLogger
}

// Checker is one dependency the service cannot run without.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type checkerFunc struct {
	name  string
	check func(ctx context.Context) error
}

func (c checkerFunc) Name() string                    { return c.name }
func (c checkerFunc) Check(ctx context.Context) error { return c.check(ctx) }

func NewChecker(name string, check func(ctx context.Context) error) Checker {
	return checkerFunc{name: name, check: check}
}

const (
	defaultIntervalSeconds = 60
	checkTimeout           = 10 * time.Second
)

// StartHealthCheckCron runs every checker each intervalSeconds and stops
// the process once any of them fails.
func StartHealthCheckCron(ctx context.Context, checkers []Checker, intervalSeconds int) error {
	if intervalSeconds <= 0 {
		intervalSeconds = defaultIntervalSeconds
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(fmt.Sprintf("@every %ds", intervalSeconds), func() {
		checkOrTerminate(ctx, checkers)
	}); err != nil {
		return fmt.Errorf("schedule health check: %w", err)
	}

	c.Start()
	logger.Info().Int("intervalSeconds", intervalSeconds).Int("checkers", len(checkers)).Msg("health check cron started")

	go func() {
		<-ctx.Done()
		logger.Info().Msg("stopping health check cron")
		<-c.Stop().Done()
	}()
	return nil
}

func checkOrTerminate(ctx context.Context, checkers []Checker) {
	if failed := runHealthChecks(ctx, checkers); len(failed) > 0 {
		terminate()
	}
}

// runHealthChecks returns the names of the unhealthy dependencies. All
// checkers run so that every failure is logged before termination.
func runHealthChecks(ctx context.Context, checkers []Checker) []string {
	var failed []string
	for _, checker := range checkers {
		checkCtx, cancel := context.WithTimeout(ctx, checkTimeout)
		err := checker.Check(checkCtx)
		cancel()
		if err != nil {
			logger.Error().Err(err).Str("dependency", checker.Name()).Msg("dependency is not healthy")
			failed = append(failed, checker.Name())
		}
	}
	return failed
}

func terminateService() {
	logger.Fatal().Msg("terminating service due to health check failure")
	os.Exit(1)
}
