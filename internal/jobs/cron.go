package jobs

import (
	"context"
	"log/slog"
	"strings"

	"github.com/robfig/cron/v3"
)

var scheduleParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// ValidateSchedule reports whether schedule parses as a cron expression. Empty is valid and
// means disabled.
func ValidateSchedule(schedule string) error {
	if strings.TrimSpace(schedule) == "" {
		return nil
	}
	_, err := scheduleParser.Parse(schedule)
	return err
}

// cronLogger routes robfig/cron's own logging to slog.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}

// scheduled runs one function on a cron schedule with a cancellable context.
type scheduled struct {
	name     string
	schedule string
	cron     *cron.Cron
	ctx      context.Context
	cancel   context.CancelFunc
	logger   *slog.Logger
}

func newScheduled(name, schedule string, logger *slog.Logger) *scheduled {
	logger = logger.With("component", name)
	ctx, cancel := context.WithCancel(context.Background())
	return &scheduled{
		name:     name,
		schedule: strings.TrimSpace(schedule),
		cron: cron.New(
			cron.WithParser(scheduleParser),
			cron.WithChain(cron.Recover(cronLogger{logger}), cron.SkipIfStillRunning(cronLogger{logger})),
			cron.WithLogger(cronLogger{logger}),
		),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

func (s *scheduled) enabled() bool {
	return s.schedule != ""
}

func (s *scheduled) start(run func(ctx context.Context)) error {
	if !s.enabled() {
		s.logger.InfoContext(s.ctx, "Job disabled, no schedule configured")
		return nil
	}

	_, err := s.cron.AddFunc(s.schedule, func() { run(s.ctx) })
	if err != nil {
		return err
	}

	s.cron.Start()
	s.logger.InfoContext(s.ctx, "Job started", "schedule", s.schedule)
	return nil
}

func (s *scheduled) stop() {
	s.cancel()
	<-s.cron.Stop().Done()
	if s.enabled() {
		s.logger.InfoContext(context.Background(), "Job stopped")
	}
}
