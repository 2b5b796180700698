// Package schedule runs automations on cron expressions.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dealflow/dealflow/pkg/models"
	"github.com/dealflow/dealflow/pkg/protocol"
	"github.com/robfig/cron/v3"
)

// TriggerType is recorded on runs started by a schedule.
const TriggerType = "schedule"

type Trigger struct {
	ID           string
	CronExpr     string
	AutomationID string
	Enabled      bool

	cron     *cron.Cron
	callback protocol.TriggerCallback
	logger   *slog.Logger
}

func NewTrigger(id, cronExpr, automationID string, logger *slog.Logger) (*Trigger, error) {
	trigger := &Trigger{
		ID:           id,
		CronExpr:     strings.TrimSpace(cronExpr),
		AutomationID: strings.TrimSpace(automationID),
		Enabled:      true,
		logger: logger.With(
			"module", "schedule_trigger",
			"id", id,
			"cron", cronExpr,
			"automation_id", automationID,
		),
	}

	err := trigger.Validate(context.Background())
	if err != nil {
		return nil, err
	}

	return trigger, nil
}

// ParseSpec builds a trigger from "automationId=cron expression".
func ParseSpec(spec string, logger *slog.Logger) (*Trigger, error) {
	automationID, cronExpr, ok := strings.Cut(spec, "=")
	if !ok {
		return nil, fmt.Errorf("invalid schedule %q: expected automationId=cron", spec)
	}

	return NewTrigger("schedule-"+strings.TrimSpace(automationID), cronExpr, automationID, logger)
}

func (t *Trigger) Validate(_ context.Context) error {
	if t.AutomationID == "" {
		return errors.New("schedule trigger automation ID is required")
	}

	if t.CronExpr == "" {
		return errors.New("schedule trigger cron expression is required")
	}

	if _, err := cron.ParseStandard(t.CronExpr); err != nil {
		return fmt.Errorf("invalid cron expression: %w", err)
	}

	return nil
}

func (t *Trigger) Start(ctx context.Context, callback protocol.TriggerCallback) error {
	if !t.Enabled {
		t.logger.InfoContext(ctx, "ScheduleTrigger is disabled.")

		return nil
	}

	t.logger.InfoContext(ctx, "Starting ScheduleTrigger")
	t.callback = callback

	cronLogger := newCronLogger(t.logger)
	t.cron = cron.New(cron.WithLogger(cronLogger))

	id, err := t.cron.AddJob(t.CronExpr, t.job(ctx, cronLogger))
	if err != nil {
		return fmt.Errorf("failed to add cron job for trigger %s: %w", t.ID, err)
	}

	t.logger.InfoContext(ctx, "Added cron job for trigger", "entry_id", id)
	t.cron.Start()

	return nil
}

// job wraps Fire so that a tick arriving while the previous run is still in
// progress is skipped.
func (t *Trigger) job(ctx context.Context, logger cron.Logger) cron.Job {
	return cron.NewChain(
		cron.SkipIfStillRunning(logger),
		cron.Recover(logger),
	).Then(cron.FuncJob(func() { t.Fire(ctx) }))
}

// Fire runs one scheduled automation without a property and returns when the
// run is done.
func (t *Trigger) Fire(ctx context.Context) {
	t.logger.InfoContext(ctx, "Cron job triggered")

	err := t.callback(ctx, models.RunRequest{AutomationID: t.AutomationID, TriggerType: TriggerType})
	if err != nil {
		t.logger.ErrorContext(ctx, "Error executing automation for trigger", "error", err)
	}
}

// Stop halts the schedule and waits for the run in flight.
func (t *Trigger) Stop(ctx context.Context) error {
	t.logger.InfoContext(ctx, "Stopping ScheduleTrigger", "id", t.ID)

	if t.cron != nil {
		<-t.cron.Stop().Done()
	}

	return nil
}

// cronLogger routes cron's internal logging to slog.
type cronLogger struct {
	logger *slog.Logger
}

func newCronLogger(logger *slog.Logger) cron.Logger {
	return &cronLogger{logger: logger}
}

func (l *cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
