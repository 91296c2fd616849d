package jobs

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fleetroute/internal/core/application/usecases/commands"
	"fleetroute/internal/core/domain/services"

	"github.com/robfig/cron/v3"
)

// DefaultPlanningSchedule runs the planning job at 06:00 every day, before
// vehicles leave the depot.
const DefaultPlanningSchedule = "0 0 6 * * *"

// RoutePlanningJob runs the morning planning pass: it takes the current
// date's unassigned stop backlog and turns it into routes.
type RoutePlanningJob struct {
	handler  commands.PlanRoutesCommandHandler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewRoutePlanningJob creates the planning job with the given cron schedule
// (six-field, with seconds). An empty schedule selects the default.
func NewRoutePlanningJob(
	handler commands.PlanRoutesCommandHandler,
	schedule string,
	logger *slog.Logger,
) *RoutePlanningJob {
	if schedule == "" {
		schedule = DefaultPlanningSchedule
	}

	return &RoutePlanningJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "route_planning_job"),
	}
}

// Start begins the scheduled planning runs.
func (j *RoutePlanningJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, j.run)
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Route planning job started", "schedule", j.schedule)
	return nil
}

// Stop stops the planning job.
func (j *RoutePlanningJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Route planning job stopped")
}

func (j *RoutePlanningJob) run() {
	ctx := context.Background()

	cmd, err := commands.NewPlanRoutesCommand(time.Now().UTC())
	if err != nil {
		j.logger.ErrorContext(ctx, "Route planning job misconfigured", "error", err)
		return
	}

	result, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		// Zero routes is a business outcome (bad backlog, no vehicles),
		// not a system failure.
		if errors.Is(err, services.ErrNothingPlanned) {
			j.logger.WarnContext(ctx, "Route planning produced no routes", "error", err)
			return
		}

		j.logger.ErrorContext(ctx, "Route planning job failed", "error", err)
		return
	}

	j.logger.InfoContext(ctx, "Route planning run finished",
		"routes_created", result.RoutesCreated,
		"stops_assigned", result.StopsAssigned,
		"warnings", len(result.Warnings),
	)
}
