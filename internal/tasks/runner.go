package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"yi_connect_echo/internal/models"
)

// Runner executes due scheduled tasks
type Runner struct {
	deps        Deps
	registry    *Registry
	concurrency int
	now         func() time.Time
}

// NewRunner creates a runner. deps.DB is required.
func NewRunner(deps Deps, registry *Registry, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &Runner{deps: deps, registry: registry, concurrency: concurrency, now: time.Now}
}

// RunDue executes every active task whose due time has passed
func (r *Runner) RunDue(ctx context.Context) error {
	var pending []models.ScheduledTask
	err := r.deps.DB.WithContext(ctx).
		Where("status = ? AND due <= ?", models.ScheduledTaskStatusActive, r.now()).
		Order("due").
		Find(&pending).Error
	if err != nil {
		return fmt.Errorf("fetch pending tasks: %w", err)
	}
	if len(pending) == 0 {
		slog.Debug("no pending tasks")
		return nil
	}
	slog.Info("processing pending tasks", "count", len(pending))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.concurrency)
	for _, task := range pending {
		task := task
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			r.Execute(gctx, task)
			return nil
		})
	}
	return g.Wait()
}

// Execute runs one task, retrying up to MaxAttempt times, and records every attempt
func (r *Runner) Execute(ctx context.Context, task models.ScheduledTask) {
	log := slog.With("task", task.TaskName, "task_id", task.ID)
	db := r.deps.DB.WithContext(ctx)

	handler, found := r.registry.Get(task.TaskName)
	if !found {
		log.Error("task handler not found, marking as failure")
		now := r.now()
		db.Create(&models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           now,
			Status:          "handler_not_found",
			AttemptNumber:   1,
			Arguments:       task.Arguments,
			Result:          map[string]interface{}{"error": "Handler not found"},
		})
		db.Model(&task).Updates(map[string]interface{}{
			"status":   models.ScheduledTaskStatusFailure,
			"last_run": &now,
		})
		return
	}

	maxAttempt := task.MaxAttempt
	if maxAttempt < 1 {
		maxAttempt = 1
	}

	var lastRun time.Time
	succeeded := false
	for attempt := 1; attempt <= maxAttempt && !succeeded; attempt++ {
		if ctx.Err() != nil {
			return
		}

		lastRun = r.now()
		result, err := handler(ctx, r.deps, task)
		runtime := r.now().Sub(lastRun)

		status := "success"
		if err != nil {
			status = "failure"
			result = map[string]interface{}{"error": err.Error()}
			log.Warn("task attempt failed", "attempt", attempt, "max_attempt", maxAttempt, "error", err)
		} else {
			succeeded = true
			log.Info("task completed", "attempt", attempt, "runtime", runtime)
		}

		if err := db.Create(&models.ScheduledTaskHistory{
			ScheduledTaskID: task.ID,
			TaskName:        task.TaskName,
			RunAt:           lastRun,
			RuntimeMs:       int(runtime.Milliseconds()),
			Status:          status,
			AttemptNumber:   attempt,
			Arguments:       task.Arguments,
			Result:          result,
		}).Error; err != nil {
			log.Error("record task history", "error", err)
		}
	}

	if err := db.Model(&task).Updates(completionUpdates(task, succeeded, lastRun, r.now())).Error; err != nil {
		log.Error("update scheduled task", "error", err)
	}
}

// completionUpdates decides the task's next status after its attempts.
// Recurring tasks move to their next occurrence whether or not the run succeeded;
// a rule without further occurrences finishes the task.
func completionUpdates(task models.ScheduledTask, succeeded bool, lastRun, now time.Time) map[string]interface{} {
	updates := map[string]interface{}{"last_run": &lastRun}

	if task.TaskType == models.ScheduledTaskTypeRecurring {
		next := task.NextDue(now)
		if next.After(now) {
			updates["status"] = models.ScheduledTaskStatusActive
			updates["due"] = next
			return updates
		}
	}

	if succeeded {
		updates["status"] = models.ScheduledTaskStatusDone
	} else {
		updates["status"] = models.ScheduledTaskStatusFailure
	}
	return updates
}
