package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"yi_connect_echo/internal/models"
)

// BuildScheduledTask is a helper to build ScheduledTask records generically.
// The task name must be registered and a recurring task needs a valid RRULE.
func BuildScheduledTask(r *Registry, taskName string, args interface{}, due time.Time, recurringInterval *string, taskType models.ScheduledTaskType, maxAttempt int) (*models.ScheduledTask, error) {
	if _, ok := r.Get(taskName); !ok {
		return nil, fmt.Errorf("unknown task %q (registered: %v)", taskName, r.Names())
	}

	switch taskType {
	case models.ScheduledTaskTypeOneTime:
		recurringInterval = nil
	case models.ScheduledTaskTypeRecurring:
		if recurringInterval == nil || *recurringInterval == "" {
			return nil, fmt.Errorf("recurring task %q needs a recurring interval", taskName)
		}
		if err := models.ValidateRecurrence(*recurringInterval); err != nil {
			return nil, fmt.Errorf("invalid recurring interval: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown task type %q", taskType)
	}

	if maxAttempt < 1 {
		maxAttempt = 1
	}

	argsBytes, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}

	var mapArgs map[string]interface{}
	if err := json.Unmarshal(argsBytes, &mapArgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into map: %w", err)
	}

	return &models.ScheduledTask{
		TaskName:          taskName,
		Arguments:         mapArgs,
		Due:               due,
		RecurringInterval: recurringInterval,
		Status:            models.ScheduledTaskStatusActive,
		TaskType:          taskType,
		MaxAttempt:        maxAttempt,
	}, nil
}
