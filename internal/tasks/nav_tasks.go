package tasks

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/services"
)

// DefaultPruneAfterDays is how long an untouched navigation state is kept
const DefaultPruneAfterDays = 30

var (
	errNoCache    = errors.New("redis cache not configured")
	errNoDatabase = errors.New("database not configured")
)

// RefreshMenuCacheTaskDef drops every cached menu so the next request reloads it
type RefreshMenuCacheTaskDef struct{}

// TaskID returns the unique identifier for this task
func (t *RefreshMenuCacheTaskDef) TaskID() string {
	return "refresh_menu_cache"
}

// HandleExecution deletes the cached menus
func (t *RefreshMenuCacheTaskDef) HandleExecution(ctx context.Context, deps Deps, _ models.ScheduledTask) (map[string]interface{}, error) {
	if deps.Cache == nil {
		return nil, errNoCache
	}
	n, err := services.InvalidateMenuCache(ctx, deps.Cache)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"status": "success", "deleted_keys": n}, nil
}

// RefreshMenuCacheTask is the singleton instance of RefreshMenuCacheTaskDef
var RefreshMenuCacheTask = &RefreshMenuCacheTaskDef{}

// PruneNavStateTaskDef deletes stored navigation states nobody touched recently
type PruneNavStateTaskDef struct {
	now func() time.Time
}

// TaskID returns the unique identifier for this task
func (t *PruneNavStateTaskDef) TaskID() string {
	return "prune_nav_state"
}

// HandleExecution deletes nav states older than the older_than_days argument
func (t *PruneNavStateTaskDef) HandleExecution(ctx context.Context, deps Deps, task models.ScheduledTask) (map[string]interface{}, error) {
	if deps.DB == nil {
		return nil, errNoDatabase
	}
	days, err := intArg(task.Arguments, "older_than_days", DefaultPruneAfterDays)
	if err != nil {
		return nil, err
	}

	now := time.Now
	if t.now != nil {
		now = t.now
	}
	cutoff := now().AddDate(0, 0, -days)

	n, err := services.PruneNavStates(ctx, deps.DB, cutoff)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"status":  "success",
		"deleted": n,
		"cutoff":  cutoff.Format(time.RFC3339),
	}, nil
}

// PruneNavStateTask is the singleton instance of PruneNavStateTaskDef
var PruneNavStateTask = &PruneNavStateTaskDef{}

// intArg reads a positive integer argument. JSON numbers decode as float64.
func intArg(args map[string]interface{}, key string, def int) (int, error) {
	raw, ok := args[key]
	if !ok || raw == nil {
		return def, nil
	}

	var n int
	switch v := raw.(type) {
	case float64:
		n = int(v)
	case int:
		n = v
	case string:
		parsed, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("argument %s: %w", key, err)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("argument %s: unsupported type %T", key, raw)
	}
	if n <= 0 {
		return 0, fmt.Errorf("argument %s must be positive, got %d", key, n)
	}
	return n, nil
}
