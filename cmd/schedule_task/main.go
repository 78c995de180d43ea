package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"yi_connect_echo/internal/config"
	"yi_connect_echo/internal/logger"
	"yi_connect_echo/internal/models"
	"yi_connect_echo/internal/services"
	"yi_connect_echo/internal/tasks"
)

func main() {
	taskName := flag.String("task_name", "", "Name of the task (mandatory)")
	argsStr := flag.String("arguments", "{}", "JSON arguments for the task")
	dueStr := flag.String("due", "", "Due date (mandatory, format: 2006-01-02 15:04 or RFC3339)")
	taskType := flag.String("tasktype", "onetime", "Task type: onetime or recurring")
	recurring := flag.String("recurring", "", "RRULE for recurring tasks, e.g. FREQ=DAILY;BYHOUR=3")
	maxAttempt := flag.Int("max_attempt", 3, "Max attempts")

	flag.Parse()

	tasks.DefineTasks(tasks.GlobalRegistry)

	if *taskName == "" || *dueStr == "" {
		fmt.Println("Usage: schedule_task -task_name <name> -due <YYYY-MM-DD HH:MM> [options]")
		fmt.Printf("Tasks: %v\n", tasks.GlobalRegistry.Names())
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Load()
	logger.SetDefault("yi-connect-schedule-task", "", cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		fatal("DATABASE_URL is not set")
	}

	var args map[string]interface{}
	if err := json.Unmarshal([]byte(*argsStr), &args); err != nil {
		fatal("invalid JSON arguments", "error", err)
	}

	due, err := time.Parse(time.RFC3339, *dueStr)
	if err != nil {
		due, err = time.ParseInLocation("2006-01-02 15:04", *dueStr, time.Local)
		if err != nil {
			fatal("invalid due date, use '2006-01-02 15:04' (local) or RFC3339", "error", err)
		}
	}

	var recurringPtr *string
	if *recurring != "" {
		recurringPtr = recurring
	}

	task, err := tasks.BuildScheduledTask(tasks.GlobalRegistry, *taskName, args, due, recurringPtr, models.ScheduledTaskType(*taskType), *maxAttempt)
	if err != nil {
		fatal("invalid task", "error", err)
	}

	db, err := services.InitDB(cfg.DatabaseURL)
	if err != nil {
		fatal("failed to connect DB", "error", err)
	}
	if err := db.Create(task).Error; err != nil {
		fatal("failed to create task", "error", err)
	}

	fmt.Printf("Successfully created task ID: %d\n", task.ID)
	fmt.Printf("Task: %s\nDue: %s\nType: %s\n", task.TaskName, task.Due, task.TaskType)
}

func fatal(msg string, args ...any) {
	slog.Error(msg, args...)
	os.Exit(1)
}
