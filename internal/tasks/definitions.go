package tasks

// DefineTasks registers all available tasks on r
func DefineTasks(r *Registry) {
	// general
	r.Register(LogInfoTask.TaskID(), LogInfoTask.HandleExecution)

	// navigation maintenance
	r.Register(RefreshMenuCacheTask.TaskID(), RefreshMenuCacheTask.HandleExecution)
	r.Register(PruneNavStateTask.TaskID(), PruneNavStateTask.HandleExecution)
}
