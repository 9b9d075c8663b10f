package tasks

// TaskSchedulerInterface defines the interface for background task
// scheduling. The main application uses it to run the worker pool; the API
// layer uses it to enqueue on-demand reload and import tasks.
type TaskSchedulerInterface interface {
	Start()
	Stop()
	EnqueueTask(task TaskInterface) error
}
