package domain

// Task lifecycle event types pushed to subscribers
const (
	EventTaskCreated  = "task_created"
	EventTaskUpdated  = "task_updated"
	EventTaskDeleted  = "task_deleted"
	EventTasksCleared = "tasks_cleared"
)

type TaskEvent struct {
	Type   string `json:"type"`
	TaskID int64  `json:"task_id,omitempty"`
	Task   *Task  `json:"task,omitempty"`
	// Count is the number of removed rows for tasks_cleared
	Count int64 `json:"count,omitempty"`
}
