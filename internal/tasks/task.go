// Package tasks tracks asynchronously executing operations independently of
// the request that started them. Callers fire an operation, receive a task
// handle immediately, and poll or cancel by task id. Terminal tasks are
// garbage-collected by a periodic sweep once older than a retention window.
package tasks

import "time"

// Status is the execution state of a task.
type Status string

const (
	// StatusPending is the state between task creation and the executor starting.
	StatusPending Status = "pending"
	// StatusRunning means the executor has started and not yet finished.
	StatusRunning Status = "running"
	// StatusCompleted means the executor returned successfully.
	StatusCompleted Status = "completed"
	// StatusFailed means the executor returned an error or panicked.
	StatusFailed Status = "failed"
	// StatusCancelled means cancellation was requested before completion.
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled:
		return true
	}
	return false
}

// Task is a snapshot of an asynchronous operation. Result is only set on
// completed tasks; Error only on failed or cancelled ones.
type Task struct {
	TaskID      string    `json:"task_id"`
	Operation   string    `json:"operation"`
	Status      Status    `json:"status"`
	Progress    int       `json:"progress"`
	Result      any       `json:"result"`
	Error       string    `json:"error"`
	PollAfterMS int       `json:"poll_after_ms"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
