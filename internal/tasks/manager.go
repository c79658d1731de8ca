package tasks

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// cancelMessage is stored on a task when cancellation is requested.
const cancelMessage = "task was cancelled"

// Executor is the unit of work run by a task. Cancellation is cooperative:
// the executor observes ctx at its own suspension points; the manager never
// preempts it.
type Executor func(ctx context.Context) (any, error)

// Config holds timing configuration for the Manager.
type Config struct {
	// SweepInterval is how often the cleanup sweep runs.
	SweepInterval time.Duration
	// Retention is how long terminal tasks are kept before the sweep removes them.
	Retention time.Duration
	// PollAfter is the recommended client poll interval reported on every task.
	PollAfter time.Duration
}

// DefaultConfig returns the default Manager configuration.
func DefaultConfig() Config {
	return Config{
		SweepInterval: 5 * time.Minute,
		Retention:     1 * time.Hour,
		PollAfter:     2 * time.Second,
	}
}

// Manager creates, tracks, cancels, and garbage-collects async tasks.
// All state is in-memory and lost on restart.
type Manager struct {
	mu      sync.RWMutex
	tasks   map[string]*Task
	cancels map[string]context.CancelFunc

	logger *slog.Logger
	cfg    Config

	// Background sweep control
	sweepCancel context.CancelFunc
	wg          sync.WaitGroup
}

// NewManager creates a task manager. The sweep does not run until Start.
func NewManager(logger *slog.Logger, cfg Config) *Manager {
	return &Manager{
		tasks:   make(map[string]*Task),
		cancels: make(map[string]context.CancelFunc),
		logger:  logger,
		cfg:     cfg,
	}
}

// Create stores a pending task and schedules the executor without blocking.
// The returned snapshot carries the task id, which is visible to Get before
// the executor starts running.
func (m *Manager) Create(operation string, fn Executor) Task {
	now := time.Now().UTC()
	task := &Task{
		TaskID:      uuid.NewString(),
		Operation:   operation,
		Status:      StatusPending,
		PollAfterMS: int(m.cfg.PollAfter.Milliseconds()),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The executor context derives from the process, not the request: the
	// task must outlive the call that created it.
	ctx, cancel := context.WithCancel(context.Background())

	m.mu.Lock()
	m.tasks[task.TaskID] = task
	m.cancels[task.TaskID] = cancel
	snapshot := *task
	m.mu.Unlock()

	go m.execute(ctx, task.TaskID, fn)

	return snapshot
}

// Get returns a snapshot of the task, or false if the id is unknown.
// Never blocks on the task itself.
func (m *Manager) Get(taskID string) (Task, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	task, ok := m.tasks[taskID]
	if !ok {
		return Task{}, false
	}
	return *task, true
}

// Cancel requests cancellation of a pending or running task and marks the
// record cancelled. Returns false if the id is unknown or the task is already
// terminal; terminal tasks are left unchanged.
func (m *Manager) Cancel(taskID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	task, ok := m.tasks[taskID]
	if !ok {
		return false
	}
	if task.Status.Terminal() {
		return false
	}

	if cancel := m.cancels[taskID]; cancel != nil {
		cancel()
	}
	task.Status = StatusCancelled
	task.Error = cancelMessage
	task.UpdatedAt = time.Now().UTC()
	return true
}

// Count returns the number of tracked tasks.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tasks)
}

// execute runs the task body and records the terminal state. Executor errors
// and panics become the failed state; they are never re-raised to the caller
// of Create.
func (m *Manager) execute(ctx context.Context, taskID string, fn Executor) {
	defer func() {
		if r := recover(); r != nil {
			m.finish(taskID, StatusFailed, nil, fmt.Sprintf("panic: %v", r))
		}
		m.mu.Lock()
		delete(m.cancels, taskID)
		m.mu.Unlock()
	}()

	if !m.markRunning(taskID) {
		// Cancelled before the executor started.
		return
	}

	result, err := fn(ctx)

	switch {
	case ctx.Err() != nil || errors.Is(err, context.Canceled):
		m.finish(taskID, StatusCancelled, nil, cancelMessage)
	case err != nil:
		m.finish(taskID, StatusFailed, nil, err.Error())
	default:
		m.finish(taskID, StatusCompleted, result, "")
	}
}

// markRunning flips a pending task to running. Returns false if the task is
// no longer pending (e.g. cancelled between creation and scheduling).
func (m *Manager) markRunning(taskID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok || task.Status != StatusPending {
		return false
	}
	task.Status = StatusRunning
	task.UpdatedAt = time.Now().UTC()
	return true
}

// finish records a terminal state. A task already terminal (cancelled by
// Cancel while the executor was still unwinding) is left untouched.
func (m *Manager) finish(taskID string, status Status, result any, errMsg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok || task.Status.Terminal() {
		return
	}
	task.Status = status
	task.UpdatedAt = time.Now().UTC()
	if status == StatusCompleted {
		task.Result = result
		task.Progress = 100
	} else {
		task.Error = errMsg
	}
}

// Start launches the background cleanup sweep. Idempotent: calling Start on
// a manager whose sweep is already running does nothing.
func (m *Manager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sweepCancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.sweepCancel = cancel
	m.wg.Add(1)
	go m.sweepLoop(ctx)
}

// Stop cancels the sweep and waits for it to exit. Running tasks are not
// interrupted.
func (m *Manager) Stop() {
	m.mu.Lock()
	cancel := m.sweepCancel
	m.sweepCancel = nil
	m.mu.Unlock()

	if cancel != nil {
		cancel()
		m.wg.Wait()
	}
}

func (m *Manager) sweepLoop(ctx context.Context) {
	defer m.wg.Done()

	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.runSweep(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// runSweep executes one sweep pass. A failing pass is logged and never kills
// the loop.
func (m *Manager) runSweep(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.ErrorContext(ctx, "task sweep failed", "panic", r)
		}
	}()

	removed := m.Sweep()
	if removed > 0 {
		m.logger.InfoContext(ctx, "swept terminal tasks", "count", removed)
	}
}

// Sweep removes terminal tasks whose last update is older than the retention
// window and returns how many were removed. Non-terminal tasks are never
// removed regardless of age.
func (m *Manager) Sweep() int {
	cutoff := time.Now().UTC().Add(-m.cfg.Retention)

	m.mu.Lock()
	defer m.mu.Unlock()

	removed := 0
	for id, task := range m.tasks {
		if task.Status.Terminal() && task.UpdatedAt.Before(cutoff) {
			delete(m.tasks, id)
			delete(m.cancels, id)
			removed++
		}
	}
	return removed
}
