package mcpserver

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
	"github.com/dbx-labs/databricks-mcp/internal/tasks"
)

// TaskEnvelope is the immediate response of an async tool. Clients poll
// get_task_status with the task id until the task is terminal.
type TaskEnvelope struct {
	TaskID      string    `json:"task_id"`
	Operation   string    `json:"operation"`
	Status      string    `json:"status"`
	PollAfterMS int       `json:"poll_after_ms"`
	Message     string    `json:"message"`
	CreatedAt   time.Time `json:"created_at"`
}

// jsonResult marshals v into a text tool result
func jsonResult(v any) *mcp.CallToolResult {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode response: %v", err))
	}
	return mcp.NewToolResultText(string(data))
}

// taskResult wraps a freshly created task into its envelope response
func taskResult(task tasks.Task) *mcp.CallToolResult {
	return jsonResult(TaskEnvelope{
		TaskID:      task.TaskID,
		Operation:   task.Operation,
		Status:      string(task.Status),
		PollAfterMS: task.PollAfterMS,
		Message:     fmt.Sprintf(config.MsgTaskStarted, task.TaskID),
		CreatedAt:   task.CreatedAt,
	})
}

// resolveWorkspacePath resolves path against the session base path.
// Absolute paths pass through untouched; relative paths are joined with a
// single separator. No ".." collapsing is performed.
func resolveWorkspacePath(base, path string) string {
	if strings.HasPrefix(path, "/") {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}
