package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
)

// handleGetTaskStatus implements the get_task_status tool
func (ms *MCPServer) handleGetTaskStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolGetTaskStatus,
		Arguments: map[string]any{"task_id": taskID},
	})

	task, ok := ms.tasks.Get(taskID)
	if !ok {
		return jsonResult(map[string]string{
			"error": fmt.Sprintf(config.ErrTaskNotFound, taskID),
		}), nil
	}
	return jsonResult(task), nil
}

// handleCancelTask implements the cancel_task tool
func (ms *MCPServer) handleCancelTask(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	taskID, err := request.RequireString("task_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolCancelTask,
		Arguments: map[string]any{"task_id": taskID},
	})

	cancelled := ms.tasks.Cancel(taskID)
	resp := map[string]any{
		"cancelled": cancelled,
		"task_id":   taskID,
	}
	if cancelled {
		resp["message"] = config.MsgTaskCancelled
	} else if _, ok := ms.tasks.Get(taskID); !ok {
		resp["message"] = fmt.Sprintf(config.ErrTaskNotFound, taskID)
	} else {
		resp["message"] = "Task already finished"
	}
	return jsonResult(resp), nil
}
