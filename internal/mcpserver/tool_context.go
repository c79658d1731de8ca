package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
)

// handleGetSessionContext implements the get_session_context tool
func (ms *MCPServer) handleGetSessionContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := ms.getSessionID(ctx)

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sessionID,
		ToolName:  config.ToolGetSessionContext,
	})

	sess, ok := ms.sessions.Get(sessionID)
	if !ok {
		return jsonResult(map[string]string{
			"session_id": sessionID,
			"message":    config.ErrNoContext,
		}), nil
	}
	return jsonResult(sess.Snapshot()), nil
}

// handleSetWorkspacePath implements the set_workspace_path tool
func (ms *MCPServer) handleSetWorkspacePath(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolSetWorkspacePath,
		Arguments: map[string]any{"path": path},
	})

	sess.SetWorkspacePath(path)
	return jsonResult(sess.Snapshot()), nil
}

// handleSetCurrentCluster implements the set_current_cluster tool
func (ms *MCPServer) handleSetCurrentCluster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clusterID, err := request.RequireString("cluster_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolSetCurrentCluster,
		Arguments: map[string]any{"cluster_id": clusterID},
	})

	sess.SetCluster(clusterID)
	return jsonResult(sess.Snapshot()), nil
}

// handleSetCurrentJob implements the set_current_job tool
func (ms *MCPServer) handleSetCurrentJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jobID, err := request.RequireString("job_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolSetCurrentJob,
		Arguments: map[string]any{"job_id": jobID},
	})

	sess.SetJob(jobID)
	return jsonResult(sess.Snapshot()), nil
}

// handleSetCurrentWarehouse implements the set_current_warehouse tool
func (ms *MCPServer) handleSetCurrentWarehouse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	warehouseID, err := request.RequireString("warehouse_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolSetCurrentWarehouse,
		Arguments: map[string]any{"warehouse_id": warehouseID},
	})

	sess.SetWarehouse(warehouseID)
	return jsonResult(sess.Snapshot()), nil
}

// handleClearSessionContext implements the clear_session_context tool
func (ms *MCPServer) handleClearSessionContext(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessionID := ms.getSessionID(ctx)

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sessionID,
		ToolName:  config.ToolClearSessionContext,
	})

	ms.sessions.Clear(sessionID)
	return jsonResult(map[string]string{
		"session_id": sessionID,
		"message":    config.MsgContextCleared,
	}), nil
}
