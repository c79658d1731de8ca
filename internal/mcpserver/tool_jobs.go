package mcpserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
	"github.com/dbx-labs/databricks-mcp/internal/session"
)

// jobIDOrCurrent resolves the job_id argument, falling back to the session's
// pinned job.
func jobIDOrCurrent(request mcp.CallToolRequest, sess *session.Context) (int64, error) {
	raw := request.GetString("job_id", "")
	if raw == "" {
		raw = sess.CurrentJobID()
	}
	if raw == "" {
		return 0, fmt.Errorf("no job_id specified and no current job set for this session")
	}
	jobID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid job_id %q: %w", raw, err)
	}
	return jobID, nil
}

// handleCreateJob implements the create_job tool
func (ms *MCPServer) handleCreateJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	notebookPath, err := request.RequireString("notebook_path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	clusterID, err := clusterIDOrCurrent(request, sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resolved := resolveWorkspacePath(sess.WorkspacePath(), notebookPath)

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolCreateJob,
		Arguments: map[string]any{"name": name, "notebook_path": resolved},
	})

	settings := databricks.JobSettings{
		Name: name,
		Tasks: []databricks.JobTask{{
			TaskKey:           "main",
			ExistingClusterID: clusterID,
			NotebookTask:      &databricks.NotebookTask{NotebookPath: resolved},
		}},
	}
	jobID, err := client.CreateJob(ctx, settings)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess.SetJob(strconv.FormatInt(jobID, 10))
	return jsonResult(map[string]any{"job_id": jobID, "name": name}), nil
}

// handleRunJob implements the run_job tool
func (ms *MCPServer) handleRunJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := ms.getOrCreateContext(ctx)
	jobID, err := jobIDOrCurrent(request, sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolRunJob,
		Arguments: map[string]any{"job_id": jobID},
	})

	runID, err := client.RunJobNow(ctx, jobID, nil)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"job_id": jobID, "run_id": runID}), nil
}

// handleListJobs implements the list_jobs tool
func (ms *MCPServer) handleListJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolListJobs,
	})

	jobs, err := client.ListJobs(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"jobs": jobs}), nil
}

// handleGetJob implements the get_job tool
func (ms *MCPServer) handleGetJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := ms.getOrCreateContext(ctx)
	jobID, err := jobIDOrCurrent(request, sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolGetJob,
		Arguments: map[string]any{"job_id": jobID},
	})

	job, err := client.GetJob(ctx, jobID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(job), nil
}

// handleGetRunStatus implements the get_run_status tool
func (ms *MCPServer) handleGetRunStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("run_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	runID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid run_id %q", raw)), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolGetRunStatus,
		Arguments: map[string]any{"run_id": runID},
	})

	run, err := client.GetRun(ctx, runID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(run), nil
}

// handleCancelRun implements the cancel_run tool
func (ms *MCPServer) handleCancelRun(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("run_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	runID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid run_id %q", raw)), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolCancelRun,
		Arguments: map[string]any{"run_id": runID},
	})

	if err := client.CancelRun(ctx, runID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"run_id": runID, "cancelled": true}), nil
}

// handleDeleteJob implements the delete_job tool
func (ms *MCPServer) handleDeleteJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("job_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	jobID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid job_id %q", raw)), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolDeleteJob,
		Arguments: map[string]any{"job_id": jobID},
	})

	if err := client.DeleteJob(ctx, jobID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sess.ClearJobIf(raw)

	return jsonResult(map[string]any{"job_id": jobID, "deleted": true}), nil
}
