package mcpserver

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
)

// handleImportNotebook implements the import_notebook tool
func (ms *MCPServer) handleImportNotebook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := request.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language := request.GetString("language", "PYTHON")
	overwrite := request.GetBool("overwrite", false)

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	resolved := resolveWorkspacePath(sess.WorkspacePath(), path)

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolImportNotebook,
		Arguments: map[string]any{"path": resolved, "language": language},
	})

	encoded := base64.StdEncoding.EncodeToString([]byte(content))
	if err := client.ImportNotebook(ctx, resolved, encoded, language, "SOURCE", overwrite); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"path": resolved, "imported": true}), nil
}

// handleExportNotebook implements the export_notebook tool
func (ms *MCPServer) handleExportNotebook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := request.GetString("format", "SOURCE")

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	resolved := resolveWorkspacePath(sess.WorkspacePath(), path)

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolExportNotebook,
		Arguments: map[string]any{"path": resolved, "format": format},
	})

	contentB64, err := client.ExportNotebook(ctx, resolved, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	decoded, err := base64.StdEncoding.DecodeString(contentB64)
	if err != nil {
		// Binary formats like DBC are returned as-is.
		return jsonResult(map[string]any{"path": resolved, "content_base64": contentB64}), nil
	}
	return jsonResult(map[string]any{"path": resolved, "content": string(decoded)}), nil
}

// handleListNotebooks implements the list_notebooks tool. Same listing as
// list_workspace, filtered to notebook objects.
func (ms *MCPServer) handleListNotebooks(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	path := request.GetString("path", "")
	if path == "" {
		path = sess.WorkspacePath()
	} else {
		path = resolveWorkspacePath(sess.WorkspacePath(), path)
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolListNotebooks,
		Arguments: map[string]any{"path": path},
	})

	objects, err := client.ListWorkspace(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	notebooks := make([]databricks.ObjectInfo, 0, len(objects))
	for _, obj := range objects {
		if obj.ObjectType == "NOTEBOOK" {
			notebooks = append(notebooks, obj)
		}
	}
	return jsonResult(map[string]any{"path": path, "notebooks": notebooks}), nil
}

// handleRunNotebook implements the run_notebook tool. The notebook runs as a
// one-time submitted job; the task polls the run until it is terminal, so a
// single task id covers the whole run.
func (ms *MCPServer) handleRunNotebook(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
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

	resolved := resolveWorkspacePath(sess.WorkspacePath(), path)

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolRunNotebook,
		Arguments: map[string]any{"path": resolved, "cluster_id": clusterID},
	})

	task := ms.tasks.Create(config.ToolRunNotebook, func(taskCtx context.Context) (any, error) {
		runID, err := client.SubmitRun(taskCtx, "run_notebook "+resolved, []databricks.JobTask{{
			TaskKey:           "main",
			ExistingClusterID: clusterID,
			NotebookTask:      &databricks.NotebookTask{NotebookPath: resolved},
		}})
		if err != nil {
			return nil, err
		}

		ticker := time.NewTicker(config.RunPollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-taskCtx.Done():
				// Best effort: stop the remote run before reporting
				// cancellation.
				cancelCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				_ = client.CancelRun(cancelCtx, runID)
				cancel()
				return nil, taskCtx.Err()
			case <-ticker.C:
				run, err := client.GetRun(taskCtx, runID)
				if err != nil {
					return nil, err
				}
				if !run.State.Terminal() {
					continue
				}
				if run.State.ResultState != "SUCCESS" {
					return nil, fmt.Errorf("notebook run %d finished %s: %s",
						runID, run.State.ResultState, run.State.StateMessage)
				}
				return map[string]any{
					"run_id":       runID,
					"result_state": run.State.ResultState,
					"run_page_url": run.RunPageURL,
				}, nil
			}
		}
	})
	return taskResult(task), nil
}
