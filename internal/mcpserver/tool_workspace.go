package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
)

// handleListWorkspace implements the list_workspace tool
func (ms *MCPServer) handleListWorkspace(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		ToolName:  config.ToolListWorkspace,
		Arguments: map[string]any{"path": path},
	})

	objects, err := client.ListWorkspace(ctx, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"path": path, "objects": objects}), nil
}

// handleImportFile implements the import_file tool. Unlike import_notebook,
// the format is caller-chosen and the content is already base64-encoded, so
// DBC archives and other binary formats round-trip unchanged.
func (ms *MCPServer) handleImportFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	contentB64, err := request.RequireString("content_base64")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	format := request.GetString("format", "AUTO")
	language := request.GetString("language", "")
	overwrite := request.GetBool("overwrite", false)

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	resolved := resolveWorkspacePath(sess.WorkspacePath(), path)

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolImportFile,
		Arguments: map[string]any{"path": resolved, "format": format},
	})

	if err := client.ImportNotebook(ctx, resolved, contentB64, language, format, overwrite); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"path": resolved, "format": format, "imported": true}), nil
}

// handleExportFile implements the export_file tool. The content is returned
// base64-encoded regardless of format.
func (ms *MCPServer) handleExportFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
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
		ToolName:  config.ToolExportFile,
		Arguments: map[string]any{"path": resolved, "format": format},
	})

	contentB64, err := client.ExportNotebook(ctx, resolved, format)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"path":           resolved,
		"format":         format,
		"content_base64": contentB64,
	}), nil
}

// handleDeleteWorkspaceObject implements the delete_workspace_object tool
func (ms *MCPServer) handleDeleteWorkspaceObject(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	recursive := request.GetBool("recursive", false)

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	resolved := resolveWorkspacePath(sess.WorkspacePath(), path)

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolDeleteWorkspaceObject,
		Arguments: map[string]any{"path": resolved, "recursive": recursive},
	})

	if err := client.DeleteWorkspaceObject(ctx, resolved, recursive); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"path": resolved, "deleted": true}), nil
}

// handleCreateDirectory implements the create_directory tool
func (ms *MCPServer) handleCreateDirectory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	resolved := resolveWorkspacePath(sess.WorkspacePath(), path)

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolCreateDirectory,
		Arguments: map[string]any{"path": resolved},
	})

	if err := client.Mkdirs(ctx, resolved); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"path": resolved, "created": true}), nil
}
