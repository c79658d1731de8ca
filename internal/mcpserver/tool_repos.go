package mcpserver

import (
	"context"
	"fmt"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
)

// handleCreateRepo implements the create_repo tool
func (ms *MCPServer) handleCreateRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	gitURL, err := request.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	provider, err := request.RequireString("provider")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	path := request.GetString("path", "")

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolCreateRepo,
		Arguments: map[string]any{"url": gitURL, "provider": provider},
	})

	info, err := client.CreateRepo(ctx, gitURL, provider, path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info), nil
}

// handleUpdateRepo implements the update_repo tool. Exactly one of branch
// and tag must be given.
func (ms *MCPServer) handleUpdateRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("repo_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	repoID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repo_id %q", raw)), nil
	}

	branch := request.GetString("branch", "")
	tag := request.GetString("tag", "")
	if (branch == "") == (tag == "") {
		return mcp.NewToolResultError(config.ErrBranchOrTag), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolUpdateRepo,
		Arguments: map[string]any{"repo_id": repoID, "branch": branch, "tag": tag},
	})

	info, err := client.UpdateRepo(ctx, repoID, branch, tag)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info), nil
}

// handleGetRepo implements the get_repo tool
func (ms *MCPServer) handleGetRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("repo_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	repoID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repo_id %q", raw)), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolGetRepo,
		Arguments: map[string]any{"repo_id": repoID},
	})

	info, err := client.GetRepo(ctx, repoID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info), nil
}

// handleListRepos implements the list_repos tool
func (ms *MCPServer) handleListRepos(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolListRepos,
	})

	repos, err := client.ListRepos(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"repos": repos}), nil
}

// handleDeleteRepo implements the delete_repo tool
func (ms *MCPServer) handleDeleteRepo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, err := request.RequireString("repo_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	repoID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid repo_id %q", raw)), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolDeleteRepo,
		Arguments: map[string]any{"repo_id": repoID},
	})

	if err := client.DeleteRepo(ctx, repoID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"repo_id": repoID, "deleted": true}), nil
}
