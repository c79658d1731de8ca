package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
)

// handleListSecretScopes implements the list_secret_scopes tool
func (ms *MCPServer) handleListSecretScopes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolListSecretScopes,
	})

	scopes, err := client.ListSecretScopes(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"scopes": scopes}), nil
}

// handleCreateSecretScope implements the create_secret_scope tool
func (ms *MCPServer) handleCreateSecretScope(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope, err := request.RequireString("scope")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolCreateSecretScope,
		Arguments: map[string]any{"scope": scope},
	})

	if err := client.CreateSecretScope(ctx, scope); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"scope": scope, "created": true}), nil
}

// handleListSecrets implements the list_secrets tool
func (ms *MCPServer) handleListSecrets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope, err := request.RequireString("scope")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolListSecrets,
		Arguments: map[string]any{"scope": scope},
	})

	secrets, err := client.ListSecrets(ctx, scope)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"scope": scope, "secrets": secrets}), nil
}

// handlePutSecret implements the put_secret tool. The value is never audit
// logged.
func (ms *MCPServer) handlePutSecret(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope, err := request.RequireString("scope")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	value, err := request.RequireString("value")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolPutSecret,
		Arguments: map[string]any{"scope": scope, "key": key},
	})

	if err := client.PutSecret(ctx, scope, key, value); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"scope": scope, "key": key, "written": true}), nil
}

// handleDeleteSecret implements the delete_secret tool
func (ms *MCPServer) handleDeleteSecret(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	scope, err := request.RequireString("scope")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	key, err := request.RequireString("key")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolDeleteSecret,
		Arguments: map[string]any{"scope": scope, "key": key},
	})

	if err := client.DeleteSecret(ctx, scope, key); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"scope": scope, "key": key, "deleted": true}), nil
}
