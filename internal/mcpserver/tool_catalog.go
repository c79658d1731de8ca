package mcpserver

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
)

// handleListCatalogs implements the list_catalogs tool
func (ms *MCPServer) handleListCatalogs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolListCatalogs,
	})

	catalogs, err := client.ListCatalogs(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"catalogs": catalogs}), nil
}

// handleListSchemas implements the list_schemas tool
func (ms *MCPServer) handleListSchemas(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalogName, err := request.RequireString("catalog_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolListSchemas,
		Arguments: map[string]any{"catalog_name": catalogName},
	})

	schemas, err := client.ListSchemas(ctx, catalogName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"catalog_name": catalogName, "schemas": schemas}), nil
}

// handleListTables implements the list_tables tool
func (ms *MCPServer) handleListTables(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalogName, err := request.RequireString("catalog_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	schemaName, err := request.RequireString("schema_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolListTables,
		Arguments: map[string]any{"catalog_name": catalogName, "schema_name": schemaName},
	})

	tables, err := client.ListTables(ctx, catalogName, schemaName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"catalog_name": catalogName,
		"schema_name":  schemaName,
		"tables":       tables,
	}), nil
}

// handleGetTable implements the get_table tool
func (ms *MCPServer) handleGetTable(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	fullName, err := request.RequireString("full_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolGetTable,
		Arguments: map[string]any{"full_name": fullName},
	})

	table, err := client.GetTable(ctx, fullName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(table), nil
}

// handleListVolumes implements the list_volumes tool
func (ms *MCPServer) handleListVolumes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalogName, err := request.RequireString("catalog_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	schemaName, err := request.RequireString("schema_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolListVolumes,
		Arguments: map[string]any{"catalog_name": catalogName, "schema_name": schemaName},
	})

	volumes, err := client.ListVolumes(ctx, catalogName, schemaName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{
		"catalog_name": catalogName,
		"schema_name":  schemaName,
		"volumes":      volumes,
	}), nil
}

// handleCreateVolume implements the create_volume tool
func (ms *MCPServer) handleCreateVolume(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	catalogName, err := request.RequireString("catalog_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	schemaName, err := request.RequireString("schema_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolCreateVolume,
		Arguments: map[string]any{
			"catalog_name": catalogName,
			"schema_name":  schemaName,
			"name":         name,
		},
	})

	info, err := client.CreateVolume(ctx, catalogName, schemaName, name, "")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info), nil
}
