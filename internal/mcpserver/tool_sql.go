package mcpserver

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
	"github.com/dbx-labs/databricks-mcp/internal/session"
)

// warehouseIDOrCurrent resolves the warehouse_id argument, falling back to
// the session's pinned warehouse.
func warehouseIDOrCurrent(request mcp.CallToolRequest, sess *session.Context) (string, error) {
	warehouseID := request.GetString("warehouse_id", "")
	if warehouseID == "" {
		warehouseID = sess.CurrentWarehouseID()
	}
	if warehouseID == "" {
		return "", errors.New(config.ErrNoWarehouse)
	}
	return warehouseID, nil
}

// handleListWarehouses implements the list_warehouses tool
func (ms *MCPServer) handleListWarehouses(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolListWarehouses,
	})

	warehouses, err := client.ListWarehouses(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"warehouses": warehouses}), nil
}

// handleStartWarehouse implements the start_warehouse tool
func (ms *MCPServer) handleStartWarehouse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := ms.getOrCreateContext(ctx)
	warehouseID, err := warehouseIDOrCurrent(request, sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolStartWarehouse,
		Arguments: map[string]any{"warehouse_id": warehouseID},
	})

	if err := client.StartWarehouse(ctx, warehouseID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"warehouse_id": warehouseID, "state": "starting"}), nil
}

// handleStopWarehouse implements the stop_warehouse tool
func (ms *MCPServer) handleStopWarehouse(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := ms.getOrCreateContext(ctx)
	warehouseID, err := warehouseIDOrCurrent(request, sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolStopWarehouse,
		Arguments: map[string]any{"warehouse_id": warehouseID},
	})

	if err := client.StopWarehouse(ctx, warehouseID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"warehouse_id": warehouseID, "state": "stopping"}), nil
}

// handleExecuteQuery implements the execute_query tool. Terminal results are
// cached so get_query_results can serve them without another API call.
func (ms *MCPServer) handleExecuteQuery(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	statement, err := request.RequireString("statement")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	warehouseID, err := warehouseIDOrCurrent(request, sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	catalog := request.GetString("catalog", "")
	schema := request.GetString("schema", "")

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolExecuteQuery,
		Arguments: map[string]any{"warehouse_id": warehouseID, "statement": statement},
	})

	result, err := client.ExecuteStatement(ctx, warehouseID, statement, catalog, schema, "")
	if err != nil {
		ms.auditLogger.LogToolError(ctx, &AuditEntry{
			SessionID: sess.SessionID(),
			ToolName:  config.ToolExecuteQuery,
			ErrorMsg:  err.Error(),
		})
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.stmtCache.store(result)
	return jsonResult(result), nil
}

// handleGetQueryResults implements the get_query_results tool
func (ms *MCPServer) handleGetQueryResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	statementID, err := request.RequireString("statement_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: ms.getSessionID(ctx),
		ToolName:  config.ToolGetQueryResults,
		Arguments: map[string]any{"statement_id": statementID},
	})

	if cached := ms.stmtCache.get(statementID); cached != nil {
		return jsonResult(cached), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := client.GetStatement(ctx, statementID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.stmtCache.store(result)
	return jsonResult(result), nil
}
