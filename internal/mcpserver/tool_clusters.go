package mcpserver

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
	"github.com/dbx-labs/databricks-mcp/internal/session"
)

// clusterIDOrCurrent resolves the cluster_id argument, falling back to the
// session's pinned cluster.
func clusterIDOrCurrent(request mcp.CallToolRequest, sess *session.Context) (string, error) {
	clusterID := request.GetString("cluster_id", "")
	if clusterID == "" {
		clusterID = sess.CurrentClusterID()
	}
	if clusterID == "" {
		return "", errors.New(config.ErrNoCluster)
	}
	return clusterID, nil
}

// handleCreateCluster implements the create_cluster tool. Provisioning takes
// minutes, so the call returns a task envelope immediately.
func (ms *MCPServer) handleCreateCluster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clusterName, err := request.RequireString("cluster_name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	sparkVersion, err := request.RequireString("spark_version")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	nodeTypeID, err := request.RequireString("node_type_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	numWorkers := request.GetInt("num_workers", 1)
	autoTerm := request.GetInt("autotermination_minutes", 0)

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolCreateCluster,
		Arguments: map[string]any{"cluster_name": clusterName, "node_type_id": nodeTypeID},
	})

	spec := databricks.ClusterSpec{
		ClusterName:    clusterName,
		SparkVersion:   sparkVersion,
		NodeTypeID:     nodeTypeID,
		NumWorkers:     numWorkers,
		AutoTermMinute: autoTerm,
	}

	task := ms.tasks.Create(config.ToolCreateCluster, func(taskCtx context.Context) (any, error) {
		clusterID, err := client.CreateCluster(taskCtx, spec)
		if err != nil {
			return nil, err
		}
		// Pin the new cluster so follow-up tools can omit cluster_id.
		sess.SetCluster(clusterID)
		return map[string]string{"cluster_id": clusterID}, nil
	})
	return taskResult(task), nil
}

// handleListClusters implements the list_clusters tool
func (ms *MCPServer) handleListClusters(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolListClusters,
	})

	clusters, err := client.ListClusters(ctx)
	if err != nil {
		ms.auditLogger.LogToolError(ctx, &AuditEntry{
			SessionID: sess.SessionID(),
			ToolName:  config.ToolListClusters,
			ErrorMsg:  err.Error(),
		})
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(map[string]any{"clusters": clusters}), nil
}

// handleGetCluster implements the get_cluster tool
func (ms *MCPServer) handleGetCluster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := ms.getOrCreateContext(ctx)
	clusterID, err := clusterIDOrCurrent(request, sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolGetCluster,
		Arguments: map[string]any{"cluster_id": clusterID},
	})

	info, err := client.GetCluster(ctx, clusterID)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(info), nil
}

// handleStartCluster implements the start_cluster tool (async)
func (ms *MCPServer) handleStartCluster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := ms.getOrCreateContext(ctx)
	clusterID, err := clusterIDOrCurrent(request, sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolStartCluster,
		Arguments: map[string]any{"cluster_id": clusterID},
	})

	task := ms.tasks.Create(config.ToolStartCluster, func(taskCtx context.Context) (any, error) {
		if err := client.StartCluster(taskCtx, clusterID); err != nil {
			return nil, err
		}
		return map[string]string{"cluster_id": clusterID, "state": "starting"}, nil
	})
	return taskResult(task), nil
}

// handleTerminateCluster implements the terminate_cluster tool (async)
func (ms *MCPServer) handleTerminateCluster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sess := ms.getOrCreateContext(ctx)
	clusterID, err := clusterIDOrCurrent(request, sess)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolTerminateCluster,
		Arguments: map[string]any{"cluster_id": clusterID},
	})

	task := ms.tasks.Create(config.ToolTerminateCluster, func(taskCtx context.Context) (any, error) {
		if err := client.TerminateCluster(taskCtx, clusterID); err != nil {
			return nil, err
		}
		return map[string]string{"cluster_id": clusterID, "state": "terminating"}, nil
	})
	return taskResult(task), nil
}

// handleDeleteCluster implements the delete_cluster tool
func (ms *MCPServer) handleDeleteCluster(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clusterID, err := request.RequireString("cluster_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := ms.client(ctx)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	sess := ms.getOrCreateContext(ctx)
	ms.auditLogger.LogToolCall(ctx, &AuditEntry{
		SessionID: sess.SessionID(),
		ToolName:  config.ToolDeleteCluster,
		Arguments: map[string]any{"cluster_id": clusterID},
	})

	if err := client.DeleteCluster(ctx, clusterID); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	// A session pinned to the deleted cluster must not keep pointing at it.
	sess.ClearClusterIf(clusterID)

	return jsonResult(map[string]any{"cluster_id": clusterID, "deleted": true}), nil
}
