// Package mcpserver exposes Databricks workspace operations as MCP tools.
// It owns the per-session context registry, the async task manager, and the
// per-workspace client pool; the tool handlers in this package tie the three
// together.
package mcpserver

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
	"github.com/dbx-labs/databricks-mcp/internal/session"
	"github.com/dbx-labs/databricks-mcp/internal/tasks"
	"github.com/dbx-labs/databricks-mcp/internal/tools"
)

// MCPServer wraps the mcp-go server with our business logic
type MCPServer struct {
	server       *server.MCPServer
	sessions     *session.Registry
	tasks        *tasks.Manager
	clients      *clientPool
	auditLogger  *AuditLogger
	stmtCache    *statementCache
	toolRegistry *tools.Registry
	logger       *slog.Logger

	// Fallback credentials from the environment; per-request headers win.
	envCreds databricks.Credentials
}

// Config holds configuration for the MCP server
type Config struct {
	Name    string
	Version string
}

// NewMCPServer creates and configures a new MCP server
func NewMCPServer(
	cfg Config,
	sessions *session.Registry,
	taskManager *tasks.Manager,
	envCreds databricks.Credentials,
	audit *AuditLogger,
	logger *slog.Logger,
) *MCPServer {
	mcpServer := server.NewMCPServer(
		cfg.Name,
		cfg.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	ms := &MCPServer{
		server:      mcpServer,
		sessions:    sessions,
		tasks:       taskManager,
		clients:     newClientPool(logger),
		auditLogger: audit,
		stmtCache:   newStatementCache(config.StatementCacheTTL),
		logger:      logger,
		envCreds:    envCreds,
	}
	ms.toolRegistry = ms.buildRegistry()

	ms.registerTools()

	return ms
}

// buildRegistry wires every tool name to its handler method
func (ms *MCPServer) buildRegistry() *tools.Registry {
	return tools.NewRegistry(map[string]tools.HandlerFunc{
		config.ToolGetSessionContext:   ms.handleGetSessionContext,
		config.ToolSetWorkspacePath:    ms.handleSetWorkspacePath,
		config.ToolSetCurrentCluster:   ms.handleSetCurrentCluster,
		config.ToolSetCurrentJob:       ms.handleSetCurrentJob,
		config.ToolSetCurrentWarehouse: ms.handleSetCurrentWarehouse,
		config.ToolClearSessionContext: ms.handleClearSessionContext,

		config.ToolGetTaskStatus: ms.handleGetTaskStatus,
		config.ToolCancelTask:    ms.handleCancelTask,

		config.ToolCreateCluster:    ms.handleCreateCluster,
		config.ToolListClusters:     ms.handleListClusters,
		config.ToolGetCluster:       ms.handleGetCluster,
		config.ToolStartCluster:     ms.handleStartCluster,
		config.ToolTerminateCluster: ms.handleTerminateCluster,
		config.ToolDeleteCluster:    ms.handleDeleteCluster,

		config.ToolCreateJob:    ms.handleCreateJob,
		config.ToolRunJob:       ms.handleRunJob,
		config.ToolListJobs:     ms.handleListJobs,
		config.ToolGetJob:       ms.handleGetJob,
		config.ToolGetRunStatus: ms.handleGetRunStatus,
		config.ToolCancelRun:    ms.handleCancelRun,
		config.ToolDeleteJob:    ms.handleDeleteJob,

		config.ToolImportNotebook:        ms.handleImportNotebook,
		config.ToolExportNotebook:        ms.handleExportNotebook,
		config.ToolListNotebooks:         ms.handleListNotebooks,
		config.ToolRunNotebook:           ms.handleRunNotebook,
		config.ToolListWorkspace:         ms.handleListWorkspace,
		config.ToolImportFile:            ms.handleImportFile,
		config.ToolExportFile:            ms.handleExportFile,
		config.ToolDeleteWorkspaceObject: ms.handleDeleteWorkspaceObject,
		config.ToolCreateDirectory:       ms.handleCreateDirectory,

		config.ToolCreateRepo: ms.handleCreateRepo,
		config.ToolUpdateRepo: ms.handleUpdateRepo,
		config.ToolGetRepo:    ms.handleGetRepo,
		config.ToolListRepos:  ms.handleListRepos,
		config.ToolDeleteRepo: ms.handleDeleteRepo,

		config.ToolListSecretScopes:  ms.handleListSecretScopes,
		config.ToolCreateSecretScope: ms.handleCreateSecretScope,
		config.ToolListSecrets:       ms.handleListSecrets,
		config.ToolPutSecret:         ms.handlePutSecret,
		config.ToolDeleteSecret:      ms.handleDeleteSecret,

		config.ToolListWarehouses:  ms.handleListWarehouses,
		config.ToolStartWarehouse:  ms.handleStartWarehouse,
		config.ToolStopWarehouse:   ms.handleStopWarehouse,
		config.ToolExecuteQuery:    ms.handleExecuteQuery,
		config.ToolGetQueryResults: ms.handleGetQueryResults,

		config.ToolListCatalogs: ms.handleListCatalogs,
		config.ToolListSchemas:  ms.handleListSchemas,
		config.ToolListTables:   ms.handleListTables,
		config.ToolGetTable:     ms.handleGetTable,
		config.ToolListVolumes:  ms.handleListVolumes,
		config.ToolCreateVolume: ms.handleCreateVolume,
	})
}

// Server returns the underlying mcp-go server for serving
func (ms *MCPServer) Server() *server.MCPServer {
	return ms.server
}

// Close releases background resources owned by the server
func (ms *MCPServer) Close() {
	ms.stmtCache.Close()
}
