package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
)

// registerTools registers all MCP tools with handlers via the tool registry
func (ms *MCPServer) registerTools() {
	add := func(tool mcp.Tool, name string) {
		h, err := ms.toolRegistry.Handler(name)
		if err != nil {
			// Every declared tool must have a registry handler.
			panic(fmt.Sprintf("tool %s not found in registry", name))
		}
		ms.server.AddTool(tool, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return h(ctx, req)
		})
	}

	// Session context tools
	add(mcp.NewTool(config.ToolGetSessionContext,
		mcp.WithDescription("Get the current session context (workspace path, current cluster, job, warehouse)"),
	), config.ToolGetSessionContext)

	add(mcp.NewTool(config.ToolSetWorkspacePath,
		mcp.WithDescription("Set the base workspace path used to resolve relative notebook and directory paths"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Workspace path, e.g. /Workspace/Users/me@example.com"),
		),
	), config.ToolSetWorkspacePath)

	add(mcp.NewTool(config.ToolSetCurrentCluster,
		mcp.WithDescription("Pin a cluster to this session so cluster tools can omit cluster_id"),
		mcp.WithString("cluster_id",
			mcp.Required(),
			mcp.Description("Cluster ID to pin"),
		),
	), config.ToolSetCurrentCluster)

	add(mcp.NewTool(config.ToolSetCurrentJob,
		mcp.WithDescription("Pin a job to this session so job tools can omit job_id"),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("Job ID to pin"),
		),
	), config.ToolSetCurrentJob)

	add(mcp.NewTool(config.ToolSetCurrentWarehouse,
		mcp.WithDescription("Pin a SQL warehouse to this session so SQL tools can omit warehouse_id"),
		mcp.WithString("warehouse_id",
			mcp.Required(),
			mcp.Description("SQL warehouse ID to pin"),
		),
	), config.ToolSetCurrentWarehouse)

	add(mcp.NewTool(config.ToolClearSessionContext,
		mcp.WithDescription("Reset this session's context to defaults"),
	), config.ToolClearSessionContext)

	// Task tools
	add(mcp.NewTool(config.ToolGetTaskStatus,
		mcp.WithDescription("Get the status and result of an async task"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID returned by an async tool"),
		),
	), config.ToolGetTaskStatus)

	add(mcp.NewTool(config.ToolCancelTask,
		mcp.WithDescription("Cancel a pending or running async task"),
		mcp.WithString("task_id",
			mcp.Required(),
			mcp.Description("Task ID to cancel"),
		),
	), config.ToolCancelTask)

	// Cluster tools
	add(mcp.NewTool(config.ToolCreateCluster,
		mcp.WithDescription("Create a new cluster (async, returns a task id)"),
		mcp.WithString("cluster_name",
			mcp.Required(),
			mcp.Description("Name for the new cluster"),
		),
		mcp.WithString("spark_version",
			mcp.Required(),
			mcp.Description("Spark runtime version, e.g. 13.3.x-scala2.12"),
		),
		mcp.WithString("node_type_id",
			mcp.Required(),
			mcp.Description("Node type, e.g. i3.xlarge"),
		),
		mcp.WithNumber("num_workers",
			mcp.Description("Number of worker nodes (default 1)"),
		),
		mcp.WithNumber("autotermination_minutes",
			mcp.Description("Minutes of inactivity before auto-termination"),
		),
	), config.ToolCreateCluster)

	add(mcp.NewTool(config.ToolListClusters,
		mcp.WithDescription("List all clusters in the workspace"),
	), config.ToolListClusters)

	add(mcp.NewTool(config.ToolGetCluster,
		mcp.WithDescription("Get the state of a cluster"),
		mcp.WithString("cluster_id",
			mcp.Description("Cluster ID (defaults to the session's current cluster)"),
		),
	), config.ToolGetCluster)

	add(mcp.NewTool(config.ToolStartCluster,
		mcp.WithDescription("Start a terminated cluster (async, returns a task id)"),
		mcp.WithString("cluster_id",
			mcp.Description("Cluster ID (defaults to the session's current cluster)"),
		),
	), config.ToolStartCluster)

	add(mcp.NewTool(config.ToolTerminateCluster,
		mcp.WithDescription("Terminate a running cluster (async, returns a task id)"),
		mcp.WithString("cluster_id",
			mcp.Description("Cluster ID (defaults to the session's current cluster)"),
		),
	), config.ToolTerminateCluster)

	add(mcp.NewTool(config.ToolDeleteCluster,
		mcp.WithDescription("Permanently delete a cluster"),
		mcp.WithString("cluster_id",
			mcp.Required(),
			mcp.Description("Cluster ID to delete"),
		),
	), config.ToolDeleteCluster)

	// Job tools
	add(mcp.NewTool(config.ToolCreateJob,
		mcp.WithDescription("Create a job that runs a notebook on an existing cluster"),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name"),
		),
		mcp.WithString("notebook_path",
			mcp.Required(),
			mcp.Description("Notebook path (relative paths resolve against the session workspace path)"),
		),
		mcp.WithString("cluster_id",
			mcp.Description("Existing cluster ID (defaults to the session's current cluster)"),
		),
	), config.ToolCreateJob)

	add(mcp.NewTool(config.ToolRunJob,
		mcp.WithDescription("Trigger an immediate run of a job"),
		mcp.WithString("job_id",
			mcp.Description("Job ID (defaults to the session's current job)"),
		),
	), config.ToolRunJob)

	add(mcp.NewTool(config.ToolListJobs,
		mcp.WithDescription("List jobs in the workspace"),
	), config.ToolListJobs)

	add(mcp.NewTool(config.ToolGetJob,
		mcp.WithDescription("Get a job definition"),
		mcp.WithString("job_id",
			mcp.Description("Job ID (defaults to the session's current job)"),
		),
	), config.ToolGetJob)

	add(mcp.NewTool(config.ToolGetRunStatus,
		mcp.WithDescription("Get the status of a job run"),
		mcp.WithString("run_id",
			mcp.Required(),
			mcp.Description("Run ID"),
		),
	), config.ToolGetRunStatus)

	add(mcp.NewTool(config.ToolCancelRun,
		mcp.WithDescription("Cancel a job run"),
		mcp.WithString("run_id",
			mcp.Required(),
			mcp.Description("Run ID to cancel"),
		),
	), config.ToolCancelRun)

	add(mcp.NewTool(config.ToolDeleteJob,
		mcp.WithDescription("Delete a job definition"),
		mcp.WithString("job_id",
			mcp.Required(),
			mcp.Description("Job ID to delete"),
		),
	), config.ToolDeleteJob)

	// Notebook and workspace tools
	add(mcp.NewTool(config.ToolImportNotebook,
		mcp.WithDescription("Import notebook source into the workspace"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Target path (relative paths resolve against the session workspace path)"),
		),
		mcp.WithString("content",
			mcp.Required(),
			mcp.Description("Notebook source code"),
		),
		mcp.WithString("language",
			mcp.Description("Notebook language: PYTHON, SQL, SCALA, or R (default PYTHON)"),
		),
		mcp.WithBoolean("overwrite",
			mcp.Description("Overwrite an existing notebook at the same path"),
		),
	), config.ToolImportNotebook)

	add(mcp.NewTool(config.ToolExportNotebook,
		mcp.WithDescription("Export a notebook's source from the workspace"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Notebook path (relative paths resolve against the session workspace path)"),
		),
		mcp.WithString("format",
			mcp.Description("Export format: SOURCE, HTML, JUPYTER, or DBC (default SOURCE)"),
		),
	), config.ToolExportNotebook)

	add(mcp.NewTool(config.ToolRunNotebook,
		mcp.WithDescription("Run a notebook on a cluster and wait for completion (async, returns a task id)"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Notebook path (relative paths resolve against the session workspace path)"),
		),
		mcp.WithString("cluster_id",
			mcp.Description("Existing cluster ID (defaults to the session's current cluster)"),
		),
	), config.ToolRunNotebook)

	add(mcp.NewTool(config.ToolListNotebooks,
		mcp.WithDescription("List notebooks under a workspace path"),
		mcp.WithString("path",
			mcp.Description("Path to list (defaults to the session workspace path)"),
		),
	), config.ToolListNotebooks)

	add(mcp.NewTool(config.ToolListWorkspace,
		mcp.WithDescription("List workspace objects under a path"),
		mcp.WithString("path",
			mcp.Description("Path to list (defaults to the session workspace path)"),
		),
	), config.ToolListWorkspace)

	add(mcp.NewTool(config.ToolImportFile,
		mcp.WithDescription("Import base64-encoded content into the workspace in a chosen format"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Target path (relative paths resolve against the session workspace path)"),
		),
		mcp.WithString("content_base64",
			mcp.Required(),
			mcp.Description("Base64-encoded file content"),
		),
		mcp.WithString("format",
			mcp.Description("Import format: AUTO, SOURCE, HTML, JUPYTER, or DBC (default AUTO)"),
		),
		mcp.WithString("language",
			mcp.Description("Language for SOURCE imports: PYTHON, SQL, SCALA, or R"),
		),
		mcp.WithBoolean("overwrite",
			mcp.Description("Overwrite an existing object at the same path"),
		),
	), config.ToolImportFile)

	add(mcp.NewTool(config.ToolExportFile,
		mcp.WithDescription("Export a workspace object as base64-encoded content"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Object path (relative paths resolve against the session workspace path)"),
		),
		mcp.WithString("format",
			mcp.Description("Export format: SOURCE, HTML, JUPYTER, or DBC (default SOURCE)"),
		),
	), config.ToolExportFile)

	add(mcp.NewTool(config.ToolDeleteWorkspaceObject,
		mcp.WithDescription("Delete a workspace object"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Path to delete (relative paths resolve against the session workspace path)"),
		),
		mcp.WithBoolean("recursive",
			mcp.Description("Recursively delete a non-empty directory"),
		),
	), config.ToolDeleteWorkspaceObject)

	add(mcp.NewTool(config.ToolCreateDirectory,
		mcp.WithDescription("Create a workspace directory and any missing parents"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Directory path (relative paths resolve against the session workspace path)"),
		),
	), config.ToolCreateDirectory)

	// Repo tools
	add(mcp.NewTool(config.ToolCreateRepo,
		mcp.WithDescription("Clone a git repository into the workspace"),
		mcp.WithString("url",
			mcp.Required(),
			mcp.Description("Remote repository URL"),
		),
		mcp.WithString("provider",
			mcp.Required(),
			mcp.Description("Git provider, e.g. gitHub, gitLab, azureDevOpsServices"),
		),
		mcp.WithString("path",
			mcp.Description("Workspace path for the repo"),
		),
	), config.ToolCreateRepo)

	add(mcp.NewTool(config.ToolUpdateRepo,
		mcp.WithDescription("Check out a branch or tag in a workspace repo (exactly one must be given)"),
		mcp.WithString("repo_id",
			mcp.Required(),
			mcp.Description("Repo ID"),
		),
		mcp.WithString("branch",
			mcp.Description("Branch to check out"),
		),
		mcp.WithString("tag",
			mcp.Description("Tag to check out"),
		),
	), config.ToolUpdateRepo)

	add(mcp.NewTool(config.ToolGetRepo,
		mcp.WithDescription("Get a workspace repo by id"),
		mcp.WithString("repo_id",
			mcp.Required(),
			mcp.Description("Repo ID"),
		),
	), config.ToolGetRepo)

	add(mcp.NewTool(config.ToolListRepos,
		mcp.WithDescription("List repos in the workspace"),
	), config.ToolListRepos)

	add(mcp.NewTool(config.ToolDeleteRepo,
		mcp.WithDescription("Remove a repo from the workspace"),
		mcp.WithString("repo_id",
			mcp.Required(),
			mcp.Description("Repo ID to remove"),
		),
	), config.ToolDeleteRepo)

	// Secret tools
	add(mcp.NewTool(config.ToolListSecretScopes,
		mcp.WithDescription("List secret scopes"),
	), config.ToolListSecretScopes)

	add(mcp.NewTool(config.ToolCreateSecretScope,
		mcp.WithDescription("Create a Databricks-backed secret scope"),
		mcp.WithString("scope",
			mcp.Required(),
			mcp.Description("Scope name"),
		),
	), config.ToolCreateSecretScope)

	add(mcp.NewTool(config.ToolListSecrets,
		mcp.WithDescription("List secret keys in a scope (values are never returned)"),
		mcp.WithString("scope",
			mcp.Required(),
			mcp.Description("Scope name"),
		),
	), config.ToolListSecrets)

	add(mcp.NewTool(config.ToolPutSecret,
		mcp.WithDescription("Write a string secret, overwriting any existing value"),
		mcp.WithString("scope",
			mcp.Required(),
			mcp.Description("Scope name"),
		),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Secret key"),
		),
		mcp.WithString("value",
			mcp.Required(),
			mcp.Description("Secret value"),
		),
	), config.ToolPutSecret)

	add(mcp.NewTool(config.ToolDeleteSecret,
		mcp.WithDescription("Delete a secret"),
		mcp.WithString("scope",
			mcp.Required(),
			mcp.Description("Scope name"),
		),
		mcp.WithString("key",
			mcp.Required(),
			mcp.Description("Secret key"),
		),
	), config.ToolDeleteSecret)

	// SQL tools
	add(mcp.NewTool(config.ToolListWarehouses,
		mcp.WithDescription("List SQL warehouses"),
	), config.ToolListWarehouses)

	add(mcp.NewTool(config.ToolStartWarehouse,
		mcp.WithDescription("Start a stopped SQL warehouse"),
		mcp.WithString("warehouse_id",
			mcp.Description("Warehouse ID (defaults to the session's current warehouse)"),
		),
	), config.ToolStartWarehouse)

	add(mcp.NewTool(config.ToolStopWarehouse,
		mcp.WithDescription("Stop a running SQL warehouse"),
		mcp.WithString("warehouse_id",
			mcp.Description("Warehouse ID (defaults to the session's current warehouse)"),
		),
	), config.ToolStopWarehouse)

	add(mcp.NewTool(config.ToolExecuteQuery,
		mcp.WithDescription("Execute a SQL statement on a warehouse"),
		mcp.WithString("statement",
			mcp.Required(),
			mcp.Description("SQL statement to execute"),
		),
		mcp.WithString("warehouse_id",
			mcp.Description("Warehouse ID (defaults to the session's current warehouse)"),
		),
		mcp.WithString("catalog",
			mcp.Description("Default catalog for the statement"),
		),
		mcp.WithString("schema",
			mcp.Description("Default schema for the statement"),
		),
	), config.ToolExecuteQuery)

	add(mcp.NewTool(config.ToolGetQueryResults,
		mcp.WithDescription("Fetch the status and results of a previously executed statement"),
		mcp.WithString("statement_id",
			mcp.Required(),
			mcp.Description("Statement ID returned by execute_query"),
		),
	), config.ToolGetQueryResults)

	// Unity Catalog tools
	add(mcp.NewTool(config.ToolListCatalogs,
		mcp.WithDescription("List Unity Catalog catalogs"),
	), config.ToolListCatalogs)

	add(mcp.NewTool(config.ToolListSchemas,
		mcp.WithDescription("List schemas in a catalog"),
		mcp.WithString("catalog_name",
			mcp.Required(),
			mcp.Description("Catalog name"),
		),
	), config.ToolListSchemas)

	add(mcp.NewTool(config.ToolListTables,
		mcp.WithDescription("List tables in a schema"),
		mcp.WithString("catalog_name",
			mcp.Required(),
			mcp.Description("Catalog name"),
		),
		mcp.WithString("schema_name",
			mcp.Required(),
			mcp.Description("Schema name"),
		),
	), config.ToolListTables)

	add(mcp.NewTool(config.ToolGetTable,
		mcp.WithDescription("Get a table definition including columns"),
		mcp.WithString("full_name",
			mcp.Required(),
			mcp.Description("Three-part table name: catalog.schema.table"),
		),
	), config.ToolGetTable)

	add(mcp.NewTool(config.ToolListVolumes,
		mcp.WithDescription("List volumes in a schema"),
		mcp.WithString("catalog_name",
			mcp.Required(),
			mcp.Description("Catalog name"),
		),
		mcp.WithString("schema_name",
			mcp.Required(),
			mcp.Description("Schema name"),
		),
	), config.ToolListVolumes)

	add(mcp.NewTool(config.ToolCreateVolume,
		mcp.WithDescription("Create a managed volume in a schema"),
		mcp.WithString("catalog_name",
			mcp.Required(),
			mcp.Description("Catalog name"),
		),
		mcp.WithString("schema_name",
			mcp.Required(),
			mcp.Description("Schema name"),
		),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Volume name"),
		),
	), config.ToolCreateVolume)
}
