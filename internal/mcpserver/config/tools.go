package config

// Session context tool names
const (
	// ToolGetSessionContext returns the current session context
	ToolGetSessionContext = "get_session_context"
	// ToolSetWorkspacePath sets the session workspace path
	ToolSetWorkspacePath = "set_workspace_path"
	// ToolSetCurrentCluster pins a cluster to the session
	ToolSetCurrentCluster = "set_current_cluster"
	// ToolSetCurrentJob pins a job to the session
	ToolSetCurrentJob = "set_current_job"
	// ToolSetCurrentWarehouse pins a SQL warehouse to the session
	ToolSetCurrentWarehouse = "set_current_warehouse"
	// ToolClearSessionContext resets the session context
	ToolClearSessionContext = "clear_session_context"
)

// Task tool names
const (
	// ToolGetTaskStatus polls an async task
	ToolGetTaskStatus = "get_task_status"
	// ToolCancelTask requests cancellation of an async task
	ToolCancelTask = "cancel_task"
)

// Cluster tool names
const (
	ToolCreateCluster    = "create_cluster"
	ToolListClusters     = "list_clusters"
	ToolGetCluster       = "get_cluster"
	ToolStartCluster     = "start_cluster"
	ToolTerminateCluster = "terminate_cluster"
	ToolDeleteCluster    = "delete_cluster"
)

// Job tool names
const (
	ToolCreateJob    = "create_job"
	ToolRunJob       = "run_job"
	ToolListJobs     = "list_jobs"
	ToolGetJob       = "get_job"
	ToolGetRunStatus = "get_run_status"
	ToolCancelRun    = "cancel_run"
	ToolDeleteJob    = "delete_job"
)

// Notebook and workspace tool names
const (
	ToolImportNotebook        = "import_notebook"
	ToolExportNotebook        = "export_notebook"
	ToolListNotebooks         = "list_notebooks"
	ToolRunNotebook           = "run_notebook"
	ToolListWorkspace         = "list_workspace"
	ToolImportFile            = "import_file"
	ToolExportFile            = "export_file"
	ToolDeleteWorkspaceObject = "delete_workspace_object"
	ToolCreateDirectory       = "create_directory"
)

// Repo tool names
const (
	ToolCreateRepo = "create_repo"
	ToolUpdateRepo = "update_repo"
	ToolGetRepo    = "get_repo"
	ToolListRepos  = "list_repos"
	ToolDeleteRepo = "delete_repo"
)

// Secret tool names
const (
	ToolListSecretScopes  = "list_secret_scopes"
	ToolCreateSecretScope = "create_secret_scope"
	ToolListSecrets       = "list_secrets"
	ToolPutSecret         = "put_secret"
	ToolDeleteSecret      = "delete_secret"
)

// SQL tool names
const (
	ToolListWarehouses  = "list_warehouses"
	ToolStartWarehouse  = "start_warehouse"
	ToolStopWarehouse   = "stop_warehouse"
	ToolExecuteQuery    = "execute_query"
	ToolGetQueryResults = "get_query_results"
)

// Unity Catalog tool names
const (
	ToolListCatalogs = "list_catalogs"
	ToolListSchemas  = "list_schemas"
	ToolListTables   = "list_tables"
	ToolGetTable     = "get_table"
	ToolListVolumes  = "list_volumes"
	ToolCreateVolume = "create_volume"
)

// AllTools returns a slice of all registered tool names
func AllTools() []string {
	return []string{
		ToolGetSessionContext,
		ToolSetWorkspacePath,
		ToolSetCurrentCluster,
		ToolSetCurrentJob,
		ToolSetCurrentWarehouse,
		ToolClearSessionContext,
		ToolGetTaskStatus,
		ToolCancelTask,
		ToolCreateCluster,
		ToolListClusters,
		ToolGetCluster,
		ToolStartCluster,
		ToolTerminateCluster,
		ToolDeleteCluster,
		ToolCreateJob,
		ToolRunJob,
		ToolListJobs,
		ToolGetJob,
		ToolGetRunStatus,
		ToolCancelRun,
		ToolDeleteJob,
		ToolImportNotebook,
		ToolExportNotebook,
		ToolListNotebooks,
		ToolRunNotebook,
		ToolListWorkspace,
		ToolImportFile,
		ToolExportFile,
		ToolDeleteWorkspaceObject,
		ToolCreateDirectory,
		ToolCreateRepo,
		ToolUpdateRepo,
		ToolGetRepo,
		ToolListRepos,
		ToolDeleteRepo,
		ToolListSecretScopes,
		ToolCreateSecretScope,
		ToolListSecrets,
		ToolPutSecret,
		ToolDeleteSecret,
		ToolListWarehouses,
		ToolStartWarehouse,
		ToolStopWarehouse,
		ToolExecuteQuery,
		ToolGetQueryResults,
		ToolListCatalogs,
		ToolListSchemas,
		ToolListTables,
		ToolGetTable,
		ToolListVolumes,
		ToolCreateVolume,
	}
}
