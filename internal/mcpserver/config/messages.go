package config

// Error message templates used in tool results
const (
	// ErrTaskNotFound is returned when polling an unknown task id
	ErrTaskNotFound = "Task not found: %s"
	// ErrNoContext is returned when a session has no stored context
	ErrNoContext = "No context found for this session"
	// ErrBranchOrTag is returned when update_repo gets neither or both refs
	ErrBranchOrTag = "Either branch or tag must be specified"
	// ErrNoCredentials is returned when no workspace credentials are available
	ErrNoCredentials = "Databricks credentials not configured: set DATABRICKS_HOST and DATABRICKS_TOKEN or pass x-databricks-host and x-databricks-token headers"
	// ErrNoWarehouse is returned when a SQL tool has no warehouse to run on
	ErrNoWarehouse = "No warehouse specified and no current warehouse set for this session"
	// ErrNoCluster is returned when a notebook run has no cluster to run on
	ErrNoCluster = "No cluster specified and no current cluster set for this session"
)

// Informational message templates
const (
	// MsgTaskStarted accompanies the task envelope returned by async tools
	MsgTaskStarted = "Task %s started; poll get_task_status for progress"
	// MsgTaskCancelled is returned on successful cancellation
	MsgTaskCancelled = "Task cancellation requested"
	// MsgContextCleared is returned after clear_session_context
	MsgContextCleared = "Session context cleared"
)
