package mcpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
	"github.com/dbx-labs/databricks-mcp/internal/mcpserver/config"
	"github.com/dbx-labs/databricks-mcp/internal/session"
	"github.com/dbx-labs/databricks-mcp/internal/tasks"
)

func newTestServer(t *testing.T) *MCPServer {
	t.Helper()
	logger := slog.Default()
	ms := NewMCPServer(
		Config{Name: "databricks-mcp-test", Version: "0.0.1"},
		session.NewRegistry(),
		tasks.NewManager(logger, tasks.DefaultConfig()),
		databricks.Credentials{},
		NewAuditLogger(logger),
		logger,
	)
	t.Cleanup(ms.Close)
	return ms
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{Arguments: args},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("tool result has no content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("tool result content is not text: %#v", result.Content[0])
	}
	return text.Text
}

func decodeResult(t *testing.T, result *mcp.CallToolResult, out any) {
	t.Helper()
	if err := json.Unmarshal([]byte(resultText(t, result)), out); err != nil {
		t.Fatalf("decode tool result: %v", err)
	}
}

func TestResolveWorkspacePath(t *testing.T) {
	tests := []struct {
		base string
		path string
		want string
	}{
		{"/Workspace", "/Shared/etl", "/Shared/etl"},
		{"/Workspace", "notebooks/etl", "/Workspace/notebooks/etl"},
		{"/Workspace/Users/me/", "etl", "/Workspace/Users/me/etl"},
		{"/Workspace", "/Workspace/abs", "/Workspace/abs"},
		{"/Workspace/Users/me", "../other", "/Workspace/Users/me/../other"},
	}
	for _, tt := range tests {
		if got := resolveWorkspacePath(tt.base, tt.path); got != tt.want {
			t.Errorf("resolveWorkspacePath(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

func TestGetSessionIDFallbacks(t *testing.T) {
	ms := newTestServer(t)

	if got := ms.getSessionID(context.Background()); got != session.DefaultSessionID {
		t.Errorf("getSessionID on bare context = %q, want %q", got, session.DefaultSessionID)
	}

	req, _ := http.NewRequest(http.MethodGet, "/mcp/sse", nil)
	req.Header.Set(headerSessionID, "header-session")
	ctx := HTTPContextFunc(context.Background(), req)
	if got := ms.getSessionID(ctx); got != "header-session" {
		t.Errorf("getSessionID with header = %q, want header-session", got)
	}
}

func TestCredentialsFromHeaders(t *testing.T) {
	ms := newTestServer(t)

	req, _ := http.NewRequest(http.MethodGet, "/mcp/sse", nil)
	req.Header.Set(headerHost, "adb-1.azuredatabricks.net")
	req.Header.Set(headerToken, "dapi123")
	ctx := HTTPContextFunc(context.Background(), req)

	creds, err := ms.credentials(ctx)
	if err != nil {
		t.Fatalf("credentials() error = %v", err)
	}
	if creds.Host != "https://adb-1.azuredatabricks.net" {
		t.Errorf("Host = %q, want normalized https host", creds.Host)
	}
	if creds.Token != "dapi123" {
		t.Errorf("Token = %q", creds.Token)
	}
}

func TestCredentialsMissing(t *testing.T) {
	ms := newTestServer(t)

	if _, err := ms.credentials(context.Background()); err == nil {
		t.Error("credentials() returned nil error with no headers and no env")
	}
}

func TestCredentialsEnvFallback(t *testing.T) {
	ms := newTestServer(t)
	ms.envCreds = databricks.Credentials{Host: "https://env-host", Token: "env-token"}

	creds, err := ms.credentials(context.Background())
	if err != nil {
		t.Fatalf("credentials() error = %v", err)
	}
	if creds.Host != "https://env-host" || creds.Token != "env-token" {
		t.Errorf("creds = %+v, want env fallback", creds)
	}
}

func TestGetSessionContextBeforeCreation(t *testing.T) {
	ms := newTestServer(t)

	result, err := ms.handleGetSessionContext(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var resp map[string]string
	decodeResult(t, result, &resp)
	if resp["session_id"] != session.DefaultSessionID {
		t.Errorf("session_id = %q", resp["session_id"])
	}
	if resp["message"] != config.ErrNoContext {
		t.Errorf("message = %q, want %q", resp["message"], config.ErrNoContext)
	}
}

func TestSetWorkspacePathThenGetContext(t *testing.T) {
	ms := newTestServer(t)

	result, err := ms.handleSetWorkspacePath(context.Background(), callRequest(map[string]any{
		"path": "/Workspace/Users/me",
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var info session.Info
	decodeResult(t, result, &info)
	if info.WorkspacePath != "/Workspace/Users/me" {
		t.Errorf("workspace_path = %q", info.WorkspacePath)
	}

	result, err = ms.handleGetSessionContext(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	decodeResult(t, result, &info)
	if info.WorkspacePath != "/Workspace/Users/me" {
		t.Errorf("workspace_path after get = %q", info.WorkspacePath)
	}
}

func TestSetCurrentClusterMissingArg(t *testing.T) {
	ms := newTestServer(t)

	result, err := ms.handleSetCurrentCluster(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing cluster_id")
	}
}

func TestClearSessionContext(t *testing.T) {
	ms := newTestServer(t)

	if _, err := ms.handleSetCurrentCluster(context.Background(), callRequest(map[string]any{
		"cluster_id": "c-1",
	})); err != nil {
		t.Fatalf("handler error = %v", err)
	}

	result, err := ms.handleClearSessionContext(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	var resp map[string]string
	decodeResult(t, result, &resp)
	if resp["message"] != config.MsgContextCleared {
		t.Errorf("message = %q", resp["message"])
	}

	result, err = ms.handleGetSessionContext(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	decodeResult(t, result, &resp)
	if resp["message"] != config.ErrNoContext {
		t.Error("context survived clear_session_context")
	}
}

func TestGetTaskStatusUnknown(t *testing.T) {
	ms := newTestServer(t)

	result, err := ms.handleGetTaskStatus(context.Background(), callRequest(map[string]any{
		"task_id": "nope",
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var resp map[string]string
	decodeResult(t, result, &resp)
	if resp["error"] == "" {
		t.Error("expected error field for unknown task")
	}
}

func TestTaskLifecycleThroughTools(t *testing.T) {
	ms := newTestServer(t)

	task := ms.tasks.Create("test_op", func(ctx context.Context) (any, error) {
		return map[string]string{"ok": "yes"}, nil
	})

	deadline := time.Now().Add(5 * time.Second)
	var status tasks.Task
	for time.Now().Before(deadline) {
		result, err := ms.handleGetTaskStatus(context.Background(), callRequest(map[string]any{
			"task_id": task.TaskID,
		}))
		if err != nil {
			t.Fatalf("handler error = %v", err)
		}
		decodeResult(t, result, &status)
		if status.Status.Terminal() {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if status.Status != tasks.StatusCompleted {
		t.Fatalf("task status = %s, want completed", status.Status)
	}
	if status.PollAfterMS != 2000 {
		t.Errorf("poll_after_ms = %d, want 2000", status.PollAfterMS)
	}
}

func TestCancelTaskThroughTool(t *testing.T) {
	ms := newTestServer(t)

	started := make(chan struct{})
	task := ms.tasks.Create("long_op", func(ctx context.Context) (any, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})
	<-started

	result, err := ms.handleCancelTask(context.Background(), callRequest(map[string]any{
		"task_id": task.TaskID,
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var resp map[string]any
	decodeResult(t, result, &resp)
	if resp["cancelled"] != true {
		t.Errorf("cancelled = %v, want true", resp["cancelled"])
	}

	// A second cancel of the now-terminal task must report false.
	result, err = ms.handleCancelTask(context.Background(), callRequest(map[string]any{
		"task_id": task.TaskID,
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	decodeResult(t, result, &resp)
	if resp["cancelled"] != false {
		t.Errorf("second cancel = %v, want false", resp["cancelled"])
	}
}

func TestClusterToolWithoutCredentials(t *testing.T) {
	ms := newTestServer(t)

	result, err := ms.handleListClusters(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result without credentials")
	}
}

func TestUpdateRepoRequiresBranchXorTag(t *testing.T) {
	ms := newTestServer(t)

	for _, args := range []map[string]any{
		{"repo_id": "7"},
		{"repo_id": "7", "branch": "main", "tag": "v1.0"},
	} {
		result, err := ms.handleUpdateRepo(context.Background(), callRequest(args))
		if err != nil {
			t.Fatalf("handler error = %v", err)
		}
		if !result.IsError {
			t.Errorf("args %v: expected error result", args)
		}
		if got := resultText(t, result); got != config.ErrBranchOrTag {
			t.Errorf("args %v: message = %q, want %q", args, got, config.ErrBranchOrTag)
		}
	}
}

func TestClusterToolWithoutPinnedCluster(t *testing.T) {
	ms := newTestServer(t)

	result, err := ms.handleGetCluster(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result without cluster_id or pinned cluster")
	}
	if got := resultText(t, result); got != config.ErrNoCluster {
		t.Errorf("message = %q, want %q", got, config.ErrNoCluster)
	}
}

func TestWarehouseToolWithoutPinnedWarehouse(t *testing.T) {
	ms := newTestServer(t)

	result, err := ms.handleStartWarehouse(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Fatal("expected error result without warehouse_id or pinned warehouse")
	}
	if got := resultText(t, result); got != config.ErrNoWarehouse {
		t.Errorf("message = %q, want %q", got, config.ErrNoWarehouse)
	}
}

func TestImportFileRequiresContent(t *testing.T) {
	ms := newTestServer(t)

	result, err := ms.handleImportFile(context.Background(), callRequest(map[string]any{
		"path": "/Workspace/archive.dbc",
	}))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !result.IsError {
		t.Error("expected error result for missing content_base64")
	}
}

func TestListNotebooksFiltersToNotebooks(t *testing.T) {
	ms := newTestServer(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/2.0/workspace/list" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"objects": []map[string]any{
				{"path": "/Workspace/etl", "object_type": "NOTEBOOK", "language": "PYTHON"},
				{"path": "/Workspace/data", "object_type": "DIRECTORY"},
				{"path": "/Workspace/readme.md", "object_type": "FILE"},
			},
		})
	}))
	defer srv.Close()
	ms.envCreds = databricks.Credentials{Host: srv.URL, Token: "test-token"}

	result, err := ms.handleListNotebooks(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}

	var resp struct {
		Path      string                  `json:"path"`
		Notebooks []databricks.ObjectInfo `json:"notebooks"`
	}
	decodeResult(t, result, &resp)
	if len(resp.Notebooks) != 1 {
		t.Fatalf("got %d notebooks, want 1", len(resp.Notebooks))
	}
	if resp.Notebooks[0].Path != "/Workspace/etl" {
		t.Errorf("notebook path = %q", resp.Notebooks[0].Path)
	}
}

func TestStatementCache(t *testing.T) {
	c := newStatementCache(100 * time.Millisecond)
	defer c.Close()

	terminal := &databricks.StatementResult{StatementID: "s-1"}
	terminal.Status.State = "SUCCEEDED"
	c.store(terminal)

	pending := &databricks.StatementResult{StatementID: "s-2"}
	pending.Status.State = "RUNNING"
	c.store(pending)

	if c.get("s-1") == nil {
		t.Error("terminal result not cached")
	}
	if c.get("s-2") != nil {
		t.Error("non-terminal result was cached")
	}

	time.Sleep(150 * time.Millisecond)
	if c.get("s-1") != nil {
		t.Error("cached result survived TTL")
	}
}

func TestRegistryCoversAllTools(t *testing.T) {
	ms := newTestServer(t)

	for _, name := range config.AllTools() {
		if _, err := ms.toolRegistry.Handler(name); err != nil {
			t.Errorf("tool %s has no registered handler", name)
		}
	}
}
