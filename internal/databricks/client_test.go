package databricks_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
)

func newTestClient(t *testing.T, handler http.Handler) *databricks.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := databricks.NewClient(
		databricks.Credentials{Host: srv.URL, Token: "test-token"},
		databricks.WithMaxRetryElapsed(500*time.Millisecond),
	)
	require.NoError(t, err)
	return client
}

func TestNormalizeHost(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"adb-123.azuredatabricks.net", "https://adb-123.azuredatabricks.net"},
		{"https://adb-123.azuredatabricks.net", "https://adb-123.azuredatabricks.net"},
		{"https://adb-123.azuredatabricks.net/", "https://adb-123.azuredatabricks.net"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"  dbc-abc.cloud.databricks.com  ", "https://dbc-abc.cloud.databricks.com"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, databricks.NormalizeHost(tt.in), "input %q", tt.in)
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := databricks.NewClient(databricks.Credentials{Host: "https://x", Token: ""})
	assert.ErrorIs(t, err, databricks.ErrNoCredentials)

	_, err = databricks.NewClient(databricks.Credentials{Host: "", Token: "tok"})
	assert.ErrorIs(t, err, databricks.ErrNoCredentials)
}

func TestBearerTokenSent(t *testing.T) {
	var gotAuth string
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"clusters": []any{}})
	}))

	_, err := client.ListClusters(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestListClusters(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/2.1/clusters/list", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"clusters": []map[string]any{
				{"cluster_id": "c-1", "cluster_name": "etl", "state": "RUNNING"},
				{"cluster_id": "c-2", "cluster_name": "adhoc", "state": "TERMINATED"},
			},
		})
	}))

	clusters, err := client.ListClusters(context.Background())
	require.NoError(t, err)
	require.Len(t, clusters, 2)
	assert.Equal(t, "c-1", clusters[0].ClusterID)
	assert.Equal(t, "RUNNING", clusters[0].State)
}

func TestCreateCluster(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/2.1/clusters/create", r.URL.Path)

		var spec databricks.ClusterSpec
		require.NoError(t, json.NewDecoder(r.Body).Decode(&spec))
		assert.Equal(t, "etl-cluster", spec.ClusterName)
		assert.Equal(t, 2, spec.NumWorkers)

		_ = json.NewEncoder(w).Encode(map[string]string{"cluster_id": "c-new"})
	}))

	id, err := client.CreateCluster(context.Background(), databricks.ClusterSpec{
		ClusterName:  "etl-cluster",
		SparkVersion: "13.3.x-scala2.12",
		NodeTypeID:   "i3.xlarge",
		NumWorkers:   2,
	})
	require.NoError(t, err)
	assert.Equal(t, "c-new", id)
}

func TestNotFoundError(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error_code": "RESOURCE_DOES_NOT_EXIST",
			"message":    "Cluster c-missing does not exist",
		})
	}))

	_, err := client.GetCluster(context.Background(), "c-missing")
	require.Error(t, err)
	assert.True(t, databricks.IsNotFound(err))
	assert.Contains(t, err.Error(), "RESOURCE_DOES_NOT_EXIST")
}

func TestBadRequestNotRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error_code": "INVALID_PARAMETER_VALUE",
			"message":    "num_workers must be non-negative",
		})
	}))

	_, err := client.CreateCluster(context.Background(), databricks.ClusterSpec{})
	require.Error(t, err)
	assert.False(t, databricks.IsNotFound(err))
	assert.Equal(t, int32(1), calls.Load(), "4xx responses must not be retried")
}

func TestServerErrorRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"clusters": []any{}})
	}))

	_, err := client.ListClusters(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, calls.Load(), int32(3))
}

func TestRateLimitRetried(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"jobs": []any{}})
	}))

	_, err := client.ListJobs(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
}

func TestGetRunParsesState(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/2.1/jobs/runs/get", r.URL.Path)
		assert.Equal(t, "42", r.URL.Query().Get("run_id"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"run_id": 42,
			"state": map[string]string{
				"life_cycle_state": "TERMINATED",
				"result_state":     "SUCCESS",
			},
			"run_page_url": "https://example/run/42",
		})
	}))

	run, err := client.GetRun(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, run.State.Terminal())
	assert.Equal(t, "SUCCESS", run.State.ResultState)
}

func TestExecuteStatementDefaultsTimeout(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "30s", body["wait_timeout"])
		assert.Equal(t, "wh-1", body["warehouse_id"])

		_ = json.NewEncoder(w).Encode(map[string]any{
			"statement_id": "stmt-1",
			"status":       map[string]string{"state": "SUCCEEDED"},
			"result": map[string]any{
				"data_array": [][]string{{"1", "alice"}},
				"row_count":  1,
			},
		})
	}))

	result, err := client.ExecuteStatement(context.Background(), "wh-1", "SELECT * FROM users", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "stmt-1", result.StatementID)
	assert.Equal(t, "SUCCEEDED", result.Status.State)
	require.NotNil(t, result.Result)
	assert.Equal(t, [][]string{{"1", "alice"}}, result.Result.DataArray)
}

func TestImportNotebookOmitsEmptyLanguage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/2.0/workspace/import", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "AUTO", body["format"])
		_, hasLanguage := body["language"]
		assert.False(t, hasLanguage, "language must be absent when not set")

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{}"))
	}))

	err := client.ImportNotebook(context.Background(), "/Workspace/etl.py", "cHJpbnQoMSk=", "", "AUTO", false)
	require.NoError(t, err)
}

func TestUpdateRepoPatch(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/2.0/repos/7", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "main", body["branch"])
		_, hasTag := body["tag"]
		assert.False(t, hasTag)

		_ = json.NewEncoder(w).Encode(map[string]any{"id": 7, "branch": "main"})
	}))

	info, err := client.UpdateRepo(context.Background(), 7, "main", "")
	require.NoError(t, err)
	assert.Equal(t, "main", info.Branch)
}

func TestGetTableEscapesName(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/2.1/unity-catalog/tables/main.analytics.events", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"name":         "events",
			"catalog_name": "main",
			"schema_name":  "analytics",
			"full_name":    "main.analytics.events",
			"columns": []map[string]any{
				{"name": "id", "type_name": "LONG"},
			},
		})
	}))

	table, err := client.GetTable(context.Background(), "main.analytics.events")
	require.NoError(t, err)
	require.Len(t, table.Columns, 1)
	assert.Equal(t, "id", table.Columns[0].Name)
}
