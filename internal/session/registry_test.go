package session_test

import (
	"sync"
	"testing"

	"github.com/dbx-labs/databricks-mcp/internal/session"
)

func TestGetOrCreateDefaults(t *testing.T) {
	r := session.NewRegistry()

	ctx := r.GetOrCreate("session-1")
	if ctx == nil {
		t.Fatal("GetOrCreate returned nil")
	}
	if ctx.SessionID() != "session-1" {
		t.Errorf("SessionID = %q, want %q", ctx.SessionID(), "session-1")
	}
	if ctx.WorkspacePath() != session.DefaultWorkspacePath {
		t.Errorf("WorkspacePath = %q, want %q", ctx.WorkspacePath(), session.DefaultWorkspacePath)
	}
	if ctx.CurrentClusterID() != "" {
		t.Errorf("CurrentClusterID = %q, want empty", ctx.CurrentClusterID())
	}
}

func TestGetOrCreateReturnsSameContext(t *testing.T) {
	r := session.NewRegistry()

	first := r.GetOrCreate("session-1")
	first.SetCluster("cluster-abc")

	second := r.GetOrCreate("session-1")
	if first != second {
		t.Error("GetOrCreate returned a different context for the same id")
	}
	if second.CurrentClusterID() != "cluster-abc" {
		t.Errorf("CurrentClusterID = %q, want %q", second.CurrentClusterID(), "cluster-abc")
	}
}

func TestEmptySessionIDFallsBackToDefault(t *testing.T) {
	r := session.NewRegistry()

	ctx := r.GetOrCreate("")
	if ctx.SessionID() != session.DefaultSessionID {
		t.Errorf("SessionID = %q, want %q", ctx.SessionID(), session.DefaultSessionID)
	}

	again := r.GetOrCreate(session.DefaultSessionID)
	if ctx != again {
		t.Error("empty id and explicit default id mapped to different contexts")
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	r := session.NewRegistry()

	a := r.GetOrCreate("session-a")
	b := r.GetOrCreate("session-b")

	a.SetWorkspacePath("/Workspace/Users/alice")
	a.SetCluster("cluster-a")

	if b.WorkspacePath() != session.DefaultWorkspacePath {
		t.Errorf("session-b workspace path = %q, mutated by session-a", b.WorkspacePath())
	}
	if b.CurrentClusterID() != "" {
		t.Errorf("session-b cluster = %q, mutated by session-a", b.CurrentClusterID())
	}
}

func TestGetDoesNotCreate(t *testing.T) {
	r := session.NewRegistry()

	if _, ok := r.Get("never-seen"); ok {
		t.Error("Get returned ok for unseen session")
	}
	if r.Count() != 0 {
		t.Errorf("Count = %d after Get, want 0", r.Count())
	}
}

func TestClear(t *testing.T) {
	r := session.NewRegistry()

	ctx := r.GetOrCreate("session-1")
	ctx.SetCluster("cluster-abc")
	r.Clear("session-1")

	if _, ok := r.Get("session-1"); ok {
		t.Error("context still present after Clear")
	}

	fresh := r.GetOrCreate("session-1")
	if fresh.CurrentClusterID() != "" {
		t.Errorf("recreated context carries old cluster %q", fresh.CurrentClusterID())
	}

	// Clearing an absent id must not panic or fail.
	r.Clear("never-seen")
}

func TestConcurrentGetOrCreateSingleWinner(t *testing.T) {
	r := session.NewRegistry()

	const n = 64
	var wg sync.WaitGroup
	results := make([]*session.Context, n)
	start := make(chan struct{})

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = r.GetOrCreate("contended")
		}(i)
	}
	close(start)
	wg.Wait()

	for i := 1; i < n; i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent GetOrCreate returned distinct contexts")
		}
	}
	if r.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Count())
	}
}

func TestSnapshotOmitsUnsetIDs(t *testing.T) {
	r := session.NewRegistry()

	ctx := r.GetOrCreate("session-1")
	info := ctx.Snapshot()
	if info.CurrentClusterID != "" || info.CurrentJobID != "" || info.CurrentWarehouseID != "" {
		t.Errorf("fresh snapshot carries ids: %+v", info)
	}

	ctx.SetCluster("cluster-abc")
	ctx.SetJob("job-123")
	ctx.SetWarehouse("wh-9")
	ctx.SetMetadata("team", "data-eng")

	info = ctx.Snapshot()
	if info.CurrentClusterID != "cluster-abc" {
		t.Errorf("CurrentClusterID = %q", info.CurrentClusterID)
	}
	if info.CurrentJobID != "job-123" {
		t.Errorf("CurrentJobID = %q", info.CurrentJobID)
	}
	if info.CurrentWarehouseID != "wh-9" {
		t.Errorf("CurrentWarehouseID = %q", info.CurrentWarehouseID)
	}
	if info.Metadata["team"] != "data-eng" {
		t.Errorf("Metadata = %v", info.Metadata)
	}
}

func TestClearClusterIf(t *testing.T) {
	r := session.NewRegistry()
	ctx := r.GetOrCreate("session-1")

	ctx.SetCluster("cluster-abc")
	ctx.ClearClusterIf("other-cluster")
	if ctx.CurrentClusterID() != "cluster-abc" {
		t.Error("ClearClusterIf cleared a non-matching cluster")
	}

	ctx.ClearClusterIf("cluster-abc")
	if ctx.CurrentClusterID() != "" {
		t.Error("ClearClusterIf did not clear the matching cluster")
	}
}
