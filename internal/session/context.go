// Package session maintains per-session mutable state that is shared across
// otherwise-stateless tool calls: the current workspace path and the current
// cluster, job, and warehouse identifiers.
//
// Contexts are created lazily on first access and live for the life of the
// process. Unlike tasks, idle session contexts are never swept; only an
// explicit clear removes them.
package session

import (
	"sync"
	"time"
)

// DefaultSessionID is used when a request carries no session identifier.
const DefaultSessionID = "default"

// DefaultWorkspacePath is the initial workspace path for a fresh context.
const DefaultWorkspacePath = "/Workspace"

// Context holds the mutable state for a single session. All field access is
// serialized by an internal mutex; concurrent writers to the same field
// resolve last-write-wins.
type Context struct {
	mu sync.RWMutex

	sessionID          string
	createdAt          time.Time
	workspacePath      string
	currentClusterID   string
	currentJobID       string
	currentWarehouseID string
	metadata           map[string]string
}

// Info is the JSON-serializable snapshot of a session context.
type Info struct {
	SessionID          string            `json:"session_id"`
	WorkspacePath      string            `json:"workspace_path"`
	CurrentClusterID   string            `json:"current_cluster_id,omitempty"`
	CurrentJobID       string            `json:"current_job_id,omitempty"`
	CurrentWarehouseID string            `json:"current_warehouse_id,omitempty"`
	Metadata           map[string]string `json:"metadata"`
}

func newContext(sessionID string) *Context {
	return &Context{
		sessionID:     sessionID,
		createdAt:     time.Now(),
		workspacePath: DefaultWorkspacePath,
		metadata:      make(map[string]string),
	}
}

// SessionID returns the identifier this context was created under.
func (c *Context) SessionID() string {
	return c.sessionID
}

// CreatedAt returns the creation time of the context.
func (c *Context) CreatedAt() time.Time {
	return c.createdAt
}

// WorkspacePath returns the current workspace path.
func (c *Context) WorkspacePath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.workspacePath
}

// SetWorkspacePath sets the workspace path used to resolve relative paths.
func (c *Context) SetWorkspacePath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.workspacePath = path
}

// CurrentClusterID returns the current cluster id, or "" if unset.
func (c *Context) CurrentClusterID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentClusterID
}

// SetCluster sets the current cluster id.
func (c *Context) SetCluster(clusterID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentClusterID = clusterID
}

// ClearClusterIf unsets the current cluster id if it equals clusterID.
// Used when the cluster a session was pinned to is deleted.
func (c *Context) ClearClusterIf(clusterID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentClusterID == clusterID {
		c.currentClusterID = ""
	}
}

// CurrentJobID returns the current job id, or "" if unset.
func (c *Context) CurrentJobID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentJobID
}

// SetJob sets the current job id.
func (c *Context) SetJob(jobID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentJobID = jobID
}

// ClearJobIf unsets the current job id if it equals jobID.
func (c *Context) ClearJobIf(jobID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.currentJobID == jobID {
		c.currentJobID = ""
	}
}

// CurrentWarehouseID returns the current SQL warehouse id, or "" if unset.
func (c *Context) CurrentWarehouseID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.currentWarehouseID
}

// SetWarehouse sets the current SQL warehouse id.
func (c *Context) SetWarehouse(warehouseID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.currentWarehouseID = warehouseID
}

// SetMetadata stores an arbitrary key/value pair on the context.
func (c *Context) SetMetadata(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.metadata[key] = value
}

// Snapshot returns a copy of the context suitable for JSON serialization.
func (c *Context) Snapshot() Info {
	c.mu.RLock()
	defer c.mu.RUnlock()

	metadata := make(map[string]string, len(c.metadata))
	for k, v := range c.metadata {
		metadata[k] = v
	}

	return Info{
		SessionID:          c.sessionID,
		WorkspacePath:      c.workspacePath,
		CurrentClusterID:   c.currentClusterID,
		CurrentJobID:       c.currentJobID,
		CurrentWarehouseID: c.currentWarehouseID,
		Metadata:           metadata,
	}
}
