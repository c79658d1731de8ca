package mcpserver

import (
	"context"
	"net/http"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
	"github.com/dbx-labs/databricks-mcp/internal/session"
)

type contextKey string

const (
	ctxKeySessionID contextKey = "session_id"
	ctxKeyHost      contextKey = "databricks_host"
	ctxKeyToken     contextKey = "databricks_token"
)

// Per-request headers recognized by the HTTP transport
const (
	headerSessionID = "X-Session-Id"
	headerHost      = "X-Databricks-Host"
	headerToken     = "X-Databricks-Token"
)

// HTTPContextFunc copies per-request headers into the context so tool
// handlers can read them. Used with the HTTP/SSE transport; stdio clients
// fall back to environment credentials and the default session.
func HTTPContextFunc(ctx context.Context, r *http.Request) context.Context {
	if v := r.Header.Get(headerSessionID); v != "" {
		ctx = context.WithValue(ctx, ctxKeySessionID, v)
	}
	if v := r.Header.Get(headerHost); v != "" {
		ctx = context.WithValue(ctx, ctxKeyHost, v)
	}
	if v := r.Header.Get(headerToken); v != "" {
		ctx = context.WithValue(ctx, ctxKeyToken, v)
	}
	return ctx
}

// getSessionID extracts the session id for the current call. The MCP client
// session wins over the header value; with neither, the default session is
// shared by all callers.
func (ms *MCPServer) getSessionID(ctx context.Context) string {
	if cs := server.ClientSessionFromContext(ctx); cs != nil && cs.SessionID() != "" {
		return cs.SessionID()
	}
	if v, ok := ctx.Value(ctxKeySessionID).(string); ok && v != "" {
		return v
	}
	return session.DefaultSessionID
}

// getOrCreateContext returns the session context for the current call,
// creating a default-initialized one on first access.
func (ms *MCPServer) getOrCreateContext(ctx context.Context) *session.Context {
	return ms.sessions.GetOrCreate(ms.getSessionID(ctx))
}

// credentials resolves the workspace credentials for the current call:
// per-request headers first, environment second.
func (ms *MCPServer) credentials(ctx context.Context) (databricks.Credentials, error) {
	host, _ := ctx.Value(ctxKeyHost).(string)
	token, _ := ctx.Value(ctxKeyToken).(string)
	if host != "" && token != "" {
		return databricks.Credentials{Host: databricks.NormalizeHost(host), Token: token}, nil
	}
	if ms.envCreds.Valid() {
		return ms.envCreds, nil
	}
	return databricks.Credentials{}, databricks.ErrNoCredentials
}

// client returns a pooled Databricks client for the current call's
// credentials.
func (ms *MCPServer) client(ctx context.Context) (*databricks.Client, error) {
	creds, err := ms.credentials(ctx)
	if err != nil {
		return nil, err
	}
	return ms.clients.get(creds)
}
