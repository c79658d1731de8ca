package mcpserver

import (
	"context"
	"log/slog"
)

// AuditEntry captures a single tool invocation for the audit log
type AuditEntry struct {
	SessionID string
	ToolName  string
	Arguments map[string]any
	ErrorMsg  string
}

// AuditLogger handles audit logging for MCP tool calls
type AuditLogger struct {
	logger *slog.Logger
}

// NewAuditLogger creates a new audit logger
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	return &AuditLogger{
		logger: logger,
	}
}

// LogToolCall logs a tool invocation with all relevant context
func (al *AuditLogger) LogToolCall(ctx context.Context, entry *AuditEntry) {
	al.logger.InfoContext(ctx, "tool_call",
		"session_id", entry.SessionID,
		"tool_name", entry.ToolName,
		"arguments", entry.Arguments,
	)
}

// LogToolError logs a tool execution failure
func (al *AuditLogger) LogToolError(ctx context.Context, entry *AuditEntry) {
	al.logger.ErrorContext(ctx, "tool_error",
		"session_id", entry.SessionID,
		"tool_name", entry.ToolName,
		"error", entry.ErrorMsg,
	)
}
