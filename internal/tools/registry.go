// Package tools provides the handler registry that maps MCP tool names to
// their implementations.
package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// HandlerFunc is a function that handles a tool call
type HandlerFunc func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error)

// Registry maps tool names to handler functions
type Registry struct {
	handlers map[string]HandlerFunc
}

// NewRegistry creates a registry seeded with the given handlers
func NewRegistry(initial map[string]HandlerFunc) *Registry {
	r := &Registry{
		handlers: make(map[string]HandlerFunc),
	}
	for k, v := range initial {
		r.handlers[k] = v
	}
	return r
}

// Register adds or replaces a handler for a tool name
func (r *Registry) Register(toolName string, handler HandlerFunc) {
	r.handlers[toolName] = handler
}

// Handler returns the handler function for a given tool name
func (r *Registry) Handler(toolName string) (HandlerFunc, error) {
	h, ok := r.handlers[toolName]
	if !ok {
		return nil, fmt.Errorf("no handler registered for tool: %s", toolName)
	}
	return h, nil
}

// All returns a shallow copy of the registered handlers
func (r *Registry) All() map[string]HandlerFunc {
	out := make(map[string]HandlerFunc, len(r.handlers))
	for k, v := range r.handlers {
		out[k] = v
	}
	return out
}
