package tools_test

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dbx-labs/databricks-mcp/internal/tools"
)

func TestRegistryRegisterAndLookup(t *testing.T) {
	r := tools.NewRegistry(nil)

	called := false
	r.Register("list_clusters", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		called = true
		return mcp.NewToolResultText("ok"), nil
	})

	h, err := r.Handler("list_clusters")
	if err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	if _, err := h(context.Background(), mcp.CallToolRequest{}); err != nil {
		t.Fatalf("handler error = %v", err)
	}
	if !called {
		t.Error("registered handler was not invoked")
	}
}

func TestRegistryUnknownTool(t *testing.T) {
	r := tools.NewRegistry(nil)
	if _, err := r.Handler("no_such_tool"); err == nil {
		t.Error("Handler() returned nil error for unknown tool")
	}
}

func TestRegistrySeededHandlers(t *testing.T) {
	seed := map[string]tools.HandlerFunc{
		"a": func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("a"), nil
		},
		"b": func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("b"), nil
		},
	}
	r := tools.NewRegistry(seed)

	if len(r.All()) != 2 {
		t.Errorf("All() returned %d handlers, want 2", len(r.All()))
	}
	if _, err := r.Handler("a"); err != nil {
		t.Errorf("seeded handler missing: %v", err)
	}
}

func TestRegistryReplace(t *testing.T) {
	r := tools.NewRegistry(nil)

	r.Register("x", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("first"), nil
	})
	r.Register("x", func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText("second"), nil
	})

	h, err := r.Handler("x")
	if err != nil {
		t.Fatalf("Handler() error = %v", err)
	}
	result, err := h(context.Background(), mcp.CallToolRequest{})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok || text.Text != "second" {
		t.Errorf("handler result = %#v, want second", result.Content[0])
	}
}
