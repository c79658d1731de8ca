package databricks

import (
	"context"
	"fmt"
	"net/url"
)

// ObjectInfo describes one workspace object (notebook, directory, file).
type ObjectInfo struct {
	Path       string `json:"path"`
	ObjectType string `json:"object_type"`
	ObjectID   int64  `json:"object_id,omitempty"`
	Language   string `json:"language,omitempty"`
}

// ListWorkspace lists the objects directly under path.
func (c *Client) ListWorkspace(ctx context.Context, path string) ([]ObjectInfo, error) {
	query := url.Values{"path": {path}}
	var resp struct {
		Objects []ObjectInfo `json:"objects"`
	}
	if err := c.get(ctx, "/api/2.0/workspace/list", query, &resp); err != nil {
		return nil, fmt.Errorf("list workspace %s: %w", path, err)
	}
	return resp.Objects, nil
}

// ImportNotebook uploads base64-encoded content to path. language is one of
// PYTHON, SQL, SCALA, R and may be empty for formats that carry their own
// (AUTO, DBC, JUPYTER). overwrite replaces an existing object at the same
// path.
func (c *Client) ImportNotebook(ctx context.Context, path, contentB64, language, format string, overwrite bool) error {
	if format == "" {
		format = "SOURCE"
	}
	body := map[string]any{
		"path":      path,
		"content":   contentB64,
		"format":    format,
		"overwrite": overwrite,
	}
	if language != "" {
		body["language"] = language
	}
	if err := c.post(ctx, "/api/2.0/workspace/import", body, nil); err != nil {
		return fmt.Errorf("import notebook %s: %w", path, err)
	}
	return nil
}

// ExportNotebook downloads a notebook and returns its base64-encoded content.
func (c *Client) ExportNotebook(ctx context.Context, path, format string) (string, error) {
	if format == "" {
		format = "SOURCE"
	}
	query := url.Values{
		"path":   {path},
		"format": {format},
	}
	var resp struct {
		Content string `json:"content"`
	}
	if err := c.get(ctx, "/api/2.0/workspace/export", query, &resp); err != nil {
		return "", fmt.Errorf("export notebook %s: %w", path, err)
	}
	return resp.Content, nil
}

// DeleteWorkspaceObject removes an object. recursive is required to delete
// non-empty directories.
func (c *Client) DeleteWorkspaceObject(ctx context.Context, path string, recursive bool) error {
	body := map[string]any{
		"path":      path,
		"recursive": recursive,
	}
	if err := c.post(ctx, "/api/2.0/workspace/delete", body, nil); err != nil {
		return fmt.Errorf("delete workspace object %s: %w", path, err)
	}
	return nil
}

// Mkdirs creates a directory and any missing parents. Creating an existing
// directory succeeds.
func (c *Client) Mkdirs(ctx context.Context, path string) error {
	body := map[string]string{"path": path}
	if err := c.post(ctx, "/api/2.0/workspace/mkdirs", body, nil); err != nil {
		return fmt.Errorf("mkdirs %s: %w", path, err)
	}
	return nil
}
