package databricks

import (
	"context"
	"fmt"
	"strconv"
)

// RepoInfo is a workspace repo as returned by the repos API.
type RepoInfo struct {
	ID           int64  `json:"id"`
	URL          string `json:"url"`
	Provider     string `json:"provider"`
	Path         string `json:"path"`
	Branch       string `json:"branch,omitempty"`
	HeadCommitID string `json:"head_commit_id,omitempty"`
}

// CreateRepo clones a remote git repository into the workspace.
func (c *Client) CreateRepo(ctx context.Context, gitURL, provider, path string) (*RepoInfo, error) {
	body := map[string]string{
		"url":      gitURL,
		"provider": provider,
	}
	if path != "" {
		body["path"] = path
	}
	var info RepoInfo
	if err := c.post(ctx, "/api/2.0/repos", body, &info); err != nil {
		return nil, fmt.Errorf("create repo: %w", err)
	}
	return &info, nil
}

// UpdateRepo checks out a branch or tag. Exactly one of branch and tag must
// be set; the API rejects both.
func (c *Client) UpdateRepo(ctx context.Context, repoID int64, branch, tag string) (*RepoInfo, error) {
	body := map[string]string{}
	if branch != "" {
		body["branch"] = branch
	}
	if tag != "" {
		body["tag"] = tag
	}
	var info RepoInfo
	path := "/api/2.0/repos/" + strconv.FormatInt(repoID, 10)
	if err := c.patch(ctx, path, body, &info); err != nil {
		return nil, fmt.Errorf("update repo %d: %w", repoID, err)
	}
	return &info, nil
}

// GetRepo returns one repo by id.
func (c *Client) GetRepo(ctx context.Context, repoID int64) (*RepoInfo, error) {
	var info RepoInfo
	path := "/api/2.0/repos/" + strconv.FormatInt(repoID, 10)
	if err := c.get(ctx, path, nil, &info); err != nil {
		return nil, fmt.Errorf("get repo %d: %w", repoID, err)
	}
	return &info, nil
}

// ListRepos returns the repos in the workspace.
func (c *Client) ListRepos(ctx context.Context) ([]RepoInfo, error) {
	var resp struct {
		Repos []RepoInfo `json:"repos"`
	}
	if err := c.get(ctx, "/api/2.0/repos", nil, &resp); err != nil {
		return nil, fmt.Errorf("list repos: %w", err)
	}
	return resp.Repos, nil
}

// DeleteRepo removes a repo from the workspace. The remote repository is
// untouched.
func (c *Client) DeleteRepo(ctx context.Context, repoID int64) error {
	path := "/api/2.0/repos/" + strconv.FormatInt(repoID, 10)
	if err := c.delete(ctx, path, nil); err != nil {
		return fmt.Errorf("delete repo %d: %w", repoID, err)
	}
	return nil
}
