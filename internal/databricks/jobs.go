package databricks

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// NotebookTask points a job run at a notebook.
type NotebookTask struct {
	NotebookPath   string            `json:"notebook_path"`
	BaseParameters map[string]string `json:"base_parameters,omitempty"`
}

// JobTask is one task inside a job definition.
type JobTask struct {
	TaskKey           string        `json:"task_key"`
	ExistingClusterID string        `json:"existing_cluster_id,omitempty"`
	NotebookTask      *NotebookTask `json:"notebook_task,omitempty"`
}

// JobSettings is the job definition submitted on create.
type JobSettings struct {
	Name  string    `json:"name"`
	Tasks []JobTask `json:"tasks"`
}

// Job is a job as returned by the jobs API.
type Job struct {
	JobID           int64       `json:"job_id"`
	CreatorUserName string      `json:"creator_user_name,omitempty"`
	Settings        JobSettings `json:"settings"`
	CreatedTime     int64       `json:"created_time,omitempty"`
}

// RunState is the lifecycle state of a job run.
type RunState struct {
	LifeCycleState string `json:"life_cycle_state"`
	ResultState    string `json:"result_state,omitempty"`
	StateMessage   string `json:"state_message,omitempty"`
}

// Terminal reports whether the run has finished.
func (s RunState) Terminal() bool {
	switch s.LifeCycleState {
	case "TERMINATED", "SKIPPED", "INTERNAL_ERROR":
		return true
	}
	return false
}

// Run is a job run as returned by the runs API.
type Run struct {
	RunID      int64    `json:"run_id"`
	JobID      int64    `json:"job_id,omitempty"`
	RunName    string   `json:"run_name,omitempty"`
	State      RunState `json:"state"`
	RunPageURL string   `json:"run_page_url,omitempty"`
	StartTime  int64    `json:"start_time,omitempty"`
	EndTime    int64    `json:"end_time,omitempty"`
}

// CreateJob registers a job definition and returns its id.
func (c *Client) CreateJob(ctx context.Context, settings JobSettings) (int64, error) {
	var resp struct {
		JobID int64 `json:"job_id"`
	}
	if err := c.post(ctx, "/api/2.1/jobs/create", settings, &resp); err != nil {
		return 0, fmt.Errorf("create job: %w", err)
	}
	return resp.JobID, nil
}

// RunJobNow triggers an immediate run of an existing job.
func (c *Client) RunJobNow(ctx context.Context, jobID int64, notebookParams map[string]string) (int64, error) {
	body := map[string]any{"job_id": jobID}
	if len(notebookParams) > 0 {
		body["notebook_params"] = notebookParams
	}
	var resp struct {
		RunID int64 `json:"run_id"`
	}
	if err := c.post(ctx, "/api/2.1/jobs/run-now", body, &resp); err != nil {
		return 0, fmt.Errorf("run job %d: %w", jobID, err)
	}
	return resp.RunID, nil
}

// ListJobs returns the jobs visible to the token.
func (c *Client) ListJobs(ctx context.Context) ([]Job, error) {
	var resp struct {
		Jobs []Job `json:"jobs"`
	}
	if err := c.get(ctx, "/api/2.1/jobs/list", nil, &resp); err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return resp.Jobs, nil
}

// GetJob returns one job definition.
func (c *Client) GetJob(ctx context.Context, jobID int64) (*Job, error) {
	query := url.Values{"job_id": {strconv.FormatInt(jobID, 10)}}
	var job Job
	if err := c.get(ctx, "/api/2.1/jobs/get", query, &job); err != nil {
		return nil, fmt.Errorf("get job %d: %w", jobID, err)
	}
	return &job, nil
}

// GetRun returns the state of one run.
func (c *Client) GetRun(ctx context.Context, runID int64) (*Run, error) {
	query := url.Values{"run_id": {strconv.FormatInt(runID, 10)}}
	var run Run
	if err := c.get(ctx, "/api/2.1/jobs/runs/get", query, &run); err != nil {
		return nil, fmt.Errorf("get run %d: %w", runID, err)
	}
	return &run, nil
}

// CancelRun requests cancellation of a run.
func (c *Client) CancelRun(ctx context.Context, runID int64) error {
	body := map[string]int64{"run_id": runID}
	if err := c.post(ctx, "/api/2.1/jobs/runs/cancel", body, nil); err != nil {
		return fmt.Errorf("cancel run %d: %w", runID, err)
	}
	return nil
}

// DeleteJob removes a job definition.
func (c *Client) DeleteJob(ctx context.Context, jobID int64) error {
	body := map[string]int64{"job_id": jobID}
	if err := c.post(ctx, "/api/2.1/jobs/delete", body, nil); err != nil {
		return fmt.Errorf("delete job %d: %w", jobID, err)
	}
	return nil
}

// SubmitRun starts a one-time run outside any job definition and returns
// the run id.
func (c *Client) SubmitRun(ctx context.Context, runName string, tasks []JobTask) (int64, error) {
	body := map[string]any{
		"run_name": runName,
		"tasks":    tasks,
	}
	var resp struct {
		RunID int64 `json:"run_id"`
	}
	if err := c.post(ctx, "/api/2.1/jobs/runs/submit", body, &resp); err != nil {
		return 0, fmt.Errorf("submit run: %w", err)
	}
	return resp.RunID, nil
}
