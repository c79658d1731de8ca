package databricks

import (
	"context"
	"fmt"
	"net/url"
)

// ClusterSpec describes a cluster to create.
type ClusterSpec struct {
	ClusterName    string            `json:"cluster_name"`
	SparkVersion   string            `json:"spark_version"`
	NodeTypeID     string            `json:"node_type_id"`
	NumWorkers     int               `json:"num_workers"`
	AutoTermMinute int               `json:"autotermination_minutes,omitempty"`
	SparkConf      map[string]string `json:"spark_conf,omitempty"`
	CustomTags     map[string]string `json:"custom_tags,omitempty"`
}

// ClusterInfo is the cluster state returned by the clusters API.
type ClusterInfo struct {
	ClusterID      string `json:"cluster_id"`
	ClusterName    string `json:"cluster_name"`
	State          string `json:"state"`
	StateMessage   string `json:"state_message,omitempty"`
	SparkVersion   string `json:"spark_version"`
	NodeTypeID     string `json:"node_type_id"`
	NumWorkers     int    `json:"num_workers"`
	AutoTermMinute int    `json:"autotermination_minutes,omitempty"`
	CreatorUser    string `json:"creator_user_name,omitempty"`
}

// CreateCluster provisions a new cluster and returns its id. Provisioning
// continues server-side; poll GetCluster for the state.
func (c *Client) CreateCluster(ctx context.Context, spec ClusterSpec) (string, error) {
	var resp struct {
		ClusterID string `json:"cluster_id"`
	}
	if err := c.post(ctx, "/api/2.1/clusters/create", spec, &resp); err != nil {
		return "", fmt.Errorf("create cluster: %w", err)
	}
	return resp.ClusterID, nil
}

// ListClusters returns all clusters visible to the token.
func (c *Client) ListClusters(ctx context.Context) ([]ClusterInfo, error) {
	var resp struct {
		Clusters []ClusterInfo `json:"clusters"`
	}
	if err := c.get(ctx, "/api/2.1/clusters/list", nil, &resp); err != nil {
		return nil, fmt.Errorf("list clusters: %w", err)
	}
	return resp.Clusters, nil
}

// GetCluster returns the current state of one cluster.
func (c *Client) GetCluster(ctx context.Context, clusterID string) (*ClusterInfo, error) {
	query := url.Values{"cluster_id": {clusterID}}
	var info ClusterInfo
	if err := c.get(ctx, "/api/2.1/clusters/get", query, &info); err != nil {
		return nil, fmt.Errorf("get cluster %s: %w", clusterID, err)
	}
	return &info, nil
}

// StartCluster starts a terminated cluster.
func (c *Client) StartCluster(ctx context.Context, clusterID string) error {
	body := map[string]string{"cluster_id": clusterID}
	if err := c.post(ctx, "/api/2.1/clusters/start", body, nil); err != nil {
		return fmt.Errorf("start cluster %s: %w", clusterID, err)
	}
	return nil
}

// TerminateCluster stops a cluster. The cluster configuration is retained
// and the cluster can be restarted.
func (c *Client) TerminateCluster(ctx context.Context, clusterID string) error {
	body := map[string]string{"cluster_id": clusterID}
	if err := c.post(ctx, "/api/2.1/clusters/delete", body, nil); err != nil {
		return fmt.Errorf("terminate cluster %s: %w", clusterID, err)
	}
	return nil
}

// DeleteCluster permanently removes a cluster and its configuration.
func (c *Client) DeleteCluster(ctx context.Context, clusterID string) error {
	body := map[string]string{"cluster_id": clusterID}
	if err := c.post(ctx, "/api/2.1/clusters/permanent-delete", body, nil); err != nil {
		return fmt.Errorf("delete cluster %s: %w", clusterID, err)
	}
	return nil
}
