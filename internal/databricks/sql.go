package databricks

import (
	"context"
	"fmt"
)

// Warehouse is a SQL warehouse as returned by the warehouses API.
type Warehouse struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	State            string `json:"state"`
	ClusterSize      string `json:"cluster_size,omitempty"`
	AutoStopMins     int    `json:"auto_stop_mins,omitempty"`
	NumClusters      int    `json:"num_clusters,omitempty"`
	EnableServerless bool   `json:"enable_serverless_compute,omitempty"`
}

// StatementStatus reports the execution state of a SQL statement.
type StatementStatus struct {
	State string `json:"state"`
	Error *struct {
		ErrorCode string `json:"error_code,omitempty"`
		Message   string `json:"message,omitempty"`
	} `json:"error,omitempty"`
}

// ColumnInfo describes one result column.
type ColumnInfo struct {
	Name     string `json:"name"`
	TypeName string `json:"type_name,omitempty"`
	TypeText string `json:"type_text,omitempty"`
	Position int    `json:"position,omitempty"`
}

// StatementResult is a statement execution response, including any inline
// result chunk.
type StatementResult struct {
	StatementID string          `json:"statement_id"`
	Status      StatementStatus `json:"status"`
	Manifest    *struct {
		Schema struct {
			Columns []ColumnInfo `json:"columns"`
		} `json:"schema"`
		TotalRowCount int64 `json:"total_row_count,omitempty"`
	} `json:"manifest,omitempty"`
	Result *struct {
		DataArray [][]string `json:"data_array,omitempty"`
		RowCount  int64      `json:"row_count,omitempty"`
	} `json:"result,omitempty"`
}

// ListWarehouses returns the SQL warehouses in the workspace.
func (c *Client) ListWarehouses(ctx context.Context) ([]Warehouse, error) {
	var resp struct {
		Warehouses []Warehouse `json:"warehouses"`
	}
	if err := c.get(ctx, "/api/2.0/sql/warehouses", nil, &resp); err != nil {
		return nil, fmt.Errorf("list warehouses: %w", err)
	}
	return resp.Warehouses, nil
}

// StartWarehouse starts a stopped warehouse.
func (c *Client) StartWarehouse(ctx context.Context, warehouseID string) error {
	path := "/api/2.0/sql/warehouses/" + warehouseID + "/start"
	if err := c.post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("start warehouse %s: %w", warehouseID, err)
	}
	return nil
}

// StopWarehouse stops a running warehouse.
func (c *Client) StopWarehouse(ctx context.Context, warehouseID string) error {
	path := "/api/2.0/sql/warehouses/" + warehouseID + "/stop"
	if err := c.post(ctx, path, nil, nil); err != nil {
		return fmt.Errorf("stop warehouse %s: %w", warehouseID, err)
	}
	return nil
}

// ExecuteStatement runs a SQL statement on a warehouse, waiting up to
// waitTimeout (e.g. "30s") for inline results before the call returns with
// a pending statement id.
func (c *Client) ExecuteStatement(ctx context.Context, warehouseID, statement, catalog, schema, waitTimeout string) (*StatementResult, error) {
	if waitTimeout == "" {
		waitTimeout = "30s"
	}
	body := map[string]string{
		"warehouse_id": warehouseID,
		"statement":    statement,
		"wait_timeout": waitTimeout,
	}
	if catalog != "" {
		body["catalog"] = catalog
	}
	if schema != "" {
		body["schema"] = schema
	}
	var result StatementResult
	if err := c.post(ctx, "/api/2.0/sql/statements", body, &result); err != nil {
		return nil, fmt.Errorf("execute statement: %w", err)
	}
	return &result, nil
}

// GetStatement fetches the status and results of a previously submitted
// statement.
func (c *Client) GetStatement(ctx context.Context, statementID string) (*StatementResult, error) {
	path := "/api/2.0/sql/statements/" + statementID
	var result StatementResult
	if err := c.get(ctx, path, nil, &result); err != nil {
		return nil, fmt.Errorf("get statement %s: %w", statementID, err)
	}
	return &result, nil
}
