package databricks

import (
	"context"
	"fmt"
	"net/url"
)

// CatalogInfo is a Unity Catalog catalog.
type CatalogInfo struct {
	Name    string `json:"name"`
	Comment string `json:"comment,omitempty"`
	Owner   string `json:"owner,omitempty"`
}

// SchemaInfo is a schema inside a catalog.
type SchemaInfo struct {
	Name        string `json:"name"`
	CatalogName string `json:"catalog_name"`
	FullName    string `json:"full_name,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

// TableColumn describes one column of a table.
type TableColumn struct {
	Name     string `json:"name"`
	TypeName string `json:"type_name,omitempty"`
	TypeText string `json:"type_text,omitempty"`
	Nullable bool   `json:"nullable,omitempty"`
	Comment  string `json:"comment,omitempty"`
}

// TableInfo is a table inside a schema.
type TableInfo struct {
	Name        string        `json:"name"`
	CatalogName string        `json:"catalog_name"`
	SchemaName  string        `json:"schema_name"`
	FullName    string        `json:"full_name,omitempty"`
	TableType   string        `json:"table_type,omitempty"`
	Comment     string        `json:"comment,omitempty"`
	Columns     []TableColumn `json:"columns,omitempty"`
}

// VolumeInfo is a Unity Catalog volume.
type VolumeInfo struct {
	Name        string `json:"name"`
	CatalogName string `json:"catalog_name"`
	SchemaName  string `json:"schema_name"`
	FullName    string `json:"full_name,omitempty"`
	VolumeType  string `json:"volume_type,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

// ListCatalogs returns all catalogs visible to the token.
func (c *Client) ListCatalogs(ctx context.Context) ([]CatalogInfo, error) {
	var resp struct {
		Catalogs []CatalogInfo `json:"catalogs"`
	}
	if err := c.get(ctx, "/api/2.1/unity-catalog/catalogs", nil, &resp); err != nil {
		return nil, fmt.Errorf("list catalogs: %w", err)
	}
	return resp.Catalogs, nil
}

// ListSchemas returns the schemas of one catalog.
func (c *Client) ListSchemas(ctx context.Context, catalogName string) ([]SchemaInfo, error) {
	query := url.Values{"catalog_name": {catalogName}}
	var resp struct {
		Schemas []SchemaInfo `json:"schemas"`
	}
	if err := c.get(ctx, "/api/2.1/unity-catalog/schemas", query, &resp); err != nil {
		return nil, fmt.Errorf("list schemas in %s: %w", catalogName, err)
	}
	return resp.Schemas, nil
}

// ListTables returns the tables of one schema.
func (c *Client) ListTables(ctx context.Context, catalogName, schemaName string) ([]TableInfo, error) {
	query := url.Values{
		"catalog_name": {catalogName},
		"schema_name":  {schemaName},
	}
	var resp struct {
		Tables []TableInfo `json:"tables"`
	}
	if err := c.get(ctx, "/api/2.1/unity-catalog/tables", query, &resp); err != nil {
		return nil, fmt.Errorf("list tables in %s.%s: %w", catalogName, schemaName, err)
	}
	return resp.Tables, nil
}

// GetTable returns one table by its three-part name, including columns.
func (c *Client) GetTable(ctx context.Context, fullName string) (*TableInfo, error) {
	var table TableInfo
	if err := c.get(ctx, "/api/2.1/unity-catalog/tables/"+url.PathEscape(fullName), nil, &table); err != nil {
		return nil, fmt.Errorf("get table %s: %w", fullName, err)
	}
	return &table, nil
}

// ListVolumes returns the volumes of one schema.
func (c *Client) ListVolumes(ctx context.Context, catalogName, schemaName string) ([]VolumeInfo, error) {
	query := url.Values{
		"catalog_name": {catalogName},
		"schema_name":  {schemaName},
	}
	var resp struct {
		Volumes []VolumeInfo `json:"volumes"`
	}
	if err := c.get(ctx, "/api/2.1/unity-catalog/volumes", query, &resp); err != nil {
		return nil, fmt.Errorf("list volumes in %s.%s: %w", catalogName, schemaName, err)
	}
	return resp.Volumes, nil
}

// CreateVolume creates a managed volume in the given schema.
func (c *Client) CreateVolume(ctx context.Context, catalogName, schemaName, name, volumeType string) (*VolumeInfo, error) {
	if volumeType == "" {
		volumeType = "MANAGED"
	}
	body := map[string]string{
		"catalog_name": catalogName,
		"schema_name":  schemaName,
		"name":         name,
		"volume_type":  volumeType,
	}
	var info VolumeInfo
	if err := c.post(ctx, "/api/2.1/unity-catalog/volumes", body, &info); err != nil {
		return nil, fmt.Errorf("create volume %s.%s.%s: %w", catalogName, schemaName, name, err)
	}
	return &info, nil
}
