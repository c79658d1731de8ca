package databricks

import (
	"context"
	"fmt"
	"net/url"
)

// SecretScope is a namespace for secrets.
type SecretScope struct {
	Name        string `json:"name"`
	BackendType string `json:"backend_type,omitempty"`
}

// SecretMetadata describes one secret without exposing its value.
type SecretMetadata struct {
	Key                  string `json:"key"`
	LastUpdatedTimestamp int64  `json:"last_updated_timestamp,omitempty"`
}

// ListSecretScopes returns all secret scopes.
func (c *Client) ListSecretScopes(ctx context.Context) ([]SecretScope, error) {
	var resp struct {
		Scopes []SecretScope `json:"scopes"`
	}
	if err := c.get(ctx, "/api/2.0/secrets/scopes/list", nil, &resp); err != nil {
		return nil, fmt.Errorf("list secret scopes: %w", err)
	}
	return resp.Scopes, nil
}

// CreateSecretScope creates a Databricks-backed secret scope.
func (c *Client) CreateSecretScope(ctx context.Context, scope string) error {
	body := map[string]string{"scope": scope}
	if err := c.post(ctx, "/api/2.0/secrets/scopes/create", body, nil); err != nil {
		return fmt.Errorf("create secret scope %s: %w", scope, err)
	}
	return nil
}

// ListSecrets returns the secret keys in a scope. Values are never returned
// by the API.
func (c *Client) ListSecrets(ctx context.Context, scope string) ([]SecretMetadata, error) {
	query := url.Values{"scope": {scope}}
	var resp struct {
		Secrets []SecretMetadata `json:"secrets"`
	}
	if err := c.get(ctx, "/api/2.0/secrets/list", query, &resp); err != nil {
		return nil, fmt.Errorf("list secrets in %s: %w", scope, err)
	}
	return resp.Secrets, nil
}

// PutSecret writes a string secret, overwriting any existing value for key.
func (c *Client) PutSecret(ctx context.Context, scope, key, value string) error {
	body := map[string]string{
		"scope":        scope,
		"key":          key,
		"string_value": value,
	}
	if err := c.post(ctx, "/api/2.0/secrets/put", body, nil); err != nil {
		return fmt.Errorf("put secret %s/%s: %w", scope, key, err)
	}
	return nil
}

// DeleteSecret removes a secret.
func (c *Client) DeleteSecret(ctx context.Context, scope, key string) error {
	body := map[string]string{
		"scope": scope,
		"key":   key,
	}
	if err := c.post(ctx, "/api/2.0/secrets/delete", body, nil); err != nil {
		return fmt.Errorf("delete secret %s/%s: %w", scope, key, err)
	}
	return nil
}
