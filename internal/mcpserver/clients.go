package mcpserver

import (
	"log/slog"
	"sync"

	"github.com/dbx-labs/databricks-mcp/internal/databricks"
)

// clientPool caches one Databricks client per credential pair so transports
// and their connection pools are reused across tool calls.
type clientPool struct {
	mu      sync.Mutex
	clients map[string]*databricks.Client
	logger  *slog.Logger
}

func newClientPool(logger *slog.Logger) *clientPool {
	return &clientPool{
		clients: make(map[string]*databricks.Client),
		logger:  logger,
	}
}

func (p *clientPool) get(creds databricks.Credentials) (*databricks.Client, error) {
	key := creds.Host + "\x00" + creds.Token

	p.mu.Lock()
	defer p.mu.Unlock()

	if client, ok := p.clients[key]; ok {
		return client, nil
	}
	client, err := databricks.NewClient(creds, databricks.WithLogger(p.logger))
	if err != nil {
		return nil, err
	}
	p.clients[key] = client
	return client, nil
}
