package session

import "sync"

// Registry maps session ids to their contexts. Safe for concurrent use from
// calls arriving for different sessions; concurrent get-or-create for the
// same unseen id resolves to a single stored context.
type Registry struct {
	mu       sync.RWMutex
	contexts map[string]*Context
}

// NewRegistry creates an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		contexts: make(map[string]*Context),
	}
}

// GetOrCreate returns the context for sessionID, creating a default-initialized
// one if none exists. An empty id falls back to DefaultSessionID. Never fails.
func (r *Registry) GetOrCreate(sessionID string) *Context {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	r.mu.RLock()
	ctx, ok := r.contexts[sessionID]
	r.mu.RUnlock()
	if ok {
		return ctx
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	// Re-check under the write lock so concurrent creators all receive the
	// single winning instance.
	if ctx, ok := r.contexts[sessionID]; ok {
		return ctx
	}
	ctx = newContext(sessionID)
	r.contexts[sessionID] = ctx
	return ctx
}

// Get returns the context for sessionID without creating one.
func (r *Registry) Get(sessionID string) (*Context, bool) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	ctx, ok := r.contexts[sessionID]
	return ctx, ok
}

// Clear removes the context for sessionID. Clearing an absent id is a no-op.
func (r *Registry) Clear(sessionID string) {
	if sessionID == "" {
		sessionID = DefaultSessionID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.contexts, sessionID)
}

// Count returns the number of active session contexts.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.contexts)
}
