package repo

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/cartchat-core-poc/server/internal/assistant/model"
)

// MemorySessionStore keeps session state in-process. States are stored as
// JSON so callers get the same copy semantics as the Redis store.
type MemorySessionStore struct {
	mu     sync.RWMutex
	states map[string][]byte
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{states: make(map[string][]byte)}
}

func (m *MemorySessionStore) Get(ctx context.Context, sessionID string) (*model.ConversationState, error) {
	m.mu.RLock()
	raw, ok := m.states[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	var state model.ConversationState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (m *MemorySessionStore) Set(ctx context.Context, state *model.ConversationState) error {
	b, err := json.Marshal(state)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.states[state.SessionID] = b
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	delete(m.states, sessionID)
	m.mu.Unlock()
	return nil
}

var _ model.SessionStore = (*MemorySessionStore)(nil)
