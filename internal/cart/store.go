package cart

import (
	"context"
	"encoding/json"
	"sync"
)

// Store owns the persisted cart slot: one serialized value per session.
//
// Load fails soft: an absent slot or an unparsable payload yields an empty
// cart with no error, because only this system ever writes the slot.
// Infrastructure failures do propagate. Save replaces the slot wholesale;
// there are no partial writes and no merge with concurrent writers, so two
// sessions sharing a slot race last-writer-wins.
type Store interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, cart Cart) error
	Clear(ctx context.Context, sessionID string) error
}

func decodeSlot(raw string) Cart {
	var cart Cart
	if err := json.Unmarshal([]byte(raw), &cart); err != nil {
		return Cart{}
	}
	if cart == nil {
		return Cart{}
	}
	return cart
}

func encodeSlot(cart Cart) (string, error) {
	if cart == nil {
		cart = Cart{}
	}
	data, err := json.Marshal(cart)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// MemoryStore keeps serialized slots in a map. It backs tests and local runs
// without Redis, going through the same wire format as the real store.
type MemoryStore struct {
	mu    sync.Mutex
	slots map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: map[string]string{}}
}

func (m *MemoryStore) Load(_ context.Context, sessionID string) (Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.slots[sessionID]
	if !ok {
		return Cart{}, nil
	}
	return decodeSlot(raw), nil
}

func (m *MemoryStore) Save(_ context.Context, sessionID string, cart Cart) error {
	raw, err := encodeSlot(cart)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[sessionID] = raw
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.slots, sessionID)
	return nil
}

// HasSlot reports whether a slot exists at all, distinguishing an absent slot
// from a saved empty cart.
func (m *MemoryStore) HasSlot(sessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.slots[sessionID]
	return ok
}

// Corrupt overwrites a slot with unparsable text. Test hook.
func (m *MemoryStore) Corrupt(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slots[sessionID] = "{not json"
}
