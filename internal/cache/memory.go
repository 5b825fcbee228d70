package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process Cache. Values are stored encoded so callers get
// the same copy semantics as with Redis.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

func (m *Memory) GetJSON(_ context.Context, key string, dest any) (bool, error) {
	m.mu.Lock()
	e, ok := m.entries[key]
	if ok && !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.entries, key)
		ok = false
	}
	m.mu.Unlock()

	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(e.data, dest); err != nil {
		return false, fmt.Errorf("decode cached %s: %w", key, err)
	}
	return true, nil
}

// SetJSON stores value; a non-positive ttl never expires.
func (m *Memory) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	e := entry{data: data}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}

	m.mu.Lock()
	m.entries[key] = e
	m.mu.Unlock()
	return nil
}
