package cache

import (
	"context"
	"sync"
)

// Memory is the default in-process KV backend. A plain locked map rather
// than an evicting cache: coherence requires that entries reflect the last
// committed write or be absent, so nothing may be dropped behind the
// protocol's back.
type Memory struct {
	mu sync.RWMutex
	m  map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{m: make(map[string][]byte)}
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	val, ok := c.m[key]
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the cached bytes.
	out := make([]byte, len(val))
	copy(out, val)
	return out, true, nil
}

func (c *Memory) Set(_ context.Context, key string, val []byte) error {
	cp := make([]byte, len(val))
	copy(cp, val)
	c.mu.Lock()
	c.m[key] = cp
	c.mu.Unlock()
	return nil
}

func (c *Memory) Del(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
	return nil
}
