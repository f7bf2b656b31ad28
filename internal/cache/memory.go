package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data    []byte
	expires time.Time
}

// Memory — кэш в памяти процесса.
type Memory struct {
	mu     sync.RWMutex
	ttl    time.Duration
	now    func() time.Time
	gens   map[string]uint64
	tables map[string]map[string]memoryEntry
}

// NewMemory создаёт кэш; ttl <= 0 — без истечения.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl:    ttl,
		now:    time.Now,
		gens:   make(map[string]uint64),
		tables: make(map[string]map[string]memoryEntry),
	}
}

func (m *Memory) Generation(_ context.Context, table string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.gens[table], nil
}

func (m *Memory) Get(_ context.Context, table string, gen uint64, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.gens[table] != gen {
		return nil, false, nil
	}
	e, ok := m.tables[table][key]
	if !ok {
		return nil, false, nil
	}
	if !e.expires.IsZero() && m.now().After(e.expires) {
		return nil, false, nil
	}
	return e.data, true, nil
}

func (m *Memory) Set(_ context.Context, table string, gen uint64, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	// Таблицу сбросили после чтения поколения: результат устарел.
	if m.gens[table] != gen {
		return nil
	}

	entries, ok := m.tables[table]
	if !ok {
		entries = make(map[string]memoryEntry)
		m.tables[table] = entries
	}

	e := memoryEntry{data: data}
	if m.ttl > 0 {
		e.expires = m.now().Add(m.ttl)
	}
	entries[key] = e
	return nil
}

func (m *Memory) Invalidate(_ context.Context, tables ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, t := range tables {
		m.gens[t]++
		delete(m.tables, t)
	}
	return nil
}
