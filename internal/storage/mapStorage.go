package storage

import "sync"

// MapStorage is a thread-safe key-value storage guarded by a single mutex.
type MapStorage struct {
	data     map[string]*Entity  // key - entity
	volatile map[string]struct{} // keys with a TTL
	mu       sync.Mutex
}

// NewMapStorage creates a new instance of MapStorage.
func NewMapStorage() *MapStorage {
	return &MapStorage{
		data:     make(map[string]*Entity),
		volatile: make(map[string]struct{}),
	}
}

// Do runs fn while holding the storage lock
func (m *MapStorage) Do(_ string, fn func(tx Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(mapTx{m: m})
}

// DeleteExpired randomly selects up to limit keys with a TTL and deletes them if expired
func (m *MapStorage) DeleteExpired(limit int, now int64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.volatile) == 0 || limit <= 0 {
		return 0.0
	}

	checked := 0
	expired := 0

	// go map iteration is randomized
	for key := range m.volatile {
		checked++
		if e, ok := m.data[key]; !ok || e.Expired(now) {
			delete(m.data, key)
			delete(m.volatile, key)
			expired++
		}

		if checked >= limit {
			break
		}
	}

	return float64(expired) / float64(checked)
}

// Len returns the number of live keys
func (m *MapStorage) Len(now int64) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.volatile) == 0 {
		return len(m.data)
	}

	n := 0
	for _, e := range m.data {
		if !e.Expired(now) {
			n++
		}
	}
	return n
}

// Flush drops all keys
func (m *MapStorage) Flush() {
	m.mu.Lock()
	m.data = make(map[string]*Entity)
	m.volatile = make(map[string]struct{})
	m.mu.Unlock()
}

// mapTx accesses the maps directly; the caller holds m.mu
type mapTx struct {
	m *MapStorage
}

func (t mapTx) Get(key string) (*Entity, bool) {
	e, ok := t.m.data[key]
	return e, ok
}

func (t mapTx) Set(key string, e *Entity) {
	t.m.data[key] = e
	if e.ExpireAt != 0 {
		t.m.volatile[key] = struct{}{}
	} else {
		delete(t.m.volatile, key)
	}
}

func (t mapTx) Delete(key string) bool {
	if _, ok := t.m.data[key]; !ok {
		return false
	}
	delete(t.m.data, key)
	delete(t.m.volatile, key)
	return true
}

func (t mapTx) Exists(key string) bool {
	_, ok := t.m.data[key]
	return ok
}
