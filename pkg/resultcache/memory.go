package resultcache

import "sync"

// defaultMemoryBudget bounds the in-memory tier (compressed bytes).
const defaultMemoryBudget = 32 << 20

// memoryTier is a size-bounded LRU of encoded entries sitting in front of the
// disk store. Long-running modes (the language server) hit it on every keystroke.
type memoryTier struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	head    *memoryEntry // most recently used
	tail    *memoryEntry // least recently used
	budget  int
	size    int
}

type memoryEntry struct {
	key  string
	data []byte
	prev *memoryEntry
	next *memoryEntry
}

func newMemoryTier(budget int) *memoryTier {
	if budget <= 0 {
		budget = defaultMemoryBudget
	}

	return &memoryTier{entries: make(map[string]*memoryEntry), budget: budget}
}

func (m *memoryTier) get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false
	}

	m.moveToFront(entry)

	return entry.data, true
}

func (m *memoryTier) put(key string, data []byte) {
	if len(data) > m.budget {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.entries[key]; ok {
		m.size += len(data) - len(entry.data)
		entry.data = data
		m.moveToFront(entry)
	} else {
		entry = &memoryEntry{key: key, data: data}
		m.entries[key] = entry
		m.size += len(data)
		m.pushFront(entry)
	}

	for m.size > m.budget && m.tail != nil {
		victim := m.tail
		m.unlink(victim)
		delete(m.entries, victim.key)
		m.size -= len(victim.data)
	}
}

func (m *memoryTier) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}

func (m *memoryTier) moveToFront(entry *memoryEntry) {
	if entry == m.head {
		return
	}

	m.unlink(entry)
	m.pushFront(entry)
}

func (m *memoryTier) pushFront(entry *memoryEntry) {
	entry.prev = nil
	entry.next = m.head

	if m.head != nil {
		m.head.prev = entry
	}

	m.head = entry

	if m.tail == nil {
		m.tail = entry
	}
}

func (m *memoryTier) unlink(entry *memoryEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		m.head = entry.next
	}

	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		m.tail = entry.prev
	}

	entry.prev, entry.next = nil, nil
}
