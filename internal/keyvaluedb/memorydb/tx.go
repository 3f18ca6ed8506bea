package memorydb

import (
	"fmt"
	"sync"

	"github.com/ramkit/ramkit/internal/keyvaluedb"
)

// Tx buffers writes and deletes and applies them to the db under its lock on Commit.
// Reads see the buffered changes over the current db contents. Concurrent transactions
// do not isolate each other: the last commit wins per key. A Tx itself may be shared
// between goroutines.
type Tx struct {
	mem     *MemoryDB
	mu      sync.Mutex
	writes  map[string][]byte
	deletes map[string]struct{}
	closed  bool
}

func NewMapTx(m *MemoryDB) (*Tx, error) {
	if m == nil {
		return nil, fmt.Errorf("memory db is nil")
	}
	if m.db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &Tx{
		mem:     m,
		writes:  make(map[string][]byte),
		deletes: make(map[string]struct{}),
	}, nil
}

func (t *Tx) Read(key []byte, v any) (bool, error) {
	if err := keyvaluedb.CheckKeyAndValue(key, v); err != nil {
		return false, err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return false, fmt.Errorf("memdb tx read failed, tx closed")
	}
	k := string(key)
	if _, ok := t.deletes[k]; ok {
		return false, nil
	}
	if data, ok := t.writes[k]; ok {
		return true, t.mem.decoder(data, v)
	}
	return t.mem.Read(key, v)
}

func (t *Tx) Write(key []byte, value any) error {
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return err
	}
	b, err := t.mem.encoder(value)
	if err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return fmt.Errorf("memdb tx write failed, tx closed")
	}
	delete(t.deletes, string(key))
	t.writes[string(key)] = b
	return nil
}

func (t *Tx) Delete(key []byte) error {
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return fmt.Errorf("memdb tx delete failed, tx closed")
	}
	delete(t.writes, string(key))
	t.deletes[string(key)] = struct{}{}
	return nil
}

func (t *Tx) Rollback() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.writes, t.deletes = nil, nil
	return nil
}

func (t *Tx) Commit() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return fmt.Errorf("memdb tx commit failed, tx closed")
	}
	t.mem.lock.Lock()
	defer t.mem.lock.Unlock()
	for k := range t.deletes {
		delete(t.mem.db, k)
	}
	for k, v := range t.writes {
		t.mem.db[k] = v
	}
	t.closed = true
	t.writes, t.deletes = nil, nil
	return nil
}
