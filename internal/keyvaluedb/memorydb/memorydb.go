package memorydb

import (
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"github.com/ramkit/ramkit/internal/keyvaluedb"
)

type (
	EncodeFn func(v any) ([]byte, error)

	MemoryDB struct {
		db      map[string][]byte
		encoder EncodeFn
		decoder keyvaluedb.DecodeFn
		lock    sync.RWMutex
	}
)

// New creates a map backed key value db, values are CBOR encoded like in the bolt implementation.
func New() *MemoryDB {
	return &MemoryDB{
		db:      make(map[string][]byte),
		encoder: cbor.Marshal,
		decoder: cbor.Unmarshal,
	}
}

// Read retrieves the given key if it's present in the key-value store.
func (db *MemoryDB) Read(key []byte, value any) (bool, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()

	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return false, err
	}
	if data, ok := db.db[string(key)]; ok {
		return true, db.decoder(data, value)
	}
	return false, nil
}

// Write inserts the given value into the key-value store.
func (db *MemoryDB) Write(key []byte, value any) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	if err := keyvaluedb.CheckKeyAndValue(key, value); err != nil {
		return err
	}
	b, err := db.encoder(value)
	if err != nil {
		return err
	}
	db.db[string(key)] = b
	return nil
}

// Delete removes the key from the key-value store.
func (db *MemoryDB) Delete(key []byte) error {
	db.lock.Lock()
	defer db.lock.Unlock()
	if err := keyvaluedb.CheckKey(key); err != nil {
		return err
	}
	delete(db.db, string(key))
	return nil
}

func (db *MemoryDB) First() keyvaluedb.Iterator {
	it := db.snapshot()
	it.SeekFirst()
	return it
}

func (db *MemoryDB) Last() keyvaluedb.Iterator {
	it := db.snapshot()
	it.SeekLast()
	return it
}

// Find returns the closest binary search match
func (db *MemoryDB) Find(key []byte) keyvaluedb.Iterator {
	it := db.snapshot()
	it.Seek(key)
	return it
}

func (db *MemoryDB) StartTx() (keyvaluedb.DBTransaction, error) {
	db.lock.RLock()
	defer db.lock.RUnlock()
	tx, err := NewMapTx(db)
	if err != nil {
		return nil, fmt.Errorf("failed to start memory db tx, %w", err)
	}
	return tx, nil
}

func (db *MemoryDB) snapshot() *keyvaluedb.SnapshotIterator {
	db.lock.RLock()
	defer db.lock.RUnlock()
	keys := make([][]byte, 0, len(db.db))
	values := make([][]byte, 0, len(db.db))
	for k, v := range db.db {
		keys = append(keys, []byte(k))
		values = append(values, v)
	}
	return keyvaluedb.NewSnapshotIterator(keys, values, db.decoder)
}
