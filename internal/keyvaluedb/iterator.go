package keyvaluedb

import (
	"bytes"
	"fmt"
	"sort"
)

type DecodeFn func(data []byte, v any) error

// SnapshotIterator iterates over a sorted copy of key/value pairs taken when it was created,
// so it holds no locks or transactions of the underlying store.
type SnapshotIterator struct {
	keys    [][]byte
	values  [][]byte
	decoder DecodeFn
	index   int
}

// NewSnapshotIterator sorts the pairs by key. The iterator starts invalid, position it
// with SeekFirst, SeekLast or Seek.
func NewSnapshotIterator(keys, values [][]byte, d DecodeFn) *SnapshotIterator {
	idx := make([]int, len(keys))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return bytes.Compare(keys[idx[i]], keys[idx[j]]) < 0 })
	it := &SnapshotIterator{
		keys:    make([][]byte, len(keys)),
		values:  make([][]byte, len(keys)),
		decoder: d,
		index:   -1,
	}
	for i, k := range idx {
		it.keys[i] = keys[k]
		it.values[i] = values[k]
	}
	return it
}

func (it *SnapshotIterator) Close() error {
	return nil
}

func (it *SnapshotIterator) Next() {
	if !it.Valid() {
		return
	}
	it.index++
	if it.index >= len(it.keys) {
		it.index = -1
	}
}

func (it *SnapshotIterator) Prev() {
	if !it.Valid() {
		return
	}
	it.index--
}

func (it *SnapshotIterator) Valid() bool {
	return it.index >= 0
}

func (it *SnapshotIterator) Key() []byte {
	if !it.Valid() {
		return nil
	}
	return it.keys[it.index]
}

func (it *SnapshotIterator) Value(v any) error {
	if !it.Valid() {
		return fmt.Errorf("iterator invalid")
	}
	return it.decoder(it.values[it.index], v)
}

func (it *SnapshotIterator) SeekFirst() {
	if len(it.keys) > 0 {
		it.index = 0
	}
}

func (it *SnapshotIterator) SeekLast() {
	if len(it.keys) > 0 {
		it.index = len(it.keys) - 1
	}
}

// Seek moves to the first key that is equal to or greater than key.
func (it *SnapshotIterator) Seek(key []byte) {
	it.index = -1
	idx := sort.Search(len(it.keys), func(i int) bool { return bytes.Compare(it.keys[i], key) >= 0 })
	if idx < len(it.keys) {
		it.index = idx
	}
}
