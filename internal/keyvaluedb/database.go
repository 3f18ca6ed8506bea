/*
Package keyvaluedb defines the key-value storage the image store persists into.

Values are encoded by the implementation (CBOR in both boltdb and memorydb). Iterators hold
a snapshot of the store and must be closed.
*/
package keyvaluedb

import "github.com/ramkit/ramkit/internal/errors"

type (
	Reader interface {
		// Read decodes the value stored under key into value; false when the key is absent.
		Read(key []byte, value any) (bool, error)
	}

	Writer interface {
		Write(key []byte, value any) error
		// Delete of an absent key is not an error.
		Delete(key []byte) error
	}

	// DBTx starts transactions. A transaction ends with Commit or Rollback; bolt allows only
	// one read-write transaction at a time.
	DBTx interface {
		StartTx() (DBTransaction, error)
	}

	// DBTransaction buffers writes and deletes until Commit.
	DBTransaction interface {
		Reader
		Writer
		Commit() error
		Rollback() error
	}

	// Iterable hands out iterators in binary key order. An iterator over an empty range is
	// not Valid.
	Iterable interface {
		First() Iterator
		Last() Iterator
		// Find positions at the first key >= key.
		Find(key []byte) Iterator
	}

	Iterator interface {
		Next()
		Prev()
		Valid() bool
		// Key is nil when the iterator is not Valid.
		Key() []byte
		Value(value any) error
		// Close may be called more than once.
		Close() error
	}

	KeyValueDB interface {
		Reader
		Writer
		Iterable
		DBTx
	}
)

// IsEmpty reports whether db holds no keys.
func IsEmpty(db KeyValueDB) (bool, error) {
	if db == nil {
		return true, errors.Wrap(errors.ErrNullArgument, "db is nil")
	}
	it := db.First()
	empty := !it.Valid()
	if err := it.Close(); err != nil {
		return empty, errors.Wrap(err, "closing iterator")
	}
	return empty, nil
}
