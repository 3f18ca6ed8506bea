package memorydb

import (
	"sync"
	"testing"

	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/internal/keyvaluedb"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name string
	Size int64
	Data []byte
}

func isEmpty(t *testing.T, db *MemoryDB) bool {
	empty, err := keyvaluedb.IsEmpty(db)
	require.NoError(t, err)
	return empty
}

func TestMemDB_TestIsEmpty(t *testing.T) {
	db := New()
	require.True(t, isEmpty(t, db))
	require.NoError(t, db.Write([]byte("foo"), "test"))
	require.False(t, isEmpty(t, db))
	empty, err := keyvaluedb.IsEmpty(nil)
	require.ErrorIs(t, err, errors.ErrNullArgument)
	require.True(t, empty)
}

func TestMemDB_WriteAndRead(t *testing.T) {
	db := New()
	rec := &record{Name: "boot", Size: 3, Data: []byte{1, 2, 3}}
	require.NoError(t, db.Write([]byte("image"), rec))

	var back record
	found, err := db.Read([]byte("image"), &back)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, rec, &back)

	found, err = db.Read([]byte("missing"), &back)
	require.NoError(t, err)
	require.False(t, found)

	var wrongType uint64
	found, err = db.Read([]byte("image"), &wrongType)
	require.Error(t, err)
	require.True(t, found)
}

func TestMemDB_InvalidInput(t *testing.T) {
	db := New()
	var rec *record
	require.Error(t, db.Write([]byte("image"), rec))
	require.Error(t, db.Write(nil, 1))
	_, err := db.Read([]byte{}, new(int))
	require.Error(t, err)
	require.Error(t, db.Delete(nil))
	require.Error(t, db.Write([]byte("chan"), make(chan int)))
	require.True(t, isEmpty(t, db))
}

func TestMemDB_DeleteAndIterate(t *testing.T) {
	db := New()
	for _, k := range []string{"b", "a", "c"} {
		require.NoError(t, db.Write([]byte(k), k))
	}
	require.NoError(t, db.Delete([]byte("b")))
	require.NoError(t, db.Delete([]byte("b")))

	it := db.First()
	defer func() { require.NoError(t, it.Close()) }()
	var keys []string
	for ; it.Valid(); it.Next() {
		var v string
		require.NoError(t, it.Value(&v))
		require.Equal(t, string(it.Key()), v)
		keys = append(keys, v)
	}
	require.Equal(t, []string{"a", "c"}, keys)

	require.Equal(t, []byte("c"), db.Last().Key())
	require.Equal(t, []byte("c"), db.Find([]byte("b")).Key())
}

func TestMemDB_Tx(t *testing.T) {
	db := New()
	require.NoError(t, db.Write([]byte("keep"), 1))

	tx, err := db.StartTx()
	require.NoError(t, err)
	require.NoError(t, tx.Write([]byte("new"), 2))
	require.NoError(t, tx.Delete([]byte("keep")))
	var v int
	found, err := tx.Read([]byte("new"), &v)
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, tx.Rollback())
	require.Error(t, tx.Write([]byte("x"), 1))

	found, err = db.Read([]byte("new"), &v)
	require.NoError(t, err)
	require.False(t, found)

	tx, err = db.StartTx()
	require.NoError(t, err)
	require.NoError(t, tx.Write([]byte("new"), 2))
	require.NoError(t, tx.Commit())
	found, err = db.Read([]byte("new"), &v)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 2, v)
	require.Error(t, tx.Commit())
}

func TestMemDB_TxKeepsConcurrentChanges(t *testing.T) {
	db := New()
	tx1, err := db.StartTx()
	require.NoError(t, err)
	tx2, err := db.StartTx()
	require.NoError(t, err)

	require.NoError(t, tx1.Write([]byte("a"), 1))
	require.NoError(t, tx2.Write([]byte("b"), 2))
	// written outside of both transactions after they started
	require.NoError(t, db.Write([]byte("c"), 3))

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, tx := range []keyvaluedb.DBTransaction{tx1, tx2} {
		wg.Add(1)
		go func(tx keyvaluedb.DBTransaction) {
			defer wg.Done()
			errs <- tx.Commit()
		}(tx)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	for key, want := range map[string]int{"a": 1, "b": 2, "c": 3} {
		var v int
		found, err := db.Read([]byte(key), &v)
		require.NoError(t, err)
		require.True(t, found, key)
		require.Equal(t, want, v, key)
	}
}

func TestMemDB_TxReadsThroughPendingChanges(t *testing.T) {
	db := New()
	require.NoError(t, db.Write([]byte("old"), 1))
	tx, err := db.StartTx()
	require.NoError(t, err)

	var v int
	found, err := tx.Read([]byte("old"), &v)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, tx.Delete([]byte("old")))
	found, err = tx.Read([]byte("old"), &v)
	require.NoError(t, err)
	require.False(t, found)
	// not applied before commit
	found, err = db.Read([]byte("old"), &v)
	require.NoError(t, err)
	require.True(t, found)

	require.NoError(t, tx.Write([]byte("old"), 5))
	require.NoError(t, tx.Commit())
	found, err = db.Read([]byte("old"), &v)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 5, v)
}

func TestMemDB_StartTxNil(t *testing.T) {
	db := &MemoryDB{}
	tx, err := db.StartTx()
	require.Error(t, err)
	require.Nil(t, tx)
}
