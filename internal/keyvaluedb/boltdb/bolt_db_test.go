package boltdb

import (
	"path/filepath"
	"testing"

	"github.com/ramkit/ramkit/internal/keyvaluedb"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name string
	Data []byte
}

func initBoltDB(t *testing.T) *BoltDB {
	t.Helper()
	db, err := New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, db.Close()) })
	return db
}

func TestBoltDB_WriteReadDelete(t *testing.T) {
	db := initBoltDB(t)
	empty, err := keyvaluedb.IsEmpty(db)
	require.NoError(t, err)
	require.True(t, empty)

	rec := &record{Name: "r", Data: []byte{0xca, 0xfe}}
	require.NoError(t, db.Write([]byte("k"), rec))
	var back record
	found, err := db.Read([]byte("k"), &back)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, rec, &back)

	require.NoError(t, db.Delete([]byte("k")))
	found, err = db.Read([]byte("k"), &back)
	require.NoError(t, err)
	require.False(t, found)

	require.Error(t, db.Write(nil, rec))
	_, err = db.Read([]byte("k"), nil)
	require.Error(t, err)
}

func TestBoltDB_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	db, err := New(path)
	require.NoError(t, err)
	require.Equal(t, path, db.Path())
	require.NoError(t, db.Write([]byte("k"), uint64(42)))
	require.NoError(t, db.Close())

	db, err = New(path)
	require.NoError(t, err)
	defer db.Close()
	var v uint64
	found, err := db.Read([]byte("k"), &v)
	require.NoError(t, err)
	require.True(t, found)
	require.EqualValues(t, 42, v)
}

func TestBoltDB_Iterators(t *testing.T) {
	db := initBoltDB(t)
	for _, k := range []string{"img/b", "img/a", "meta/a"} {
		require.NoError(t, db.Write([]byte(k), k))
	}
	it := db.Find([]byte("img/"))
	var keys []string
	for ; it.Valid(); it.Next() {
		keys = append(keys, string(it.Key()))
	}
	require.NoError(t, it.Close())
	require.Equal(t, []string{"img/a", "img/b", "meta/a"}, keys)
	require.Equal(t, []byte("img/a"), db.First().Key())
	require.Equal(t, []byte("meta/a"), db.Last().Key())
}

func TestBoltDB_Tx(t *testing.T) {
	db := initBoltDB(t)

	tx, err := db.StartTx()
	require.NoError(t, err)
	require.NoError(t, tx.Write([]byte("a"), 1))
	require.NoError(t, tx.Rollback())
	var v int
	found, err := db.Read([]byte("a"), &v)
	require.NoError(t, err)
	require.False(t, found)

	tx, err = db.StartTx()
	require.NoError(t, err)
	require.NoError(t, tx.Write([]byte("a"), 1))
	found, err = tx.Read([]byte("a"), &v)
	require.NoError(t, err)
	require.True(t, found)
	require.NoError(t, tx.Delete([]byte("b")))
	require.NoError(t, tx.Commit())

	found, err = db.Read([]byte("a"), &v)
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, 1, v)
}
