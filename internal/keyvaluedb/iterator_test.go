package keyvaluedb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestIterator() *SnapshotIterator {
	keys := [][]byte{[]byte("c"), []byte("a"), []byte("b")}
	values := [][]byte{[]byte("3"), []byte("1"), []byte("2")}
	return NewSnapshotIterator(keys, values, json.Unmarshal)
}

func TestSnapshotIterator_Forward(t *testing.T) {
	it := newTestIterator()
	require.False(t, it.Valid())
	it.SeekFirst()

	var got []string
	var sum int
	for ; it.Valid(); it.Next() {
		got = append(got, string(it.Key()))
		var v int
		require.NoError(t, it.Value(&v))
		sum += v
	}
	require.Equal(t, []string{"a", "b", "c"}, got)
	require.Equal(t, 6, sum)
	require.Nil(t, it.Key())
	require.Error(t, it.Value(new(int)))
	require.NoError(t, it.Close())
}

func TestSnapshotIterator_Backward(t *testing.T) {
	it := newTestIterator()
	it.SeekLast()
	var got []string
	for ; it.Valid(); it.Prev() {
		got = append(got, string(it.Key()))
	}
	require.Equal(t, []string{"c", "b", "a"}, got)
}

func TestSnapshotIterator_Seek(t *testing.T) {
	it := newTestIterator()
	it.Seek([]byte("bb"))
	require.Equal(t, []byte("c"), it.Key())
	it.Seek([]byte("b"))
	require.Equal(t, []byte("b"), it.Key())
	it.Seek([]byte("d"))
	require.False(t, it.Valid())

	empty := NewSnapshotIterator(nil, nil, json.Unmarshal)
	empty.SeekFirst()
	require.False(t, empty.Valid())
}

func TestCheckKeyAndValue(t *testing.T) {
	var nilPtr *int
	require.Error(t, CheckKeyAndValue(nil, 1))
	require.Error(t, CheckKeyAndValue([]byte("k"), nil))
	require.Error(t, CheckKeyAndValue([]byte("k"), nilPtr))
	require.NoError(t, CheckKeyAndValue([]byte("k"), 1))
}
