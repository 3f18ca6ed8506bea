package memory

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuffer_PositionAndLimit(t *testing.T) {
	b := NewBuffer(8)
	require.Equal(t, 8, b.Capacity())
	require.Equal(t, 8, b.Limit())
	require.Equal(t, 8, b.Remaining())

	require.NoError(t, b.put([]byte("abc")))
	require.Equal(t, 3, b.Position())
	require.Equal(t, []byte("abc"), b.Written())

	b.Flip()
	require.Equal(t, 0, b.Position())
	require.Equal(t, 3, b.Limit())
	require.Equal(t, []byte("abc"), b.Bytes())

	b.skip(1)
	require.Equal(t, []byte("bc"), b.Bytes())
	b.Rewind()
	require.Equal(t, 3, b.Remaining())

	b.Clear()
	require.Equal(t, 8, b.Limit())
	require.Equal(t, 0, b.Position())
}

func TestBuffer_Overflow(t *testing.T) {
	b := NewBuffer(4)
	require.NoError(t, b.put([]byte("ab")))
	require.ErrorIs(t, b.put([]byte("cde")), ErrInvalidArgument)
	require.Equal(t, 2, b.Position())
	require.Equal(t, []byte("ab"), b.Written())
}

func TestBuffer_SetPositionAndLimit(t *testing.T) {
	b := WrapBuffer(make([]byte, 6))
	require.ErrorIs(t, b.SetPosition(7), ErrInvalidArgument)
	require.ErrorIs(t, b.SetPosition(-1), ErrInvalidArgument)
	require.ErrorIs(t, b.SetLimit(7), ErrInvalidArgument)

	require.NoError(t, b.SetPosition(5))
	require.NoError(t, b.SetLimit(2))
	require.Equal(t, 2, b.Position())
	require.Zero(t, b.Remaining())

	require.Equal(t, 0, NewBuffer(-3).Capacity())
}
