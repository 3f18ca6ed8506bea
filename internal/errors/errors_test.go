package errors

import (
	goerrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorType_Error(t *testing.T) {
	expectedMsg := "invalid something"
	errorType := newErrorType(expectedMsg)

	assert.Equal(t, expectedMsg, errorType.Error())
}

func TestErrorType_FindErrorType(t *testing.T) {
	wrappedErr := Wrap(Wrap(ErrOutOfRange, "first"), "second")
	assert.Equal(t, ErrOutOfRange, FindErrorType(wrappedErr))
	assert.Equal(t, "second: first: out of range", wrappedErr.Error())

	emptyErr := Wrap(New("non-typed cause error"), "real error")
	assert.Nil(t, FindErrorType(emptyErr))
}

func TestWrap_Nil(t *testing.T) {
	require.NoError(t, Wrap(nil, "nothing"))
	require.NoError(t, Wrapf(nil, "nothing %d", 1))
}

func TestWrapf_IsCompatible(t *testing.T) {
	err := Wrapf(ErrInvalidArgument, "offset %d", -1)
	require.ErrorIs(t, err, ErrInvalidArgument)
	require.NotErrorIs(t, err, ErrOutOfRange)
	require.EqualError(t, err, "offset -1: invalid argument")

	err = fmt.Errorf("outer: %w", err)
	require.True(t, goerrors.Is(err, ErrInvalidArgument))
	require.Equal(t, ErrInvalidArgument, FindErrorType(err))
}

func TestErrorf_HonoursWrapVerb(t *testing.T) {
	err := Errorf("parsing %q: %w", "x", ErrParse)
	require.ErrorIs(t, err, ErrParse)
	require.Equal(t, ErrParse, FindErrorType(err))
}
