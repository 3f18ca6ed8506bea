package memory

import (
	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/internal/errors/errstr"
)

// checkWindow validates [index, index+length) against a region of size bytes.
// The comparison is done as length > size-index so that it can not overflow.
func checkWindow(index int64, length int, size int64) error {
	switch {
	case index < 0:
		return errors.Wrapf(ErrOutOfRange, "%s: %d", errstr.NegativeIndex, index)
	case length < 0:
		return errors.Wrapf(ErrOutOfRange, "%s: %d", errstr.NegativeLength, length)
	case index > size:
		return errors.Wrapf(ErrOutOfRange, "%s: index %d, size %d", errstr.IndexTooLarge, index, size)
	case int64(length) > size-index:
		return errors.Wrapf(ErrOutOfRange, "%s: index %d, length %d, size %d", errstr.WindowTooLarge, index, length, size)
	}
	return nil
}

// checkArray validates [offset, offset+length) against a caller owned slice of size bytes.
func checkArray(offset, length, size int) error {
	switch {
	case offset < 0:
		return errors.Wrapf(ErrInvalidArgument, "%s: %d", errstr.NegativeOffset, offset)
	case length < 0:
		return errors.Wrapf(ErrInvalidArgument, "%s: %d", errstr.NegativeLength, length)
	case offset > size || length > size-offset:
		return errors.Wrapf(ErrInvalidArgument, "%s: offset %d, length %d, array %d", errstr.ArrayTooSmall, offset, length, size)
	}
	return nil
}
