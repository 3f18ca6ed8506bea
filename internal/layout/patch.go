package layout

import (
	"strconv"

	"github.com/holiman/uint256"
	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/internal/util"
	"github.com/ramkit/ramkit/pkg/datatypes"
	"github.com/ramkit/ramkit/pkg/memory"
)

// Set parses value according to the type of field and writes it into mem. Integers accept
// the 0x prefix, u64 is unsigned decimal. String and bytes values shorter than the field
// are zero padded.
func (l *Layout) Set(mem memory.RichReadWrite, field, value string) error {
	if mem == nil {
		return errors.Wrap(errors.ErrNullArgument, "region is nil")
	}
	f, err := l.Field(field)
	if err != nil {
		return err
	}
	if err := l.Validate(mem.Size()); err != nil {
		return err
	}
	if err := encodeField(mem, f, value); err != nil {
		return errors.Wrapf(err, "setting field %q to %q", f.Name, value)
	}
	return nil
}

func encodeField(mem memory.RichReadWrite, f *FieldSpec, value string) error {
	switch f.Type {
	case U8, U16, U32:
		bits := fixedWidth[f.Type] * 8
		v, err := strconv.ParseUint(value, 0, bits)
		if err != nil {
			return errors.Wrap(errors.ErrParse, err.Error())
		}
		switch f.Type {
		case U8:
			return mem.PutUint8At(f.Offset, uint16(v))
		case U16:
			return mem.PutUint16At(f.Offset, uint32(v))
		default:
			return mem.PutUint32At(f.Offset, int64(v))
		}
	case I16, I32, I64:
		v, err := strconv.ParseInt(value, 0, fixedWidth[f.Type]*8)
		if err != nil {
			return errors.Wrap(errors.ErrParse, err.Error())
		}
		switch f.Type {
		case I16:
			return mem.PutInt16At(f.Offset, int16(v))
		case I32:
			return mem.PutInt32At(f.Offset, int32(v))
		default:
			return mem.PutInt64At(f.Offset, v)
		}
	case U64:
		v, err := datatypes.ParseUnsigned64(value)
		if err != nil {
			return err
		}
		return mem.PutUint64At(f.Offset, v)
	case F32:
		v, err := strconv.ParseFloat(value, 32)
		if err != nil {
			return errors.Wrap(errors.ErrParse, err.Error())
		}
		return mem.PutFloat32At(f.Offset, float32(v))
	case F64:
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return errors.Wrap(errors.ErrParse, err.Error())
		}
		return mem.PutFloat64At(f.Offset, v)
	case String:
		return putPadded(mem, f, []byte(value))
	case Bytes:
		b, err := util.DecodeHex(value)
		if err != nil {
			return errors.Wrap(errors.ErrParse, err.Error())
		}
		return putPadded(mem, f, b)
	}
	_, err := f.Width()
	return err
}

func putPadded(mem memory.RichReadWrite, f *FieldSpec, b []byte) error {
	if len(b) > f.Length {
		return errors.Wrapf(errors.ErrInvalidArgument, "%d bytes do not fit into %d", len(b), f.Length)
	}
	padded := make([]byte, f.Length)
	copy(padded, b)
	return mem.CopyAllFrom(f.Offset, padded)
}

// SumUint64 adds count consecutive big-endian unsigned 64-bit words starting at index.
// The result is exact, 256 bits are enough for any region.
func SumUint64(mem memory.RichReadOnly, index int64, count int) (*uint256.Int, error) {
	if mem == nil {
		return nil, errors.Wrap(errors.ErrNullArgument, "region is nil")
	}
	if count < 0 {
		return nil, errors.Wrapf(errors.ErrInvalidArgument, "negative count %d", count)
	}
	if index < 0 || index > mem.Size() || int64(count) > (mem.Size()-index)/8 {
		return nil, errors.Wrapf(errors.ErrOutOfRange, "%d words at %d exceed region of %d bytes", count, index, mem.Size())
	}
	sum := uint256.NewInt(0)
	for i := 0; i < count; i++ {
		v, err := mem.Uint64At(index + int64(i)*8)
		if err != nil {
			return nil, err
		}
		sum.Add(sum, v.Uint256())
	}
	return sum, nil
}
