package memory

import (
	"math"

	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/internal/errors/errstr"
	"github.com/ramkit/ramkit/pkg/datatypes"
)

// MaxRegionSize is the largest backing slice accepted. Indexes are int64 but the backing
// store is addressed with 32-bit signed offsets.
const MaxRegionSize = math.MaxInt32

var _ RichReadWrite = (*BufferBacked)(nil)

/*
BufferBacked is a region over one contiguous, caller supplied slice.

Reads are served by the embedded read-only view, writes mutate the slice in place.
The slice is referenced, not copied, and must not be resized while the region is in use.
*/
type BufferBacked struct {
	*view
}

// New wraps buf without copying it.
func New(buf []byte) (*BufferBacked, error) {
	if buf == nil {
		return nil, errors.Wrap(ErrNullArgument, "region: "+errstr.NilArgument)
	}
	if len(buf) > MaxRegionSize {
		return nil, errors.Wrapf(ErrInvalidArgument, "region of %d bytes exceeds the maximum of %d", len(buf), MaxRegionSize)
	}
	return &BufferBacked{view: newView(buf)}, nil
}

// Allocate creates a zeroed region of size bytes.
func Allocate(size int) (*BufferBacked, error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrInvalidArgument, "%s: %d", errstr.NegativeLength, size)
	}
	return New(make([]byte, size))
}

// View returns the read-only view of the same storage.
func (b *BufferBacked) View() RichReadOnly {
	return b.view
}

func (b *BufferBacked) PutByteAt(index int64, value byte) error {
	w, err := b.window(index, 1)
	if err != nil {
		return err
	}
	w[0] = value
	return nil
}

func (b *BufferBacked) CopyFrom(index int64, src []byte, srcOffset, length int) error {
	if src == nil {
		return errors.Wrap(ErrNullArgument, "source: "+errstr.NilArgument)
	}
	if err := checkArray(srcOffset, length, len(src)); err != nil {
		return err
	}
	w, err := b.window(index, length)
	if err != nil {
		return err
	}
	copy(w, src[srcOffset:srcOffset+length])
	return nil
}

func (b *BufferBacked) CopyAllFrom(index int64, src []byte) error {
	return b.CopyFrom(index, src, 0, len(src))
}

func (b *BufferBacked) SupportsSource(kind SourceKind) bool {
	return supportedSource(kind)
}

/*
CopyFromSource reads from source into the region starting at index:

  - *Buffer: all bytes from the buffer position up to its limit; the position advances.
  - io.Reader: until the region end or the end of the stream.
  - <-chan []byte: one received chunk; a closed channel transfers nothing.

The region has no cursor, so repeated calls with the same index write to the same place.
Buffer and channel transfers that do not fit fail with ErrOutOfRange before the region is
modified.
*/
func (b *BufferBacked) CopyFromSource(index int64, source any) (int64, error) {
	if isNil(source) {
		return 0, errors.Wrap(ErrNullArgument, "source: "+errstr.NilArgument)
	}
	kind := SourceKindOf(source)
	if !b.SupportsSource(kind) {
		log.Debug("Rejected source of type %T", source)
		return 0, errors.Wrapf(ErrUnsupportedSource, "%T", source)
	}
	if err := checkWindow(index, 0, b.Size()); err != nil {
		return 0, err
	}

	if kind == SourceBuffer {
		buf := source.(*Buffer)
		p := buf.Bytes()
		w, err := b.window(index, len(p))
		if err != nil {
			return 0, err
		}
		n := copy(w, p)
		buf.skip(n)
		return int64(n), nil
	}

	n, err := toChannelSource(source).readChunk(b.buf[index:])
	if err != nil {
		return int64(n), errors.Wrapf(err, "reading from %s source", kind)
	}
	return int64(n), nil
}

func (b *BufferBacked) PutUint8At(index int64, value uint16) error {
	if value > math.MaxUint8 {
		return errors.Wrapf(ErrInvalidArgument, "%s: uint8 %d", errstr.ValueOutOfBounds, value)
	}
	return b.PutByteAt(index, byte(value))
}

func (b *BufferBacked) PutInt16At(index int64, value int16) error {
	w, err := b.window(index, 2)
	if err != nil {
		return err
	}
	byteOrder.PutUint16(w, uint16(value))
	return nil
}

func (b *BufferBacked) PutUint16At(index int64, value uint32) error {
	if value > math.MaxUint16 {
		return errors.Wrapf(ErrInvalidArgument, "%s: uint16 %d", errstr.ValueOutOfBounds, value)
	}
	w, err := b.window(index, 2)
	if err != nil {
		return err
	}
	byteOrder.PutUint16(w, uint16(value))
	return nil
}

func (b *BufferBacked) PutInt32At(index int64, value int32) error {
	w, err := b.window(index, 4)
	if err != nil {
		return err
	}
	byteOrder.PutUint32(w, uint32(value))
	return nil
}

func (b *BufferBacked) PutUint32At(index int64, value int64) error {
	if value < 0 || value > math.MaxUint32 {
		return errors.Wrapf(ErrInvalidArgument, "%s: uint32 %d", errstr.ValueOutOfBounds, value)
	}
	w, err := b.window(index, 4)
	if err != nil {
		return err
	}
	byteOrder.PutUint32(w, uint32(value))
	return nil
}

func (b *BufferBacked) PutInt64At(index int64, value int64) error {
	w, err := b.window(index, 8)
	if err != nil {
		return err
	}
	byteOrder.PutUint64(w, uint64(value))
	return nil
}

// PutUint64At stores the raw bit pattern, every pattern is a valid value.
func (b *BufferBacked) PutUint64At(index int64, value datatypes.Unsigned64) error {
	w, err := b.window(index, 8)
	if err != nil {
		return err
	}
	byteOrder.PutUint64(w, value.Uint64())
	return nil
}

func (b *BufferBacked) PutFloat32At(index int64, value float32) error {
	w, err := b.window(index, 4)
	if err != nil {
		return err
	}
	byteOrder.PutUint32(w, math.Float32bits(value))
	return nil
}

func (b *BufferBacked) PutFloat64At(index int64, value float64) error {
	w, err := b.window(index, 8)
	if err != nil {
		return err
	}
	byteOrder.PutUint64(w, math.Float64bits(value))
	return nil
}

func (b *BufferBacked) PutStringAt(index int64, value string) (int, error) {
	w, err := b.window(index, len(value))
	if err != nil {
		return 0, err
	}
	return copy(w, value), nil
}

// PutSubstringAt counts offset and length in characters (runes), not bytes.
func (b *BufferBacked) PutSubstringAt(index int64, value string, offset, length int) (int, error) {
	runes := []rune(value)
	if err := checkArray(offset, length, len(runes)); err != nil {
		return 0, errors.Wrapf(err, "substring of %d characters", len(runes))
	}
	return b.PutStringAt(index, string(runes[offset:offset+length]))
}

func (b *BufferBacked) PutDataAt(index int64, src ReadOnly) error {
	if src == nil {
		return errors.Wrap(ErrNullArgument, "source region: "+errstr.NilArgument)
	}
	if src.Size() > math.MaxInt32 {
		return errors.Wrapf(ErrInvalidArgument, "source region of %d bytes exceeds the maximum of %d", src.Size(), MaxRegionSize)
	}
	return b.PutDataRangeAt(index, src, 0, int(src.Size()))
}

// PutDataRangeAt copies with memmove semantics, so src may alias this region.
func (b *BufferBacked) PutDataRangeAt(index int64, src ReadOnly, offset, length int) error {
	if src == nil {
		return errors.Wrap(ErrNullArgument, "source region: "+errstr.NilArgument)
	}
	if offset < 0 || length < 0 || int64(offset) > src.Size() || int64(length) > src.Size()-int64(offset) {
		return errors.Wrapf(ErrInvalidArgument, "%s: offset %d, length %d, source size %d", errstr.ArrayTooSmall, offset, length, src.Size())
	}
	w, err := b.window(index, length)
	if err != nil {
		return err
	}
	return src.CopyInto(int64(offset), w, 0, length)
}
