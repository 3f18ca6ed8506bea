package memory

import (
	"encoding/binary"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/internal/errors/errstr"
	"github.com/ramkit/ramkit/internal/logger"
	"github.com/ramkit/ramkit/pkg/datatypes"
)

var (
	log = logger.CreateForPackage()

	byteOrder = binary.BigEndian
)

var _ RichReadOnly = (*view)(nil)

// view is the read-only half of a region. It holds every bounds checked primitive;
// BufferBacked builds its writes on top of it.
type view struct {
	buf []byte
}

func newView(buf []byte) *view {
	return &view{buf: buf[:len(buf):len(buf)]}
}

func (v *view) Size() int64 {
	return int64(len(v.buf))
}

// window returns the aliased bytes [index, index+length) after validating them.
func (v *view) window(index int64, length int) ([]byte, error) {
	if err := checkWindow(index, length, v.Size()); err != nil {
		return nil, err
	}
	return v.buf[index : index+int64(length) : index+int64(length)], nil
}

func (v *view) ByteAt(index int64) (byte, error) {
	w, err := v.window(index, 1)
	if err != nil {
		return 0, err
	}
	return w[0], nil
}

func (v *view) BytesAt(index int64, length int) ([]byte, error) {
	w, err := v.window(index, length)
	if err != nil {
		return nil, err
	}
	result := make([]byte, length)
	copy(result, w)
	return result, nil
}

func (v *view) AllBytes() []byte {
	result := make([]byte, len(v.buf))
	copy(result, v.buf)
	return result
}

func (v *view) CopyInto(index int64, dst []byte, dstOffset, length int) error {
	if dst == nil {
		return errors.Wrap(ErrNullArgument, "destination: "+errstr.NilArgument)
	}
	w, err := v.window(index, length)
	if err != nil {
		return err
	}
	if err := checkArray(dstOffset, length, len(dst)); err != nil {
		return err
	}
	copy(dst[dstOffset:dstOffset+length], w)
	return nil
}

func (v *view) CopyAllInto(index int64, dst []byte) error {
	return v.CopyInto(index, dst, 0, len(dst))
}

func (v *view) SupportsSink(kind SinkKind) bool {
	return supportedSink(kind)
}

func (v *view) CopyToSink(index int64, length int, sink any) (int64, error) {
	if isNil(sink) {
		return 0, errors.Wrap(ErrNullArgument, "sink: "+errstr.NilArgument)
	}
	kind := SinkKindOf(sink)
	if !v.SupportsSink(kind) {
		log.Debug("Rejected sink of type %T", sink)
		return 0, errors.Wrapf(ErrUnsupportedSink, "%T", sink)
	}
	w, err := v.window(index, length)
	if err != nil {
		return 0, err
	}

	if kind == SinkBuffer {
		if err := sink.(*Buffer).put(w); err != nil {
			return 0, err
		}
		return int64(length), nil
	}

	n, err := toChannelSink(sink).writeWindow(w)
	if err != nil {
		return int64(n), errors.Wrapf(err, "writing %d bytes to %s sink", length, kind)
	}
	return int64(length), nil
}

func (v *view) Uint8At(index int64) (uint16, error) {
	b, err := v.ByteAt(index)
	return uint16(b), err
}

func (v *view) Int16At(index int64) (int16, error) {
	w, err := v.window(index, 2)
	if err != nil {
		return 0, err
	}
	return int16(byteOrder.Uint16(w)), nil
}

func (v *view) Uint16At(index int64) (uint32, error) {
	w, err := v.window(index, 2)
	if err != nil {
		return 0, err
	}
	return uint32(byteOrder.Uint16(w)), nil
}

func (v *view) Int32At(index int64) (int32, error) {
	w, err := v.window(index, 4)
	if err != nil {
		return 0, err
	}
	return int32(byteOrder.Uint32(w)), nil
}

func (v *view) Uint32At(index int64) (int64, error) {
	w, err := v.window(index, 4)
	if err != nil {
		return 0, err
	}
	return int64(byteOrder.Uint32(w)), nil
}

func (v *view) Int64At(index int64) (int64, error) {
	w, err := v.window(index, 8)
	if err != nil {
		return 0, err
	}
	return int64(byteOrder.Uint64(w)), nil
}

func (v *view) Uint64At(index int64) (datatypes.Unsigned64, error) {
	w, err := v.window(index, 8)
	if err != nil {
		return datatypes.Unsigned64{}, err
	}
	return datatypes.FromUint64(byteOrder.Uint64(w)), nil
}

func (v *view) Float32At(index int64) (float32, error) {
	w, err := v.window(index, 4)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(byteOrder.Uint32(w)), nil
}

func (v *view) Float64At(index int64) (float64, error) {
	w, err := v.window(index, 8)
	if err != nil {
		return 0, err
	}
	return math.Float64frombits(byteOrder.Uint64(w)), nil
}

// StringAt replaces invalid UTF-8 sequences with U+FFFD. No NUL scanning is done.
func (v *view) StringAt(index int64, length int) (string, error) {
	w, err := v.window(index, length)
	if err != nil {
		return "", err
	}
	if utf8.Valid(w) {
		return string(w), nil
	}
	return strings.ToValidUTF8(string(w), string(utf8.RuneError)), nil
}

func (v *view) DataAt(index int64, length int) (RichReadOnly, error) {
	w, err := v.window(index, length)
	if err != nil {
		return nil, err
	}
	return newView(w), nil
}
