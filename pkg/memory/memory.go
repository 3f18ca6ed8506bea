package memory

import "github.com/ramkit/ramkit/pkg/datatypes"

// ReadOnly is the minimal byte level capability of a region.
type ReadOnly interface {
	// ByteAt returns the byte at index.
	ByteAt(index int64) (byte, error)
	// BytesAt returns a copy of length bytes starting at index.
	BytesAt(index int64, length int) ([]byte, error)
	// AllBytes returns a copy of the whole region.
	AllBytes() []byte
	// CopyInto copies length bytes starting at index into dst[dstOffset:].
	CopyInto(index int64, dst []byte, dstOffset, length int) error
	// CopyAllInto fills dst with the bytes starting at index.
	CopyAllInto(index int64, dst []byte) error
	// SupportsSink tells whether CopyToSink accepts sinks of the given kind.
	SupportsSink(kind SinkKind) bool
	// CopyToSink transfers length bytes starting at index into sink and returns the number
	// of bytes transferred, which is always length on success.
	CopyToSink(index int64, length int, sink any) (int64, error)
	// Size returns the number of addressable bytes.
	Size() int64
}

// ReadWrite adds byte level writes to ReadOnly.
type ReadWrite interface {
	ReadOnly
	PutByteAt(index int64, value byte) error
	// CopyFrom writes src[srcOffset:srcOffset+length] to the region at index.
	CopyFrom(index int64, src []byte, srcOffset, length int) error
	CopyAllFrom(index int64, src []byte) error
	SupportsSource(kind SourceKind) bool
	// CopyFromSource reads from source into the region starting at index. The amount is
	// defined by the source and the space left in the region.
	CopyFromSource(index int64, source any) (int64, error)
}

// RichReadOnly decodes fixed width big-endian values.
type RichReadOnly interface {
	ReadOnly
	Uint8At(index int64) (uint16, error)
	Int16At(index int64) (int16, error)
	Uint16At(index int64) (uint32, error)
	Int32At(index int64) (int32, error)
	Uint32At(index int64) (int64, error)
	Int64At(index int64) (int64, error)
	Uint64At(index int64) (datatypes.Unsigned64, error)
	Float32At(index int64) (float32, error)
	Float64At(index int64) (float64, error)
	// StringAt decodes exactly length bytes as UTF-8.
	StringAt(index int64, length int) (string, error)
	// DataAt returns a view aliasing length bytes starting at index.
	DataAt(index int64, length int) (RichReadOnly, error)
}

// RichReadWrite encodes fixed width big-endian values.
type RichReadWrite interface {
	ReadWrite
	RichReadOnly
	// PutUint8At fails with ErrInvalidArgument unless value fits into 8 bits.
	PutUint8At(index int64, value uint16) error
	PutInt16At(index int64, value int16) error
	// PutUint16At fails with ErrInvalidArgument unless value fits into 16 bits.
	PutUint16At(index int64, value uint32) error
	PutInt32At(index int64, value int32) error
	// PutUint32At fails with ErrInvalidArgument unless value is in [0, 2^32-1].
	PutUint32At(index int64, value int64) error
	PutInt64At(index int64, value int64) error
	PutUint64At(index int64, value datatypes.Unsigned64) error
	PutFloat32At(index int64, value float32) error
	PutFloat64At(index int64, value float64) error
	// PutStringAt writes the UTF-8 bytes of value and returns their count.
	PutStringAt(index int64, value string) (int, error)
	// PutSubstringAt writes the characters [offset, offset+length) of value.
	PutSubstringAt(index int64, value string, offset, length int) (int, error)
	// PutDataAt copies the whole src region to index.
	PutDataAt(index int64, src ReadOnly) error
	// PutDataRangeAt copies src bytes [offset, offset+length) to index.
	PutDataRangeAt(index int64, src ReadOnly, offset, length int) error
}
