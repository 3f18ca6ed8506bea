package memory

import "github.com/ramkit/ramkit/internal/errors"

var (
	// ErrOutOfRange: an index/length pair addresses bytes outside the region.
	ErrOutOfRange = errors.ErrOutOfRange
	// ErrInvalidArgument: a caller side offset/length pair or value is inconsistent.
	ErrInvalidArgument = errors.ErrInvalidArgument
	// ErrNullArgument: a required argument was nil.
	ErrNullArgument = errors.ErrNullArgument
	// ErrUnsupportedSink: the sink is none of the recognized SinkKinds.
	ErrUnsupportedSink = errors.ErrUnsupportedSink
	// ErrUnsupportedSource: the source is none of the recognized SourceKinds.
	ErrUnsupportedSource = errors.ErrUnsupportedSource
)
