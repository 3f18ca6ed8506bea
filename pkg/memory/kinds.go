package memory

import "io"

// SinkKind identifies the shape of a CopyToSink destination.
type SinkKind int

const (
	SinkUnknown SinkKind = iota
	SinkBuffer           // *Buffer, bytes are put at the buffer position
	SinkStream           // io.Writer
	SinkChannel          // chan<- []byte, one window per call
)

// SourceKind identifies the shape of a CopyFromSource origin.
type SourceKind int

const (
	SourceUnknown SourceKind = iota
	SourceBuffer             // *Buffer, bytes from position up to limit
	SourceStream             // io.Reader
	SourceChannel            // <-chan []byte, one chunk per call
)

// SinkKindOf classifies sink. Values matching none of the kinds are SinkUnknown.
func SinkKindOf(sink any) SinkKind {
	switch sink.(type) {
	case *Buffer:
		return SinkBuffer
	case chan []byte, chan<- []byte:
		return SinkChannel
	case io.Writer:
		return SinkStream
	default:
		return SinkUnknown
	}
}

// SourceKindOf classifies source. Values matching none of the kinds are SourceUnknown.
func SourceKindOf(source any) SourceKind {
	switch source.(type) {
	case *Buffer:
		return SourceBuffer
	case chan []byte, <-chan []byte:
		return SourceChannel
	case io.Reader:
		return SourceStream
	default:
		return SourceUnknown
	}
}

func (k SinkKind) String() string {
	switch k {
	case SinkBuffer:
		return "buffer"
	case SinkStream:
		return "stream"
	case SinkChannel:
		return "channel"
	default:
		return "unknown"
	}
}

func (k SourceKind) String() string {
	switch k {
	case SourceBuffer:
		return "buffer"
	case SourceStream:
		return "stream"
	case SourceChannel:
		return "channel"
	default:
		return "unknown"
	}
}

func supportedSink(kind SinkKind) bool {
	return kind == SinkBuffer || kind == SinkStream || kind == SinkChannel
}

func supportedSource(kind SourceKind) bool {
	return kind == SourceBuffer || kind == SourceStream || kind == SourceChannel
}
