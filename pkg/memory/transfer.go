package memory

import (
	"bytes"
	"io"
	"reflect"

	"github.com/ramkit/ramkit/internal/errors"
)

// channelSink is what stream and channel sinks are adapted to: each call hands over one
// bounded window of the region.
type channelSink interface {
	writeWindow(p []byte) (int, error)
}

// channelSource is what stream and channel sources are adapted to: each call fills at most
// len(dst) bytes of the region.
type channelSource interface {
	readChunk(dst []byte) (int, error)
}

// isNil reports whether v is nil or a typed nil pointer, channel, map, func or slice.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	switch rv := reflect.ValueOf(v); rv.Kind() {
	case reflect.Pointer, reflect.Chan, reflect.Map, reflect.Func, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

type (
	sendChannel    chan<- []byte
	receiveChannel <-chan []byte
	writerChannel  struct{ w io.Writer }
	readerChannel  struct{ r io.Reader }
)

func toChannelSink(sink any) channelSink {
	switch s := sink.(type) {
	case chan []byte:
		return sendChannel(s)
	case chan<- []byte:
		return sendChannel(s)
	case io.Writer:
		return writerChannel{w: s}
	}
	return nil
}

func toChannelSource(source any) channelSource {
	switch s := source.(type) {
	case chan []byte:
		return receiveChannel(s)
	case <-chan []byte:
		return receiveChannel(s)
	case io.Reader:
		return readerChannel{r: s}
	}
	return nil
}

// writeWindow sends a copy so the receiver never aliases the region.
func (c sendChannel) writeWindow(p []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = 0, errors.Wrapf(ErrInvalidArgument, "sink channel: %v", r)
		}
	}()
	c <- bytes.Clone(p)
	return len(p), nil
}

func (c writerChannel) writeWindow(p []byte) (int, error) {
	n, err := c.w.Write(p)
	if err == nil && n < len(p) {
		err = io.ErrShortWrite
	}
	return n, err
}

// readChunk receives one chunk. A closed channel transfers nothing. A chunk that does not
// fit is rejected before the region is touched; it has been consumed from the channel.
func (c receiveChannel) readChunk(dst []byte) (int, error) {
	chunk, ok := <-c
	if !ok {
		return 0, nil
	}
	if len(chunk) > len(dst) {
		return 0, errors.Wrapf(ErrOutOfRange, "chunk of %d bytes does not fit into %d bytes left in the region", len(chunk), len(dst))
	}
	return copy(dst, chunk), nil
}

// readChunk reads until dst is full or the stream ends.
func (c readerChannel) readChunk(dst []byte) (int, error) {
	n, err := io.ReadFull(c.r, dst)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		err = nil
	}
	return n, err
}
