package memory

import (
	"github.com/ramkit/ramkit/internal/errors"
)

/*
Buffer is a fixed-capacity byte buffer with a position and a limit, used as the "buffer"
sink and source kind.

As a sink, CopyToSink puts bytes at the position and advances it. As a source,
CopyFromSource consumes bytes from the position up to the limit. Flip switches a buffer
that has been written into a buffer ready to be read from.
*/
type Buffer struct {
	data     []byte
	position int
	limit    int
}

// NewBuffer allocates a buffer; negative capacity is treated as zero.
func NewBuffer(capacity int) *Buffer {
	if capacity < 0 {
		capacity = 0
	}
	return WrapBuffer(make([]byte, capacity))
}

// WrapBuffer uses b as backing storage without copying. Position is 0, limit is len(b).
func WrapBuffer(b []byte) *Buffer {
	return &Buffer{data: b, limit: len(b)}
}

func (b *Buffer) Position() int  { return b.position }
func (b *Buffer) Limit() int     { return b.limit }
func (b *Buffer) Capacity() int  { return len(b.data) }
func (b *Buffer) Remaining() int { return b.limit - b.position }

// SetPosition requires 0 <= position <= limit.
func (b *Buffer) SetPosition(position int) error {
	if position < 0 || position > b.limit {
		return errors.Wrapf(ErrInvalidArgument, "position %d outside [0, %d]", position, b.limit)
	}
	b.position = position
	return nil
}

// SetLimit requires 0 <= limit <= capacity. Position is pulled back to the new limit if needed.
func (b *Buffer) SetLimit(limit int) error {
	if limit < 0 || limit > len(b.data) {
		return errors.Wrapf(ErrInvalidArgument, "limit %d outside [0, %d]", limit, len(b.data))
	}
	b.limit = limit
	if b.position > limit {
		b.position = limit
	}
	return nil
}

// Flip sets the limit to the position and the position to zero.
func (b *Buffer) Flip() {
	b.limit = b.position
	b.position = 0
}

func (b *Buffer) Rewind() {
	b.position = 0
}

// Clear resets position to zero and limit to capacity.
func (b *Buffer) Clear() {
	b.position = 0
	b.limit = len(b.data)
}

// Bytes returns the unread window [position, limit). The slice aliases the buffer.
func (b *Buffer) Bytes() []byte {
	return b.data[b.position:b.limit]
}

// Written returns [0, position). The slice aliases the buffer.
func (b *Buffer) Written() []byte {
	return b.data[:b.position]
}

func (b *Buffer) put(p []byte) error {
	if len(p) > b.Remaining() {
		return errors.Wrapf(ErrInvalidArgument, "buffer has %d bytes remaining, %d needed", b.Remaining(), len(p))
	}
	b.position += copy(b.data[b.position:b.limit], p)
	return nil
}

func (b *Buffer) skip(n int) {
	b.position += n
}
