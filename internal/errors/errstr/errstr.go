// Package errstr collects message fragments shared by error sites.
package errstr

const (
	NilArgument      = "argument is nil"
	NegativeIndex    = "index is negative"
	NegativeLength   = "length is negative"
	NegativeOffset   = "offset is negative"
	IndexTooLarge    = "index is beyond the end of the region"
	WindowTooLarge   = "window exceeds the end of the region"
	ArrayTooSmall    = "window exceeds the array bounds"
	ValueOutOfBounds = "value does not fit the field width"
)
