/*
Package datatypes contains value types that complement the memory accessors.
*/
package datatypes

import (
	"strconv"

	"github.com/fxamacker/cbor/v2"
	"github.com/holiman/uint256"
	"golang.org/x/exp/slices"

	"github.com/ramkit/ramkit/internal/errors"
	"github.com/ramkit/ramkit/internal/errors/errstr"
)

// ErrParse is returned for malformed or out of range unsigned decimal text.
var ErrParse = errors.ErrParse

/*
Unsigned64 is an unsigned 64-bit quantity kept as a raw bit pattern.

The same 64 bits read as a two's-complement signed integer are available from SignedBits;
IsNegativeAsSigned reports whether that signed reading differs from the unsigned one.
Values are immutable and comparable with ==.
*/
type Unsigned64 struct {
	bits uint64
}

func FromSignedBits(v int64) Unsigned64 {
	return Unsigned64{bits: uint64(v)}
}

func FromUint64(v uint64) Unsigned64 {
	return Unsigned64{bits: v}
}

// ParseUnsigned64 parses a decimal string in the range 0 ... 18446744073709551615.
// Signs, whitespace and digit separators are rejected.
func ParseUnsigned64(s string) (Unsigned64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return Unsigned64{}, errors.Wrapf(ErrParse, "invalid unsigned 64-bit decimal %q", s)
	}
	return Unsigned64{bits: v}, nil
}

// FromUint256 fails with ErrParse when v needs more than 64 bits.
func FromUint256(v *uint256.Int) (Unsigned64, error) {
	if v == nil {
		return Unsigned64{}, errors.Wrap(errors.ErrNullArgument, errstr.NilArgument)
	}
	if !v.IsUint64() {
		return Unsigned64{}, errors.Wrapf(ErrParse, "value %s does not fit into 64 bits", v.ToBig().String())
	}
	return Unsigned64{bits: v.Uint64()}, nil
}

// SignedBits returns the raw storage reinterpreted as a signed integer.
func (u Unsigned64) SignedBits() int64 {
	return int64(u.bits)
}

func (u Unsigned64) Uint64() uint64 {
	return u.bits
}

// IsNegativeAsSigned is true when the top bit is set, i.e. the value can not be
// represented by a signed 64-bit integer.
func (u Unsigned64) IsNegativeAsSigned() bool {
	return int64(u.bits) < 0
}

// Compare returns -1, 0 or 1 using unsigned ordering.
func (u Unsigned64) Compare(o Unsigned64) int {
	switch {
	case u.bits < o.bits:
		return -1
	case u.bits > o.bits:
		return 1
	default:
		return 0
	}
}

func (u Unsigned64) Less(o Unsigned64) bool {
	return u.bits < o.bits
}

func (u Unsigned64) String() string {
	return strconv.FormatUint(u.bits, 10)
}

func (u Unsigned64) Uint256() *uint256.Int {
	return uint256.NewInt(u.bits)
}

// MarshalText renders the decimal form so that JSON and YAML carry the exact value.
func (u Unsigned64) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Unsigned64) UnmarshalText(text []byte) error {
	v, err := ParseUnsigned64(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// MarshalCBOR encodes the value as a CBOR unsigned integer (major type 0).
func (u Unsigned64) MarshalCBOR() ([]byte, error) {
	return cbor.Marshal(u.bits)
}

func (u *Unsigned64) UnmarshalCBOR(data []byte) error {
	var v uint64
	if err := cbor.Unmarshal(data, &v); err != nil {
		return errors.Wrapf(ErrParse, "decoding CBOR unsigned integer: %v", err)
	}
	u.bits = v
	return nil
}

// Sort orders values ascending by unsigned value.
func Sort(values []Unsigned64) {
	slices.SortFunc(values, Unsigned64.Less)
}
