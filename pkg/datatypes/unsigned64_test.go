package datatypes

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const big = "17777777777777788899"

func TestParseUnsigned64(t *testing.T) {
	u, err := ParseUnsigned64(big)
	require.NoError(t, err)
	require.Equal(t, big, u.String())
	require.EqualValues(t, -668966295931762717, u.SignedBits())
	require.True(t, u.IsNegativeAsSigned())
	require.False(t, FromUint64(0).IsNegativeAsSigned())

	maxU, err := ParseUnsigned64("18446744073709551615")
	require.NoError(t, err)
	require.EqualValues(t, uint64(math.MaxUint64), maxU.Uint64())
	require.EqualValues(t, -1, maxU.SignedBits())
}

func TestParseUnsigned64_Invalid(t *testing.T) {
	for _, s := range []string{"", "-1", "+1", " 1", "1_000", "0x10", "abc", "18446744073709551616", "99999999999999999999999"} {
		_, err := ParseUnsigned64(s)
		require.ErrorIs(t, err, ErrParse, "input %q", s)
	}
}

func TestRoundTrip(t *testing.T) {
	values := []uint64{0, 1, 100, math.MaxInt64, math.MaxInt64 + 1, math.MaxUint64 - 1, math.MaxUint64}
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		values = append(values, r.Uint64())
	}
	for _, v := range values {
		u := FromUint64(v)
		parsed, err := ParseUnsigned64(u.String())
		require.NoError(t, err)
		require.Equal(t, u, parsed)
		require.Equal(t, u, FromSignedBits(u.SignedBits()))
	}
}

func TestCompare(t *testing.T) {
	v1, err := ParseUnsigned64(big)
	require.NoError(t, err)
	v2 := FromUint64(0)
	v3 := FromUint64(100)

	require.Equal(t, 1, v1.Compare(v3))
	require.Equal(t, -1, v2.Compare(v1))
	require.Equal(t, 0, v3.Compare(FromSignedBits(100)))
	// signed reading would put v1 first
	require.Less(t, v1.SignedBits(), v2.SignedBits())

	for i := 0; i < 10; i++ {
		list := []Unsigned64{v1, v2, v3}
		rand.Shuffle(len(list), func(i, j int) { list[i], list[j] = list[j], list[i] })
		Sort(list)
		require.Equal(t, "0", list[0].String())
		require.Equal(t, "100", list[1].String())
		require.Equal(t, big, list[2].String())
	}
}

func TestEqualityAndMapKey(t *testing.T) {
	a := FromSignedBits(-1)
	b := FromUint64(math.MaxUint64)
	require.True(t, a == b)
	m := map[Unsigned64]string{a: "max"}
	require.Equal(t, "max", m[b])
}

func TestUint256(t *testing.T) {
	u := FromUint64(math.MaxUint64)
	require.Equal(t, "18446744073709551615", u.Uint256().ToBig().String())

	back, err := FromUint256(u.Uint256())
	require.NoError(t, err)
	require.Equal(t, u, back)

	tooBig := new(uint256.Int).AddUint64(u.Uint256(), 1)
	_, err = FromUint256(tooBig)
	require.ErrorIs(t, err, ErrParse)

	_, err = FromUint256(nil)
	require.Error(t, err)
}

func TestTextEncodings(t *testing.T) {
	type doc struct {
		Value Unsigned64 `json:"value" yaml:"value"`
	}
	u, err := ParseUnsigned64(big)
	require.NoError(t, err)

	data, err := json.Marshal(doc{Value: u})
	require.NoError(t, err)
	require.JSONEq(t, `{"value":"17777777777777788899"}`, string(data))
	var d doc
	require.NoError(t, json.Unmarshal(data, &d))
	require.Equal(t, u, d.Value)

	data, err = yaml.Marshal(doc{Value: u})
	require.NoError(t, err)
	d = doc{}
	require.NoError(t, yaml.Unmarshal(data, &d))
	require.Equal(t, u, d.Value)

	require.ErrorIs(t, json.Unmarshal([]byte(`{"value":"-5"}`), &d), ErrParse)
}

func TestCBOR(t *testing.T) {
	u, err := ParseUnsigned64(big)
	require.NoError(t, err)
	data, err := cbor.Marshal(u)
	require.NoError(t, err)
	// major type 0, 8 byte argument
	require.Equal(t, byte(0x1b), data[0])

	var plain uint64
	require.NoError(t, cbor.Unmarshal(data, &plain))
	require.Equal(t, u.Uint64(), plain)

	var back Unsigned64
	require.NoError(t, cbor.Unmarshal(data, &back))
	require.Equal(t, u, back)

	neg, err := cbor.Marshal(int64(-5))
	require.NoError(t, err)
	require.Error(t, cbor.Unmarshal(neg, &back))
}
