package util

import (
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// DecodeHex accepts hex with or without the 0x prefix.
func DecodeHex(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

func EncodeHex(b []byte) string {
	return hexutil.Encode(b)
}
