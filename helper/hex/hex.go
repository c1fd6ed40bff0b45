package hex

import (
	"encoding/hex"
	"fmt"
	"math/big"
	"strings"
)

// EncodeToHex generates a hex string based on the byte representation, with the '0x' prefix
func EncodeToHex(str []byte) string {
	return "0x" + hex.EncodeToString(str)
}

// DecodeHex converts a hex string to a byte array.
// The 0x prefix is optional and odd length input is left padded with a zero nibble.
func DecodeHex(str string) ([]byte, error) {
	str = strings.TrimPrefix(strings.TrimPrefix(str, "0x"), "0X")
	if len(str)%2 != 0 {
		str = "0" + str
	}

	return hex.DecodeString(str)
}

// EncodeBig encodes bigint as a hex string with 0x prefix.
// The sign of the integer is ignored.
func EncodeBig(bigint *big.Int) string {
	if bigint.BitLen() == 0 {
		return "0x0"
	}

	return fmt.Sprintf("%#x", new(big.Int).Abs(bigint))
}
