package common

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/0xPolygon/relay-aggregator/helper/hex"
)

var errEmptyNumber = errors.New("empty number")

// ParseUint256orHex parses the given number string into a big integer.
// Strings with the 0x prefix are parsed as hex, everything else as decimal.
func ParseUint256orHex(val *string) (*big.Int, error) {
	if val == nil {
		return nil, nil
	}

	str := strings.TrimSpace(*val)
	base := 10

	if strings.HasPrefix(str, "0x") || strings.HasPrefix(str, "0X") {
		str = str[2:]
		base = 16
	}

	if str == "" {
		return nil, errEmptyNumber
	}

	b, ok := new(big.Int).SetString(str, base)
	if !ok {
		return nil, fmt.Errorf("could not parse %q as a number", *val)
	}

	return b, nil
}

// ParseBytes decodes a hex string, with or without the 0x prefix
func ParseBytes(val *string) ([]byte, error) {
	if val == nil {
		return []byte{}, nil
	}

	return hex.DecodeHex(*val)
}
