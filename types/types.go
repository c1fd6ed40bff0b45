package types

import (
	"strings"

	"github.com/0xPolygon/relay-aggregator/helper/hex"
)

// ZeroAddress is the unset identity
var ZeroAddress = Address("")

// Address identifies an admin or a relayer. The encoding is network specific
// (hex, bech32, hx-prefixed, ...) and is compared verbatim.
type Address string

// StringToAddress converts a user supplied string to an Address
func StringToAddress(str string) Address {
	return Address(strings.TrimSpace(str))
}

// StringsToAddresses converts a list of strings to a list of addresses, preserving order
func StringsToAddresses(strs []string) []Address {
	addrs := make([]Address, len(strs))
	for i, s := range strs {
		addrs[i] = StringToAddress(s)
	}

	return addrs
}

func (a Address) String() string {
	return string(a)
}

func (a Address) Bytes() []byte {
	return []byte(a)
}

// IsZero reports whether the address is unset
func (a Address) IsZero() bool {
	return a == ZeroAddress
}

// HexBytes is a byte slice which is marshalled as a 0x prefixed hex string
type HexBytes []byte

func (h HexBytes) String() string {
	return hex.EncodeToHex(h)
}

func (h HexBytes) Bytes() []byte {
	return h[:]
}

func (h HexBytes) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *HexBytes) UnmarshalText(input []byte) error {
	hh, err := hex.DecodeHex(string(input))
	if err != nil {
		return err
	}

	aux := make([]byte, len(hh))
	copy(aux, hh)
	*h = aux

	return nil
}
