package hex

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeHex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input    string
		expected []byte
	}{
		{"0x", []byte{}},
		{"", []byte{}},
		{"0x01", []byte{1}},
		{"0xabc", []byte{0x0a, 0xbc}},
		{"ff00", []byte{0xff, 0x00}},
	}

	for _, c := range cases {
		res, err := DecodeHex(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.expected, res, c.input)
	}

	_, err := DecodeHex("0xzz")
	assert.Error(t, err)
}

func TestEncodeBig(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x0", EncodeBig(big.NewInt(0)))
	assert.Equal(t, "0x2a", EncodeBig(big.NewInt(42)))
	assert.Equal(t, "0x2a", EncodeBig(big.NewInt(-42)))
}

func TestEncodeToHex(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "0x0102", EncodeToHex([]byte{1, 2}))
	assert.Equal(t, "0x", EncodeToHex(nil))

	b, err := DecodeHex(EncodeToHex([]byte{1, 2}))
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2}, b)
}
