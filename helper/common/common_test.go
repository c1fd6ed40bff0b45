package common

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseUint256orHex(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input    string
		expected *big.Int
		isErr    bool
	}{
		{"0", big.NewInt(0), false},
		{"42", big.NewInt(42), false},
		{"0x2a", big.NewInt(42), false},
		{" 7 ", big.NewInt(7), false},
		{"340282366920938463463374607431768211456", new(big.Int).Lsh(big.NewInt(1), 128), false},
		{"0x", nil, true},
		{"", nil, true},
		{"abc", nil, true},
	}

	for _, c := range cases {
		c := c
		t.Run(c.input, func(t *testing.T) {
			t.Parallel()

			res, err := ParseUint256orHex(&c.input)
			if c.isErr {
				assert.Error(t, err)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 0, c.expected.Cmp(res))
		})
	}

	res, err := ParseUint256orHex(nil)
	assert.NoError(t, err)
	assert.Nil(t, res)
}

func TestParseBytes(t *testing.T) {
	t.Parallel()

	in := "0x0102ff"
	b, err := ParseBytes(&in)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 0xff}, b)

	b, err = ParseBytes(nil)
	require.NoError(t, err)
	assert.Empty(t, b)
}

func TestSetupDataDir(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "data")

	require.NoError(t, SetupDataDir(root, []string{"storage", "logs"}))

	for _, sub := range []string{"storage", "logs"} {
		info, err := os.Stat(filepath.Join(root, sub))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	// existing directories are left alone
	require.NoError(t, SetupDataDir(root, []string{"storage"}))

	file := filepath.Join(root, "file")
	require.NoError(t, os.WriteFile(file, []byte{1}, 0600))
	assert.Error(t, SetupDataDir(filepath.Join(file, "nested"), nil))
}

func TestEncodeUint64ToBytes(t *testing.T) {
	t.Parallel()

	for _, v := range []uint64{0, 1, 255, 1 << 40, ^uint64(0)} {
		assert.Equal(t, v, EncodeBytesToUint64(EncodeUint64ToBytes(v)))
	}

	assert.Equal(t, []byte{0, 0, 1, 0}, EncodeUint32ToBytes(256))
}
