package jsonrpc

import (
	"encoding/json"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestArgBig_Unmarshal(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input    string
		expected *big.Int
		err      bool
	}{
		{`"0x10"`, big.NewInt(16), false},
		{`"16"`, big.NewInt(16), false},
		{`16`, big.NewInt(16), false},
		{`"0x0"`, big.NewInt(0), false},
		{`"0x1000000000000000000000000000000000"`, new(big.Int).Lsh(big.NewInt(1), 132), false},
		{`"-1"`, nil, true},
		{`""`, nil, true},
		{`"0x"`, nil, true},
		{`"abc"`, nil, true},
	}

	for _, c := range cases {
		var a argBig

		err := json.Unmarshal([]byte(c.input), &a)
		if c.err {
			assert.Error(t, err, c.input)

			continue
		}

		require.NoError(t, err, c.input)
		assert.Equal(t, 0, c.expected.Cmp(a.toBig()), c.input)
	}
}

func TestArgBig_Marshal(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(argBigPtr(big.NewInt(255)))
	require.NoError(t, err)
	assert.Equal(t, `"0xff"`, string(data))
}

func TestArgBytes(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(argBytesPtr([]byte{0x1, 0x2}))
	require.NoError(t, err)
	assert.Equal(t, `"0x0102"`, string(data))

	var b argBytes
	require.NoError(t, json.Unmarshal([]byte(`"0x0102"`), &b))
	assert.Equal(t, argBytes{0x1, 0x2}, b)

	require.NoError(t, json.Unmarshal([]byte(`"0x"`), &b))
	assert.Empty(t, b)

	assert.Error(t, json.Unmarshal([]byte(`"0xgg"`), &b))
}
