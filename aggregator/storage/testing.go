package storage

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/0xPolygon/relay-aggregator/types"
)

type PlaceholderStorage func(t *testing.T) (Storage, func())

var (
	addr1 = types.StringToAddress("hx0001")
	addr2 = types.StringToAddress("hx0002")
	addr3 = types.StringToAddress("hx0003")
)

// TestStorage tests a set of tests on a storage
func TestStorage(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	t.Run("testAdmin", func(t *testing.T) {
		testAdmin(t, m)
	})
	t.Run("testInitialState", func(t *testing.T) {
		testInitialState(t, m)
	})
	t.Run("testPacket", func(t *testing.T) {
		testPacket(t, m)
	})
	t.Run("testSignature", func(t *testing.T) {
		testSignature(t, m)
	})
}

func testAdmin(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	s, closeFn := m(t)
	defer closeFn()

	_, ok, err := s.ReadAdmin()
	require.NoError(t, err)
	assert.False(t, ok)

	for _, admin := range []types.Address{addr1, addr2} {
		require.NoError(t, s.WriteAdmin(admin))

		found, ok, err := s.ReadAdmin()
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, admin, found)
	}
}

func testInitialState(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	s, closeFn := m(t)
	defer closeFn()

	relayers, err := s.ReadRelayers()
	require.NoError(t, err)
	assert.Empty(t, relayers)

	require.NoError(t, s.WriteInitialState(addr1, []types.Address{addr2, addr3, addr2}))

	admin, ok, err := s.ReadAdmin()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, addr1, admin)

	relayers, err = s.ReadRelayers()
	require.NoError(t, err)
	assert.Equal(t, []types.Address{addr2, addr3, addr2}, relayers)

	// a second write appends after the stored relayers
	require.NoError(t, s.WriteInitialState(addr2, []types.Address{addr1}))

	relayers, err = s.ReadRelayers()
	require.NoError(t, err)
	assert.Equal(t, []types.Address{addr2, addr3, addr2, addr1}, relayers)
}

func testPacket(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	s, closeFn := m(t)
	defer closeFn()

	cases := []*types.Packet{
		types.NewPacket("0x1.icon", "cx0001", big.NewInt(1), "0x2.eth", []byte{0x1, 0x2}),
		types.NewPacket("0x1.icon", "cx0001", big.NewInt(0), "0x2.eth", nil),
		types.NewPacket("", "", new(big.Int).Lsh(big.NewInt(1), 200), "", []byte{}),
	}

	for _, packet := range cases {
		_, ok, err := s.ReadPacket(packet.Key())
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.WritePacket(packet))

		found, ok, err := s.ReadPacket(packet.Key())
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, packet.Equal(found), "expected %v but found %v", packet, found)

		// mutating the returned value must not affect the stored packet
		found.SrcSn.SetInt64(-1)

		again, ok, err := s.ReadPacket(packet.Key())
		require.NoError(t, err)
		require.True(t, ok)
		assert.True(t, packet.Equal(again))
	}
}

func testSignature(t *testing.T, m PlaceholderStorage) {
	t.Helper()

	s, closeFn := m(t)
	defer closeFn()

	packetA := types.NewPacket("0x1.icon", "cx0001", big.NewInt(1), "0x2.eth", nil)
	packetB := types.NewPacket("0x1.icon", "cx0001", big.NewInt(2), "0x2.eth", nil)

	_, ok, err := s.ReadSignature(packetA.Key(), addr1)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.WriteSignature(packetA.Key(), addr1, []byte{0xa}))
	require.NoError(t, s.WriteSignature(packetB.Key(), addr2, []byte{0xb}))
	require.NoError(t, s.WriteSignature(packetA.Key(), addr3, []byte{}))

	sig, ok, err := s.ReadSignature(packetA.Key(), addr1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0xa}, sig)

	_, ok, err = s.ReadSignature(packetA.Key(), addr2)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = s.ReadSignature(packetB.Key(), addr1)
	require.NoError(t, err)
	assert.False(t, ok)

	// an empty signature is still a stored signature
	sig, ok, err = s.ReadSignature(packetA.Key(), addr3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, sig)
}

// TestReopen checks that state survives closing and reopening a persistent storage
func TestReopen(t *testing.T, open func(t *testing.T, path string) Storage) {
	t.Helper()

	path := t.TempDir()
	packet := types.NewPacket("0x1.icon", "cx0001", big.NewInt(7), "0x2.eth", []byte{0x7})

	s := open(t, path)
	require.NoError(t, s.WriteInitialState(addr1, []types.Address{addr2, addr3}))
	require.NoError(t, s.WritePacket(packet))
	require.NoError(t, s.WriteSignature(packet.Key(), addr2, []byte{0x1}))
	require.NoError(t, s.Close())

	s = open(t, path)
	defer func() {
		require.NoError(t, s.Close())
	}()

	admin, ok, err := s.ReadAdmin()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, addr1, admin)

	relayers, err := s.ReadRelayers()
	require.NoError(t, err)
	assert.Equal(t, []types.Address{addr2, addr3}, relayers)

	found, ok, err := s.ReadPacket(packet.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, packet.Equal(found))

	sig, ok, err := s.ReadSignature(packet.Key(), addr2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte{0x1}, sig)
}
