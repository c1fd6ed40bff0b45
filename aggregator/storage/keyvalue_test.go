package storage

import (
	"math/big"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/0xPolygon/relay-aggregator/types"
)

type mapKV struct {
	db   map[string][]byte
	gets int
}

func newMapKV() *mapKV {
	return &mapKV{db: map[string][]byte{}}
}

func (m *mapKV) Set(p []byte, v []byte) error {
	m.db[string(p)] = v

	return nil
}

func (m *mapKV) Get(p []byte) ([]byte, bool, error) {
	m.gets++
	v, ok := m.db[string(p)]

	return v, ok, nil
}

func (m *mapKV) NewBatch() Batch {
	return &mapBatch{kv: m, pending: map[string][]byte{}}
}

func (m *mapKV) Close() error {
	return nil
}

type mapBatch struct {
	kv      *mapKV
	pending map[string][]byte
}

func (b *mapBatch) Put(k []byte, v []byte) {
	b.pending[string(k)] = v
}

func (b *mapBatch) Write() error {
	for k, v := range b.pending {
		b.kv.db[k] = v
	}

	return nil
}

func newTestStorage(t *testing.T, cacheSize int) (*KeyValueStorage, *mapKV) {
	t.Helper()

	kv := newMapKV()

	s, err := NewKeyValueStorage(hclog.NewNullLogger(), kv, cacheSize)
	require.NoError(t, err)

	return s, kv
}

func TestKeyValueStorage_PacketCache(t *testing.T) {
	t.Parallel()

	s, kv := newTestStorage(t, 1)

	packetA := types.NewPacket("0x1.icon", "cx01", big.NewInt(1), "0x2.eth", []byte{0x1})
	packetB := types.NewPacket("0x1.icon", "cx01", big.NewInt(2), "0x2.eth", []byte{0x2})

	require.NoError(t, s.WritePacket(packetA))

	// served from the cache
	found, ok, err := s.ReadPacket(packetA.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, packetA.Equal(found))
	assert.Equal(t, 0, kv.gets)

	// evicts packetA from a cache of size one
	require.NoError(t, s.WritePacket(packetB))

	found, ok, err = s.ReadPacket(packetA.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.True(t, packetA.Equal(found))
	assert.Equal(t, 1, kv.gets)
}

func TestKeyValueStorage_MalformedRecords(t *testing.T) {
	t.Parallel()

	s, kv := newTestStorage(t, 0)

	packet := types.NewPacket("0x1.icon", "cx01", big.NewInt(1), "0x2.eth", nil)
	require.NoError(t, kv.Set(join(PACKET, packet.Key()), []byte{0xff}))

	_, _, err := s.ReadPacket(packet.Key())
	assert.Error(t, err)

	// a well formed rlp list with the wrong number of fields
	require.NoError(t, kv.Set(join(PACKET, packet.Key()), []byte{0xc1, 0x01}))

	_, _, err = s.ReadPacket(packet.Key())
	assert.ErrorIs(t, err, errMalformedPacket)

	require.NoError(t, kv.Set(RELAYERS_COUNT, []byte{0x1}))

	_, err = s.ReadRelayers()
	assert.Error(t, err)

	// count points past the stored relayers
	require.NoError(t, kv.Set(RELAYERS_COUNT, []byte{0, 0, 0, 0, 0, 0, 0, 1}))

	_, err = s.ReadRelayers()
	assert.ErrorContains(t, err, "missing")
}

func TestKeyValueStorage_PacketEncoding(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		packet := types.NewPacket(
			rapid.String().Draw(t, "srcNetwork"),
			rapid.String().Draw(t, "contract"),
			new(big.Int).SetUint64(rapid.Uint64().Draw(t, "sn")),
			rapid.String().Draw(t, "dstNetwork"),
			rapid.SliceOf(rapid.Byte()).Draw(t, "data"),
		)

		decoded, err := unmarshalPacket(marshalPacket(packet))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if !packet.Equal(decoded) {
			t.Fatalf("expected %v but found %v", packet, decoded)
		}
	})
}

func TestKeyValueStorage_SignatureKeysDoNotCollide(t *testing.T) {
	t.Parallel()

	s, _ := newTestStorage(t, 0)

	// contract and relayer boundaries must not shift into each other
	packetA := types.NewPacket("net", "cx", big.NewInt(1), "dst", nil)
	packetB := types.NewPacket("net", "c", big.NewInt(1), "dst", nil)

	require.NoError(t, s.WriteSignature(packetA.Key(), types.Address("hx"), []byte{0x1}))

	_, ok, err := s.ReadSignature(packetB.Key(), types.Address("xhx"))
	require.NoError(t, err)
	assert.False(t, ok)
}
