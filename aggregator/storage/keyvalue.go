package storage

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/hashicorp/go-hclog"
	lru "github.com/hashicorp/golang-lru"
	"github.com/umbracle/fastrlp"

	"github.com/0xPolygon/relay-aggregator/helper/common"
	"github.com/0xPolygon/relay-aggregator/types"
)

// Prefixes for the key-value store
var (
	// ADMIN is the address allowed to change the admin
	ADMIN = []byte("a")

	// RELAYERS_COUNT is the length of the relayer list
	RELAYERS_COUNT = []byte("n")

	// RELAYER is the relayer list indexed by uint64 position
	RELAYER = []byte("r")

	// PACKET is the packet body indexed by packet key
	PACKET = []byte("p")

	// SIGNATURE is the signature indexed by packet key and relayer
	SIGNATURE = []byte("s")
)

// DefaultPacketCacheSize is used when no positive cache size is configured
const DefaultPacketCacheSize = 1024

var errMalformedPacket = errors.New("malformed packet record")

// KeyValueStorage is a generic storage for kv databases
type KeyValueStorage struct {
	logger  hclog.Logger
	db      KV
	packets *lru.Cache
}

// NewKeyValueStorage creates a storage on top of the given kv database
func NewKeyValueStorage(logger hclog.Logger, db KV, cacheSize int) (*KeyValueStorage, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultPacketCacheSize
	}

	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create packet cache: %w", err)
	}

	return &KeyValueStorage{
		logger:  logger.Named("storage"),
		db:      db,
		packets: cache,
	}, nil
}

// -- admin --

func (s *KeyValueStorage) ReadAdmin() (types.Address, bool, error) {
	data, ok, err := s.get(ADMIN, nil)
	if err != nil || !ok {
		return types.ZeroAddress, false, err
	}

	admin, err := unmarshalBytes(data)
	if err != nil {
		return types.ZeroAddress, false, err
	}

	return types.Address(admin), true, nil
}

func (s *KeyValueStorage) WriteAdmin(admin types.Address) error {
	return s.set(ADMIN, nil, marshalBytes(admin.Bytes()))
}

// -- relayers --

func (s *KeyValueStorage) ReadRelayers() ([]types.Address, error) {
	count, err := s.readRelayersCount()
	if err != nil {
		return nil, err
	}

	relayers := make([]types.Address, 0, count)

	for i := uint64(0); i < count; i++ {
		data, ok, err := s.get(RELAYER, common.EncodeUint64ToBytes(i))
		if err != nil {
			return nil, err
		}

		if !ok {
			return nil, fmt.Errorf("relayer %d of %d is missing", i, count)
		}

		relayer, err := unmarshalBytes(data)
		if err != nil {
			return nil, err
		}

		relayers = append(relayers, types.Address(relayer))
	}

	return relayers, nil
}

func (s *KeyValueStorage) readRelayersCount() (uint64, error) {
	data, ok, err := s.get(RELAYERS_COUNT, nil)
	if err != nil || !ok {
		return 0, err
	}

	if len(data) != 8 {
		return 0, fmt.Errorf("invalid relayers count record of %d bytes", len(data))
	}

	return common.EncodeBytesToUint64(data), nil
}

func (s *KeyValueStorage) WriteInitialState(admin types.Address, relayers []types.Address) error {
	count, err := s.readRelayersCount()
	if err != nil {
		return err
	}

	batch := s.db.NewBatch()
	batch.Put(ADMIN, marshalBytes(admin.Bytes()))

	for _, relayer := range relayers {
		batch.Put(join(RELAYER, common.EncodeUint64ToBytes(count)), marshalBytes(relayer.Bytes()))
		count++
	}

	batch.Put(RELAYERS_COUNT, common.EncodeUint64ToBytes(count))

	if err := batch.Write(); err != nil {
		return fmt.Errorf("failed to write initial state: %w", err)
	}

	s.logger.Debug("initial state written", "admin", admin, "relayers", count)

	return nil
}

// -- packets --

func (s *KeyValueStorage) ReadPacket(key types.PacketKey) (*types.Packet, bool, error) {
	if cached, ok := s.packets.Get(string(key)); ok {
		packet, _ := cached.(*types.Packet)

		return packet.Copy(), true, nil
	}

	data, ok, err := s.get(PACKET, key)
	if err != nil || !ok {
		return nil, false, err
	}

	packet, err := unmarshalPacket(data)
	if err != nil {
		return nil, false, err
	}

	s.packets.Add(string(key), packet)

	return packet.Copy(), true, nil
}

func (s *KeyValueStorage) WritePacket(packet *types.Packet) error {
	key := packet.Key()

	if err := s.set(PACKET, key, marshalPacket(packet)); err != nil {
		return err
	}

	s.packets.Add(string(key), packet.Copy())

	return nil
}

// -- signatures --

func (s *KeyValueStorage) ReadSignature(key types.PacketKey, relayer types.Address) ([]byte, bool, error) {
	data, ok, err := s.get(SIGNATURE, join(key, relayer.Bytes()))
	if err != nil || !ok {
		return nil, false, err
	}

	signature, err := unmarshalBytes(data)
	if err != nil {
		return nil, false, err
	}

	return signature, true, nil
}

func (s *KeyValueStorage) WriteSignature(key types.PacketKey, relayer types.Address, signature []byte) error {
	return s.set(SIGNATURE, join(key, relayer.Bytes()), marshalBytes(signature))
}

// Close closes the underlying kv database
func (s *KeyValueStorage) Close() error {
	return s.db.Close()
}

// -- helpers --

func (s *KeyValueStorage) set(p []byte, k []byte, v []byte) error {
	return s.db.Set(join(p, k), v)
}

func (s *KeyValueStorage) get(p []byte, k []byte) ([]byte, bool, error) {
	data, ok, err := s.db.Get(join(p, k))
	if err != nil {
		return nil, false, fmt.Errorf("failed to read key %q: %w", p, err)
	}

	return data, ok, nil
}

// join builds a fresh key so the prefix slices are never aliased
func join(p []byte, k []byte) []byte {
	buf := make([]byte, 0, len(p)+len(k))
	buf = append(buf, p...)

	return append(buf, k...)
}

// marshalBytes wraps values in an rlp string so empty values still
// have a non-empty record in every backend
func marshalBytes(b []byte) []byte {
	ar := fastrlp.DefaultArenaPool.Get()
	defer fastrlp.DefaultArenaPool.Put(ar)

	return ar.NewCopyBytes(b).MarshalTo(nil)
}

func unmarshalBytes(data []byte) ([]byte, error) {
	p := fastrlp.DefaultParserPool.Get()
	defer fastrlp.DefaultParserPool.Put(p)

	v, err := p.Parse(data)
	if err != nil {
		return nil, err
	}

	raw, err := v.Bytes()
	if err != nil {
		return nil, err
	}

	return append([]byte{}, raw...), nil
}

func marshalPacket(packet *types.Packet) []byte {
	ar := fastrlp.DefaultArenaPool.Get()
	defer fastrlp.DefaultArenaPool.Put(ar)

	sn := packet.SrcSn
	if sn == nil {
		sn = new(big.Int)
	}

	vv := ar.NewArray()
	vv.Set(ar.NewCopyBytes([]byte(packet.SrcNetwork)))
	vv.Set(ar.NewCopyBytes([]byte(packet.ContractAddress)))
	vv.Set(ar.NewBigInt(sn))
	vv.Set(ar.NewCopyBytes([]byte(packet.DstNetwork)))
	vv.Set(ar.NewCopyBytes(packet.Data))

	return vv.MarshalTo(nil)
}

func unmarshalPacket(data []byte) (*types.Packet, error) {
	p := fastrlp.DefaultParserPool.Get()
	defer fastrlp.DefaultParserPool.Put(p)

	v, err := p.Parse(data)
	if err != nil {
		return nil, err
	}

	elems, err := v.GetElems()
	if err != nil {
		return nil, err
	}

	if len(elems) != 5 {
		return nil, fmt.Errorf("%w: expected 5 fields but found %d", errMalformedPacket, len(elems))
	}

	fields := make([][]byte, len(elems))

	for i, elem := range elems {
		if i == 2 {
			continue
		}

		raw, err := elem.Bytes()
		if err != nil {
			return nil, fmt.Errorf("%w: field %d: %v", errMalformedPacket, i, err)
		}

		fields[i] = append([]byte{}, raw...)
	}

	sn := new(big.Int)
	if err := elems[2].GetBigInt(sn); err != nil {
		return nil, fmt.Errorf("%w: sequence number: %v", errMalformedPacket, err)
	}

	return &types.Packet{
		SrcNetwork:      string(fields[0]),
		ContractAddress: string(fields[1]),
		SrcSn:           sn,
		DstNetwork:      string(fields[3]),
		Data:            fields[4],
	}, nil
}
