package storage

import (
	"github.com/0xPolygon/relay-aggregator/types"
)

// Storage is the persistent state of the relay aggregator
type Storage interface {
	ReadAdmin() (types.Address, bool, error)
	WriteAdmin(admin types.Address) error

	ReadRelayers() ([]types.Address, error)

	// WriteInitialState stores the admin and appends the relayers in a single batch
	WriteInitialState(admin types.Address, relayers []types.Address) error

	ReadPacket(key types.PacketKey) (*types.Packet, bool, error)
	WritePacket(packet *types.Packet) error

	ReadSignature(key types.PacketKey, relayer types.Address) ([]byte, bool, error)
	WriteSignature(key types.PacketKey, relayer types.Address, signature []byte) error

	Close() error
}

// Batch collects writes that are committed atomically
type Batch interface {
	Put(k []byte, v []byte)
	Write() error
}

// KV is a simple key-value store with batch support
type KV interface {
	Set(p []byte, v []byte) error
	Get(p []byte) ([]byte, bool, error)
	NewBatch() Batch
	Close() error
}
