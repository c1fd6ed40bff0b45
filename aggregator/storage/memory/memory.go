package memory

import (
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
	"github.com/0xPolygon/relay-aggregator/helper/hex"
)

// NewMemoryStorage creates the new storage reference with inmemory
func NewMemoryStorage(logger hclog.Logger, cacheSize int) (*storage.KeyValueStorage, error) {
	db := &memoryKV{db: map[string][]byte{}}

	return storage.NewKeyValueStorage(logger, db, cacheSize)
}

// memoryKV is an in memory implementation of the kv storage
type memoryKV struct {
	lock sync.RWMutex
	db   map[string][]byte
}

func (m *memoryKV) Set(p []byte, v []byte) error {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.db[hex.EncodeToHex(p)] = append([]byte{}, v...)

	return nil
}

func (m *memoryKV) Get(p []byte) ([]byte, bool, error) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	v, ok := m.db[hex.EncodeToHex(p)]
	if !ok {
		return nil, false, nil
	}

	return append([]byte{}, v...), true, nil
}

func (m *memoryKV) NewBatch() storage.Batch {
	return &memoryBatch{kv: m}
}

func (m *memoryKV) Close() error {
	return nil
}

type memoryBatch struct {
	kv   *memoryKV
	keys []string
	vals [][]byte
}

func (b *memoryBatch) Put(k []byte, v []byte) {
	b.keys = append(b.keys, hex.EncodeToHex(k))
	b.vals = append(b.vals, append([]byte{}, v...))
}

func (b *memoryBatch) Write() error {
	b.kv.lock.Lock()
	defer b.kv.lock.Unlock()

	for i, k := range b.keys {
		b.kv.db[k] = b.vals[i]
	}

	return nil
}
