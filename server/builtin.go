package server

import (
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
	"github.com/0xPolygon/relay-aggregator/aggregator/storage/boltdb"
	"github.com/0xPolygon/relay-aggregator/aggregator/storage/leveldb"
	"github.com/0xPolygon/relay-aggregator/aggregator/storage/memory"
)

type StorageType string

const (
	LevelDBStorage StorageType = "leveldb"
	BoltDBStorage  StorageType = "boltdb"
	MemoryStorage  StorageType = "memory"
)

// storageFactory opens a storage backend inside the data directory
type storageFactory func(dataDir string, logger hclog.Logger, cacheSize int) (storage.Storage, error)

var storageBackends = map[StorageType]storageFactory{
	LevelDBStorage: func(dataDir string, logger hclog.Logger, cacheSize int) (storage.Storage, error) {
		return leveldb.NewLevelDBStorage(filepath.Join(dataDir, "relay"), logger, cacheSize)
	},
	BoltDBStorage: func(dataDir string, logger hclog.Logger, cacheSize int) (storage.Storage, error) {
		return boltdb.NewBoltDBStorage(filepath.Join(dataDir, "relay.db"), logger, cacheSize)
	},
	MemoryStorage: func(_ string, logger hclog.Logger, cacheSize int) (storage.Storage, error) {
		return memory.NewMemoryStorage(logger, cacheSize)
	},
}

// StorageSupported reports whether value names a storage backend
func StorageSupported(value string) bool {
	_, ok := storageBackends[StorageType(value)]

	return ok
}

// isPersistent reports whether the backend needs a data directory
func (s StorageType) isPersistent() bool {
	return s != MemoryStorage
}
