package leveldb

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
)

const (
	// minCache is the minimum memory allocate to leveldb
	// half write, half read
	minCache = 16 // 16 MiB

	// minHandles is the minimum number of files handles to leveldb open files
	minHandles = 16
)

// NewLevelDBStorage creates the new storage reference with leveldb
func NewLevelDBStorage(path string, logger hclog.Logger, cacheSize int) (*storage.KeyValueStorage, error) {
	options := &opt.Options{
		OpenFilesCacheCapacity: minHandles,
		BlockCacheCapacity:     minCache / 2 * opt.MiB,
		WriteBuffer:            minCache / 4 * opt.MiB,
	}

	db, err := leveldb.OpenFile(path, options)
	if err != nil {
		return nil, err
	}

	logger.Named("leveldb").Info("opened database", "path", path)

	return storage.NewKeyValueStorage(logger, &levelDBKV{db: db}, cacheSize)
}

// levelDBKV is the leveldb implementation of the kv storage
type levelDBKV struct {
	db *leveldb.DB
}

// Set sets the key-value pair in leveldb storage
func (l *levelDBKV) Set(p []byte, v []byte) error {
	return l.db.Put(p, v, nil)
}

// Get retrieves the key-value pair in leveldb storage
func (l *levelDBKV) Get(p []byte) ([]byte, bool, error) {
	data, err := l.db.Get(p, nil)
	if err != nil {
		if errors.Is(err, leveldb.ErrNotFound) {
			return nil, false, nil
		}

		return nil, false, err
	}

	return data, true, nil
}

// NewBatch creates a batch committed with a single leveldb write
func (l *levelDBKV) NewBatch() storage.Batch {
	return &batchLevelDB{db: l.db, b: new(leveldb.Batch)}
}

// Close closes the leveldb storage instance
func (l *levelDBKV) Close() error {
	return l.db.Close()
}

var _ storage.Batch = (*batchLevelDB)(nil)

type batchLevelDB struct {
	db *leveldb.DB
	b  *leveldb.Batch
}

func (b *batchLevelDB) Put(k []byte, v []byte) {
	b.b.Put(k, v)
}

func (b *batchLevelDB) Write() error {
	return b.db.Write(b.b, nil)
}
