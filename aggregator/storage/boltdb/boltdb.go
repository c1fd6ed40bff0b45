package boltdb

import (
	"github.com/hashicorp/go-hclog"
	bolt "go.etcd.io/bbolt"

	"github.com/0xPolygon/relay-aggregator/aggregator/storage"
)

var bucket = []byte("relay")

// NewBoltDBStorage creates the new storage reference with boltdb
func NewBoltDBStorage(path string, logger hclog.Logger, cacheSize int) (*storage.KeyValueStorage, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucket)

		return err
	})
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	logger.Named("boltdb").Info("opened database", "path", path)

	return storage.NewKeyValueStorage(logger, &boltDBKV{db: db}, cacheSize)
}

// boltDBKV is the boltdb implementation of the kv storage
type boltDBKV struct {
	db *bolt.DB
}

func (l *boltDBKV) Set(p []byte, v []byte) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Put(p, v)
	})
}

func (l *boltDBKV) Get(p []byte) ([]byte, bool, error) {
	var (
		data  []byte
		found bool
	)

	err := l.db.View(func(tx *bolt.Tx) error {
		if v := tx.Bucket(bucket).Get(p); v != nil {
			// v is only valid for the lifetime of the tx, therefore copying
			data = make([]byte, len(v))
			copy(data, v)
			found = true
		}

		return nil
	})

	return data, found, err
}

// NewBatch creates a batch applied inside one update transaction
func (l *boltDBKV) NewBatch() storage.Batch {
	return &batchBoltDB{db: l.db}
}

func (l *boltDBKV) Close() error {
	return l.db.Close()
}

type kvPair struct {
	k []byte
	v []byte
}

type batchBoltDB struct {
	db    *bolt.DB
	pairs []kvPair
}

func (b *batchBoltDB) Put(k []byte, v []byte) {
	b.pairs = append(b.pairs, kvPair{
		k: append([]byte{}, k...),
		v: append([]byte{}, v...),
	})
}

func (b *batchBoltDB) Write() error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(bucket)

		for _, pair := range b.pairs {
			if err := bkt.Put(pair.k, pair.v); err != nil {
				return err
			}
		}

		return nil
	})
}
