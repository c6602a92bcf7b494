package repo

import (
	"context"
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/fsr-protokoll/editor/internal/domain"
)

var slotBucket = []byte("slots")

// BoltSlotStore keeps slots in a single bbolt bucket.
type BoltSlotStore struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the bbolt file at path. It fails after one
// second if another process holds the file lock.
func OpenBolt(path string) (*BoltSlotStore, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("repo.OpenBolt: %w", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(slotBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("repo.OpenBolt: create bucket: %w", err)
	}
	return &BoltSlotStore{db: db}, nil
}

// Close releases the file lock.
func (s *BoltSlotStore) Close() error {
	return s.db.Close()
}

func (s *BoltSlotStore) Get(_ context.Context, key string) (string, error) {
	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		// Bytes returned by Get are only valid inside the transaction.
		if v := tx.Bucket(slotBucket).Get([]byte(key)); v != nil {
			value, found = string(v), true
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("repo.BoltSlotStore.Get: %w", err)
	}
	if !found {
		return "", fmt.Errorf("repo.BoltSlotStore.Get: %w", domain.ErrNotFound)
	}
	return value, nil
}

func (s *BoltSlotStore) Put(_ context.Context, key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		return fmt.Errorf("repo.BoltSlotStore.Put: %w", err)
	}
	return nil
}

func (s *BoltSlotStore) Delete(_ context.Context, key string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(slotBucket).Delete([]byte(key))
	})
	if err != nil {
		return fmt.Errorf("repo.BoltSlotStore.Delete: %w", err)
	}
	return nil
}
