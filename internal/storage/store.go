package storage

import (
	"fmt"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/pders01/hnstories/internal/debuglog"
)

var settingsBucket = []byte("settings")

// Store is a small durable key-value store for user settings such as the
// last committed search term.
type Store struct {
	db *bolt.DB
}

func NewStore(dbPath string, timeout time.Duration) (*Store, error) {
	if timeout <= 0 {
		timeout = 1 * time.Second
	}

	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: timeout})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, createErr := tx.CreateBucketIfNotExists(settingsBucket)
		return createErr
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating buckets: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get returns the value stored under key. ok is false when the key is absent.
func (s *Store) Get(key string) (value string, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(settingsBucket).Get([]byte(key))
		if data == nil {
			return nil
		}
		value, ok = string(data), true
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("reading %q: %w", key, err)
	}
	return value, ok, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key, value string) error {
	err := s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(settingsBucket).Put([]byte(key), []byte(value))
	})
	if err != nil {
		debuglog.Errorf("persisting %q: %v", key, err)
		return fmt.Errorf("writing %q: %w", key, err)
	}
	return nil
}
