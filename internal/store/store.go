package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/dojo/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketStorage = []byte("storage")
)

// LocalStore implements domain.KeyValueStore using BoltDB.
// It plays the role of a browser's local storage: one flat string namespace
// shared by every page, persisted across sessions.
type LocalStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string]string
}

// NewLocalStore opens (or creates) the store at dbPath.
// An empty path gives a memory-only store that is lost on exit.
func NewLocalStore(dbPath string) (*LocalStore, error) {
	if dbPath == "" {
		// Memory-only mode (no persistence)
		return &LocalStore{cache: make(map[string]string)}, nil
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketStorage)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &LocalStore{db: db, cache: make(map[string]string)}, nil
}

func (s *LocalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Get returns the value stored under key
func (s *LocalStore) Get(key string) (string, bool, error) {
	// Check memory cache first
	s.mu.RLock()
	if v, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return v, true, nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return "", false, nil
	}

	var (
		value string
		found bool
	)
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketStorage)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			value = string(v) // copies out of the mmap
			found = true
		}
		return nil
	})
	if err != nil {
		return "", false, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	if !found {
		return "", false, nil
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()

	return value, true, nil
}

// Set stores value under key, overwriting any previous value
func (s *LocalStore) Set(key, value string) error {
	if s.db != nil {
		err := s.db.Update(func(tx *bolt.Tx) error {
			b := tx.Bucket(bucketStorage)
			return b.Put([]byte(key), []byte(value))
		})
		if err != nil {
			return fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
		}
	}

	s.mu.Lock()
	s.cache[key] = value
	s.mu.Unlock()
	return nil
}

// Keys lists stored keys with the given prefix, in byte order
func (s *LocalStore) Keys(prefix string) ([]string, error) {
	if s.db == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		var keys []string
		for k := range s.cache {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		return keys, nil
	}

	var keys []string
	err := s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketStorage)
		if b == nil {
			return nil
		}
		c := b.Cursor()
		prefixBytes := []byte(prefix)
		for k, _ := c.Seek(prefixBytes); k != nil && strings.HasPrefix(string(k), prefix); k, _ = c.Next() {
			keys = append(keys, string(k))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageUnavailable, err)
	}
	return keys, nil
}
