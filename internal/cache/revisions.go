// Package cache stores computed artifact revisions between builds so
// watch-mode rebuilds skip rehashing unchanged files.
package cache

import (
	"context"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/vite-pwa/sveltekit-precache/internal/domain"
)

// RevisionStore is a BadgerDB-backed revision cache
type RevisionStore struct {
	db  *badger.DB
	ttl time.Duration
}

// Options contains cache configuration options
type Options struct {
	Directory string
	InMemory  bool
	TTL       time.Duration
}

// DefaultOptions returns default cache options
func DefaultOptions() Options {
	return Options{
		TTL: 7 * 24 * time.Hour,
	}
}

// NewRevisionStore opens (or creates) a revision store
func NewRevisionStore(opts Options) (*RevisionStore, error) {
	var badgerOpts badger.Options

	if opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if opts.Directory == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			opts.Directory = homeDir + "/.sveltekit-precache/cache"
		}

		if err := os.MkdirAll(opts.Directory, 0755); err != nil {
			return nil, err
		}

		badgerOpts = badger.DefaultOptions(opts.Directory)
	}

	// Badger's own logging is noise in a build step
	badgerOpts = badgerOpts.WithLogger(nil)

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return nil, err
	}

	return &RevisionStore{db: db, ttl: opts.TTL}, nil
}

// Get retrieves a cached revision by stat key
func (s *RevisionStore) Get(ctx context.Context, key string) (string, error) {
	var revision string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return domain.ErrCacheMiss
			}
			return err
		}

		value, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		revision = string(value)
		return nil
	})
	if err != nil {
		return "", err
	}
	return revision, nil
}

// Set stores a revision under the given stat key
func (s *RevisionStore) Set(ctx context.Context, key, revision string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(key), []byte(revision))
		if s.ttl > 0 {
			e = e.WithTTL(s.ttl)
		}
		return txn.SetEntry(e)
	})
}

// Clear removes all entries from the store
func (s *RevisionStore) Clear() error {
	return s.db.DropAll()
}

// Size returns the number of entries in the store
func (s *RevisionStore) Size() int64 {
	var count int64
	_ = s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count
}

// Close releases store resources
func (s *RevisionStore) Close() error {
	return s.db.Close()
}
