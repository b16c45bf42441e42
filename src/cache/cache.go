// Package cache is the read-side cache for the lifecycle engine. Entries are
// whole JSON documents addressed by hierarchical keys; mutations invalidate
// declared key families by prefix, never patch entries in place.
package cache

import (
	"encoding/json"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open creates a store at dir, or an in-memory store when dir is empty.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	var opts badger.Options
	if dir == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		opts = badger.DefaultOptions(dir)
	}
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Get unmarshals the cached entry for key into out and reports whether the
// key was present. Decode failures count as misses; the stale entry is
// dropped.
func (s *Store) Get(key string, out any) bool {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		missTotal.Inc()
		return false
	}
	if err := json.Unmarshal(raw, out); err != nil {
		s.logger.Warn("cache entry undecodable, dropping", "key", key, "err", err)
		s.drop(key)
		missTotal.Inc()
		return false
	}
	hitTotal.Inc()
	return true
}

// Set replaces the entry for key wholesale.
func (s *Store) Set(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		s.logger.Warn("cache set skipped", "key", key, "err", err)
		return
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		s.logger.Warn("cache set failed", "key", key, "err", err)
		return
	}
	setTotal.Inc()
}

// Invalidate deletes every entry whose key starts with any of the given
// prefixes. Called only after a successful mutation.
func (s *Store) Invalidate(prefixes ...string) {
	for _, prefix := range prefixes {
		err := s.db.Update(func(txn *badger.Txn) error {
			opts := badger.DefaultIteratorOptions
			opts.PrefetchValues = false
			opts.Prefix = []byte(prefix)

			it := txn.NewIterator(opts)
			defer it.Close()

			var keys [][]byte
			for it.Rewind(); it.Valid(); it.Next() {
				keys = append(keys, it.Item().KeyCopy(nil))
			}
			for _, k := range keys {
				if err := txn.Delete(k); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			s.logger.Warn("cache invalidation failed", "prefix", prefix, "err", err)
			continue
		}
		invalidateTotal.Inc()
	}
}

func (s *Store) drop(key string) {
	_ = s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(key))
	})
}
