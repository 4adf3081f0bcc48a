package settings

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/dgraph-io/badger/v3"
)

const badgerKeyPrefix = "settings:"

// BadgerStore keeps values in an embedded badger database, one key per value
// encoded as the big-endian IEEE-754 bits.
type BadgerStore struct {
	db      *badger.DB
	mu      sync.RWMutex
	isReady bool
}

func NewBadgerStore(dir string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil
	return openBadger(opts)
}

// NewInMemoryBadgerStore is a badger store that never touches disk.
func NewInMemoryBadgerStore() (*BadgerStore, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return openBadger(opts)
}

func openBadger(opts badger.Options) (*BadgerStore, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger settings: %w", err)
	}
	return &BadgerStore{db: db, isReady: true}, nil
}

func (s *BadgerStore) Get(key string) (float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isReady {
		return 0, false, ErrClosed
	}

	var data []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(badgerKeyPrefix + key))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			data = append([]byte{}, val...)
			return nil
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get %s: %w", key, err)
	}
	if len(data) != 8 {
		return 0, false, fmt.Errorf("get %s: corrupt value of %d bytes", key, len(data))
	}
	return math.Float64frombits(binary.BigEndian.Uint64(data)), true, nil
}

func (s *BadgerStore) Set(key string, v float64) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.isReady {
		return ErrClosed
	}

	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], math.Float64bits(v))
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(badgerKeyPrefix+key), buf[:])
	})
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *BadgerStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isReady {
		return nil
	}
	s.isReady = false
	return s.db.Close()
}
