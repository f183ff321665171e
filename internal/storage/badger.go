// ABOUTME: Badger-backed storage implementation for annotation data
// ABOUTME: Persists JSON snapshots under versioned keys matching the web app layout

package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	badger "github.com/dgraph-io/badger/v3"
)

// Versioned storage keys, identical to the web app's localStorage keys
// so the on-disk layout documents itself.
const (
	stateKey      = "geomark-storage"
	onboardingKey = "onboarding-storage"
)

// BadgerStore implements Repository with a local badger key-value
// database. It is the default backend.
type BadgerStore struct {
	db *badger.DB
}

// Compile-time check that BadgerStore implements Repository.
var _ Repository = (*BadgerStore)(nil)

// NewBadgerStore opens (creating if needed) a badger database rooted
// at dir.
func NewBadgerStore(dir string) (*BadgerStore, error) {
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	opts := badger.DefaultOptions(filepath.Join(dir, "kv")).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}

// LoadState reads the annotation snapshot. A missing key yields the
// fresh-install state, not an error.
func (s *BadgerStore) LoadState() (State, error) {
	state := EmptyState()
	found, err := s.get(stateKey, &state)
	if err != nil {
		return State{}, err
	}
	if !found {
		return EmptyState(), nil
	}
	return state, nil
}

// SaveState replaces the annotation snapshot.
func (s *BadgerStore) SaveState(state State) error {
	return s.set(stateKey, state)
}

// LoadOnboarding reads the guided-tour snapshot.
func (s *BadgerStore) LoadOnboarding() (Onboarding, error) {
	var ob Onboarding
	if _, err := s.get(onboardingKey, &ob); err != nil {
		return Onboarding{}, err
	}
	return ob, nil
}

// SaveOnboarding replaces the guided-tour snapshot.
func (s *BadgerStore) SaveOnboarding(ob Onboarding) error {
	return s.set(onboardingKey, ob)
}

func (s *BadgerStore) get(key string, v any) (bool, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *BadgerStore) set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), raw)
	})
	if err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}
