// Package storage provides the durable key-value records ytf keeps its
// collections in.
//
// Every record is a whole JSON document stored under a fixed key. Writers
// replace records wholesale; when two ytf processes write the same key, the
// last write wins. There is no cross-process locking.
package storage

import (
	"errors"
	"fmt"
	"sync"
)

// ErrNotFound is returned by Get when no record exists for a key.
var ErrNotFound = errors.New("record not found")

// Kinds of backend selectable from configuration.
const (
	KindFile   = "file"
	KindSQLite = "sqlite"
	KindMemory = "memory"
)

// Record is one key and its full value.
type Record struct {
	Key   string
	Value []byte
}

// Backend reads and replaces records.
type Backend interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(key string) ([]byte, error)
	// Put replaces every given record. Backends that support it apply all
	// records or none.
	Put(records ...Record) error
	Close() error
}

// Open returns the backend of the given kind rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch kind {
	case KindFile, "":
		return NewFile(dir), nil
	case KindSQLite:
		db, err := OpenSQLite(dir)
		if err != nil {
			return nil, err
		}
		return db, nil
	case KindMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage kind %q", kind)
	}
}

// Memory keeps records in process memory. It backs tests and throwaway runs.
type Memory struct {
	mu      sync.RWMutex
	records map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string][]byte)}
}

func (m *Memory) Get(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	v, ok := m.records[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Put(records ...Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		m.records[r.Key] = append([]byte(nil), r.Value...)
	}
	return nil
}

func (m *Memory) Close() error { return nil }
