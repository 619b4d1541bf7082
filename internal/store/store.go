// Package store owns the feedback and watch-later collections.
//
// A Store keeps an ordered in-memory collection, assigns entry identity and
// writes the whole collection through to a storage.Backend on every
// mutation, before returning. Several ytf processes sharing one backend are
// not coordinated: the last process to write a key wins.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/gauthierbraillon/ytf/internal/entry"
	"github.com/gauthierbraillon/ytf/internal/storage"
)

// Storage keys of the two collections.
const (
	FeedbackKey   = "feedback-list"
	WatchLaterKey = "watch-later-list"
)

// Entry is a stored record with a store-assigned id.
type Entry interface {
	EntryID() int64
}

// Draft carries caller fields and builds an entry once the store supplies
// the identity.
type Draft[E Entry] interface {
	Build(id int64, createdAt time.Time) (E, error)
}

// PersistenceError means a mutation was applied in memory but could not be
// written to durable storage. The two now disagree until the next
// successful write.
type PersistenceError struct {
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to save %s: %v", e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// IsPersistence reports whether err is, or wraps, a *PersistenceError.
func IsPersistence(err error) bool {
	var e *PersistenceError
	return errors.As(err, &e)
}

// Option configures a Store.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *slog.Logger
}

// WithClock sets the source of creation instants (useful for testing).
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger used for load warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Store is an ordered, write-through collection of entries of type E built
// from drafts of type D.
type Store[E Entry, D Draft[E]] struct {
	key     string
	backend storage.Backend
	now     func() time.Time
	logger  *slog.Logger

	mu      sync.Mutex
	entries []E
	lastID  int64
}

// New creates an empty store for key. Call Load before use.
func New[E Entry, D Draft[E]](backend storage.Backend, key string, opts ...Option) *Store[E, D] {
	o := options{now: time.Now, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return &Store[E, D]{
		key:     key,
		backend: backend,
		now:     o.now,
		logger:  o.logger,
		entries: make([]E, 0),
	}
}

// Feedback is the store of feedback reactions.
type Feedback = Store[entry.Feedback, entry.FeedbackDraft]

// WatchLater is the store of watch-later bookmarks.
type WatchLater = Store[entry.WatchLater, entry.WatchLaterDraft]

// NewFeedback creates the feedback store on backend.
func NewFeedback(backend storage.Backend, opts ...Option) *Feedback {
	return New[entry.Feedback, entry.FeedbackDraft](backend, FeedbackKey, opts...)
}

// NewWatchLater creates the watch-later store on backend.
func NewWatchLater(backend storage.Backend, opts ...Option) *WatchLater {
	return New[entry.WatchLater, entry.WatchLaterDraft](backend, WatchLaterKey, opts...)
}

// Key returns the storage key of the collection.
func (s *Store[E, D]) Key() string { return s.key }

// Load replaces the in-memory collection with the persisted one. A missing
// or unparsable record yields an empty collection; unparsable data is
// logged and will be overwritten by the next mutation. Only backend read
// failures are returned.
func (s *Store[E, D]) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = make([]E, 0)
	s.lastID = 0

	data, err := s.backend.Get(s.key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return fmt.Errorf("failed to load %s: %w", s.key, err)
	default:
		var loaded []E
		if err := json.Unmarshal(data, &loaded); err != nil {
			s.logger.Warn("discarding unreadable collection", "key", s.key, "error", err)
		} else if loaded != nil {
			s.entries = loaded
		}
	}

	for _, e := range s.entries {
		s.lastID = max(s.lastID, e.EntryID())
	}

	seq, err := s.backend.Get(s.seqKey())
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return fmt.Errorf("failed to load %s: %w", s.seqKey(), err)
	default:
		if n, err := strconv.ParseInt(string(seq), 10, 64); err == nil {
			s.lastID = max(s.lastID, n)
		} else {
			s.logger.Warn("ignoring unreadable id counter", "key", s.seqKey(), "error", err)
		}
	}

	s.logger.Debug("collection loaded", "key", s.key, "entries", len(s.entries), "last_id", s.lastID)
	return nil
}

// Add builds a new entry from draft, appends it and persists the
// collection. Invalid drafts are rejected without touching the collection.
//
// If persisting fails the entry stays in memory and is still returned,
// together with a *PersistenceError.
func (s *Store[E, D]) Add(draft D) (E, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.lastID + 1
	e, err := draft.Build(id, s.now())
	if err != nil {
		var zero E
		return zero, err
	}

	s.lastID = id
	s.entries = append(s.entries, e)
	return e, s.persist()
}

// Remove drops the entry with the given id, if any, and persists the
// collection either way. Ids are never handed out again.
func (s *Store[E, D]) Remove(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]E, 0, len(s.entries))
	for _, e := range s.entries {
		if e.EntryID() != id {
			kept = append(kept, e)
		}
	}
	s.entries = kept
	return s.persist()
}

// List returns a copy of the collection, oldest first.
func (s *Store[E, D]) List() []E {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]E, len(s.entries))
	copy(out, s.entries)
	return out
}

// Get returns the entry with the given id.
func (s *Store[E, D]) Get(id int64) (E, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.EntryID() == id {
			return e, true
		}
	}
	var zero E
	return zero, false
}

// Len returns the number of entries.
func (s *Store[E, D]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func (s *Store[E, D]) seqKey() string {
	return s.key + ":last-id"
}

// persist writes the id counter and the full collection. Callers hold mu.
func (s *Store[E, D]) persist() error {
	data, err := json.Marshal(s.entries)
	if err != nil {
		return &PersistenceError{Key: s.key, Err: err}
	}
	err = s.backend.Put(
		storage.Record{Key: s.seqKey(), Value: []byte(strconv.FormatInt(s.lastID, 10))},
		storage.Record{Key: s.key, Value: data},
	)
	if err != nil {
		return &PersistenceError{Key: s.key, Err: err}
	}
	return nil
}
