// Package local is the blob-backed record store: the whole dataset lives in
// one JSON document that is rewritten on every change.
package local

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/andresuchdata/agarbatti/backend-go/internal/blob"
	"github.com/andresuchdata/agarbatti/backend-go/internal/domain"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
	"github.com/rs/zerolog/log"
)

var (
	// ErrSchemaMismatch means the stored document was written with a layout
	// this build does not read. The document is left untouched.
	ErrSchemaMismatch = errors.New("stored snapshot has an unsupported schema version")
	// ErrCorrupt means the stored document is not a readable snapshot.
	ErrCorrupt = errors.New("stored snapshot is corrupt")
	ErrClosed  = errors.New("store is closed")
)

//go:embed defaults.json
var defaultsJSON []byte

// DefaultSnapshot returns the dataset a fresh store starts from.
func DefaultSnapshot() (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(defaultsJSON, &snap); err != nil {
		return nil, fmt.Errorf("decode default dataset: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}

type Option func(*Store)

// WithDefaults replaces the embedded dataset used to seed an empty backend.
func WithDefaults(snap *domain.Snapshot) Option {
	return func(s *Store) {
		s.defaults = snap
	}
}

// WithClock sets the clock used for lastUpdated and sequence years.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store serves reads from memory and persists every change synchronously.
// A change is applied to a copy of the state and only becomes visible once
// the backend write succeeded.
type Store struct {
	mu       sync.Mutex
	backend  blob.Backend
	state    *domain.Snapshot
	defaults *domain.Snapshot
	now      func() time.Time
	closed   bool
}

var _ repository.Store = (*Store)(nil)

// Open reads the document from backend. When the backend holds nothing yet,
// the default dataset is written and served. Empty collections in an
// existing document are kept as they are.
func Open(ctx context.Context, backend blob.Backend, opts ...Option) (*Store, error) {
	s := &Store{
		backend: backend,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := backend.Read(ctx)
	switch {
	case errors.Is(err, blob.ErrNotFound):
		seed, err := s.seed()
		if err != nil {
			return nil, err
		}
		if err := s.persist(ctx, seed); err != nil {
			return nil, err
		}
		s.state = seed
		log.Info().Msg("local store seeded with the default dataset")
		return s, nil
	case err != nil:
		return nil, fmt.Errorf("read snapshot: %w", err)
	}

	snap, err := decode(data)
	if err != nil {
		return nil, err
	}
	s.state = snap
	log.Debug().
		Int("products", len(snap.Products)).
		Int("sales_orders", len(snap.SalesOrders)).
		Msg("local store loaded")
	return s, nil
}

func decode(data []byte) (*domain.Snapshot, error) {
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := snap.CheckVersion(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	snap.Normalize()
	return &snap, nil
}

func (s *Store) seed() (*domain.Snapshot, error) {
	if s.defaults != nil {
		snap := s.defaults.Clone()
		snap.Normalize()
		return snap, nil
	}
	return DefaultSnapshot()
}

func (s *Store) persist(ctx context.Context, snap *domain.Snapshot) error {
	snap.LastUpdated = s.now().UTC()
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.backend.Write(ctx, data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// mutate runs fn against a copy of the state, persists the copy and swaps it
// in. If fn or the write fails the state is unchanged.
func (s *Store) mutate(ctx context.Context, fn func(next *domain.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	next := s.state.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if err := s.persist(ctx, next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Store) view(fn func(cur *domain.Snapshot)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	fn(s.state)
	return nil
}

func (s *Store) year() int {
	return s.now().Year()
}

func (s *Store) Load(ctx context.Context) (*domain.Snapshot, error) {
	var out *domain.Snapshot
	err := s.view(func(cur *domain.Snapshot) {
		out = cur.Clone()
	})
	return out, err
}

func (s *Store) Replace(ctx context.Context, snap *domain.Snapshot) error {
	if err := snap.CheckVersion(); err != nil {
		return fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		*next = *snap.Clone()
		next.SchemaVersion = domain.SchemaVersion
		next.Normalize()
		return nil
	})
}

func (s *Store) ReplaceCollection(ctx context.Context, c domain.Collection, src *domain.Snapshot) error {
	return s.mutate(ctx, func(next *domain.Snapshot) error {
		return next.CopyCollection(c, src)
	})
}

// Reset discards everything and writes the default dataset.
func (s *Store) Reset(ctx context.Context) error {
	seed, err := s.seed()
	if err != nil {
		return err
	}
	if err := s.mutate(ctx, func(next *domain.Snapshot) error {
		*next = *seed
		return nil
	}); err != nil {
		return err
	}
	log.Warn().Msg("local store reset to the default dataset")
	return nil
}

// Close writes the current state one last time and releases the backend.
func (s *Store) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	flushErr := s.persist(ctx, s.state)
	if err := s.backend.Close(); err != nil && flushErr == nil {
		return fmt.Errorf("close backend: %w", err)
	}
	return flushErr
}

func indexOf[T any](items []T, id int64, idOf func(T) int64) int {
	for i := range items {
		if idOf(items[i]) == id {
			return i
		}
	}
	return -1
}

func notFound(c domain.Collection, id int64) error {
	return fmt.Errorf("%s %d: %w", c, id, repository.ErrNotFound)
}
