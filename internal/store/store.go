// Package store holds the application state container. It is the single
// writer of model.AppState: every change goes through Commit, one mutation
// at a time, and readers only ever see whole snapshots.
package store

import (
	"sync"

	"github.com/dtroode/eventhub-auth/internal/logger"
	"github.com/dtroode/eventhub-auth/internal/model"
)

// Mutation is one named, indivisible state transition. Apply must leave the
// state consistent whether or not it returns an error; the error only tells
// the caller which outcome was committed.
type Mutation struct {
	Name  string
	Apply func(state *model.AppState) error
}

// Store is the process-wide state container. Create one per process, or one
// per test for isolation.
type Store struct {
	mu          sync.Mutex
	state       model.AppState
	version     uint64
	subscribers map[uint64]chan model.AppState
	nextSubID   uint64
	logger      *logger.Logger
}

// New creates a store with empty slices and no known users.
func New(logger *logger.Logger) *Store {
	return &Store{
		subscribers: make(map[uint64]chan model.AppState),
		logger:      logger,
	}
}

// State returns a deep copy of the current state.
func (s *Store) State() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.state.Clone()
}

// Version returns the number of commits applied so far.
func (s *Store) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.version
}

// Commit applies m and publishes the resulting snapshot to subscribers.
func (s *Store) Commit(m Mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := m.Apply(&s.state)
	s.version++

	s.logger.Debug("Store: mutation committed",
		"mutation", m.Name,
		"version", s.version,
		"rejected", err != nil)

	snapshot := s.state.Clone()
	for _, ch := range s.subscribers {
		publish(ch, snapshot)
	}

	return err
}

// Subscribe returns a channel receiving the snapshot after every commit and
// a function that cancels the subscription. A slow subscriber only misses
// intermediate snapshots; the last one is always delivered.
func (s *Store) Subscribe() (<-chan model.AppState, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++

	ch := make(chan model.AppState, 1)
	s.subscribers[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			delete(s.subscribers, id)
			close(ch)
		})
	}

	return ch, cancel
}

// publish replaces a pending undelivered snapshot with the newer one. Only
// Commit sends, under s.mu, so the second send never blocks.
func publish(ch chan model.AppState, snapshot model.AppState) {
	select {
	case ch <- snapshot:
		return
	default:
	}

	select {
	case <-ch:
	default:
	}

	select {
	case ch <- snapshot:
	default:
	}
}
