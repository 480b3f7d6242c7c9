package util

import (
	"errors"
	"sync"
)

// ErrInFlight is returned when the same action is started again before the
// previous one has settled.
var ErrInFlight = errors.New("action already in progress")

// InFlight tracks keys of actions that have not settled yet.
type InFlight[K comparable] struct {
	mux     sync.Mutex
	pending map[K]bool
}

func NewInFlight[K comparable]() *InFlight[K] {
	return &InFlight[K]{
		pending: map[K]bool{},
	}
}

// TryBegin marks the key pending. Returns false if it already was.
func (s *InFlight[K]) TryBegin(key K) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	if s.pending[key] {
		return false
	}
	s.pending[key] = true
	return true
}

func (s *InFlight[K]) End(key K) {
	s.mux.Lock()
	defer s.mux.Unlock()
	delete(s.pending, key)
}

func (s *InFlight[K]) IsPending(key K) bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.pending[key]
}
