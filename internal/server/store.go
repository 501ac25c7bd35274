package server

import (
	"container/list"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/zephyrtronium/distexpr/internal/keypad"
)

var (
	ErrPadNotFound       = errors.New("pad not found")
	ErrExpressionTooLong = errors.New("expression too long")
)

// PadStore holds live keypads by id. When full, creating a pad evicts the
// least recently used one. It is safe for concurrent use; each pad is only
// touched while the store's lock is held.
type PadStore struct {
	mu     sync.Mutex
	max    int
	maxLen int
	pads   map[uuid.UUID]*list.Element
	// order has the most recently used pad at the front.
	order *list.List
}

type padEntry struct {
	id  uuid.UUID
	pad *keypad.Pad
}

// NewPadStore creates a store holding at most max pads, each with
// expressions of at most maxLen bytes. A max of zero or less means no limit.
func NewPadStore(max, maxLen int) *PadStore {
	return &PadStore{
		max:    max,
		maxLen: maxLen,
		pads:   make(map[uuid.UUID]*list.Element),
		order:  list.New(),
	}
}

// Create adds a new empty pad.
func (s *PadStore) Create() (uuid.UUID, keypad.State) {
	id := uuid.New()
	p := keypad.New()

	s.mu.Lock()
	defer s.mu.Unlock()
	for s.max > 0 && s.order.Len() >= s.max {
		oldest := s.order.Back()
		delete(s.pads, oldest.Value.(*padEntry).id)
		s.order.Remove(oldest)
	}
	s.pads[id] = s.order.PushFront(&padEntry{id: id, pad: p})
	return id, p.State()
}

// Get returns the state of a pad.
func (s *PadStore) Get(id uuid.UUID) (keypad.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.lookup(id)
	if err != nil {
		return keypad.State{}, err
	}
	return p.State(), nil
}

// Press presses keys on a pad in order. It stops at the first unknown key or
// at the first key that would make the expression longer than the store
// allows; keys before that stay pressed. The returned state is current even
// when err is not nil.
func (s *PadStore) Press(id uuid.UUID, keys []string) (keypad.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, err := s.lookup(id)
	if err != nil {
		return keypad.State{}, err
	}
	for _, k := range keys {
		if err := p.Press(k); err != nil {
			return p.State(), err
		}
		if len(p.Expression()) > s.maxLen {
			// Every key that lengthens the expression is undone by one
			// backspace.
			_ = p.Press(keypad.KeyBackspace)
			return p.State(), ErrExpressionTooLong
		}
	}
	return p.State(), nil
}

// Delete removes a pad. It reports whether the pad existed.
func (s *PadStore) Delete(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.pads[id]
	if !ok {
		return false
	}
	delete(s.pads, id)
	s.order.Remove(e)
	return true
}

// Len returns the number of live pads.
func (s *PadStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// lookup finds a pad and marks it most recently used. s.mu must be held.
func (s *PadStore) lookup(id uuid.UUID) (*keypad.Pad, error) {
	e, ok := s.pads[id]
	if !ok {
		return nil, ErrPadNotFound
	}
	s.order.MoveToFront(e)
	return e.Value.(*padEntry).pad, nil
}
