package core

import (
	"foodwhere/pkg/domain"
	"sync"
)

// Action describes the kind of mutation that produced a Change.
type Action string

// Supported change actions.
const (
	ActionCreate  Action = "create"
	ActionUpdate  Action = "update"
	ActionDelete  Action = "delete"
	ActionReplace Action = "replace"
	ActionSort    Action = "sort"
)

// Change announces that the address book moved to Version. Subscribers that
// fall behind only see the most recent pending change, so a receiver should
// re-read the book rather than replay changes.
type Change struct {
	Version uint64
	Entity  domain.EntityType
	Action  Action
}

type subscribers struct {
	mu   sync.Mutex
	next int
	subs map[int]chan Change
}

func (s *subscribers) subscribe() (<-chan Change, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subs == nil {
		s.subs = make(map[int]chan Change)
	}
	id := s.next
	s.next++
	ch := make(chan Change, 1)
	s.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			delete(s.subs, id)
			close(ch)
		})
	}
}

func (s *subscribers) publish(c Change) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subs {
		// Replace a stale pending change with the newest one.
		select {
		case ch <- c:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- c:
			default:
			}
		}
	}
}
