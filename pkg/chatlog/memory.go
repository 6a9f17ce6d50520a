package chatlog

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	msgs   []Message
	subs   map[uint64]*subscriber
	nextID uint64
	closed bool
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{subs: make(map[uint64]*subscriber)}
}

func (s *MemoryStore) Append(ctx context.Context, msg *Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stamp(msg)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrStoreClosed
	}
	s.msgs = append(s.msgs, *msg)
	for _, sub := range s.subs {
		sub.deliver(*msg)
	}
	return nil
}

func (s *MemoryStore) Subscribe(ctx context.Context) (<-chan Message, CancelFunc, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, nil, ErrStoreClosed
	}
	id := s.nextID
	s.nextID++
	sub := newSubscriber(s.msgs)
	s.subs[id] = sub
	s.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			sub.stop()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			cancel()
		case <-sub.done:
		}
	}()
	return sub.ch, cancel, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Message, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}
	out := make([]Message, len(s.msgs))
	copy(out, s.msgs)
	return out, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	subs := make([]*subscriber, 0, len(s.subs))
	for _, sub := range s.subs {
		subs = append(subs, sub)
	}
	s.subs = make(map[uint64]*subscriber)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.stop()
	}
	return nil
}

// subscriber decouples delivery from Append: each one drains its own queue
// in a goroutine, so a slow reader never blocks the store or loses ordering.
type subscriber struct {
	mu     sync.Mutex
	cond   *sync.Cond
	queue  []Message
	closed bool

	ch   chan Message
	done chan struct{}
}

func newSubscriber(backlog []Message) *subscriber {
	sub := &subscriber{
		queue: append([]Message(nil), backlog...),
		ch:    make(chan Message),
		done:  make(chan struct{}),
	}
	sub.cond = sync.NewCond(&sub.mu)
	go sub.run()
	return sub
}

func (sub *subscriber) run() {
	defer close(sub.ch)
	for {
		sub.mu.Lock()
		for len(sub.queue) == 0 && !sub.closed {
			sub.cond.Wait()
		}
		if sub.closed {
			sub.mu.Unlock()
			return
		}
		msg := sub.queue[0]
		sub.queue = sub.queue[1:]
		sub.mu.Unlock()

		select {
		case sub.ch <- msg:
		case <-sub.done:
			return
		}
	}
}

func (sub *subscriber) deliver(msg Message) {
	sub.mu.Lock()
	defer sub.mu.Unlock()
	if sub.closed {
		return
	}
	sub.queue = append(sub.queue, msg)
	sub.cond.Signal()
}

func (sub *subscriber) stop() {
	sub.mu.Lock()
	if sub.closed {
		sub.mu.Unlock()
		return
	}
	sub.closed = true
	close(sub.done)
	sub.cond.Signal()
	sub.mu.Unlock()
}
