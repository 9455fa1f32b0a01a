package events

import "sync"

// Bus fans a published value out to every subscriber synchronously, in
// registration order.
type Bus[T any] struct {
	mu     sync.RWMutex
	nextID int
	subs   []subscription[T]
}

type subscription[T any] struct {
	id int
	fn func(T)
}

func NewBus[T any]() *Bus[T] {
	return &Bus[T]{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus[T]) Subscribe(fn func(T)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription[T]{id: id, fn: fn})
	return func() { b.unsubscribe(id) }
}

func (b *Bus[T]) unsubscribe(id int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}

func (b *Bus[T]) Publish(v T) {
	b.mu.RLock()
	subs := make([]subscription[T], len(b.subs))
	copy(subs, b.subs)
	b.mu.RUnlock()
	for _, s := range subs {
		s.fn(v)
	}
}
