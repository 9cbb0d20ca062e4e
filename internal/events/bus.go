package events

import (
	"log/slog"
	"sync"
)

// Bus is the in-process snapshot broadcaster. Each subscriber gets a small
// buffered channel; when a subscriber falls behind, the stale snapshot is
// dropped in favor of the newest one, since every snapshot is a full board.
type Bus struct {
	mu     sync.Mutex
	subs   map[int]chan Snapshot
	nextID int
	closed bool
}

// NewBus creates an empty broadcaster.
func NewBus() *Bus {
	return &Bus{subs: map[int]chan Snapshot{}}
}

// Publish delivers the snapshot to every subscriber without blocking.
func (b *Bus) Publish(snap Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	for id, ch := range b.subs {
		select {
		case ch <- snap:
		default:
			// Drop the oldest buffered snapshot and retry once.
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snap:
			default:
				slog.Debug("dropping snapshot for slow subscriber", "subscriber", id)
			}
		}
	}
}

// Subscribe registers a subscriber.
func (b *Bus) Subscribe() (<-chan Snapshot, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	ch := make(chan Snapshot, 1)
	if b.closed {
		close(ch)
		return ch, func() {}
	}
	b.subs[id] = ch
	return ch, func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}
}

// Close closes every subscriber channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
