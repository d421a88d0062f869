package canbus

import "sync"

// Broadcaster fans a raw incoming frame out to any number of observers,
// independent of whatever single-slot rendezvous (respslot.Slot) is also
// consuming it. The receive task feeds every frame it reads from the wire
// to the broadcaster, and only frames matching the response filter to the
// slot; the broadcaster exists
// purely for observability (logging taps, a future debug UI) and drops
// frames for subscribers that fall behind rather than block the receiver.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[chan Frame]struct{}
	onDrop      func(Frame)
}

// NewBroadcaster creates a Broadcaster. onDrop, if non-nil, is called
// (from the broadcasting goroutine) whenever a slow subscriber's channel
// is full and a frame is dropped for it.
func NewBroadcaster(onDrop func(Frame)) *Broadcaster {
	return &Broadcaster{
		subscribers: make(map[chan Frame]struct{}),
		onDrop:      onDrop,
	}
}

// Subscribe registers a new observer and returns its delivery channel.
func (b *Broadcaster) Subscribe() chan Frame {
	ch := make(chan Frame, 128)
	b.mu.Lock()
	b.subscribers[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes and closes an observer's channel.
func (b *Broadcaster) Unsubscribe(ch chan Frame) {
	b.mu.Lock()
	if _, ok := b.subscribers[ch]; ok {
		delete(b.subscribers, ch)
		close(ch)
	}
	b.mu.Unlock()
}

// Broadcast delivers frame to every current subscriber, dropping it for
// any subscriber whose channel is full.
func (b *Broadcaster) Broadcast(frame Frame) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subscribers {
		select {
		case ch <- frame:
		default:
			if b.onDrop != nil {
				b.onDrop(frame)
			}
		}
	}
}

// Close unsubscribes and closes every outstanding subscriber channel.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	for ch := range b.subscribers {
		delete(b.subscribers, ch)
		close(ch)
	}
	b.mu.Unlock()
}
