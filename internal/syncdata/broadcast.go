package syncdata

import "sync"

// Message is one replica's exported state, tagged with the replica that
// produced it so subscribers can drop their own echoes.
type Message struct {
	Origin   string   `json:"origin"`
	Document Document `json:"document"`
}

// Broadcaster fans exported documents out to every subscribed replica in
// the process. Publish never blocks; a subscriber that cannot keep up
// loses messages rather than stalling the publisher.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[chan Message]struct{}
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan Message]struct{})}
}

func (b *Broadcaster) Subscribe() chan Message {
	ch := make(chan Message, 8)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan Message) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Publish(msg Message) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
}
