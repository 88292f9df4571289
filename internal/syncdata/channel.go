package syncdata

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/financialos/FinancialOS/internal/storage"
)

const publishDebounce = 250 * time.Millisecond

// ChannelSync keeps one store in step with the other replicas attached to
// the same Broadcaster. Local mutations are debounced and published as a
// full export; inbound messages from other origins are merged in. Echoes
// of this replica's own messages are dropped, and a merge that changes
// nothing writes nothing, so two replicas at rest stay silent.
type ChannelSync struct {
	origin      string
	codec       *Codec
	store       *storage.Store
	broadcaster *Broadcaster

	changes chan storage.ChangeEvent
	inbox   chan Message
	done    chan struct{}
}

func NewChannelSync(store *storage.Store, broadcaster *Broadcaster) *ChannelSync {
	return &ChannelSync{
		origin:      uuid.New().String(),
		codec:       NewCodec(store),
		store:       store,
		broadcaster: broadcaster,
		changes:     store.Subscribe(),
		done:        make(chan struct{}),
	}
}

// Origin identifies this replica on the channel.
func (c *ChannelSync) Origin() string { return c.origin }

func (c *ChannelSync) Start() {
	c.inbox = c.broadcaster.Subscribe()
	go c.run()
}

func (c *ChannelSync) Stop() {
	close(c.done)
}

func (c *ChannelSync) run() {
	var publish *time.Timer
	var pending <-chan time.Time
	for {
		select {
		case <-c.done:
			if publish != nil {
				publish.Stop()
			}
			c.store.Unsubscribe(c.changes)
			c.broadcaster.Unsubscribe(c.inbox)
			return
		case _, ok := <-c.changes:
			if !ok {
				return
			}
			if publish == nil {
				publish = time.NewTimer(publishDebounce)
			} else {
				if !publish.Stop() {
					select {
					case <-publish.C:
					default:
					}
				}
				publish.Reset(publishDebounce)
			}
			pending = publish.C
		case <-pending:
			pending = nil
			c.broadcaster.Publish(Message{Origin: c.origin, Document: c.codec.Export()})
		case msg, ok := <-c.inbox:
			if !ok {
				return
			}
			if msg.Origin == c.origin {
				continue
			}
			if err := c.codec.Import(msg.Document, true); err != nil {
				log.Printf("channel sync: merge from %s failed: %v", msg.Origin, err)
			}
		}
	}
}
