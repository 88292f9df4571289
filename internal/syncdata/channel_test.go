package syncdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	"github.com/financialos/FinancialOS/internal/storage"
)

func TestBroadcaster_DropsNothingForIdleSubscribers(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	b.Publish(Message{Origin: "a", Document: Document{LastSync: 1}})

	select {
	case msg := <-sub:
		assert.Equal(t, "a", msg.Origin)
	case <-time.After(time.Second):
		t.Fatal("expected a broadcast message")
	}
}

func TestBroadcaster_PublishNeverBlocksOnFullSubscriber(t *testing.T) {
	b := NewBroadcaster()
	sub := b.Subscribe()
	defer b.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			b.Publish(Message{Origin: "a"})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}

func TestChannelSync_ReplicasConverge(t *testing.T) {
	broadcaster := NewBroadcaster()

	storeA, err := storage.NewStore(storage.NewMemoryBackend())
	assert.NoError(t, err)
	storeB, err := storage.NewStore(storage.NewMemoryBackend())
	assert.NoError(t, err)

	syncA := NewChannelSync(storeA, broadcaster)
	syncB := NewChannelSync(storeB, broadcaster)
	syncA.Start()
	syncB.Start()
	defer syncA.Stop()
	defer syncB.Stop()

	assert.NoError(t, storeA.AddTransaction(domain.Transaction{
		ID: "t1", Type: domain.TypeExpense, Amount: 42, Category: "personal",
	}))

	assert.Eventually(t, func() bool {
		_, ok := storeB.GetTransaction("t1")
		return ok
	}, 3*time.Second, 50*time.Millisecond)
}

func TestChannelSync_DistinctOrigins(t *testing.T) {
	broadcaster := NewBroadcaster()
	store, err := storage.NewStore(storage.NewMemoryBackend())
	assert.NoError(t, err)

	a := NewChannelSync(store, broadcaster)
	b := NewChannelSync(store, broadcaster)
	assert.NotEqual(t, a.Origin(), b.Origin())
}

func TestChannelSync_StopReleasesStoreSubscription(t *testing.T) {
	store, err := storage.NewStore(storage.NewMemoryBackend())
	assert.NoError(t, err)

	sync := NewChannelSync(store, NewBroadcaster())
	sync.Start()
	sync.Stop()

	// The store closes a subscription channel when it is released.
	assert.Eventually(t, func() bool {
		select {
		case _, open := <-sync.changes:
			return !open
		default:
			return false
		}
	}, 3*time.Second, 50*time.Millisecond)
}
