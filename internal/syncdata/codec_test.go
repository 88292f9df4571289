package syncdata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	"github.com/financialos/FinancialOS/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(storage.NewMemoryBackend())
	assert.NoError(t, err)
	return store
}

func TestCodec_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.AddTransaction(domain.Transaction{
		ID:       "t1",
		Type:     domain.TypeIncome,
		Amount:   1200,
		Category: "business",
		Source:   "shopify",
		Status:   domain.StatusReceived,
		Date:     time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC),
	}))
	assert.NoError(t, store.SetSetting("theme", "dark"))

	codec := NewCodec(store)
	before := store.TakeSnapshot()

	doc := codec.Export()
	assert.NoError(t, codec.Import(doc, false))

	after := store.TakeSnapshot()
	assert.Equal(t, before, after)
}

func TestCodec_MergeImportKeepsLocalAdditions(t *testing.T) {
	store := newTestStore(t)
	codec := NewCodec(store)
	doc := codec.Export()

	assert.NoError(t, store.AddTransaction(domain.Transaction{
		ID:       "local-only",
		Type:     domain.TypeExpense,
		Amount:   50,
		Category: "personal",
	}))

	assert.NoError(t, codec.Import(doc, true))
	_, ok := store.GetTransaction("local-only")
	assert.True(t, ok)
}

func TestCodec_ReplaceImportDropsLocalAdditions(t *testing.T) {
	store := newTestStore(t)
	codec := NewCodec(store)
	doc := codec.Export()

	assert.NoError(t, store.AddTransaction(domain.Transaction{
		ID:       "local-only",
		Type:     domain.TypeExpense,
		Amount:   50,
		Category: "personal",
	}))

	assert.NoError(t, codec.Import(doc, false))
	_, ok := store.GetTransaction("local-only")
	assert.False(t, ok)
}

func TestSyncCode_RoundTrip(t *testing.T) {
	store := newTestStore(t)
	assert.NoError(t, store.AddGoal(domain.Goal{
		ID:           "g1",
		Title:        "Emergency fund",
		Type:         domain.GoalFinancial,
		TargetAmount: 10000,
	}))

	doc := NewCodec(store).Export()
	code, err := EncodeSyncCode(doc)
	assert.NoError(t, err)
	assert.Contains(t, code, SyncCodePrefix)

	decoded, err := DecodeSyncCode(code)
	assert.NoError(t, err)
	assert.Len(t, decoded.Goals, 1)
	assert.Equal(t, "Emergency fund", decoded.Goals[0].Title)
}

func TestSyncCode_RejectsMalformedInput(t *testing.T) {
	_, err := DecodeSyncCode("not a sync code")
	assert.ErrorIs(t, err, ErrInvalidSyncCode)

	_, err = DecodeSyncCode(SyncCodePrefix + "!!!not-base64!!!")
	assert.ErrorIs(t, err, ErrInvalidSyncCode)

	_, err = DecodeSyncCode(SyncCodePrefix + "bm90IGpzb24=")
	assert.ErrorIs(t, err, ErrMalformedDocument)
}
