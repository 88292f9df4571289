package application

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
	"github.com/financialos/FinancialOS/internal/storage"
)

func newLedgerFixture(t *testing.T) (*LedgerService, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(storage.NewMemoryBackend())
	assert.NoError(t, err)
	return NewLedgerService(store, store, store, store), store
}

func TestCreateTransaction_FeedsBoundGoalAndSideFund(t *testing.T) {
	svc, store := newLedgerFixture(t)
	assert.NoError(t, store.AddGoal(domain.Goal{
		ID:               "g1",
		Title:            "Store revenue",
		Type:             domain.GoalFinancial,
		TargetAmount:     100000,
		IncomeCategories: []string{"shopify"},
	}))

	err := svc.CreateTransaction(&domain.Transaction{
		ID:       "t1",
		Type:     domain.TypeIncome,
		Amount:   1000,
		Category: "business",
		Source:   "shopify",
		Status:   domain.StatusReceived,
	})
	assert.NoError(t, err)

	goal, _ := store.GetGoal("g1")
	assert.Equal(t, 1000.0, goal.CurrentAmount)

	fund := store.SideFund()
	assert.Equal(t, 50.0, fund.CurrentAmount)
}

func TestCreateTransaction_PendingIncomeHasNoDerivedEffects(t *testing.T) {
	svc, store := newLedgerFixture(t)
	assert.NoError(t, store.AddGoal(domain.Goal{
		ID:               "g1",
		Title:            "Store revenue",
		Type:             domain.GoalFinancial,
		TargetAmount:     100000,
		IncomeCategories: []string{"shopify"},
	}))

	err := svc.CreateTransaction(&domain.Transaction{
		ID:       "t1",
		Type:     domain.TypeIncome,
		Amount:   1000,
		Category: "business",
		Source:   "shopify",
		Status:   domain.StatusPending,
	})
	assert.NoError(t, err)

	goal, _ := store.GetGoal("g1")
	assert.Equal(t, 0.0, goal.CurrentAmount)
	assert.Equal(t, 0.0, store.SideFund().CurrentAmount)
}

func TestCreateTransaction_GoalClampedAtTarget(t *testing.T) {
	svc, store := newLedgerFixture(t)
	assert.NoError(t, store.AddGoal(domain.Goal{
		ID:               "g1",
		Title:            "Small goal",
		Type:             domain.GoalFinancial,
		TargetAmount:     500,
		CurrentAmount:    400,
		IncomeCategories: []string{"shopify"},
	}))

	err := svc.CreateTransaction(&domain.Transaction{
		ID:       "t1",
		Type:     domain.TypeIncome,
		Amount:   1000,
		Category: "business",
		Source:   "shopify",
		Status:   domain.StatusReceived,
	})
	assert.NoError(t, err)

	goal, _ := store.GetGoal("g1")
	assert.Equal(t, 500.0, goal.CurrentAmount)
}

func TestCreateTransaction_RevenueGoalTracksAllReceivedIncome(t *testing.T) {
	svc, store := newLedgerFixture(t)
	assert.NoError(t, store.AddGoal(domain.Goal{
		ID:           "g1",
		Title:        "Yearly revenue",
		Type:         domain.GoalFinancial,
		TargetAmount: 100000,
		Category:     domain.CategoryRevenue,
	}))

	assert.NoError(t, svc.CreateTransaction(&domain.Transaction{
		ID: "t1", Type: domain.TypeIncome, Amount: 700, Category: "business",
		Source: "shopify", Status: domain.StatusReceived,
	}))
	assert.NoError(t, svc.CreateTransaction(&domain.Transaction{
		ID: "t2", Type: domain.TypeIncome, Amount: 300, Category: "business",
		Source: "mentoring", Status: domain.StatusReceived,
	}))

	goal, _ := store.GetGoal("g1")
	assert.Equal(t, 1000.0, goal.CurrentAmount)
}

func TestCreateTransaction_CreditsLinkedAsset(t *testing.T) {
	svc, store := newLedgerFixture(t)
	assert.NoError(t, store.AddAsset(domain.Asset{
		ID: "a1", Name: "Checking", Type: domain.AssetLiquid, Value: 500, Currency: domain.CurrencyBase,
	}))

	assert.NoError(t, svc.CreateTransaction(&domain.Transaction{
		ID: "t1", Type: domain.TypeIncome, Amount: 1000, Category: "business",
		Source: "shopify", Status: domain.StatusReceived, AssetID: "a1",
	}))
	asset, _ := store.GetAsset("a1")
	assert.Equal(t, 1500.0, asset.Value)

	assert.NoError(t, svc.CreateTransaction(&domain.Transaction{
		ID: "t2", Type: domain.TypeExpense, Amount: 2000, Category: "personal", AssetID: "a1",
	}))
	asset, _ = store.GetAsset("a1")
	assert.Equal(t, 0.0, asset.Value)
}

func TestDeleteTransaction_ReversesDerivedState(t *testing.T) {
	svc, store := newLedgerFixture(t)
	assert.NoError(t, store.AddGoal(domain.Goal{
		ID:               "g1",
		Title:            "Store revenue",
		Type:             domain.GoalFinancial,
		TargetAmount:     100000,
		IncomeCategories: []string{"shopify"},
	}))
	assert.NoError(t, store.AddAsset(domain.Asset{
		ID: "a1", Name: "Checking", Type: domain.AssetLiquid, Value: 500, Currency: domain.CurrencyBase,
	}))

	assert.NoError(t, svc.CreateTransaction(&domain.Transaction{
		ID: "t1", Type: domain.TypeIncome, Amount: 1000, Category: "business",
		Source: "shopify", Status: domain.StatusReceived, AssetID: "a1",
	}))
	assert.NoError(t, svc.DeleteTransaction("t1"))

	goal, _ := store.GetGoal("g1")
	asset, _ := store.GetAsset("a1")
	assert.Equal(t, 0.0, goal.CurrentAmount)
	assert.Equal(t, 500.0, asset.Value)
	assert.Equal(t, 0.0, store.SideFund().CurrentAmount)
	assert.Empty(t, store.Transactions())
}

func TestDeleteTransaction_Unknown(t *testing.T) {
	svc, _ := newLedgerFixture(t)
	assert.ErrorIs(t, svc.DeleteTransaction("missing"), ledgerErrors.ErrNotFound)
}

func TestUpdateTransaction_SwapsEffects(t *testing.T) {
	svc, store := newLedgerFixture(t)
	assert.NoError(t, store.AddGoal(domain.Goal{
		ID:               "g1",
		Title:            "Store revenue",
		Type:             domain.GoalFinancial,
		TargetAmount:     100000,
		IncomeCategories: []string{"shopify"},
	}))

	assert.NoError(t, svc.CreateTransaction(&domain.Transaction{
		ID: "t1", Type: domain.TypeIncome, Amount: 1000, Category: "business",
		Source: "shopify", Status: domain.StatusReceived,
	}))
	assert.NoError(t, svc.UpdateTransaction(domain.Transaction{
		ID: "t1", Type: domain.TypeIncome, Amount: 400, Category: "business",
		Source: "shopify", Status: domain.StatusReceived,
	}))

	goal, _ := store.GetGoal("g1")
	assert.Equal(t, 400.0, goal.CurrentAmount)
	assert.InDelta(t, 20.0, store.SideFund().CurrentAmount, 1e-9)
}

func TestCreateTransaction_ValidationFailureStoresNothing(t *testing.T) {
	svc, store := newLedgerFixture(t)

	err := svc.CreateTransaction(&domain.Transaction{
		ID: "t1", Type: domain.TypeIncome, Amount: -5, Category: "business",
	})
	assert.True(t, ledgerErrors.IsValidationError(err))
	assert.Empty(t, store.Transactions())
}

func TestGetTransactionSummary_BucketsByYearMonthWeek(t *testing.T) {
	svc, _ := newLedgerFixture(t)

	assert.NoError(t, svc.CreateTransaction(&domain.Transaction{
		ID: "t1", Type: domain.TypeIncome, Amount: 1000, Category: "business",
		Source: "shopify", Status: domain.StatusReceived,
		Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
	}))
	assert.NoError(t, svc.CreateTransaction(&domain.Transaction{
		ID: "t2", Type: domain.TypeExpense, Amount: 200, Category: "personal",
		Date: time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
	}))

	summary := svc.GetTransactionSummary(
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC),
	)

	year, ok := summary[2025]
	assert.True(t, ok)
	assert.Equal(t, 1000.0, year.IncomeTotal)
	assert.Equal(t, 200.0, year.ExpenseTotal)

	march, ok := year.Months["March"]
	assert.True(t, ok)
	assert.Equal(t, 1000.0, march.IncomeTotal)
	assert.Len(t, march.Weeks, 2)
}

type failingBackend struct {
	storage.Backend
	failKey string
}

func (b *failingBackend) Store(key string, data []byte) error {
	if key == b.failKey {
		return errors.New("write failed")
	}
	return b.Backend.Store(key, data)
}

func TestCreateTransaction_SurfacesGoalWriteFailure(t *testing.T) {
	backend := &failingBackend{Backend: storage.NewMemoryBackend()}
	store, err := storage.NewStore(backend)
	assert.NoError(t, err)
	svc := NewLedgerService(store, store, store, store)

	assert.NoError(t, store.AddGoal(domain.Goal{
		ID:               "g1",
		Title:            "Store revenue",
		Type:             domain.GoalFinancial,
		TargetAmount:     100000,
		IncomeCategories: []string{"shopify"},
	}))
	backend.failKey = storage.KeyGoals

	err = svc.CreateTransaction(&domain.Transaction{
		ID:       "t1",
		Type:     domain.TypeIncome,
		Amount:   1000,
		Category: "business",
		Source:   "shopify",
		Status:   domain.StatusReceived,
	})
	assert.Error(t, err)

	goal, _ := store.GetGoal("g1")
	assert.Equal(t, 0.0, goal.CurrentAmount)
}

func TestDeleteTransaction_SurfacesReversalWriteFailure(t *testing.T) {
	backend := &failingBackend{Backend: storage.NewMemoryBackend()}
	store, err := storage.NewStore(backend)
	assert.NoError(t, err)
	svc := NewLedgerService(store, store, store, store)

	assert.NoError(t, svc.CreateTransaction(&domain.Transaction{
		ID:       "t1",
		Type:     domain.TypeIncome,
		Amount:   1000,
		Category: "business",
		Source:   "shopify",
		Status:   domain.StatusReceived,
	}))
	backend.failKey = storage.KeySideFund

	assert.Error(t, svc.DeleteTransaction("t1"))

	// The reversal never landed, so the ledger record must still be there.
	_, ok := store.GetTransaction("t1")
	assert.True(t, ok)
}
