package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
	"github.com/financialos/FinancialOS/internal/storage"
)

func newGoalFixture(t *testing.T) (*GoalService, *storage.Store) {
	t.Helper()
	store, err := storage.NewStore(storage.NewMemoryBackend())
	assert.NoError(t, err)
	return NewGoalService(store), store
}

func TestSetCompleted_TaskGoalOnly(t *testing.T) {
	svc, store := newGoalFixture(t)
	assert.NoError(t, store.AddGoal(domain.Goal{ID: "task", Title: "File taxes", Type: domain.GoalTask}))
	assert.NoError(t, store.AddGoal(domain.Goal{
		ID: "fin", Title: "Emergency fund", Type: domain.GoalFinancial, TargetAmount: 10000,
	}))

	assert.NoError(t, svc.SetCompleted("task", true))
	goal, _ := store.GetGoal("task")
	assert.True(t, goal.Completed)

	err := svc.SetCompleted("fin", true)
	assert.True(t, ledgerErrors.IsValidationError(err))

	assert.ErrorIs(t, svc.SetCompleted("missing", true), ledgerErrors.ErrNotFound)
}

func TestProgress_PercentClamped(t *testing.T) {
	svc, store := newGoalFixture(t)
	assert.NoError(t, store.AddGoal(domain.Goal{
		ID: "g1", Title: "Fund", Type: domain.GoalFinancial, TargetAmount: 200, CurrentAmount: 50,
	}))

	progress, err := svc.Progress("g1")
	assert.NoError(t, err)
	assert.Equal(t, 25.0, progress)
}

func TestCreateGoal_Validates(t *testing.T) {
	svc, _ := newGoalFixture(t)
	err := svc.CreateGoal(&domain.Goal{ID: "g1", Type: domain.GoalFinancial, TargetAmount: 100})
	assert.True(t, ledgerErrors.IsValidationError(err))
}
