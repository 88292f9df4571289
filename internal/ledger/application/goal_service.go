package application

import (
	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

// GoalService manages financial targets and task goals. Progress of
// financial goals is written by the LedgerService; direct edits here still
// keep the clamping invariant.
type GoalService struct {
	goals domain.GoalRepository
}

func NewGoalService(goals domain.GoalRepository) *GoalService {
	return &GoalService{goals: goals}
}

func (s *GoalService) Goals() []domain.Goal {
	return s.goals.Goals()
}

func (s *GoalService) GetGoal(id string) (*domain.Goal, bool) {
	return s.goals.GetGoal(id)
}

func (s *GoalService) CreateGoal(g *domain.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return s.goals.AddGoal(*g)
}

func (s *GoalService) UpdateGoal(g domain.Goal) error {
	if err := g.Validate(); err != nil {
		return err
	}
	return s.goals.UpdateGoal(g)
}

func (s *GoalService) DeleteGoal(id string) error {
	return s.goals.DeleteGoal(id)
}

// SetCompleted flips a task goal's completion flag.
func (s *GoalService) SetCompleted(id string, completed bool) error {
	g, ok := s.goals.GetGoal(id)
	if !ok {
		return ledgerErrors.ErrNotFound
	}
	if g.Type != domain.GoalTask {
		return ledgerErrors.NewValidationError("Only task goals can be completed")
	}
	g.Completed = completed
	return s.goals.UpdateGoal(*g)
}

// Progress returns a financial goal's completion in percent, clamped to
// [0, 100].
func (s *GoalService) Progress(id string) (float64, error) {
	g, ok := s.goals.GetGoal(id)
	if !ok {
		return 0, ledgerErrors.ErrNotFound
	}
	if g.Type != domain.GoalFinancial || g.TargetAmount <= 0 {
		return 0, ledgerErrors.NewValidationError("Only financial goals have progress")
	}
	progress := g.CurrentAmount / g.TargetAmount * 100
	if progress > 100 {
		progress = 100
	}
	return progress, nil
}
