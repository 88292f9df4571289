package domain

import (
	"time"

	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

const (
	GoalFinancial = "financial"
	GoalTask      = "task"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"

	// CategoryRevenue marks financial goals fed by all received income
	// rather than by a specific income-category binding.
	CategoryRevenue = "revenue"
)

// Goal is either a financial target auto-fed from income transactions or a
// plain task with a completion flag.
type Goal struct {
	ID               string    `json:"id"`
	Title            string    `json:"title"`
	Type             string    `json:"type"` // "financial" or "task"
	TargetAmount     float64   `json:"targetAmount,omitempty"`
	CurrentAmount    float64   `json:"currentAmount,omitempty"`
	Category         string    `json:"category,omitempty"`
	IncomeCategories []string  `json:"incomeCategories,omitempty"`
	Deadline         time.Time `json:"deadline,omitempty"`
	Description      string    `json:"description,omitempty"`
	Completed        bool      `json:"completed,omitempty"`
	Priority         string    `json:"priority,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (g *Goal) Validate() error {
	if g.Title == "" {
		return ledgerErrors.NewValidationError("Goal title is required")
	}
	switch g.Type {
	case GoalFinancial:
		if g.TargetAmount <= 0 {
			return ledgerErrors.NewValidationError("Target amount must be greater than zero")
		}
		if g.CurrentAmount < 0 || g.CurrentAmount > g.TargetAmount {
			return ledgerErrors.NewValidationError("Current amount must be between zero and the target amount")
		}
	case GoalTask:
		if g.Priority != "" && g.Priority != PriorityLow && g.Priority != PriorityMedium && g.Priority != PriorityHigh {
			return ledgerErrors.NewValidationError("Priority must be 'low', 'medium' or 'high'")
		}
	default:
		return ledgerErrors.NewValidationError("Goal type must be 'financial' or 'task'")
	}
	return nil
}

// TracksSource reports whether income with the given source label feeds this
// goal through its income-category binding.
func (g *Goal) TracksSource(source string) bool {
	for _, c := range g.IncomeCategories {
		if c == source {
			return true
		}
	}
	return false
}

// TracksAllRevenue reports whether the goal follows total received income.
// Goals with an explicit income-category binding never do.
func (g *Goal) TracksAllRevenue() bool {
	return g.Type == GoalFinancial && g.Category == CategoryRevenue && len(g.IncomeCategories) == 0
}

type GoalRepository interface {
	Goals() []Goal
	GetGoal(id string) (*Goal, bool)
	AddGoal(g Goal) error
	UpdateGoal(g Goal) error
	DeleteGoal(id string) error
}
