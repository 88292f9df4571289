package application

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

// LedgerService owns the transaction ledger and keeps every derived
// quantity (linked asset values, goal progress, side-fund balance) in step
// with it. Insert and delete apply symmetric effects so removing a
// transaction restores the derived state it produced.
type LedgerService struct {
	transactions domain.TransactionRepository
	goals        domain.GoalRepository
	assets       domain.AssetRepository
	sideFund     domain.SideFundRepository
}

func NewLedgerService(
	transactions domain.TransactionRepository,
	goals domain.GoalRepository,
	assets domain.AssetRepository,
	sideFund domain.SideFundRepository,
) *LedgerService {
	return &LedgerService{
		transactions: transactions,
		goals:        goals,
		assets:       assets,
		sideFund:     sideFund,
	}
}

func (s *LedgerService) Transactions() []domain.Transaction {
	return s.transactions.Transactions()
}

func (s *LedgerService) TransactionsInRange(start, end time.Time) []domain.Transaction {
	return s.transactions.TransactionsInRange(start, end)
}

func (s *LedgerService) Total(txType, status string) float64 {
	return s.transactions.TransactionTotal(txType, status)
}

// CreateTransaction validates, stores and applies derived effects. The
// caller supplies the id.
func (s *LedgerService) CreateTransaction(t *domain.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if t.Date.IsZero() {
		t.Date = time.Now()
	}
	if err := s.transactions.AddTransaction(*t); err != nil {
		return err
	}
	return s.applyEffects(t, 1)
}

// DeleteTransaction reverses the transaction's derived effects using its
// stored fields, then removes it.
func (s *LedgerService) DeleteTransaction(id string) error {
	t, ok := s.transactions.GetTransaction(id)
	if !ok {
		return ledgerErrors.ErrNotFound
	}
	if err := s.applyEffects(t, -1); err != nil {
		return err
	}
	return s.transactions.DeleteTransaction(id)
}

// UpdateTransaction replaces a transaction, treating the change as a
// delete of the old effects followed by an insert of the new ones.
func (s *LedgerService) UpdateTransaction(t domain.Transaction) error {
	if err := t.Validate(); err != nil {
		return err
	}
	old, ok := s.transactions.GetTransaction(t.ID)
	if !ok {
		return ledgerErrors.ErrNotFound
	}
	if err := s.applyEffects(old, -1); err != nil {
		return err
	}
	if err := s.transactions.UpdateTransaction(t); err != nil {
		// Put the old effects back, the ledger record did not change.
		if restoreErr := s.applyEffects(old, 1); restoreErr != nil {
			log.Printf("Failed to restore derived effects for transaction %s: %v", old.ID, restoreErr)
		}
		return err
	}
	return s.applyEffects(&t, 1)
}

// applyEffects adjusts derived state for one transaction. direction is +1
// on insert and -1 on delete. The first failing repository write aborts
// the pass and is returned to the caller.
func (s *LedgerService) applyEffects(t *domain.Transaction, direction int) error {
	amount := t.Amount * float64(direction)

	if t.AssetID != "" {
		if asset, ok := s.assets.GetAsset(t.AssetID); ok {
			switch {
			case t.Received():
				asset.Value = floorZero(asset.Value + amount)
			case t.Type == domain.TypeExpense:
				asset.Value = floorZero(asset.Value - amount)
			}
			// The repository refreshes the updated-at stamp.
			if err := s.assets.UpdateAsset(*asset); err != nil {
				return err
			}
		}
	}

	if !t.Received() {
		return nil
	}

	for _, goal := range s.goals.Goals() {
		if goal.Type != domain.GoalFinancial {
			continue
		}
		if !goal.TracksSource(t.Source) && !goal.TracksAllRevenue() {
			continue
		}
		goal.CurrentAmount = clamp(goal.CurrentAmount+amount, goal.TargetAmount)
		if err := s.goals.UpdateGoal(goal); err != nil {
			return err
		}
	}

	fund := s.sideFund.SideFund()
	contribution, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(domain.SideFundRate)).Float64()
	fund.CurrentAmount = clamp(fund.CurrentAmount+contribution, fund.TargetAmount)
	return s.sideFund.UpdateSideFund(fund)
}

func clamp(v, max float64) float64 {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

func floorZero(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}

type TransactionSummary struct {
	Year         int
	IncomeTotal  float64
	ExpenseTotal float64
	Months       map[string]MonthSummary
}

type MonthSummary struct {
	IncomeTotal  float64
	ExpenseTotal float64
	Weeks        []WeekSummary
}

type WeekSummary struct {
	Week         int
	IncomeTotal  float64
	ExpenseTotal float64
}

// GetTransactionSummary buckets the ledger into the year/month/week totals
// the dashboard charts are drawn from.
func (s *LedgerService) GetTransactionSummary(startDate, endDate time.Time) map[int]TransactionSummary {
	transactions := s.transactions.TransactionsInRange(startDate, endDate)

	summary := make(map[int]TransactionSummary)
	for _, transaction := range transactions {
		year := transaction.Date.Year()
		month := transaction.Date.Month().String()
		_, week := transaction.Date.ISOWeek()

		if _, exists := summary[year]; !exists {
			summary[year] = TransactionSummary{
				Year:   year,
				Months: make(map[string]MonthSummary),
			}
		}
		yearSummary := summary[year]

		if _, exists := yearSummary.Months[month]; !exists {
			yearSummary.Months[month] = MonthSummary{Weeks: []WeekSummary{}}
		}
		monthSummary := yearSummary.Months[month]

		if transaction.Type == domain.TypeIncome {
			yearSummary.IncomeTotal += transaction.Amount
			monthSummary.IncomeTotal += transaction.Amount
		} else if transaction.Type == domain.TypeExpense {
			yearSummary.ExpenseTotal += transaction.Amount
			monthSummary.ExpenseTotal += transaction.Amount
		}

		found := false
		for i, weekSummary := range monthSummary.Weeks {
			if weekSummary.Week == week {
				if transaction.Type == domain.TypeIncome {
					monthSummary.Weeks[i].IncomeTotal += transaction.Amount
				} else {
					monthSummary.Weeks[i].ExpenseTotal += transaction.Amount
				}
				found = true
				break
			}
		}
		if !found {
			weekSummary := WeekSummary{Week: week}
			if transaction.Type == domain.TypeIncome {
				weekSummary.IncomeTotal = transaction.Amount
			} else {
				weekSummary.ExpenseTotal = transaction.Amount
			}
			monthSummary.Weeks = append(monthSummary.Weeks, weekSummary)
		}

		yearSummary.Months[month] = monthSummary
		summary[year] = yearSummary
	}
	return summary
}
