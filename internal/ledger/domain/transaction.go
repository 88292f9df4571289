package domain

import (
	"time"

	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

const (
	TypeIncome  = "income"
	TypeExpense = "expense"

	StatusReceived = "received"
	StatusPending  = "pending"
)

// Transaction is a single ledger entry. Amounts are stored in the base
// currency. Income transactions carry a source label and a status; either
// kind may reference the asset the money moved into or out of.
type Transaction struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // "income" or "expense"
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	Source      string    `json:"source,omitempty"`
	Status      string    `json:"status,omitempty"`
	AssetID     string    `json:"assetId,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return ledgerErrors.NewValidationError("Amount must be greater than zero")
	}
	if t.Type != TypeIncome && t.Type != TypeExpense {
		return ledgerErrors.NewValidationError("Type must be 'income' or 'expense'")
	}
	if len(t.Description) > 200 {
		return ledgerErrors.NewValidationError("Description must be of length less than 200")
	}
	if t.Type == TypeIncome {
		if t.Source == "" {
			return ledgerErrors.NewValidationError("Income transactions require a source")
		}
		if t.Status != StatusReceived && t.Status != StatusPending {
			return ledgerErrors.NewValidationError("Status must be 'received' or 'pending'")
		}
	}
	return nil
}

// Received reports whether the transaction is booked income, i.e. the only
// kind that moves goal progress and the side fund.
func (t *Transaction) Received() bool {
	return t.Type == TypeIncome && t.Status == StatusReceived
}

type TransactionRepository interface {
	Transactions() []Transaction
	GetTransaction(id string) (*Transaction, bool)
	AddTransaction(t Transaction) error
	UpdateTransaction(t Transaction) error
	DeleteTransaction(id string) error
	TransactionsInRange(start, end time.Time) []Transaction
	TransactionTotal(txType, status string) float64
}
