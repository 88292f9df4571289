package domain

import (
	"time"

	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

// Category labels transactions. Categories are user-editable; a default set
// is seeded into an empty store.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"` // "income" or "expense"
	Color     string    `json:"color,omitempty"`
	Icon      string    `json:"icon,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Category) Validate() error {
	if c.Name == "" {
		return ledgerErrors.NewValidationError("Category name is required")
	}
	if c.Type != TypeIncome && c.Type != TypeExpense {
		return ledgerErrors.NewValidationError("Category type must be 'income' or 'expense'")
	}
	return nil
}

type CategoryRepository interface {
	Categories() []Category
	CategoriesByType(categoryType string) []Category
	GetCategory(id string) (*Category, bool)
	AddCategory(c Category) error
	UpdateCategory(c Category) error
	DeleteCategory(id string) error
}
