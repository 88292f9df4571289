package domain

import ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"

// Niche tracks ad spend against income for one business niche so its return
// on investment can be compared across niches.
type Niche struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	AdSpend float64 `json:"adSpend"`
	Income  float64 `json:"income"`
}

func (n *Niche) Validate() error {
	if n.Name == "" {
		return ledgerErrors.NewValidationError("Niche name is required")
	}
	if n.AdSpend < 0 || n.Income < 0 {
		return ledgerErrors.NewValidationError("Niche amounts must not be negative")
	}
	return nil
}

// ROI is the niche's return on ad spend in percent. Zero when nothing has
// been spent yet.
func (n *Niche) ROI() float64 {
	if n.AdSpend == 0 {
		return 0
	}
	return (n.Income - n.AdSpend) / n.AdSpend * 100
}

type NicheRepository interface {
	Niches() []Niche
	UpsertNiche(n Niche) error
	DeleteNiche(id string) error
}
