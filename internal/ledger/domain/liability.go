package domain

import (
	"time"

	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type PaymentPeriod string

const (
	PayMonthly   PaymentPeriod = "monthly"
	PayQuarterly PaymentPeriod = "quarterly"
	PayYearly    PaymentPeriod = "yearly"
)

// Liability is a debt paid down in fixed installments on a fixed cadence.
// NextPaymentDate is derived from the payment history and never set directly
// by callers.
type Liability struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	TotalAmount     float64       `json:"totalAmount"`
	PaidAmount      float64       `json:"paidAmount"`
	Currency        string        `json:"currency"`
	PaymentPeriod   PaymentPeriod `json:"paymentPeriod"`
	PaymentAmount   float64       `json:"paymentAmount"`
	DurationYears   int           `json:"durationYears,omitempty"`
	StartDate       time.Time     `json:"startDate"`
	NextPaymentDate time.Time     `json:"nextPaymentDate"`
	Description     string        `json:"description,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	CreatedAt       time.Time     `json:"createdAt"`
	UpdatedAt       time.Time     `json:"updatedAt"`
}

func (l *Liability) Validate() error {
	if l.Name == "" {
		return ledgerErrors.NewValidationError("Liability name is required")
	}
	if l.TotalAmount <= 0 {
		return ledgerErrors.NewValidationError("Total amount must be greater than zero")
	}
	if l.PaidAmount < 0 {
		return ledgerErrors.NewValidationError("Paid amount must not be negative")
	}
	if l.PaymentAmount <= 0 {
		return ledgerErrors.NewValidationError("Payment amount must be greater than zero")
	}
	switch l.PaymentPeriod {
	case PayMonthly, PayQuarterly, PayYearly:
	default:
		return ledgerErrors.NewValidationError("Payment period must be 'monthly', 'quarterly' or 'yearly'")
	}
	if l.StartDate.IsZero() {
		return ledgerErrors.NewValidationError("Start date is required")
	}
	return nil
}

// Remaining is the amount still owed.
func (l *Liability) Remaining() float64 {
	rest := l.TotalAmount - l.PaidAmount
	if rest < 0 {
		return 0
	}
	return rest
}

type LiabilityRepository interface {
	Liabilities() []Liability
	GetLiability(id string) (*Liability, bool)
	AddLiability(l Liability) error
	UpdateLiability(l Liability) error
	DeleteLiability(id string) error
	LiabilityTotals() (total, paid, remaining float64)
}
