package application

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

// LiabilityService tracks debts and their installment schedules.
type LiabilityService struct {
	liabilities domain.LiabilityRepository
	now         func() time.Time
}

func NewLiabilityService(liabilities domain.LiabilityRepository) *LiabilityService {
	return &LiabilityService{liabilities: liabilities, now: time.Now}
}

// SetClock overrides the schedule clock. Tests only.
func (s *LiabilityService) SetClock(now func() time.Time) { s.now = now }

func (s *LiabilityService) Liabilities() []domain.Liability {
	return s.liabilities.Liabilities()
}

func (s *LiabilityService) GetLiability(id string) (*domain.Liability, bool) {
	return s.liabilities.GetLiability(id)
}

func (s *LiabilityService) Totals() (total, paid, remaining float64) {
	return s.liabilities.LiabilityTotals()
}

func (s *LiabilityService) CreateLiability(l *domain.Liability) error {
	if err := l.Validate(); err != nil {
		return err
	}
	l.NextPaymentDate = NextPaymentDate(l.StartDate, l.PaymentAmount, l.PaidAmount, l.PaymentPeriod, s.now())
	return s.liabilities.AddLiability(*l)
}

func (s *LiabilityService) UpdateLiability(l domain.Liability) error {
	if err := l.Validate(); err != nil {
		return err
	}
	l.NextPaymentDate = NextPaymentDate(l.StartDate, l.PaymentAmount, l.PaidAmount, l.PaymentPeriod, s.now())
	return s.liabilities.UpdateLiability(l)
}

func (s *LiabilityService) DeleteLiability(id string) error {
	return s.liabilities.DeleteLiability(id)
}

// ApplyPayment records one payment and recomputes the next due date.
// Overpayment is rejected: the paid amount can never pass the total owed.
func (s *LiabilityService) ApplyPayment(id string, amount float64) (*domain.Liability, error) {
	if amount <= 0 {
		return nil, ledgerErrors.NewValidationError("Payment amount must be greater than zero")
	}
	l, ok := s.liabilities.GetLiability(id)
	if !ok {
		return nil, ledgerErrors.ErrNotFound
	}
	newPaid, _ := decimal.NewFromFloat(l.PaidAmount).Add(decimal.NewFromFloat(amount)).Float64()
	if newPaid > l.TotalAmount {
		return nil, ledgerErrors.NewValidationError("Payment exceeds the remaining balance")
	}
	l.PaidAmount = newPaid
	l.NextPaymentDate = NextPaymentDate(l.StartDate, l.PaymentAmount, l.PaidAmount, l.PaymentPeriod, s.now())
	if err := s.liabilities.UpdateLiability(*l); err != nil {
		return nil, err
	}
	updated, ok := s.liabilities.GetLiability(id)
	if !ok {
		return nil, ledgerErrors.ErrNotFound
	}
	return updated, nil
}

// NextPaymentDate derives the next due date from the payment history.
// Payment k falls due at firstPayment + (k-1) cadence periods, so with n
// completed payments the next one is due at firstPayment + n periods. Dates
// never in the strict future are advanced whole periods until they are,
// which also covers schedules that fell behind.
func NextPaymentDate(firstPayment time.Time, paymentAmount, paidAmount float64, period domain.PaymentPeriod, now time.Time) time.Time {
	completed := 0
	if paymentAmount > 0 && paidAmount > 0 {
		completed = int(decimal.NewFromFloat(paidAmount).
			Div(decimal.NewFromFloat(paymentAmount)).Floor().IntPart())
	}

	next := addPeriods(firstPayment, period, completed)
	for !next.After(now) {
		next = addPeriods(next, period, 1)
	}
	return next
}

func addPeriods(t time.Time, period domain.PaymentPeriod, n int) time.Time {
	switch period {
	case domain.PayMonthly:
		return t.AddDate(0, n, 0)
	case domain.PayQuarterly:
		return t.AddDate(0, 3*n, 0)
	case domain.PayYearly:
		return t.AddDate(n, 0, 0)
	}
	return t
}
