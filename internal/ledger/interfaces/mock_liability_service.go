package interfaces

import (
	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type MockLiabilityService struct {
	liabilities  []domain.Liability
	failValidate bool
	notFound     bool
}

func (m *MockLiabilityService) Liabilities() []domain.Liability {
	return m.liabilities
}

func (m *MockLiabilityService) CreateLiability(l *domain.Liability) error {
	if m.failValidate {
		return ledgerErrors.NewValidationError("Total amount must be greater than zero")
	}
	m.liabilities = append(m.liabilities, *l)
	return nil
}

func (m *MockLiabilityService) UpdateLiability(l domain.Liability) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

func (m *MockLiabilityService) DeleteLiability(id string) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

func (m *MockLiabilityService) ApplyPayment(id string, amount float64) (*domain.Liability, error) {
	if m.notFound {
		return nil, ledgerErrors.ErrNotFound
	}
	if m.failValidate {
		return nil, ledgerErrors.NewValidationError("Payment exceeds the remaining balance")
	}
	if len(m.liabilities) == 0 {
		return nil, ledgerErrors.ErrNotFound
	}
	l := m.liabilities[0]
	l.PaidAmount += amount
	return &l, nil
}

func (m *MockLiabilityService) Totals() (total, paid, remaining float64) {
	for _, l := range m.liabilities {
		total += l.TotalAmount
		paid += l.PaidAmount
	}
	return total, paid, total - paid
}
