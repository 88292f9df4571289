package interfaces

import (
	"errors"
	"time"

	"github.com/financialos/FinancialOS/internal/ledger/application"
	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type MockTransactionService struct {
	transactions []domain.Transaction
	summary      map[int]application.TransactionSummary
	shouldFail   bool
	failValidate bool
	notFound     bool
}

func (m *MockTransactionService) Transactions() []domain.Transaction {
	return m.transactions
}

func (m *MockTransactionService) TransactionsInRange(start, end time.Time) []domain.Transaction {
	return m.transactions
}

func (m *MockTransactionService) Total(txType, status string) float64 {
	var total float64
	for _, t := range m.transactions {
		if t.Type != txType {
			continue
		}
		if status != "" && t.Status != status {
			continue
		}
		total += t.Amount
	}
	return total
}

func (m *MockTransactionService) CreateTransaction(t *domain.Transaction) error {
	if m.failValidate {
		return ledgerErrors.NewValidationError("Amount must be greater than zero")
	}
	if m.shouldFail {
		return errors.New("storage failure")
	}
	m.transactions = append(m.transactions, *t)
	return nil
}

func (m *MockTransactionService) UpdateTransaction(t domain.Transaction) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

func (m *MockTransactionService) DeleteTransaction(id string) error {
	if m.notFound {
		return ledgerErrors.ErrNotFound
	}
	return nil
}

func (m *MockTransactionService) GetTransactionSummary(startDate, endDate time.Time) map[int]application.TransactionSummary {
	return m.summary
}
