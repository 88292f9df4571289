package application

import (
	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

// SideFundService exposes the auto-savings balance. Contributions come in
// through the LedgerService only; callers may adjust the target.
type SideFundService struct {
	sideFund domain.SideFundRepository
}

func NewSideFundService(sideFund domain.SideFundRepository) *SideFundService {
	return &SideFundService{sideFund: sideFund}
}

func (s *SideFundService) SideFund() domain.SideFund {
	return s.sideFund.SideFund()
}

func (s *SideFundService) SetTarget(target float64) error {
	if target <= 0 {
		return ledgerErrors.NewValidationError("Side fund target must be greater than zero")
	}
	fund := s.sideFund.SideFund()
	fund.TargetAmount = target
	return s.sideFund.UpdateSideFund(fund)
}
