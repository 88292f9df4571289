package application

import (
	"github.com/financialos/FinancialOS/internal/ledger/domain"
)

// NicheService tracks per-niche ad spend against income.
type NicheService struct {
	niches domain.NicheRepository
}

func NewNicheService(niches domain.NicheRepository) *NicheService {
	return &NicheService{niches: niches}
}

type NicheWithROI struct {
	domain.Niche
	ROI float64 `json:"roi"`
}

// Niches returns all niches with their computed ROI.
func (s *NicheService) Niches() []NicheWithROI {
	all := s.niches.Niches()
	out := make([]NicheWithROI, 0, len(all))
	for _, n := range all {
		out = append(out, NicheWithROI{Niche: n, ROI: n.ROI()})
	}
	return out
}

func (s *NicheService) UpsertNiche(n *domain.Niche) error {
	if err := n.Validate(); err != nil {
		return err
	}
	return s.niches.UpsertNiche(*n)
}

func (s *NicheService) DeleteNiche(id string) error {
	return s.niches.DeleteNiche(id)
}
