package domain

// SideFundRate is the share of every received income automatically put
// aside into the side fund.
const SideFundRate = 0.05

// SideFund is the single auxiliary savings balance fed by a fixed cut of
// received income, capped at its target.
type SideFund struct {
	TargetAmount  float64 `json:"targetAmount"`
	CurrentAmount float64 `json:"currentAmount"`
}

// DefaultSideFundTarget seeds a fresh store.
const DefaultSideFundTarget = 50000

type SideFundRepository interface {
	SideFund() SideFund
	UpdateSideFund(f SideFund) error
}
