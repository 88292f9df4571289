package interfaces

import (
	"log"
	"net/http"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
)

// DashboardHandler flattens the headline numbers every view needs into one
// response: cash position, pending income, net worth inputs and goal count.
type DashboardHandler struct {
	transactions TransactionServiceInterface
	assets       AssetServiceInterface
	liabilities  LiabilityServiceInterface
	goals        GoalServiceInterface
	sideFund     SideFundServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
}

func NewDashboardHandler(
	transactions TransactionServiceInterface,
	assets AssetServiceInterface,
	liabilities LiabilityServiceInterface,
	goals GoalServiceInterface,
	sideFund SideFundServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
) *DashboardHandler {
	if transactions == nil || assets == nil || liabilities == nil || goals == nil || sideFund == nil || respondJSON == nil {
		log.Fatal("Services and response function must not be nil")
		return nil
	}
	return &DashboardHandler{
		transactions: transactions,
		assets:       assets,
		liabilities:  liabilities,
		goals:        goals,
		sideFund:     sideFund,
		respondJSON:  respondJSON,
	}
}

func (h *DashboardHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	incomeReceived := h.transactions.Total(domain.TypeIncome, domain.StatusReceived)
	incomePending := h.transactions.Total(domain.TypeIncome, domain.StatusPending)
	expenses := h.transactions.Total(domain.TypeExpense, "")

	liquid := h.assets.Total(domain.AssetLiquid)
	crypto := h.assets.Total(domain.AssetCrypto)
	cash := h.assets.Total(domain.AssetCash)

	liabilityTotal, liabilityPaid, liabilityRemaining := h.liabilities.Totals()

	completedGoals := 0
	goals := h.goals.Goals()
	for _, g := range goals {
		if g.Completed {
			completedGoals++
		}
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Dashboard retrieved successfully.",
		"data": map[string]interface{}{
			"incomeReceived": incomeReceived,
			"incomePending":  incomePending,
			"expenses":       expenses,
			"balance":        incomeReceived - expenses,
			"assets": map[string]float64{
				"liquid": liquid,
				"crypto": crypto,
				"cash":   cash,
			},
			"liabilities": map[string]float64{
				"total":     liabilityTotal,
				"paid":      liabilityPaid,
				"remaining": liabilityRemaining,
			},
			"sideFund": h.sideFund.SideFund(),
			"goals": map[string]int{
				"total":     len(goals),
				"completed": completedGoals,
			},
		},
	})
}
