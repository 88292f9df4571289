package interfaces

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type LiabilityServiceInterface interface {
	Liabilities() []domain.Liability
	CreateLiability(l *domain.Liability) error
	UpdateLiability(l domain.Liability) error
	DeleteLiability(id string) error
	ApplyPayment(id string, amount float64) (*domain.Liability, error)
	Totals() (total, paid, remaining float64)
}

type LiabilityHandler struct {
	service      LiabilityServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewLiabilityHandler(
	service LiabilityServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *LiabilityHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and response functions must not be nil")
		return nil
	}
	return &LiabilityHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *LiabilityHandler) GetLiabilities(w http.ResponseWriter, r *http.Request) {
	total, paid, remaining := h.service.Totals()
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Liabilities retrieved successfully.",
		"data": map[string]interface{}{
			"liabilities": h.service.Liabilities(),
			"total":       total,
			"paid":        paid,
			"remaining":   remaining,
		},
	})
}

func (h *LiabilityHandler) CreateLiability(w http.ResponseWriter, r *http.Request) {
	var liability domain.Liability
	if err := json.NewDecoder(r.Body).Decode(&liability); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateLiability(&liability); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during liability creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create liability")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Liability successfully created.",
		"data":    liability,
	})
}

func (h *LiabilityHandler) UpdateLiability(w http.ResponseWriter, r *http.Request) {
	var liability domain.Liability
	if err := json.NewDecoder(r.Body).Decode(&liability); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	liability.ID = r.PathValue("id")

	if err := h.service.UpdateLiability(liability); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Liability not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update liability")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Liability successfully updated.",
		"data":    liability,
	})
}

func (h *LiabilityHandler) DeleteLiability(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Liability id is required")
		return
	}

	if err := h.service.DeleteLiability(id); err != nil {
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Liability not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete liability")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Liability successfully deleted.",
	})
}

// ApplyPayment records a repayment and rolls the next due date forward.
func (h *LiabilityHandler) ApplyPayment(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req struct {
		Amount float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	liability, err := h.service.ApplyPayment(id, req.Amount)
	if err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Liability not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to apply payment")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Payment applied successfully.",
		"data":    liability,
	})
}
