package interfaces

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type GoalServiceInterface interface {
	Goals() []domain.Goal
	CreateGoal(g *domain.Goal) error
	UpdateGoal(g domain.Goal) error
	DeleteGoal(id string) error
	SetCompleted(id string, completed bool) error
	Progress(id string) (float64, error)
}

type GoalHandler struct {
	service      GoalServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewGoalHandler(
	service GoalServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *GoalHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and response functions must not be nil")
		return nil
	}
	return &GoalHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *GoalHandler) GetGoals(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goals retrieved successfully.",
		"data":    h.service.Goals(),
	})
}

func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	var goal domain.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateGoal(&goal); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during goal creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Goal successfully created.",
		"data":    goal,
	})
}

func (h *GoalHandler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	var goal domain.Goal
	if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	goal.ID = r.PathValue("id")

	if err := h.service.UpdateGoal(goal); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Goal not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goal successfully updated.",
		"data":    goal,
	})
}

func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Goal id is required")
		return
	}

	if err := h.service.DeleteGoal(id); err != nil {
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Goal not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goal successfully deleted.",
	})
}

// CompleteGoal flips the completion flag of a task goal.
func (h *GoalHandler) CompleteGoal(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	var req struct {
		Completed bool `json:"completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.SetCompleted(id, req.Completed); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Goal not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update goal")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goal completion updated.",
	})
}

func (h *GoalHandler) GetGoalProgress(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	progress, err := h.service.Progress(id)
	if err != nil {
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Goal not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to compute goal progress")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Goal progress retrieved successfully.",
		"data":    map[string]float64{"progress": progress},
	})
}
