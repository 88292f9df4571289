package interfaces

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/financialos/FinancialOS/internal/ledger/application"
	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type NicheServiceInterface interface {
	Niches() []application.NicheWithROI
	UpsertNiche(n *domain.Niche) error
	DeleteNiche(id string) error
}

type NicheHandler struct {
	service      NicheServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewNicheHandler(
	service NicheServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *NicheHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and response functions must not be nil")
		return nil
	}
	return &NicheHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *NicheHandler) GetNiches(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Niches retrieved successfully.",
		"data":    h.service.Niches(),
	})
}

func (h *NicheHandler) UpsertNiche(w http.ResponseWriter, r *http.Request) {
	var niche domain.Niche
	if err := json.NewDecoder(r.Body).Decode(&niche); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpsertNiche(&niche); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to save niche")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Niche saved successfully.",
		"data":    niche,
	})
}

func (h *NicheHandler) DeleteNiche(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Niche id is required")
		return
	}

	if err := h.service.DeleteNiche(id); err != nil {
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Niche not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete niche")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Niche successfully deleted.",
	})
}
