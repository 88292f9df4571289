package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/financialos/FinancialOS/internal/ledger/application"
	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type TransactionServiceInterface interface {
	Transactions() []domain.Transaction
	TransactionsInRange(start, end time.Time) []domain.Transaction
	Total(txType, status string) float64
	CreateTransaction(t *domain.Transaction) error
	UpdateTransaction(t domain.Transaction) error
	DeleteTransaction(id string) error
	GetTransactionSummary(startDate, endDate time.Time) map[int]application.TransactionSummary
}

type TransactionHandler struct {
	service      TransactionServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewTransactionHandler(
	service TransactionServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *TransactionHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and response functions must not be nil")
		return nil
	}
	return &TransactionHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

// parseDateRange reads start_date/end_date query params, defaulting to the
// current year so the dashboard views work without parameters.
func parseDateRange(r *http.Request) (time.Time, time.Time, bool) {
	startDateStr := r.URL.Query().Get("start_date")
	endDateStr := r.URL.Query().Get("end_date")

	startDate := time.Date(time.Now().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
	endDate := time.Now()
	var err error

	if startDateStr != "" {
		startDate, err = time.Parse("2006-01-02", startDateStr)
		if err != nil {
			return startDate, endDate, false
		}
	}
	if endDateStr != "" {
		endDate, err = time.Parse("2006-01-02", endDateStr)
		if err != nil {
			return startDate, endDate, false
		}
	}
	return startDate, endDate, true
}

func (h *TransactionHandler) CreateTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateTransaction(&transaction); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during transaction creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create transaction")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully created.",
		"data":    transaction,
	})
}

func (h *TransactionHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, ok := parseDateRange(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	var transactions []domain.Transaction
	if r.URL.Query().Get("start_date") == "" && r.URL.Query().Get("end_date") == "" {
		transactions = h.service.Transactions()
	} else {
		transactions = h.service.TransactionsInRange(startDate, endDate)
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transactions retrieved successfully.",
		"data":    transactions,
	})
}

func (h *TransactionHandler) UpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var transaction domain.Transaction
	if err := json.NewDecoder(r.Body).Decode(&transaction); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	transaction.ID = r.PathValue("id")

	if err := h.service.UpdateTransaction(transaction); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully updated.",
		"data":    transaction,
	})
}

func (h *TransactionHandler) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Transaction id is required")
		return
	}

	if err := h.service.DeleteTransaction(id); err != nil {
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Transaction not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transaction successfully deleted.",
	})
}

func (h *TransactionHandler) GetTransactionSummary(w http.ResponseWriter, r *http.Request) {
	startDate, endDate, ok := parseDateRange(r)
	if !ok {
		h.respondError(w, http.StatusBadRequest, "Invalid date format")
		return
	}

	summary := h.service.GetTransactionSummary(startDate, endDate)
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Transactions summary retrieved successfully.",
		"data":    summary,
	})
}
