package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
)

func TestCreateTransaction_Success(t *testing.T) {
	body := `{"type":"income","amount":1000,"category":"business","source":"shopify","status":"received"}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Len(t, mockService.transactions, 1)
	assert.Equal(t, 1000.0, mockService.transactions[0].Amount)
}

func TestCreateTransaction_ValidationError(t *testing.T) {
	body := `{"type":"income","amount":-5}`
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{failValidate: true}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()

	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Amount must be greater than zero", response["message"])
}

func TestCreateTransaction_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/transactions", strings.NewReader("{not json"))
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.CreateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestGetTransactions_ReturnsAll(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions", nil)
	w := httptest.NewRecorder()

	mockService := &MockTransactionService{
		transactions: []domain.Transaction{
			{ID: "t1", Type: domain.TypeIncome, Amount: 100},
			{ID: "t2", Type: domain.TypeExpense, Amount: 40},
		},
	}
	handler := NewTransactionHandler(mockService, respondJSON, respondError)
	handler.GetTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data []domain.Transaction `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Len(t, response.Data, 2)
}

func TestGetTransactions_InvalidDateRejected(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/transactions?start_date=yesterday", nil)
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.GetTransactions(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestUpdateTransaction_NotFound(t *testing.T) {
	body := `{"type":"expense","amount":25,"category":"personal"}`
	req := httptest.NewRequest(http.MethodPut, "/api/transactions/missing", strings.NewReader(body))
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{notFound: true}, respondJSON, respondError)
	handler.UpdateTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestDeleteTransaction_Success(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/transactions/t1", nil)
	req.SetPathValue("id", "t1")
	w := httptest.NewRecorder()

	handler := NewTransactionHandler(&MockTransactionService{}, respondJSON, respondError)
	handler.DeleteTransaction(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
}
