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

func TestGetLiabilities_IncludesTotals(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/liabilities", nil)
	w := httptest.NewRecorder()

	mockService := &MockLiabilityService{
		liabilities: []domain.Liability{
			{ID: "l1", TotalAmount: 71600, PaidAmount: 13875},
		},
	}
	handler := NewLiabilityHandler(mockService, respondJSON, respondError)
	handler.GetLiabilities(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data struct {
			Total     float64 `json:"total"`
			Paid      float64 `json:"paid"`
			Remaining float64 `json:"remaining"`
		} `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, 71600.0, response.Data.Total)
	assert.Equal(t, 13875.0, response.Data.Paid)
	assert.Equal(t, 57725.0, response.Data.Remaining)
}

func TestApplyPayment_Success(t *testing.T) {
	body := `{"amount":13875}`
	req := httptest.NewRequest(http.MethodPost, "/api/liabilities/l1/payments", strings.NewReader(body))
	req.SetPathValue("id", "l1")
	w := httptest.NewRecorder()

	mockService := &MockLiabilityService{
		liabilities: []domain.Liability{{ID: "l1", TotalAmount: 71600}},
	}
	handler := NewLiabilityHandler(mockService, respondJSON, respondError)
	handler.ApplyPayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data domain.Liability `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, 13875.0, response.Data.PaidAmount)
}

func TestApplyPayment_Overpayment(t *testing.T) {
	body := `{"amount":100000}`
	req := httptest.NewRequest(http.MethodPost, "/api/liabilities/l1/payments", strings.NewReader(body))
	req.SetPathValue("id", "l1")
	w := httptest.NewRecorder()

	handler := NewLiabilityHandler(&MockLiabilityService{failValidate: true}, respondJSON, respondError)
	handler.ApplyPayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)

	var response map[string]interface{}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, "Payment exceeds the remaining balance", response["message"])
}

func TestApplyPayment_UnknownLiability(t *testing.T) {
	body := `{"amount":100}`
	req := httptest.NewRequest(http.MethodPost, "/api/liabilities/missing/payments", strings.NewReader(body))
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler := NewLiabilityHandler(&MockLiabilityService{notFound: true}, respondJSON, respondError)
	handler.ApplyPayment(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
