package interfaces

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAsset_Success(t *testing.T) {
	body := `{"name":"Savings","type":"liquid","value":5000,"currency":"BASE"}`
	req := httptest.NewRequest(http.MethodPost, "/api/assets", strings.NewReader(body))
	w := httptest.NewRecorder()

	mockService := &MockAssetService{}
	handler := NewAssetHandler(mockService, respondJSON, respondError)
	handler.CreateAsset(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.Len(t, mockService.assets, 1)
}

func TestCreateAsset_ValidationError(t *testing.T) {
	body := `{"name":"Savings","type":"liquid","value":-5}`
	req := httptest.NewRequest(http.MethodPost, "/api/assets", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler := NewAssetHandler(&MockAssetService{failValidate: true}, respondJSON, respondError)
	handler.CreateAsset(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestRevalueCryptoAssets_ReportsCount(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/assets/revalue", nil)
	w := httptest.NewRecorder()

	handler := NewAssetHandler(&MockAssetService{revalued: 3}, respondJSON, respondError)
	handler.RevalueCryptoAssets(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	var response struct {
		Data map[string]int `json:"data"`
	}
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&response))
	assert.Equal(t, 3, response.Data["updated"])
}

func TestDeleteAsset_NotFound(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/api/assets/missing", nil)
	req.SetPathValue("id", "missing")
	w := httptest.NewRecorder()

	handler := NewAssetHandler(&MockAssetService{notFound: true}, respondJSON, respondError)
	handler.DeleteAsset(w, req)

	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}
