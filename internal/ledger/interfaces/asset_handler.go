package interfaces

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type AssetServiceInterface interface {
	Assets() []domain.Asset
	Total(assetType domain.AssetType) float64
	CreateAsset(ctx context.Context, a *domain.Asset) error
	UpdateAsset(a domain.Asset) error
	DeleteAsset(id string) error
	RevalueCryptoAssets(ctx context.Context) (int, error)
}

type AssetHandler struct {
	service      AssetServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewAssetHandler(
	service AssetServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *AssetHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and response functions must not be nil")
		return nil
	}
	return &AssetHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *AssetHandler) GetAssets(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Assets retrieved successfully.",
		"data":    h.service.Assets(),
	})
}

func (h *AssetHandler) CreateAsset(w http.ResponseWriter, r *http.Request) {
	var asset domain.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateAsset(r.Context(), &asset); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Println("Error during asset creation:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to create asset")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Asset successfully created.",
		"data":    asset,
	})
}

func (h *AssetHandler) UpdateAsset(w http.ResponseWriter, r *http.Request) {
	var asset domain.Asset
	if err := json.NewDecoder(r.Body).Decode(&asset); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	asset.ID = r.PathValue("id")

	if err := h.service.UpdateAsset(asset); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Asset not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update asset")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Asset successfully updated.",
		"data":    asset,
	})
}

func (h *AssetHandler) DeleteAsset(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Asset id is required")
		return
	}

	if err := h.service.DeleteAsset(id); err != nil {
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Asset not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete asset")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Asset successfully deleted.",
	})
}

// RevalueCryptoAssets reprices every crypto holding at current market
// rates, the same pass the scheduler runs on its own.
func (h *AssetHandler) RevalueCryptoAssets(w http.ResponseWriter, r *http.Request) {
	updated, err := h.service.RevalueCryptoAssets(r.Context())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to revalue crypto assets")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Crypto assets revalued successfully.",
		"data":    map[string]int{"updated": updated},
	})
}
