package interfaces

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/financialos/FinancialOS/internal/ledger/domain"
	ledgerErrors "github.com/financialos/FinancialOS/internal/ledger/errors"
)

type CategoryServiceInterface interface {
	Categories() []domain.Category
	CategoriesByType(categoryType string) []domain.Category
	CreateCategory(c *domain.Category) error
	UpdateCategory(c domain.Category) error
	DeleteCategory(id string) error
}

type CategoryHandler struct {
	service      CategoryServiceInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewCategoryHandler(
	service CategoryServiceInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *CategoryHandler {
	if service == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Service and response functions must not be nil")
		return nil
	}
	return &CategoryHandler{
		service:      service,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *CategoryHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categoryType := r.URL.Query().Get("type")
	if categoryType != "" && categoryType != domain.TypeIncome && categoryType != domain.TypeExpense {
		h.respondError(w, http.StatusBadRequest, "Invalid category type")
		return
	}

	var categories []domain.Category
	if categoryType == "" {
		categories = h.service.Categories()
	} else {
		categories = h.service.CategoriesByType(categoryType)
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":     "success",
		"message":    "Categories retrieved successfully.",
		"categories": categories,
	})
}

func (h *CategoryHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CreateCategory(&category); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully created.",
		"data":    category,
	})
}

func (h *CategoryHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var category domain.Category
	if err := json.NewDecoder(r.Body).Decode(&category); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	category.ID = r.PathValue("id")

	if err := h.service.UpdateCategory(category); err != nil {
		if ledgerErrors.IsValidationError(err) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully updated.",
		"data":    category,
	})
}

func (h *CategoryHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		h.respondError(w, http.StatusBadRequest, "Category id is required")
		return
	}

	if err := h.service.DeleteCategory(id); err != nil {
		if ledgerErrors.IsNotFound(err) {
			h.respondError(w, http.StatusNotFound, "Category not found")
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Category successfully deleted.",
	})
}
