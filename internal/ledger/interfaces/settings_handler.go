package interfaces

import (
	"encoding/json"
	"log"
	"net/http"
)

type SettingsRepositoryInterface interface {
	Settings() map[string]string
	Setting(name string) (string, bool)
	SetSetting(name, value string) error
	RemoveSetting(name string) error
}

type SettingsHandler struct {
	settings     SettingsRepositoryInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewSettingsHandler(
	settings SettingsRepositoryInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *SettingsHandler {
	if settings == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Repository and response functions must not be nil")
		return nil
	}
	return &SettingsHandler{
		settings:     settings,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Settings retrieved successfully.",
		"data":    h.settings.Settings(),
	})
}

func (h *SettingsHandler) SetSetting(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.settings.SetSetting(name, req.Value); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to save setting")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Setting saved successfully.",
	})
}

func (h *SettingsHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	if _, ok := h.settings.Setting(name); !ok {
		h.respondError(w, http.StatusNotFound, "Setting not found")
		return
	}

	if err := h.settings.RemoveSetting(name); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to delete setting")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Setting deleted successfully.",
	})
}
