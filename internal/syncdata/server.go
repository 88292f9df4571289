package syncdata

import (
	"encoding/json"
	"net/http"
	"time"
)

// MirrorHandler exposes the staging area over HTTP: POST stages a
// document for a user, GET hands back whatever another device staged.
type MirrorHandler struct {
	store        MirrorStore
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewMirrorHandler(
	store MirrorStore,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *MirrorHandler {
	if store == nil || respondJSON == nil || respondError == nil {
		panic("Store and response functions must not be nil")
	}
	return &MirrorHandler{
		store:        store,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *MirrorHandler) Push(w http.ResponseWriter, r *http.Request) {
	var req pushRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.UserID == "" {
		h.respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	entry := MirrorEntry{
		Document: req.Data,
		DeviceID: req.DeviceID,
		SyncedAt: time.Now().UnixMilli(),
	}
	if err := h.store.Put(r.Context(), req.UserID, entry); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to stage sync data")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Sync data staged successfully.",
	})
}

func (h *MirrorHandler) Pull(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		h.respondError(w, http.StatusBadRequest, "userId is required")
		return
	}

	entry, err := h.store.Get(r.Context(), userID)
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to read sync data")
		return
	}

	h.respondJSON(w, http.StatusOK, pullResponse{Data: entry})
}
