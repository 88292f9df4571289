package interfaces

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/financialos/FinancialOS/internal/syncdata"
)

type SyncCodecInterface interface {
	Export() syncdata.Document
	Import(doc syncdata.Document, merge bool) error
}

// SyncHandler exposes the portable export format: raw JSON documents for
// file-based backup and prefixed sync codes for manual device transfer.
type SyncHandler struct {
	codec        SyncCodecInterface
	respondJSON  func(w http.ResponseWriter, status int, payload interface{})
	respondError func(w http.ResponseWriter, status int, message string)
}

func NewSyncHandler(
	codec SyncCodecInterface,
	respondJSON func(w http.ResponseWriter, status int, payload interface{}),
	respondError func(w http.ResponseWriter, status int, message string),
) *SyncHandler {
	if codec == nil || respondJSON == nil || respondError == nil {
		log.Fatal("Codec and response functions must not be nil")
		return nil
	}
	return &SyncHandler{
		codec:        codec,
		respondJSON:  respondJSON,
		respondError: respondError,
	}
}

func (h *SyncHandler) Export(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Data exported successfully.",
		"data":    h.codec.Export(),
	})
}

// Import accepts a raw document. merge=true reconciles against local
// state, otherwise the document replaces it.
func (h *SyncHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Data  json.RawMessage `json:"data"`
		Merge bool            `json:"merge"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := syncdata.ParseDocument(req.Data)
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "Malformed import document")
		return
	}

	if err := h.codec.Import(*doc, req.Merge); err != nil {
		log.Println("Error during import:", err.Error())
		h.respondError(w, http.StatusInternalServerError, "Failed to import data")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Data imported successfully.",
	})
}

func (h *SyncHandler) GenerateSyncCode(w http.ResponseWriter, r *http.Request) {
	code, err := syncdata.EncodeSyncCode(h.codec.Export())
	if err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to generate sync code")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Sync code generated successfully.",
		"data":    map[string]string{"code": code},
	})
}

// ImportSyncCode merges the state carried by a sync code. A malformed code
// leaves local state untouched.
func (h *SyncHandler) ImportSyncCode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := syncdata.DecodeSyncCode(req.Code)
	if err != nil {
		if errors.Is(err, syncdata.ErrInvalidSyncCode) || errors.Is(err, syncdata.ErrMalformedDocument) {
			h.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "Failed to decode sync code")
		return
	}

	if err := h.codec.Import(*doc, true); err != nil {
		h.respondError(w, http.StatusInternalServerError, "Failed to import sync code")
		return
	}

	h.respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "success",
		"message": "Sync code imported successfully.",
	})
}
