package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/kimiagar/backend/internal/credential"
)

type CredentialHandler struct {
	holder *credential.Holder
}

func NewCredentialHandler(holder *credential.Holder) *CredentialHandler {
	return &CredentialHandler{holder: holder}
}

// Status never echoes the stored secret back, only whether one exists.
func (h *CredentialHandler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{
		"has_user_key":    h.holder.Get() != "",
		"has_ambient_key": h.holder.HasAmbient(),
		"may_dispatch":    h.holder.MayDispatch(),
	})
}

type setCredentialRequest struct {
	Key string `json:"key"`
}

func (h *CredentialHandler) Set(w http.ResponseWriter, r *http.Request) {
	var req setCredentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(req.Key) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "key required"})
		return
	}

	h.holder.Set(r.Context(), req.Key)
	writeJSON(w, http.StatusOK, map[string]bool{"saved": true})
}
