package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kimiagar/backend/internal/models"
	"github.com/kimiagar/backend/internal/prompt"
	"github.com/kimiagar/backend/internal/spell"
)

type SpellHandler struct {
	store *spell.Store
}

func NewSpellHandler(store *spell.Store) *SpellHandler {
	return &SpellHandler{store: store}
}

func (h *SpellHandler) List(w http.ResponseWriter, r *http.Request) {
	spells := h.store.List()
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"spells": spells,
		"active": h.store.Active().ID,
		"count":  len(spells),
	})
}

func (h *SpellHandler) Active(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.store.Active())
}

func (h *SpellHandler) Create(w http.ResponseWriter, r *http.Request) {
	var sp models.Spell
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if strings.TrimSpace(sp.Title) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "title required"})
		return
	}
	if strings.TrimSpace(sp.PromptTemplate) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "promptTemplate required"})
		return
	}

	created := h.store.Add(r.Context(), sp)
	writeJSON(w, http.StatusCreated, created)
}

func (h *SpellHandler) Update(w http.ResponseWriter, r *http.Request) {
	var sp models.Spell
	if err := json.NewDecoder(r.Body).Decode(&sp); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	sp.ID = chi.URLParam(r, "id")

	if !h.store.Update(r.Context(), sp) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "spell not found"})
		return
	}
	writeJSON(w, http.StatusOK, sp)
}

func (h *SpellHandler) Delete(w http.ResponseWriter, r *http.Request) {
	err := h.store.Remove(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, spell.ErrLastSpell):
		writeJSON(w, http.StatusConflict, map[string]string{"error": err.Error()})
	case errors.Is(err, spell.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "spell not found"})
	case err != nil:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	default:
		writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": true, "active": h.store.Active().ID})
	}
}

func (h *SpellHandler) Select(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Select(chi.URLParam(r, "id")); err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "spell not found"})
		return
	}
	writeJSON(w, http.StatusOK, h.store.Active())
}

type renderRequest struct {
	Text         string `json:"text"`
	CustomPrompt string `json:"custom_prompt,omitempty"`
}

// Render previews the composed instruction for a spell without dispatching
// anything upstream.
func (h *SpellHandler) Render(w http.ResponseWriter, r *http.Request) {
	sp, ok := h.store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "spell not found"})
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	text := strings.TrimSpace(req.Text)
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "text required"})
		return
	}

	composed, err := prompt.Compose(text, sp, strings.TrimSpace(req.CustomPrompt))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"prompt": composed})
}
