package handlers

import (
	"net/http"

	"github.com/kimiagar/backend/internal/models"
)

type ModelHandler struct{}

func NewModelHandler() *ModelHandler { return &ModelHandler{} }

func (h *ModelHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"models": models.AIModels,
		"icons":  models.IconNames(),
	})
}
