package handlers

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"

	"github.com/kimiagar/backend/pkg/textextract"
)

type ExtractHandler struct{}

func NewExtractHandler() *ExtractHandler { return &ExtractHandler{} }

// Upload accepts a text-bearing file and returns its plain text, ready to
// drop into the transformation input.
func (h *ExtractHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(16 << 20); err != nil { // 16MB max
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid multipart form"})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file required"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "read file: " + err.Error()})
		return
	}

	fileType := filepath.Ext(header.Filename)
	if fileType == "" {
		fileType = header.Header.Get("Content-Type")
	}

	text, err := textextract.Extract(bytes.NewReader(data), int64(len(data)), fileType)
	if err != nil {
		writeJSON(w, http.StatusUnsupportedMediaType, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"text":      text,
		"filename":  header.Filename,
		"supported": textextract.SupportedTypes(),
	})
}
