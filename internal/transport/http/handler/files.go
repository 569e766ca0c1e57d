package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/event-ops-api/internal/application/file"
	"github.com/event-ops-api/internal/domain"
	"github.com/event-ops-api/internal/transport/http/middleware"
)

// maxUploadSize caps multipart uploads at 10 MiB.
const maxUploadSize = 10 << 20

type FileHandler struct {
	files file.Service
}

func NewFileHandler(files file.Service) *FileHandler {
	return &FileHandler{files: files}
}

// Upload accepts a multipart form with a single "file" part.
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	part, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file part")
		return
	}
	defer part.Close()

	f, err := h.files.Upload(r.Context(), file.UploadInput{
		Reader:      part,
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		UploaderID:  claims.UserID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// URL returns a short-lived presigned download link.
func (h *FileHandler) URL(w http.ResponseWriter, r *http.Request) {
	url, err := h.files.URL(r.Context(), chi.URLParam(r, "fileID"))
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": url})
}

func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	isAdmin := claims.Role == domain.RoleAdmin
	if err := h.files.Delete(r.Context(), chi.URLParam(r, "fileID"), claims.UserID, isAdmin); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "file deleted"})
}
