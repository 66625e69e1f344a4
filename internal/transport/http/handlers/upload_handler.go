package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/maisonbleue/backend/internal/service"
)

type UploadHandler struct {
	uploadService *service.UploadService
}

func NewUploadHandler(uploadService *service.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// One extra byte beyond the limit so oversized files are detected
	// rather than silently truncated.
	if err := r.ParseMultipartForm(h.uploadService.MaxBytes() + 1); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Invalid multipart form")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_FORM", "Missing file field")
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		slog.Error("reading upload", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	result, err := h.uploadService.Upload(r.Context(), header.Filename, header.Header.Get("Content-Type"), content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedType):
			writeError(w, http.StatusBadRequest, "UNSUPPORTED_TYPE", "Accepted types: JPEG, PNG, WEBP, GIF")
		case errors.Is(err, service.ErrFileTooLarge):
			writeError(w, http.StatusBadRequest, "FILE_TOO_LARGE", "File exceeds the size limit")
		case errors.Is(err, service.ErrInvalidImage):
			writeError(w, http.StatusBadRequest, "INVALID_IMAGE", "File is not a valid image")
		default:
			slog.Error("upload", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, result)
}
