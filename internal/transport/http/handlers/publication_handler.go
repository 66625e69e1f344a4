package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/maisonbleue/backend/internal/domain"
	"github.com/maisonbleue/backend/internal/service"
	"github.com/maisonbleue/backend/internal/slug"
	"github.com/maisonbleue/backend/internal/transport/http/middleware"
	"github.com/maisonbleue/backend/pkg/validator"
)

const (
	publicationsPublicPerPage = 9
	publicationsAdminPerPage  = 20
)

type PublicationHandler struct {
	publicationService *service.PublicationService
}

func NewPublicationHandler(publicationService *service.PublicationService) *PublicationHandler {
	return &PublicationHandler{publicationService: publicationService}
}

func (h *PublicationHandler) List(w http.ResponseWriter, r *http.Request) {
	f := listFilter(r, publicationsPublicPerPage)
	f.Status = ""

	list, err := h.publicationService.ListPublished(r.Context(), f)
	if err != nil {
		slog.Error("list publications", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *PublicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	pub, err := h.publicationService.GetPublished(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPublicationNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Publication not found")
		} else {
			slog.Error("get publication", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, pub)
}

func (h *PublicationHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	list, err := h.publicationService.ListAdmin(r.Context(), listFilter(r, publicationsAdminPerPage))
	if err != nil {
		slog.Error("list publications admin", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *PublicationHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid publication ID")
		return
	}

	pub, err := h.publicationService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPublicationNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Publication not found")
		} else {
			slog.Error("get publication admin", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, pub)
}

func (h *PublicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input service.CreatePublicationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateArticle(input.Title, input.Slug, input.Status); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	pub, err := h.publicationService.Create(r.Context(), user.ID, input)
	if err != nil {
		if errors.Is(err, slug.ErrConflict) {
			writeError(w, http.StatusConflict, "SLUG_CONFLICT", "Could not allocate a unique slug")
		} else {
			slog.Error("create publication", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, pub)
}

func (h *PublicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid publication ID")
		return
	}

	var input service.UpdatePublicationInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if input.Status != nil && *input.Status != domain.StatusDraft && *input.Status != domain.StatusPublished {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be draft or published")
		return
	}

	pub, err := h.publicationService.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPublicationNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Publication not found")
		case errors.Is(err, service.ErrSlugTaken):
			writeError(w, http.StatusBadRequest, "SLUG_TAKEN", "This slug is already in use")
		default:
			slog.Error("update publication", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, pub)
}

func (h *PublicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid publication ID")
		return
	}

	if err := h.publicationService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrPublicationNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Publication not found")
		} else {
			slog.Error("delete publication", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
