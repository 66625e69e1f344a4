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
	boutiquePublicPerPage = 12
	boutiqueAdminPerPage  = 20
)

type BoutiqueHandler struct {
	boutiqueService *service.BoutiqueService
}

func NewBoutiqueHandler(boutiqueService *service.BoutiqueService) *BoutiqueHandler {
	return &BoutiqueHandler{boutiqueService: boutiqueService}
}

func (h *BoutiqueHandler) List(w http.ResponseWriter, r *http.Request) {
	f := listFilter(r, boutiquePublicPerPage)
	f.Status = ""

	list, err := h.boutiqueService.ListPublished(r.Context(), f)
	if err != nil {
		slog.Error("list boutique items", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *BoutiqueHandler) Get(w http.ResponseWriter, r *http.Request) {
	item, err := h.boutiqueService.GetPublished(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		} else {
			slog.Error("get boutique item", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *BoutiqueHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	list, err := h.boutiqueService.ListAdmin(r.Context(), listFilter(r, boutiqueAdminPerPage))
	if err != nil {
		slog.Error("list boutique admin", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *BoutiqueHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	item, err := h.boutiqueService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		} else {
			slog.Error("get boutique admin", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *BoutiqueHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input service.CreateItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateBoutiqueItem(input.Name, input.Slug, input.Status, input.Price); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	item, err := h.boutiqueService.Create(r.Context(), user.ID, input)
	if err != nil {
		if errors.Is(err, slug.ErrConflict) {
			writeError(w, http.StatusConflict, "SLUG_CONFLICT", "Could not allocate a unique slug")
		} else {
			slog.Error("create boutique item", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *BoutiqueHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	var input service.UpdateItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if input.Status != nil && *input.Status != domain.StatusDraft && *input.Status != domain.StatusPublished {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be draft or published")
		return
	}
	if input.Price != nil && *input.Price < 0 {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Price cannot be negative")
		return
	}

	item, err := h.boutiqueService.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrItemNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		case errors.Is(err, service.ErrSlugTaken):
			writeError(w, http.StatusBadRequest, "SLUG_TAKEN", "This slug is already in use")
		default:
			slog.Error("update boutique item", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *BoutiqueHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	if err := h.boutiqueService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Product not found")
		} else {
			slog.Error("delete boutique item", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
