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
	articlesPublicPerPage = 9
	articlesAdminPerPage  = 20
)

type ArticleHandler struct {
	articleService *service.ArticleService
}

func NewArticleHandler(articleService *service.ArticleService) *ArticleHandler {
	return &ArticleHandler{articleService: articleService}
}

// List is the public listing: published articles only.
func (h *ArticleHandler) List(w http.ResponseWriter, r *http.Request) {
	f := listFilter(r, articlesPublicPerPage)
	f.Status = ""

	list, err := h.articleService.ListPublished(r.Context(), f)
	if err != nil {
		slog.Error("list articles", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

// Get is the public slug lookup.
func (h *ArticleHandler) Get(w http.ResponseWriter, r *http.Request) {
	article, err := h.articleService.GetPublished(r.Context(), r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Article not found")
		} else {
			slog.Error("get article", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) ListAdmin(w http.ResponseWriter, r *http.Request) {
	list, err := h.articleService.ListAdmin(r.Context(), listFilter(r, articlesAdminPerPage))
	if err != nil {
		slog.Error("list articles admin", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, list)
}

func (h *ArticleHandler) GetAdmin(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid article ID")
		return
	}

	article, err := h.articleService.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Article not found")
		} else {
			slog.Error("get article admin", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r.Context())

	var input service.CreateArticleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateArticle(input.Title, input.Slug, input.Status); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	article, err := h.articleService.Create(r.Context(), user.ID, input)
	if err != nil {
		if errors.Is(err, slug.ErrConflict) {
			writeError(w, http.StatusConflict, "SLUG_CONFLICT", "Could not allocate a unique slug")
		} else {
			slog.Error("create article", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, article)
}

func (h *ArticleHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid article ID")
		return
	}

	var input service.UpdateArticleInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if input.Status != nil && *input.Status != domain.StatusDraft && *input.Status != domain.StatusPublished {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Status must be draft or published")
		return
	}

	article, err := h.articleService.Update(r.Context(), id, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrArticleNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Article not found")
		case errors.Is(err, service.ErrSlugTaken):
			writeError(w, http.StatusBadRequest, "SLUG_TAKEN", "This slug is already in use")
		default:
			slog.Error("update article", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, article)
}

func (h *ArticleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeError(w, http.StatusBadRequest, "INVALID_ID", "Invalid article ID")
		return
	}

	if err := h.articleService.Delete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrArticleNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Article not found")
		} else {
			slog.Error("delete article", "error", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
