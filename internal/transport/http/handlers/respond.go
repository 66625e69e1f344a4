package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/maisonbleue/backend/internal/repository"
	"github.com/maisonbleue/backend/internal/service"
	"github.com/maisonbleue/backend/pkg/validator"
)

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}

func parseID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil && id > 0
}

// listFilter reads the common pagination/filter query parameters.
func listFilter(r *http.Request, defaultPerPage int) repository.ListFilter {
	q := r.URL.Query()

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("per_page"))
	page, perPage = service.NormalizePage(page, perPage, defaultPerPage)

	return repository.ListFilter{
		Status:       q.Get("status"),
		CategorySlug: q.Get("category"),
		Search:       q.Get("search"),
		Page:         page,
		PerPage:      perPage,
	}
}
