package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maisonbleue/backend/internal/domain"
	"github.com/maisonbleue/backend/internal/service"
)

type fakeResolver struct {
	user *domain.User
}

func (f *fakeResolver) ResolveIdentity(_ context.Context, token string) (*domain.User, error) {
	if f.user != nil && token == "good-token" {
		return f.user, nil
	}
	return nil, service.ErrUnauthorized
}

func TestAuthPassesUserThrough(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{user: &domain.User{ID: 7, Email: "julien@example.org"}}

	var got *domain.User
	handler := Auth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = GetUser(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), got.ID)
}

// Missing header, malformed header and rejected token must produce the
// same response.
func TestAuthUniformRejection(t *testing.T) {
	t.Parallel()

	resolver := &fakeResolver{}
	handler := Auth(resolver)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))

	var bodies []string
	for name, set := range map[string]func(*http.Request){
		"no header":      func(r *http.Request) {},
		"not bearer":     func(r *http.Request) { r.Header.Set("Authorization", "Basic abc") },
		"rejected token": func(r *http.Request) { r.Header.Set("Authorization", "Bearer bad-token") },
		"empty bearer":   func(r *http.Request) { r.Header.Set("Authorization", "Bearer ") },
	} {
		req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		set(req)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "case %q", name)
		bodies = append(bodies, rec.Body.String())
	}

	for _, b := range bodies[1:] {
		assert.Equal(t, bodies[0], b, "all rejections must look identical")
	}
}
