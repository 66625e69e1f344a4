package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maisonbleue/backend/internal/auth"
	"github.com/maisonbleue/backend/internal/domain"
)

type fakeUserRepo struct {
	users  map[int64]*domain.User
	nextID int64
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int64]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(_ context.Context, u *domain.User) error {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Count(context.Context) (int64, error) {
	return int64(len(f.users)), nil
}

func newTestAuthService(t *testing.T, lifetime time.Duration) (*AuthService, *fakeUserRepo) {
	t.Helper()
	repo := newFakeUserRepo()
	return NewAuthService(repo, auth.NewIssuer("test-secret", lifetime)), repo
}

func seedUser(t *testing.T, repo *fakeUserRepo, email, password string, active bool) *domain.User {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)

	u := &domain.User{
		Email:        email,
		Username:     email,
		PasswordHash: hash,
		IsActive:     active,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc, repo := newTestAuthService(t, time.Hour)
	user := seedUser(t, repo, "julien@example.org", "Passw0rdOk", true)

	resp, err := svc.Login(context.Background(), LoginInput{Email: "julien@example.org", Password: "Passw0rdOk"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.NotEmpty(t, resp.AccessToken)
}

// Unknown email and wrong password must be the same error so the login
// form cannot be used to enumerate accounts.
func TestLoginGenericFailure(t *testing.T) {
	t.Parallel()

	svc, repo := newTestAuthService(t, time.Hour)
	seedUser(t, repo, "julien@example.org", "Passw0rdOk", true)

	_, errUnknown := svc.Login(context.Background(), LoginInput{Email: "nobody@example.org", Password: "Passw0rdOk"})
	_, errWrongPw := svc.Login(context.Background(), LoginInput{Email: "julien@example.org", Password: "not-it"})

	assert.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	assert.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
}

func TestLoginDisabledAccount(t *testing.T) {
	t.Parallel()

	svc, repo := newTestAuthService(t, time.Hour)
	seedUser(t, repo, "julien@example.org", "Passw0rdOk", false)

	_, err := svc.Login(context.Background(), LoginInput{Email: "julien@example.org", Password: "Passw0rdOk"})
	assert.ErrorIs(t, err, ErrAccountDisabled)
}

// The four resolution failures must be externally identical.
func TestResolveIdentityUniformFailure(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	svc, repo := newTestAuthService(t, time.Hour)
	active := seedUser(t, repo, "active@example.org", "Passw0rdOk", true)
	inactive := seedUser(t, repo, "inactive@example.org", "Passw0rdOk", false)

	issuer := auth.NewIssuer("test-secret", time.Hour)
	expiredIssuer := auth.NewIssuer("test-secret", -time.Minute)

	garbage := "not-a-token"
	expired, err := expiredIssuer.Issue(active.ID)
	require.NoError(t, err)
	unknownSubject, err := issuer.Issue(9999)
	require.NoError(t, err)
	inactiveToken, err := issuer.Issue(inactive.ID)
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":          garbage,
		"expired":          expired,
		"unknown subject":  unknownSubject,
		"inactive account": inactiveToken,
	} {
		_, err := svc.ResolveIdentity(ctx, token)
		assert.ErrorIs(t, err, ErrUnauthorized, "case %q", name)
	}

	// Sanity: a valid token for an active account resolves.
	valid, err := issuer.Issue(active.ID)
	require.NoError(t, err)
	got, err := svc.ResolveIdentity(ctx, valid)
	require.NoError(t, err)
	assert.Equal(t, active.ID, got.ID)
}

func TestInitAdmin(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	svc, _ := newTestAuthService(t, time.Hour)

	user, err := svc.InitAdmin(ctx, InitAdminInput{Email: "julien@example.org", Username: "julien", Password: "Passw0rdOk"})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "Passw0rdOk", user.PasswordHash)

	_, err = svc.InitAdmin(ctx, InitAdminInput{Email: "other@example.org", Username: "other", Password: "Passw0rdOk"})
	assert.ErrorIs(t, err, ErrAlreadyInitialized)
}
