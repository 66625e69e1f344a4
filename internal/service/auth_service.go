package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maisonbleue/backend/internal/auth"
	"github.com/maisonbleue/backend/internal/domain"
	"github.com/maisonbleue/backend/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountDisabled    = errors.New("account is disabled")
	ErrAlreadyInitialized = errors.New("an account already exists")

	// ErrUnauthorized is deliberately the only failure ResolveIdentity
	// returns: a garbage token, an expired token, an unknown subject and
	// a deactivated account must be indistinguishable to the caller.
	ErrUnauthorized = errors.New("unauthorized")
)

type AuthService struct {
	userRepo repository.UserRepository
	issuer   *auth.Issuer
}

func NewAuthService(userRepo repository.UserRepository, issuer *auth.Issuer) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		issuer:   issuer,
	}
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type InitAdminInput struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        *domain.User `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, input LoginInput) (*AuthResponse, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.VerifyPassword(input.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	token, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generating token: %w", err)
	}

	return &AuthResponse{AccessToken: token, TokenType: "bearer", User: user}, nil
}

// ResolveIdentity maps a bearer token to an active account. Every
// failure collapses into ErrUnauthorized; only storage errors pass
// through as-is.
func (s *AuthService) ResolveIdentity(ctx context.Context, token string) (*domain.User, error) {
	id, err := s.issuer.Decode(token)
	if err != nil {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, ErrUnauthorized
	}

	return user, nil
}

// InitAdmin creates the very first admin account. It refuses to run
// once any account exists; further accounts come from the backoffice.
func (s *AuthService) InitAdmin(ctx context.Context, input InitAdminInput) (*domain.User, error) {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyInitialized
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
		IsActive:     true,
		IsAdmin:      true,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return user, nil
}
