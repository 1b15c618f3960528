package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pkordes/fuel-tracker/backend/internal/domain"
	"github.com/pkordes/fuel-tracker/backend/internal/repo"
	"github.com/pkordes/fuel-tracker/backend/internal/validate"
)

// ErrInvalidCredentials is returned by Login for an unknown user or a wrong
// password; the two cases are not distinguished.
var ErrInvalidCredentials = fmt.Errorf("invalid credentials: %w", domain.ErrUnauthenticated)

// TokenManager issues and checks session tokens.
type TokenManager interface {
	Issue(ctx context.Context, id domain.Identity) (domain.Session, error)
	Verify(ctx context.Context, token string) (domain.Identity, error)
	Revoke(ctx context.Context, token string) error
}

// AuthService implements registration, login and session checks.
type AuthService struct {
	users  repo.UserRepo
	tokens TokenManager
	cost   int

	// dummyHash is compared against when the user does not exist, so an
	// unknown username costs as much as a wrong password.
	dummyHash []byte
}

// NewAuthService constructs an AuthService. cost is the bcrypt work factor.
func NewAuthService(users repo.UserRepo, tokens TokenManager, cost int) *AuthService {
	dummy, err := bcrypt.GenerateFromPassword([]byte("not-a-real-password"), cost)
	if err != nil {
		// Only an out-of-range cost gets here.
		panic(fmt.Sprintf("service.NewAuthService: %v", err))
	}
	return &AuthService{users: users, tokens: tokens, cost: cost, dummyHash: dummy}
}

// Register validates and stores a new account.
// A taken username yields a *domain.ConflictError.
func (s *AuthService) Register(ctx context.Context, username, password string) (domain.User, error) {
	creds, err := validate.Registration(username, password)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), s.cost)
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: hash: %w", err)
	}
	u, err := s.users.Create(ctx, creds.Username, string(hash))
	if err != nil {
		return domain.User{}, fmt.Errorf("service.AuthService.Register: %w", err)
	}
	return u, nil
}

// Login checks the credentials and issues a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	creds, err := validate.Login(username, password)
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	u, err := s.users.GetByUsername(ctx, creds.Username)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(creds.Password))
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", ErrInvalidCredentials)
	case err != nil:
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)); err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: %w", ErrInvalidCredentials)
	}

	sess, err := s.tokens.Issue(ctx, domain.Identity{UserID: u.ID, Username: u.Username})
	if err != nil {
		return domain.Session{}, fmt.Errorf("service.AuthService.Login: issue: %w", err)
	}
	return sess, nil
}

// Logout revokes token. An already invalid token is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.tokens.Revoke(ctx, token)
	if err != nil && !errors.Is(err, domain.ErrUnauthenticated) {
		return fmt.Errorf("service.AuthService.Logout: %w", err)
	}
	return nil
}

// Authenticate resolves token to an identity, or domain.ErrUnauthenticated.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, fmt.Errorf("service.AuthService.Authenticate: %w", domain.ErrUnauthenticated)
	}
	id, err := s.tokens.Verify(ctx, token)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("service.AuthService.Authenticate: %w", err)
	}
	return id, nil
}
