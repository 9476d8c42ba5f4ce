package admin

import (
	"context"

	"flightbook/internal/domain"
	"flightbook/internal/metrics"
	"flightbook/internal/repository"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

type AdminUseCase interface {
	// Authenticate returns the admin record for matching credentials, nil for
	// both an unknown username and a wrong password.
	Authenticate(ctx context.Context, username, password string) (*domain.AdminUser, error)
	Login(ctx context.Context, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	CheckSession(ctx context.Context, token string) (string, error)
	EnsureAdmin(ctx context.Context, username, password string) error
}

// SessionStore is the slice of the redis cache this service needs.
type SessionStore interface {
	IssueSession(ctx context.Context, username string) (string, error)
	CheckSession(ctx context.Context, token string) (string, error)
	RevokeSession(ctx context.Context, token string) error
}

type AdminService struct {
	admins   repository.AdminRepository
	sessions SessionStore
	log      zerolog.Logger
}

func NewAdminService(admins repository.AdminRepository, sessions SessionStore, log zerolog.Logger) *AdminService {
	return &AdminService{admins: admins, sessions: sessions, log: log}
}

func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*domain.AdminUser, error) {
	admin, err := s.admins.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		metrics.IncAuthFailure()
		return nil, nil
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		metrics.IncAuthFailure()
		return nil, nil
	}
	return admin, nil
}

// Login authenticates and issues a session token; "" means bad credentials.
func (s *AdminService) Login(ctx context.Context, username, password string) (string, error) {
	admin, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return "", err
	}
	if admin == nil {
		return "", nil
	}
	return s.sessions.IssueSession(ctx, admin.Username)
}

func (s *AdminService) Logout(ctx context.Context, token string) error {
	return s.sessions.RevokeSession(ctx, token)
}

func (s *AdminService) CheckSession(ctx context.Context, token string) (string, error) {
	return s.sessions.CheckSession(ctx, token)
}

// EnsureAdmin seeds or rotates the single dashboard account. The password is
// hashed here; the raw value never reaches the store.
func (s *AdminService) EnsureAdmin(ctx context.Context, username, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &domain.AdminUser{Username: username, PasswordHash: string(hash)}
	if err := s.admins.Upsert(ctx, admin); err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("admin account ensured")
	return nil
}

var _ AdminUseCase = (*AdminService)(nil)
