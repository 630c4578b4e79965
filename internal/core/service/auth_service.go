package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-api/internal/core/auth"
	"github.com/todoapp/todo-api/internal/core/domain"
	"github.com/todoapp/todo-api/internal/core/ports"
	"github.com/todoapp/todo-api/internal/pkg/metrics"
)

const defaultTokenTTL = 30 * time.Minute

// AuthConfig tunes AuthService.
type AuthConfig struct {
	TokenTTL time.Duration
	// AllowRoleSelfAssign lets registrations pick a role other than
	// domain.RoleUser.
	AllowRoleSelfAssign bool
}

// AuthService implements registration, login and logout.
type AuthService struct {
	repo     ports.UserRepository
	hasher   ports.PasswordHasher
	tokens   ports.TokenIssuer
	denylist ports.TokenDenylist
	cfg      AuthConfig
	logger   zerolog.Logger
}

// NewAuthService builds an AuthService. denylist may be nil, in which case
// Logout is a no-op and tokens live until expiry.
func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, tokens ports.TokenIssuer, denylist ports.TokenDenylist, cfg AuthConfig, logger zerolog.Logger) *AuthService {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:     repo,
		hasher:   hasher,
		tokens:   tokens,
		denylist: denylist,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.User, error) {
	username := normalizeUsername(input.Username)
	if username == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}

	if err := auth.CheckPasswordLength(input.Password); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, err)
	}

	role, err := s.resolveRole(input.Role)
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, fmt.Errorf("check username: %w", err)
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        strings.TrimSpace(input.Email),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		PhoneNumber:  input.PhoneNumber,
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Uint64("user_id", created.ID).Str("username", created.Username).Str("role", created.Role).Msg("user registered")
	return created, nil
}

// normalizeUsername is applied wherever a username enters the service.
func normalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// resolveRole defaults an empty role to domain.RoleUser and refuses any
// other role unless self assignment is enabled.
func (s *AuthService) resolveRole(requested string) (string, error) {
	role := strings.TrimSpace(requested)
	if role == "" || role == domain.RoleUser {
		return domain.RoleUser, nil
	}
	if !s.cfg.AllowRoleSelfAssign {
		return "", domain.ErrRoleNotAllowed
	}
	return role, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*ports.AccessToken, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !user.IsActive || !s.hasher.Verify(password, user.PasswordHash) {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user.Username, user.ID, user.Role, s.cfg.TokenTTL)
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return &ports.AccessToken{Token: token, TokenType: auth.TokenType, ExpiresAt: expiresAt}, nil
}

// Logout revokes the caller's token until its natural expiry.
func (s *AuthService) Logout(ctx context.Context, id domain.Identity) error {
	if s.denylist == nil || id.TokenID == "" {
		return nil
	}
	if err := s.denylist.Revoke(ctx, id.TokenID, id.ExpiresAt); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.Info().Uint64("user_id", id.UserID).Msg("token revoked")
	return nil
}

// EnsureAdmin creates an active admin account with the given credentials
// unless the username already exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil
	}

	_, err := s.repo.FindByUsername(ctx, username)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("check admin: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
	})
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	s.logger.Info().Uint64("user_id", created.ID).Str("username", created.Username).Msg("bootstrap admin created")
	return nil
}
