package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/auth"
)

// Login failure messages shown on the login page
const (
	MsgUnknownUsername = "NPM/NIP tidak terdaftar."
	MsgWrongPassword   = "Password salah."
)

// AuthService handles login and the current session user
type AuthService interface {
	Login(ctx context.Context, username, password string) (*auth.Session, error)
	CurrentUser(ctx context.Context, session *auth.Session) (*models.User, error)
}

type authServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.IUserRepository, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// Login verifies an NPM/NIP and password pair and returns the session to store in the cookie
func (s *authServiceImpl) Login(ctx context.Context, username, password string) (*auth.Session, error) {
	username = strings.TrimSpace(username)

	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgUnknownUsername)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		s.logger.Info().Str("username", username).Msg("Login rejected: wrong password")
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidCredentials, MsgWrongPassword)
	}

	session := auth.NewSession(user)
	s.logger.Info().Str("username", username).Str("role", string(user.Role)).Msg("User logged in")
	return &session, nil
}

// CurrentUser reloads the account behind a session
func (s *authServiceImpl) CurrentUser(ctx context.Context, session *auth.Session) (*models.User, error) {
	if session == nil {
		return nil, apperrors.ErrSessionMissing
	}

	user, err := s.userRepo.GetByID(ctx, session.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	return user, nil
}
