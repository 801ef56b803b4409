package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/pkg/apperrors"
	"github.com/unipem/lms/internal/pkg/auth"
	"github.com/unipem/lms/internal/pkg/helpers"
)

// RoleFilterAll disables the role filter of ListUsers
const RoleFilterAll = "ALL"

// UserService defines the interface for user administration
type UserService interface {
	ListUsers(ctx context.Context, search, role string, page, pageSize int) ([]models.User, int64, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
}

type userServiceImpl struct {
	userRepo repositories.IUserRepository
	logger   zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userRepo repositories.IUserRepository, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userRepo: userRepo,
		logger:   logger,
	}
}

// ListUsers returns one page of users, newest first
func (s *userServiceImpl) ListUsers(ctx context.Context, search, role string, page, pageSize int) ([]models.User, int64, error) {
	filter := models.UserFilter{Search: strings.TrimSpace(search)}

	role = strings.ToUpper(strings.TrimSpace(role))
	if role != "" && role != RoleFilterAll {
		r := models.Role(role)
		if !r.Valid() {
			return nil, 0, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", role))
		}
		filter.Role = r
	}

	offset, limit := helpers.CalculateOffsetLimit(page, pageSize)
	filter.Offset = int(offset)
	filter.Limit = limit

	users, total, err := s.userRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	return users, total, nil
}

// GetUser retrieves a user by ID
func (s *userServiceImpl) GetUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// GetUserByUsername retrieves a user by NPM/NIP
func (s *userServiceImpl) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
}

// CreateUser creates an account. Role defaults to STUDENT and password to the institutional default.
func (s *userServiceImpl) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	role := models.RoleStudent
	if req.Role != "" {
		role = models.Role(strings.ToUpper(req.Role))
		if !role.Valid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", req.Role))
		}
	}

	password := auth.DefaultPassword
	if req.Password != nil && *req.Password != "" {
		password = *req.Password
	}
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Username: strings.TrimSpace(req.Username),
		Name:     strings.TrimSpace(req.Name),
		Email:    strings.ToLower(strings.TrimSpace(req.Email)),
		Role:     role,
		Password: hash,
		Avatar:   req.Avatar,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("userId", user.ID.String()).Str("role", string(role)).Msg("User created")
	return user, nil
}

// UpdateUser replaces the profile of a user; an empty password keeps the stored hash
func (s *userServiceImpl) UpdateUser(ctx context.Context, id uuid.UUID, req *dto.UpdateUserRequest) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	role := models.Role(strings.ToUpper(req.Role))
	if !role.Valid() {
		return nil, apperrors.NewValidationError(fmt.Sprintf("unknown role %q", req.Role))
	}

	user.Username = strings.TrimSpace(req.Username)
	user.Name = strings.TrimSpace(req.Name)
	user.Email = strings.ToLower(strings.TrimSpace(req.Email))
	user.Role = role
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}

	if req.Password != nil && *req.Password != "" {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		user.Password = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeleteUser removes an account with its submissions
func (s *userServiceImpl) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("userId", id.String()).Msg("User deleted")
	return nil
}
