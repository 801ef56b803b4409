package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/unipem/lms/internal/app/models"
)

// --- Request DTOs ---

// CreateUserRequest represents the admin "add user" form.
// Role defaults to STUDENT and password to password123.
type CreateUserRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100" example:"Andi Mahasiswa"`
	Username string  `json:"username" binding:"required,username" example:"2021001"`
	Email    string  `json:"email" binding:"required,email" example:"andi@student.unipem.ac.id"`
	Role     string  `json:"role" binding:"omitempty,role" example:"STUDENT"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6" example:"password123"`
	Avatar   *string `json:"avatar,omitempty" binding:"omitempty,url" example:"https://i.pravatar.cc/150"`
}

// UpdateUserRequest represents the admin "edit user" form; an empty password keeps the current one
type UpdateUserRequest struct {
	Name     string  `json:"name" binding:"required,min=2,max=100" example:"Andi Mahasiswa"`
	Username string  `json:"username" binding:"required,username" example:"2021001"`
	Email    string  `json:"email" binding:"required,email" example:"andi@student.unipem.ac.id"`
	Role     string  `json:"role" binding:"required,role" example:"STUDENT"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
	Avatar   *string `json:"avatar,omitempty" binding:"omitempty,url"`
}

// --- Response DTOs ---

// UserResponse represents a user account without its password
type UserResponse struct {
	ID        uuid.UUID `json:"id" example:"8a5c2b7e-1f0d-4c1e-9b1a-0d6f1b2c3d4e"`
	Username  string    `json:"username" example:"2021001"`
	Name      string    `json:"name" example:"Andi Mahasiswa"`
	Email     string    `json:"email" example:"andi@student.unipem.ac.id"`
	Role      string    `json:"role" example:"STUDENT" enums:"ADMIN,TEACHER,STUDENT"`
	Avatar    *string   `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"createdAt" example:"2026-01-01T10:00:00Z"`
}

// UserSummary is the short user shape embedded in other responses
type UserSummary struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username" example:"19850101"`
	Name     string    `json:"name" example:"Dr. Budi Santoso"`
	Email    string    `json:"email,omitempty" example:"budi@unipem.ac.id"`
	Avatar   *string   `json:"avatar,omitempty"`
}

// UserListResponse is one page of users
type UserListResponse struct {
	Users      []UserResponse `json:"users"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewUserResponse maps a user model to its DTO
func NewUserResponse(u *models.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		Avatar:    u.Avatar,
		CreatedAt: u.CreatedAt,
	}
}

// NewUserSummary maps a user model to the short shape; nil stays nil
func NewUserSummary(u *models.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:       u.ID,
		Username: u.Username,
		Name:     u.Name,
		Email:    u.Email,
		Avatar:   u.Avatar,
	}
}

// NewUserResponses maps a slice of users
func NewUserResponses(users []models.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, NewUserResponse(&users[i]))
	}
	return out
}
