package dto

import (
	"github.com/google/uuid"
	"github.com/unipem/lms/internal/pkg/auth"
)

// LoginRequest represents the login form
type LoginRequest struct {
	Username string `json:"username" form:"username" binding:"required" example:"2021001"` // NPM or NIP
	Password string `json:"password" form:"password" binding:"required" example:"password123"`
}

// SessionResponse is the identity stored in the session cookie
type SessionResponse struct {
	ID       uuid.UUID `json:"id" example:"8a5c2b7e-1f0d-4c1e-9b1a-0d6f1b2c3d4e"`
	Username string    `json:"username" example:"2021001"`
	Name     string    `json:"name" example:"Andi Mahasiswa"`
	Email    string    `json:"email" example:"andi@student.unipem.ac.id"`
	Role     string    `json:"role" example:"STUDENT" enums:"ADMIN,TEACHER,STUDENT"`
}

// LoginResponse is returned after a successful login
type LoginResponse struct {
	User     SessionResponse `json:"user"`
	Redirect string          `json:"redirect" example:"/dashboard"`
}

// LoginPageResponse is returned by GET /login for anonymous visitors
type LoginPageResponse struct {
	SiteName string `json:"siteName" example:"LMS Universitas Insan Pembangunan Indonesia"`
	Action   string `json:"action" example:"/login"`
}

// NewSessionResponse maps a session to its DTO
func NewSessionResponse(s auth.Session) SessionResponse {
	return SessionResponse{
		ID:       s.ID,
		Username: s.Username,
		Name:     s.Name,
		Email:    s.Email,
		Role:     string(s.Role),
	}
}
