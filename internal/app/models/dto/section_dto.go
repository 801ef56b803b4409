package dto

import (
	"github.com/google/uuid"
	"github.com/unipem/lms/internal/app/models"
)

// SectionRequest represents the section form. A nil order appends the section at the end.
type SectionRequest struct {
	Title       string  `json:"title" binding:"required,min=2,max=200" example:"Minggu 1: Pengenalan Next.js"`
	Description *string `json:"description,omitempty" example:"Mempelajari dasar-dasar App Router dan Server Components."`
	Order       *int    `json:"order,omitempty" binding:"omitempty,min=0" example:"0"`
}

// SectionResponse is a section with its activities
type SectionResponse struct {
	ID          uuid.UUID          `json:"id"`
	CourseID    uuid.UUID          `json:"courseId"`
	Title       string             `json:"title" example:"Minggu 1: Pengenalan Next.js"`
	Description *string            `json:"description,omitempty"`
	Order       int                `json:"order" example:"0"`
	Activities  []ActivityResponse `json:"activities"`
}

// SectionSummary is the short section shape embedded in other responses
type SectionSummary struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title" example:"Minggu 2: Tailwind CSS & UI Design"`
}

// NewSectionResponse maps a section model to its DTO
func NewSectionResponse(s *models.Section) SectionResponse {
	return SectionResponse{
		ID:          s.ID,
		CourseID:    s.CourseID,
		Title:       s.Title,
		Description: s.Description,
		Order:       s.Order,
		Activities:  NewActivityResponses(s.Activities),
	}
}

// NewSectionResponses maps a slice of sections
func NewSectionResponses(sections []models.Section) []SectionResponse {
	out := make([]SectionResponse, 0, len(sections))
	for i := range sections {
		out = append(out, NewSectionResponse(&sections[i]))
	}
	return out
}
