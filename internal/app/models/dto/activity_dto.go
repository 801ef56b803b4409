package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/unipem/lms/internal/app/models"
)

// ActivityRequest represents the activity form.
// DueDate accepts RFC3339 or a datetime-local value and is ignored unless type is ASSIGNMENT.
type ActivityRequest struct {
	SectionID   uuid.UUID `json:"sectionId" binding:"required"`
	Type        string    `json:"type" binding:"required,activitytype" example:"ASSIGNMENT" enums:"FILE,ASSIGNMENT,FORUM,LINK"`
	Title       string    `json:"title" binding:"required,min=2,max=200" example:"Tugas 1: Slice UI Dashboard"`
	Description *string   `json:"description,omitempty" example:"Buatlah layout dashboard menggunakan Tailwind CSS."`
	ContentURL  *string   `json:"contentUrl,omitempty" example:"/files/materi1.pdf"`
	DueDate     string    `json:"dueDate,omitempty" example:"2026-01-20T23:59:00Z"`
}

// ActivityResponse is an activity inside a section
type ActivityResponse struct {
	ID          uuid.UUID  `json:"id"`
	SectionID   uuid.UUID  `json:"sectionId"`
	Type        string     `json:"type" example:"ASSIGNMENT"`
	Title       string     `json:"title" example:"Tugas 1: Slice UI Dashboard"`
	Description *string    `json:"description,omitempty"`
	ContentURL  *string    `json:"contentUrl,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// ActivityDetailResponse is the activity page. MySubmission is set for students only.
type ActivityDetailResponse struct {
	ActivityResponse
	Section      *SectionSummary     `json:"section,omitempty"`
	Course       *CourseSummary      `json:"course,omitempty"`
	MySubmission *SubmissionResponse `json:"mySubmission,omitempty"`
	CanGrade     bool                `json:"canGrade"`
	CanSubmit    bool                `json:"canSubmit"`
}

// NewActivityResponse maps an activity model to its DTO
func NewActivityResponse(a *models.Activity) ActivityResponse {
	return ActivityResponse{
		ID:          a.ID,
		SectionID:   a.SectionID,
		Type:        string(a.Type),
		Title:       a.Title,
		Description: a.Description,
		ContentURL:  a.ContentURL,
		DueDate:     a.DueDate,
		CreatedAt:   a.CreatedAt,
	}
}

// NewActivityResponses maps a slice of activities
func NewActivityResponses(activities []models.Activity) []ActivityResponse {
	out := make([]ActivityResponse, 0, len(activities))
	for i := range activities {
		out = append(out, NewActivityResponse(&activities[i]))
	}
	return out
}

// NewActivityDetailResponse maps an activity with its section and course relations loaded
func NewActivityDetailResponse(a *models.Activity, mine *models.Submission, role models.Role) ActivityDetailResponse {
	resp := ActivityDetailResponse{
		ActivityResponse: NewActivityResponse(a),
		CanGrade:         role != models.RoleStudent && a.Type == models.ActivityAssignment,
		CanSubmit:        role == models.RoleStudent && a.Type == models.ActivityAssignment,
	}
	if a.Section != nil {
		resp.Section = &SectionSummary{ID: a.Section.ID, Title: a.Section.Title}
		resp.Course = NewCourseSummary(a.Section.Course)
	}
	if mine != nil {
		s := NewSubmissionResponse(mine)
		resp.MySubmission = &s
	}
	return resp
}
