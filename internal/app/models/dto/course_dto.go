package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/unipem/lms/internal/app/models"
)

// DefaultCourseThumbnail is used when a course is created without a thumbnail
const DefaultCourseThumbnail = "https://images.unsplash.com/photo-1501504905252-473c47e087f8?w=800&q=80"

// --- Request DTOs ---

// CourseRequest represents the admin course form, used for create and update
type CourseRequest struct {
	Code         string    `json:"code" binding:"required,coursecode" example:"INF202"`
	Title        string    `json:"title" binding:"required,min=3,max=200" example:"Pemrograman Web Lanjut"`
	Category     *string   `json:"category,omitempty" binding:"omitempty,max=100" example:"Teknik Informatika"`
	InstructorID uuid.UUID `json:"instructorId" binding:"required" example:"8a5c2b7e-1f0d-4c1e-9b1a-0d6f1b2c3d4e"`
	Thumbnail    *string   `json:"thumbnail,omitempty" binding:"omitempty,url"`
}

// --- Response DTOs ---

// CourseResponse is a course as listed on the dashboard and admin pages
type CourseResponse struct {
	ID            uuid.UUID    `json:"id"`
	Code          string       `json:"code" example:"INF202"`
	Title         string       `json:"title" example:"Pemrograman Web Lanjut"`
	Category      *string      `json:"category,omitempty" example:"Teknik Informatika"`
	Thumbnail     *string      `json:"thumbnail,omitempty"`
	InstructorID  *uuid.UUID   `json:"instructorId,omitempty"`
	Instructor    *UserSummary `json:"instructor,omitempty"`
	SectionCount  int          `json:"sectionCount" example:"2"`
	ActivityCount int          `json:"activityCount" example:"3"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// CourseDetailResponse is the course page: the course plus its ordered sections and activities
type CourseDetailResponse struct {
	CourseResponse
	Sections []SectionResponse `json:"sections"`
	CanEdit  bool              `json:"canEdit"`
}

// CourseSummary is the short course shape embedded in other responses
type CourseSummary struct {
	ID    uuid.UUID `json:"id"`
	Code  string    `json:"code" example:"INF202"`
	Title string    `json:"title" example:"Pemrograman Web Lanjut"`
}

// NewCourseResponse maps a course model to its DTO
func NewCourseResponse(c *models.Course) CourseResponse {
	return CourseResponse{
		ID:            c.ID,
		Code:          c.Code,
		Title:         c.Title,
		Category:      c.Category,
		Thumbnail:     c.Thumbnail,
		InstructorID:  c.InstructorID,
		Instructor:    NewUserSummary(c.Instructor),
		SectionCount:  c.SectionCount,
		ActivityCount: c.ActivityCount,
		CreatedAt:     c.CreatedAt,
	}
}

// NewCourseResponses maps a slice of courses
func NewCourseResponses(courses []models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for i := range courses {
		out = append(out, NewCourseResponse(&courses[i]))
	}
	return out
}

// NewCourseDetailResponse maps a course with its loaded sections
func NewCourseDetailResponse(c *models.Course, canEdit bool) CourseDetailResponse {
	resp := CourseDetailResponse{
		CourseResponse: NewCourseResponse(c),
		Sections:       NewSectionResponses(c.Sections),
		CanEdit:        canEdit,
	}
	if resp.SectionCount == 0 {
		resp.SectionCount = len(c.Sections)
	}
	if resp.ActivityCount == 0 {
		for _, s := range c.Sections {
			resp.ActivityCount += len(s.Activities)
		}
	}
	return resp
}

// NewCourseSummary maps a course to the short shape; nil stays nil
func NewCourseSummary(c *models.Course) *CourseSummary {
	if c == nil {
		return nil
	}
	return &CourseSummary{ID: c.ID, Code: c.Code, Title: c.Title}
}
