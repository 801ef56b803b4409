package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/unipem/lms/internal/app/models"
)

// SubmitRequest is the JSON form of a submission; multipart uploads send the file instead
type SubmitRequest struct {
	FileURL *string `json:"fileUrl,omitempty" form:"fileUrl" binding:"omitempty,max=2048" example:"https://drive.example.com/tugas1.zip"`
}

// GradeRequest represents the grading form
type GradeRequest struct {
	Grade    *int    `json:"grade" binding:"required,min=0,max=100" example:"85"`
	Feedback *string `json:"feedback,omitempty" binding:"omitempty,max=2000" example:"Layout rapi, perbaiki responsivitas."`
}

// SubmissionActivity locates a submission's activity inside its course
type SubmissionActivity struct {
	ID      uuid.UUID       `json:"id"`
	Title   string          `json:"title" example:"Tugas 1: Slice UI Dashboard"`
	Type    string          `json:"type" example:"ASSIGNMENT"`
	DueDate *time.Time      `json:"dueDate,omitempty"`
	Section *SectionSummary `json:"section,omitempty"`
	Course  *CourseSummary  `json:"course,omitempty"`
}

// SubmissionResponse is a submission with optional student and activity relations
type SubmissionResponse struct {
	ID          uuid.UUID           `json:"id"`
	ActivityID  uuid.UUID           `json:"activityId"`
	StudentID   uuid.UUID           `json:"studentId"`
	Status      string              `json:"status" example:"PENDING" enums:"PENDING,GRADED"`
	Grade       *int                `json:"grade,omitempty" example:"85"`
	Feedback    *string             `json:"feedback,omitempty"`
	FileURL     *string             `json:"fileUrl,omitempty"`
	SubmittedAt time.Time           `json:"submittedAt"`
	Student     *UserSummary        `json:"student,omitempty"`
	Activity    *SubmissionActivity `json:"activity,omitempty"`
}

// CourseGradeSummary aggregates a student's graded work in one course
type CourseGradeSummary struct {
	Course          CourseSummary `json:"course"`
	Average         *int          `json:"average" example:"82"`
	GradedCount     int           `json:"gradedCount" example:"2"`
	SubmissionCount int           `json:"submissionCount" example:"3"`
	LatestFeedback  *string       `json:"latestFeedback,omitempty"`
}

// StudentGradesResponse is the grades page of a student
type StudentGradesResponse struct {
	Courses     []CourseGradeSummary `json:"courses"`
	Submissions []SubmissionResponse `json:"submissions"`
}

// ActivitySubmissionsResponse is the grading page of an activity
type ActivitySubmissionsResponse struct {
	Activity    ActivityResponse     `json:"activity"`
	Submissions []SubmissionResponse `json:"submissions"`
}

// NewSubmissionResponse maps a submission model to its DTO
func NewSubmissionResponse(s *models.Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:          s.ID,
		ActivityID:  s.ActivityID,
		StudentID:   s.StudentID,
		Status:      string(s.Status),
		Grade:       s.Grade,
		Feedback:    s.Feedback,
		FileURL:     s.FileURL,
		SubmittedAt: s.SubmittedAt,
		Student:     NewUserSummary(s.Student),
	}
	if a := s.Activity; a != nil {
		resp.Activity = &SubmissionActivity{
			ID:      a.ID,
			Title:   a.Title,
			Type:    string(a.Type),
			DueDate: a.DueDate,
		}
		if a.Section != nil {
			resp.Activity.Section = &SectionSummary{ID: a.Section.ID, Title: a.Section.Title}
			resp.Activity.Course = NewCourseSummary(a.Section.Course)
		}
	}
	return resp
}

// NewSubmissionResponses maps a slice of submissions
func NewSubmissionResponses(submissions []models.Submission) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		out = append(out, NewSubmissionResponse(&submissions[i]))
	}
	return out
}

// NewCourseGradeSummaries maps per-course grade summaries
func NewCourseGradeSummaries(grades []models.CourseGrades) []CourseGradeSummary {
	out := make([]CourseGradeSummary, 0, len(grades))
	for i := range grades {
		g := &grades[i]
		out = append(out, CourseGradeSummary{
			Course:          *NewCourseSummary(&g.Course),
			Average:         g.Average,
			GradedCount:     g.GradedCount,
			SubmissionCount: g.SubmissionCount,
			LatestFeedback:  g.LatestFeedback,
		})
	}
	return out
}
