package dto

import "github.com/unipem/lms/internal/app/models"

// AdminStats holds the counters of the admin dashboard
type AdminStats struct {
	Students    int `json:"students" example:"120"`
	Teachers    int `json:"teachers" example:"12"`
	Courses     int `json:"courses" example:"8"`
	Submissions int `json:"submissions" example:"340"`
}

// DashboardResponse is the landing page after login.
// Admins get Stats; teachers and students get Courses.
type DashboardResponse struct {
	User              SessionResponse      `json:"user"`
	Stats             *AdminStats          `json:"stats,omitempty"`
	Courses           []CourseResponse     `json:"courses,omitempty"`
	RecentSubmissions []SubmissionResponse `json:"recentSubmissions"`
}

// SiteSettingsResponse is the read-only settings page
type SiteSettingsResponse struct {
	Name        string `json:"name" example:"LMS Universitas Insan Pembangunan Indonesia"`
	Description string `json:"description" example:"Learning Management System UNIPEM"`
}

// NewAdminStats maps the admin counters; nil stays nil
func NewAdminStats(s *models.AdminStats) *AdminStats {
	if s == nil {
		return nil
	}
	return &AdminStats{
		Students:    s.Students,
		Teachers:    s.Teachers,
		Courses:     s.Courses,
		Submissions: s.Submissions,
	}
}
