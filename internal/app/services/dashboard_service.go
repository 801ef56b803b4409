package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/repositories"
	"github.com/unipem/lms/internal/pkg/auth"
)

// Dashboard is the landing page content of a session. Admins get Stats, everyone else Courses.
type Dashboard struct {
	Stats             *models.AdminStats
	Courses           []models.Course
	RecentSubmissions []models.Submission
}

// SiteSettings is the read-only site identity
type SiteSettings struct {
	Name        string
	Description string
}

// DashboardService builds the dashboard pages
type DashboardService interface {
	GetDashboard(ctx context.Context, viewer *auth.Session) (*Dashboard, error)
	GetAdminStats(ctx context.Context) (*models.AdminStats, error)
	GetSiteSettings() SiteSettings
}

type dashboardServiceImpl struct {
	userRepo       repositories.IUserRepository
	courseRepo     repositories.ICourseRepository
	submissionRepo repositories.ISubmissionRepository
	recent         SubmissionService
	settings       SiteSettings
	logger         zerolog.Logger
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(
	userRepo repositories.IUserRepository,
	courseRepo repositories.ICourseRepository,
	submissionRepo repositories.ISubmissionRepository,
	submissions SubmissionService,
	siteName, siteDescription string,
	logger zerolog.Logger,
) DashboardService {
	return &dashboardServiceImpl{
		userRepo:       userRepo,
		courseRepo:     courseRepo,
		submissionRepo: submissionRepo,
		recent:         submissions,
		settings:       SiteSettings{Name: siteName, Description: siteDescription},
		logger:         logger,
	}
}

// GetDashboard returns admin counters or the course list, plus the recent submissions the viewer may see
func (s *dashboardServiceImpl) GetDashboard(ctx context.Context, viewer *auth.Session) (*Dashboard, error) {
	recent, err := s.recent.RecentSubmissions(ctx, viewer, DefaultRecentLimit)
	if err != nil {
		return nil, err
	}

	dashboard := &Dashboard{RecentSubmissions: recent}
	if viewer.Role == models.RoleAdmin {
		dashboard.Stats, err = s.GetAdminStats(ctx)
		if err != nil {
			return nil, err
		}
		return dashboard, nil
	}

	dashboard.Courses, err = s.courseRepo.List(ctx, models.CourseFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return dashboard, nil
}

// GetAdminStats counts students, teachers, courses and submissions
func (s *dashboardServiceImpl) GetAdminStats(ctx context.Context) (*models.AdminStats, error) {
	counts, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	courses, err := s.courseRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	submissions, err := s.submissionRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count submissions: %w", err)
	}

	return &models.AdminStats{
		Students:    counts.Students,
		Teachers:    counts.Teachers,
		Courses:     courses,
		Submissions: submissions,
	}, nil
}

// GetSiteSettings returns the configured site name and description
func (s *dashboardServiceImpl) GetSiteSettings() SiteSettings {
	return s.settings
}
