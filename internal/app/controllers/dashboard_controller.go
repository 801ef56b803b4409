package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/services"
	"github.com/unipem/lms/internal/middleware"
)

// DashboardController serves the dashboard pages and the settings page
type DashboardController struct {
	dashboardService  services.DashboardService
	courseService     services.CourseService
	submissionService services.SubmissionService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(
	dashboardService services.DashboardService,
	courseService services.CourseService,
	submissionService services.SubmissionService,
) *DashboardController {
	return &DashboardController{
		dashboardService:  dashboardService,
		courseService:     courseService,
		submissionService: submissionService,
	}
}

// GetDashboard returns the landing page after login
// @Summary Dashboard
// @Description Admins get user, course and submission counters; teachers and students get the course list. Everyone gets the five newest submissions they may see.
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse}
// @Failure 307 "No session, redirect to /login"
// @Router /dashboard [get]
func (c *DashboardController) GetDashboard(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	dashboard, err := c.dashboardService.GetDashboard(ctx, session)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.DashboardResponse{
		User:              dto.NewSessionResponse(*session),
		Stats:             dto.NewAdminStats(dashboard.Stats),
		RecentSubmissions: dto.NewSubmissionResponses(dashboard.RecentSubmissions),
	}
	if dashboard.Courses != nil {
		resp.Courses = dto.NewCourseResponses(dashboard.Courses)
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, ""))
}

// ListCourses returns the course catalogue
// @Summary Courses
// @Description q matches course title or code
// @Tags dashboard
// @Produce json
// @Param q query string false "Search text"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse}
// @Router /dashboard/courses [get]
func (c *DashboardController) ListCourses(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponses(courses), ""))
}

// GetGrades returns the grades page of the session user
// @Summary Grades
// @Description Every submission of the user with its course, plus the rounded average and latest feedback per course
// @Tags dashboard
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.StudentGradesResponse}
// @Router /dashboard/grades [get]
func (c *DashboardController) GetGrades(ctx *gin.Context) {
	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	submissions, summary, err := c.submissionService.ListStudentGrades(ctx, session.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.StudentGradesResponse{
		Courses:     dto.NewCourseGradeSummaries(summary),
		Submissions: dto.NewSubmissionResponses(submissions),
	}, ""))
}

// GetSettings returns the site identity
// @Summary Site settings
// @Tags admin
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.SiteSettingsResponse}
// @Failure 307 "Not an admin, redirect to /dashboard"
// @Router /admin/settings [get]
func (c *DashboardController) GetSettings(ctx *gin.Context) {
	settings := c.dashboardService.GetSiteSettings()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.SiteSettingsResponse{
		Name:        settings.Name,
		Description: settings.Description,
	}, ""))
}
