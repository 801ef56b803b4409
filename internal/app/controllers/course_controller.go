package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/services"
	"github.com/unipem/lms/internal/middleware"
	"github.com/unipem/lms/internal/pkg/auth"
)

// CourseController serves the course page and the admin course pages
type CourseController struct {
	courseService services.CourseService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// GetCourse returns a course with its sections and activities
// @Summary Course detail
// @Description Sections are ordered by position, activities by creation time. canEdit is true for admins and teachers.
// @Tags courses
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.CourseDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /course/{id} [get]
// @Router /admin/courses/{id} [get]
func (c *CourseController) GetCourse(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseDetail(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	session, _ := auth.SessionFromContext(ctx)
	canEdit := session != nil && session.Role.CanEditCourses()
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseDetailResponse(course, canEdit), ""))
}

// ListCourses lists courses for the admin table
// @Summary List courses
// @Description q matches title or code; code returns the single course with that code
// @Tags admin-courses
// @Produce json
// @Param q query string false "Search text"
// @Param code query string false "Exact course code"
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse}
// @Failure 404 {object} dto.ErrorResponse "No course with that code"
// @Router /admin/courses [get]
func (c *CourseController) ListCourses(ctx *gin.Context) {
	if code := ctx.Query("code"); code != "" {
		course, err := c.courseService.GetCourseByCode(ctx, code)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, dto.NewSuccessResponse([]dto.CourseResponse{dto.NewCourseResponse(course)}, ""))
		return
	}

	courses, err := c.courseService.ListCourses(ctx, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponses(courses), ""))
}

// CreateCourse creates a course
// @Summary Create course
// @Description The instructor must be an existing teacher. The thumbnail defaults to a stock image.
// @Tags admin-courses
// @Accept json
// @Produce json
// @Param request body dto.CourseRequest true "Course"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or instructor is not a teacher"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /admin/courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewCourseResponse(course), "Mata kuliah berhasil dibuat"))
}

// UpdateCourse replaces a course's fields
// @Summary Update course
// @Tags admin-courses
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param request body dto.CourseRequest true "Course"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or instructor is not a teacher"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 409 {object} dto.ErrorResponse "Course code already exists"
// @Router /admin/courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.CourseRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewCourseResponse(course), "Mata kuliah berhasil diperbarui"))
}

// DeleteCourse removes a course with all its content
// @Summary Delete course
// @Tags admin-courses
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /admin/courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Mata kuliah berhasil dihapus"))
}
