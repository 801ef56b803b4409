package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/services"
	"github.com/unipem/lms/internal/middleware"
)

// SubmissionController handles submitting and grading assignments
type SubmissionController struct {
	submissionService services.SubmissionService
}

// NewSubmissionController creates a new SubmissionController
func NewSubmissionController(submissionService services.SubmissionService) *SubmissionController {
	return &SubmissionController{submissionService: submissionService}
}

// Submit creates or replaces the student's submission
// @Summary Submit assignment
// @Description Students only. Send either a multipart file or a fileUrl. Re-submitting resets the grade and status.
// @Tags submissions
// @Accept json,mpfd
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Param file formData file false "Answer file"
// @Param fileUrl formData string false "Link to the answer"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse}
// @Failure 400 {object} dto.ErrorResponse "Activity is not an assignment"
// @Failure 403 {object} dto.ErrorResponse "Only students can submit"
// @Failure 404 {object} dto.ErrorResponse "Activity not found in this course"
// @Router /course/{id}/activity/{activityId}/submit [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "activityId")
	if !ok {
		return
	}
	session, ok := currentSession(ctx)
	if !ok {
		return
	}

	var req dto.SubmitRequest
	if ctx.Request.ContentLength != 0 && !middleware.Bind(ctx, &req) {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		file = nil
	}

	submission, err := c.submissionService.Submit(ctx, courseID, activityID, session, req.FileURL, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewSubmissionResponse(submission), "Tugas berhasil dikumpulkan"))
}

// ListSubmissions returns the grading page of an activity
// @Summary List submissions
// @Description Newest first. q matches the student's name or NPM. Students are redirected to /dashboard.
// @Tags submissions
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Param q query string false "Search text"
// @Success 200 {object} dto.APIResponse{data=dto.ActivitySubmissionsResponse}
// @Failure 307 "Students are redirected to /dashboard"
// @Failure 404 {object} dto.ErrorResponse "Activity not found in this course"
// @Router /course/{id}/activity/{activityId}/submissions [get]
func (c *SubmissionController) ListSubmissions(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "activityId")
	if !ok {
		return
	}

	activity, submissions, err := c.submissionService.ListActivitySubmissions(ctx, courseID, activityID, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ActivitySubmissionsResponse{
		Activity:    dto.NewActivityResponse(activity),
		Submissions: dto.NewSubmissionResponses(submissions),
	}, ""))
}

// GetSubmission returns one submission
// @Summary Get submission
// @Tags submissions
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Param submissionId path string true "Submission ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse}
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /course/{id}/activity/{activityId}/submissions/{submissionId} [get]
func (c *SubmissionController) GetSubmission(ctx *gin.Context) {
	courseID, activityID, submissionID, ok := submissionParams(ctx)
	if !ok {
		return
	}

	submission, err := c.submissionService.GetSubmission(ctx, courseID, activityID, submissionID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewSubmissionResponse(submission), ""))
}

// GradeSubmission stores a grade and feedback
// @Summary Grade submission
// @Tags submissions
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Param submissionId path string true "Submission ID" Format(uuid)
// @Param request body dto.GradeRequest true "Grade"
// @Success 200 {object} dto.APIResponse{data=dto.SubmissionResponse}
// @Failure 400 {object} dto.ErrorResponse "Grade outside 0..100"
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /course/{id}/activity/{activityId}/submissions/{submissionId}/grade [put]
func (c *SubmissionController) GradeSubmission(ctx *gin.Context) {
	courseID, activityID, submissionID, ok := submissionParams(ctx)
	if !ok {
		return
	}

	var req dto.GradeRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	submission, err := c.submissionService.GradeSubmission(ctx, courseID, activityID, submissionID, *req.Grade, req.Feedback)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewSubmissionResponse(submission), "Nilai berhasil disimpan"))
}

// DeleteSubmission removes a submission
// @Summary Delete submission
// @Tags submissions
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Param submissionId path string true "Submission ID" Format(uuid)
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Submission not found"
// @Router /course/{id}/activity/{activityId}/submissions/{submissionId} [delete]
func (c *SubmissionController) DeleteSubmission(ctx *gin.Context) {
	courseID, activityID, submissionID, ok := submissionParams(ctx)
	if !ok {
		return
	}

	if err := c.submissionService.DeleteSubmission(ctx, courseID, activityID, submissionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Pengumpulan berhasil dihapus"))
}

func submissionParams(ctx *gin.Context) (courseID, activityID, submissionID uuid.UUID, ok bool) {
	if courseID, ok = parseUUIDParam(ctx, "id"); !ok {
		return
	}
	if activityID, ok = parseUUIDParam(ctx, "activityId"); !ok {
		return
	}
	submissionID, ok = parseUUIDParam(ctx, "submissionId")
	return
}
