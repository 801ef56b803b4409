package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/services"
	"github.com/unipem/lms/internal/middleware"
)

// ActivityController manages activities and the activity page
type ActivityController struct {
	activityService services.ActivityService
}

// NewActivityController creates a new ActivityController
func NewActivityController(activityService services.ActivityService) *ActivityController {
	return &ActivityController{activityService: activityService}
}

// GetActivity returns the activity page
// @Summary Activity detail
// @Description Includes the section and course. Students also get their own submission of an assignment.
// @Tags activities
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=dto.ActivityDetailResponse}
// @Failure 404 {object} dto.ErrorResponse "Activity not found in this course"
// @Router /course/{id}/activity/{activityId} [get]
func (c *ActivityController) GetActivity(ctx *gin.Context) {
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

	activity, mine, err := c.activityService.GetActivityDetail(ctx, courseID, activityID, session)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewActivityDetailResponse(activity, mine, session.Role), ""))
}

// CreateActivity adds an activity to a section of the course
// @Summary Create activity
// @Description The section must belong to the course. dueDate is only kept for ASSIGNMENT.
// @Tags activities
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param request body dto.ActivityRequest true "Activity"
// @Success 201 {object} dto.APIResponse{data=dto.ActivityResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or section not in course"
// @Failure 403 {object} dto.ErrorResponse "Only admins and teachers"
// @Router /course/{id}/activities [post]
func (c *ActivityController) CreateActivity(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.ActivityRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	activity, err := c.activityService.CreateActivity(ctx, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewActivityResponse(activity), "Aktivitas berhasil dibuat"))
}

// UpdateActivity replaces an activity's fields
// @Summary Update activity
// @Tags activities
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Param request body dto.ActivityRequest true "Activity"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed or section not in course"
// @Failure 404 {object} dto.ErrorResponse "Activity not found in this course"
// @Router /course/{id}/activities/{activityId} [put]
func (c *ActivityController) UpdateActivity(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "activityId")
	if !ok {
		return
	}

	var req dto.ActivityRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	activity, err := c.activityService.UpdateActivity(ctx, courseID, activityID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewActivityResponse(activity), "Aktivitas berhasil diperbarui"))
}

// DeleteActivity removes an activity with its submissions
// @Summary Delete activity
// @Tags activities
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse "Activity not found in this course"
// @Router /course/{id}/activities/{activityId} [delete]
func (c *ActivityController) DeleteActivity(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "activityId")
	if !ok {
		return
	}

	if err := c.activityService.DeleteActivity(ctx, courseID, activityID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Aktivitas berhasil dihapus"))
}

// UploadActivityFile stores the material of a FILE activity
// @Summary Upload activity file
// @Tags activities
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param activityId path string true "Activity ID" Format(uuid)
// @Param file formData file true "Material"
// @Success 200 {object} dto.APIResponse{data=dto.ActivityResponse}
// @Failure 400 {object} dto.ErrorResponse "Missing file or not a FILE activity"
// @Failure 404 {object} dto.ErrorResponse "Activity not found in this course"
// @Router /course/{id}/activities/{activityId}/file [post]
func (c *ActivityController) UploadActivityFile(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	activityID, ok := parseUUIDParam(ctx, "activityId")
	if !ok {
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "file is required").WithField("file")
		ctx.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	activity, err := c.activityService.UploadActivityFile(ctx, courseID, activityID, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewActivityResponse(activity), "File berhasil diunggah"))
}
