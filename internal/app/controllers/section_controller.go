package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/app/services"
	"github.com/unipem/lms/internal/middleware"
)

// SectionController manages course sections
type SectionController struct {
	sectionService services.SectionService
}

// NewSectionController creates a new SectionController
func NewSectionController(sectionService services.SectionService) *SectionController {
	return &SectionController{sectionService: sectionService}
}

// ListSections lists the sections of a course
// @Summary List sections
// @Tags sections
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Success 200 {object} dto.APIResponse{data=[]dto.SectionResponse}
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /course/{id}/sections [get]
func (c *SectionController) ListSections(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	sections, err := c.sectionService.ListSections(ctx, courseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewSectionResponses(sections), ""))
}

// CreateSection adds a section to a course
// @Summary Create section
// @Description Without an order the section is appended after the last one
// @Tags sections
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param request body dto.SectionRequest true "Section"
// @Success 201 {object} dto.APIResponse{data=dto.SectionResponse}
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 403 {object} dto.ErrorResponse "Only admins and teachers"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Router /course/{id}/sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}

	var req dto.SectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	section, err := c.sectionService.CreateSection(ctx, courseID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.NewSectionResponse(section), "Section berhasil dibuat"))
}

// UpdateSection changes a section
// @Summary Update section
// @Tags sections
// @Accept json
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param sectionId path string true "Section ID" Format(uuid)
// @Param request body dto.SectionRequest true "Section"
// @Success 200 {object} dto.APIResponse{data=dto.SectionResponse}
// @Failure 403 {object} dto.ErrorResponse "Only admins and teachers"
// @Failure 404 {object} dto.ErrorResponse "Section not found in this course"
// @Router /course/{id}/sections/{sectionId} [put]
func (c *SectionController) UpdateSection(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	sectionID, ok := parseUUIDParam(ctx, "sectionId")
	if !ok {
		return
	}

	var req dto.SectionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	section, err := c.sectionService.UpdateSection(ctx, courseID, sectionID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.NewSectionResponse(section), "Section berhasil diperbarui"))
}

// DeleteSection removes a section and its activities
// @Summary Delete section
// @Tags sections
// @Produce json
// @Param id path string true "Course ID" Format(uuid)
// @Param sectionId path string true "Section ID" Format(uuid)
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse "Only admins and teachers"
// @Failure 404 {object} dto.ErrorResponse "Section not found in this course"
// @Router /course/{id}/sections/{sectionId} [delete]
func (c *SectionController) DeleteSection(ctx *gin.Context) {
	courseID, ok := parseUUIDParam(ctx, "id")
	if !ok {
		return
	}
	sectionID, ok := parseUUIDParam(ctx, "sectionId")
	if !ok {
		return
	}

	if err := c.sectionService.DeleteSection(ctx, courseID, sectionID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Section berhasil dihapus"))
}
