package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/classtrack/roster/internal/app/models/dto"
	"github.com/classtrack/roster/internal/app/services"
	"github.com/classtrack/roster/internal/middleware"
)

// SectionController handles section-related operations
type SectionController struct {
	sectionService *services.SectionService
}

// NewSectionController creates a new SectionController
func NewSectionController(sectionService *services.SectionService) *SectionController {
	return &SectionController{
		sectionService: sectionService,
	}
}

// ListSections retrieves all sections
// @Summary List all sections
// @Description Retrieves a list of all class sections
// @Tags sections
// @Produce json
// @Success 200 {array} dto.SectionResponse "Sections retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections [get]
func (c *SectionController) ListSections(ctx *gin.Context) {
	sections, err := c.sectionService.List(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	responses := make([]dto.SectionResponse, 0, len(sections))
	for _, section := range sections {
		responses = append(responses, dto.NewSectionResponse(section))
	}

	ctx.JSON(http.StatusOK, responses)
}

// CreateSection handles section creation
// @Summary Create a new section
// @Description Creates a new class section with a unique name
// @Tags sections
// @Accept json
// @Produce json
// @Param request body dto.CreateSectionRequest true "Section information"
// @Success 201 {object} dto.SectionMutationResponse "Section created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections [post]
func (c *SectionController) CreateSection(ctx *gin.Context) {
	var req dto.CreateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid section data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	section, err := c.sectionService.Create(ctx.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.SectionMutationResponse{
		Message: "Section created successfully",
		Section: dto.NewSectionResponse(section),
	})
}

// GetSectionByID retrieves a section by ID
// @Summary Get section by ID
// @Description Retrieves a specific section by its ID
// @Tags sections
// @Produce json
// @Param id path int true "Section ID"
// @Success 200 {object} dto.SectionResponse "Section retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid section ID"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{id} [get]
func (c *SectionController) GetSectionByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Section ID must be a valid number")
	if !ok {
		return
	}

	section, err := c.sectionService.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSectionResponse(section))
}

// UpdateSection updates an existing section
// @Summary Update a section
// @Description Updates an existing section; absent fields are left unchanged
// @Tags sections
// @Accept json
// @Produce json
// @Param id path int true "Section ID"
// @Param request body dto.UpdateSectionRequest true "Updated section information"
// @Success 200 {object} dto.SectionMutationResponse "Section updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 422 {object} dto.ErrorResponse "Validation failed"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{id} [put]
func (c *SectionController) UpdateSection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Section ID must be a valid number")
	if !ok {
		return
	}

	var req dto.UpdateSectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid section data")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return
	}

	section, err := c.sectionService.Update(ctx.Request.Context(), id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SectionMutationResponse{
		Message: "Section updated successfully",
		Section: dto.NewSectionResponse(section),
	})
}

// DeleteSection deletes a section
// @Summary Delete a section
// @Description Deletes a section that has no enrolled students
// @Tags sections
// @Produce json
// @Param id path int true "Section ID"
// @Success 200 {object} dto.SectionMutationResponse "Section deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid section ID"
// @Failure 404 {object} dto.ErrorResponse "Section not found"
// @Failure 409 {object} dto.ErrorResponse "Section has enrolled students"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sections/{id} [delete]
func (c *SectionController) DeleteSection(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "Section ID must be a valid number")
	if !ok {
		return
	}

	section, err := c.sectionService.Delete(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SectionMutationResponse{
		Message: "Section deleted successfully",
		Section: dto.NewSectionResponse(section),
	})
}

// parseIDParam parses the :id path parameter, answering 400 itself when the
// value is not a number.
func parseIDParam(ctx *gin.Context, message string) (int64, bool) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
		return 0, false
	}
	return id, true
}
