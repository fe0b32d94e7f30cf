package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acitm/admissions/internal/app/models/dto"
	"github.com/acitm/admissions/internal/app/services"
	"github.com/acitm/admissions/internal/middleware"
)

const exportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportController streams xlsx exports of admission records
type ExportController struct {
	exportService *services.ExportService
	authService   *services.AuthService
	logger        zerolog.Logger
}

// NewExportController creates a new ExportController
func NewExportController(exportService *services.ExportService, authService *services.AuthService, logger zerolog.Logger) *ExportController {
	return &ExportController{
		exportService: exportService,
		authService:   authService,
		logger:        logger,
	}
}

// ExportStudents generates an xlsx workbook for the selected records
// @Summary Export admission records
// @Description Builds an xlsx workbook with one row per record and the student photo embedded; records a photo cannot be fetched for get a text placeholder instead.
// @Tags exports
// @Accept json
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param request body dto.ExportStudentsRequest true "Record ids to export"
// @Success 200 {file} binary "students.xlsx"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 404 {object} dto.ErrorResponse "No matching records"
// @Router /exports/students [post]
func (c *ExportController) ExportStudents(ctx *gin.Context) {
	actor, err := resolveActor(ctx, c.authService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.ExportStudentsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	workbook, err := c.exportService.ExportStudents(ctx.Request.Context(), actor, req.StudentIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", `attachment; filename="students.xlsx"`)
	ctx.Header("Content-Type", exportContentType)
	if err := workbook.Write(ctx.Writer); err != nil {
		c.logger.Error().Err(err).Msg("Failed to stream export workbook")
	}
}
