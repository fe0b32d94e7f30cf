package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acitm/admissions/internal/app/models/dto"
	"github.com/acitm/admissions/internal/app/services"
	"github.com/acitm/admissions/internal/middleware"
)

// CenterController handles training center operations
type CenterController struct {
	centerService       *services.CenterService
	provisioningService *services.ProvisioningService
	logger              zerolog.Logger
}

// NewCenterController creates a new CenterController
func NewCenterController(centerService *services.CenterService, provisioningService *services.ProvisioningService, logger zerolog.Logger) *CenterController {
	return &CenterController{
		centerService:       centerService,
		provisioningService: provisioningService,
		logger:              logger,
	}
}

// GetAllCenters lists all training centers
// @Summary List centers
// @Tags centers
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]models.Center} "Centers"
// @Router /centers [get]
func (c *CenterController) GetAllCenters(ctx *gin.Context) {
	centers, err := c.centerService.GetAllCenters(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      centers,
		Timestamp: time.Now(),
	})
}

// ProvisionCenter creates a center together with its login account
// @Summary Provision a center
// @Description Creates the center row, its login account and links the account's profile. On partial failure the center row is rolled back; an already-created login account cannot be removed and is reported as orphaned.
// @Tags centers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ProvisionCenterRequest true "Center and account details"
// @Success 201 {object} dto.APIResponse{data=models.Center} "Provisioned center"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 409 {object} dto.ErrorResponse "Email already exists"
// @Failure 502 {object} dto.ErrorResponse "Provisioning failed"
// @Router /centers [post]
func (c *CenterController) ProvisionCenter(ctx *gin.Context) {
	var req dto.ProvisionCenterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid provisioning request payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	center, err := c.provisioningService.ProvisionCenter(ctx.Request.Context(), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      center,
		Timestamp: time.Now(),
	})
}

// DeleteCenter removes a center that has no students
// @Summary Remove a center
// @Tags centers
// @Produce json
// @Security BearerAuth
// @Param id path string true "Center ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Center removed"
// @Failure 404 {object} dto.ErrorResponse "Center not found"
// @Failure 409 {object} dto.ErrorResponse "Center has associated students"
// @Router /centers/{id} [delete]
func (c *CenterController) DeleteCenter(ctx *gin.Context) {
	id := ctx.Param("id")

	if err := c.centerService.RemoveCenter(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Center removed"},
		Timestamp: time.Now(),
	})
}
