package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/acitm/admissions/internal/app/models/dto"
	"github.com/acitm/admissions/internal/app/services"
	"github.com/acitm/admissions/internal/middleware"
)

// StatsController serves the dashboard aggregates
type StatsController struct {
	statsService *services.StatsService
}

// NewStatsController creates a new StatsController
func NewStatsController(statsService *services.StatsService) *StatsController {
	return &StatsController{
		statsService: statsService,
	}
}

// AdmissionsByCenter returns student counts grouped by center
// @Summary Admissions per center
// @Description Students whose center was removed are reported under "Unknown".
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CenterAdmissionCount} "Counts"
// @Router /stats/admissions-by-center [get]
func (c *StatsController) AdmissionsByCenter(ctx *gin.Context) {
	counts, err := c.statsService.AdmissionsByCenter(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      counts,
		Timestamp: time.Now(),
	})
}

// AdmissionsByCourse returns student counts grouped by course
// @Summary Admissions per course
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseAdmissionCount} "Counts"
// @Router /stats/admissions-by-course [get]
func (c *StatsController) AdmissionsByCourse(ctx *gin.Context) {
	counts, err := c.statsService.AdmissionsByCourse(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      counts,
		Timestamp: time.Now(),
	})
}
