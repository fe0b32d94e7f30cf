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

// StudentController handles admission record operations
type StudentController struct {
	studentService *services.StudentService
	authService    *services.AuthService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, authService *services.AuthService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		authService:    authService,
		logger:         logger,
	}
}

// CreateStudent creates a new admission record
// @Summary Create an admission record
// @Description New records always start Pending. Center-role callers create records for their own center.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Admission record"
// @Success 201 {object} dto.APIResponse{data=models.Student} "Created record"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Router /students [post]
func (c *StudentController) CreateStudent(ctx *gin.Context) {
	actor, err := resolveActor(ctx, c.authService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.logger.Warn().Err(err).Msg("Invalid student creation payload")
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.CreateStudent(ctx.Request.Context(), actor, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// GetAllStudents lists admission records visible to the caller
// @Summary List admission records
// @Description Center-role callers see only their own center's records. An optional status filter narrows the result.
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(Pending, Accepted, Rejected)
// @Success 200 {object} dto.APIResponse{data=[]models.Student} "Records"
// @Failure 400 {object} dto.ErrorResponse "Unknown status value"
// @Router /students [get]
func (c *StudentController) GetAllStudents(ctx *gin.Context) {
	actor, err := resolveActor(ctx, c.authService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	students, err := c.studentService.ListStudents(ctx.Request.Context(), actor, ctx.Query("status"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      students,
		Timestamp: time.Now(),
	})
}

// GetStudentByID retrieves a single admission record
// @Summary Get an admission record
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Record"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /students/{id} [get]
func (c *StudentController) GetStudentByID(ctx *gin.Context) {
	actor, err := resolveActor(ctx, c.authService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	student, err := c.studentService.GetStudent(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// UpdateStudent applies a partial update to an admission record
// @Summary Update an admission record
// @Description Accepts a partial field set. Only the admin role may change status or move a record between centers.
// @Tags students
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Student} "Updated record"
// @Failure 400 {object} dto.ErrorResponse "Unknown field or invalid status"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /students/{id} [put]
func (c *StudentController) UpdateStudent(ctx *gin.Context) {
	actor, err := resolveActor(ctx, c.authService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	student, err := c.studentService.UpdateStudent(ctx.Request.Context(), actor, ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      student,
		Timestamp: time.Now(),
	})
}

// DeleteStudent removes an admission record
// @Summary Delete an admission record
// @Tags students
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.SuccessResponse} "Record deleted"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /students/{id} [delete]
func (c *StudentController) DeleteStudent(ctx *gin.Context) {
	actor, err := resolveActor(ctx, c.authService)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.studentService.DeleteStudent(ctx.Request.Context(), actor, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{
		Data:      dto.SuccessResponse{Message: "Student deleted"},
		Timestamp: time.Now(),
	})
}
