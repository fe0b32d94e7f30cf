// Package routes wires controllers onto the gin engine
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/acitm/admissions/internal/app/controllers"
	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	centerController *controllers.CenterController,
	studentController *controllers.StudentController,
	statsController *controllers.StatsController,
	exportController *controllers.ExportController,
	fileController *controllers.FileController,
	authMiddleware *middleware.AuthMiddleware,
) {
	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
		auth.POST("/logout", authController.Logout)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.GET("/auth/session", authController.GetSession)

		// Admission records; service-level scoping restricts center-role
		// callers to their own center.
		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetAllStudents)
			students.POST("", studentController.CreateStudent)
			students.GET("/:id", studentController.GetStudentByID)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		centers := authenticated.Group("/centers")
		{
			centers.GET("", centerController.GetAllCenters)

			centersAdmin := centers.Group("")
			centersAdmin.Use(middleware.RoleRequired(models.RoleAdmin))
			{
				centersAdmin.POST("", centerController.ProvisionCenter)
				centersAdmin.DELETE("/:id", centerController.DeleteCenter)
			}
		}

		stats := authenticated.Group("/stats")
		stats.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			stats.GET("/admissions-by-center", statsController.AdmissionsByCenter)
			stats.GET("/admissions-by-course", statsController.AdmissionsByCourse)
		}

		authenticated.POST("/exports/students", exportController.ExportStudents)
		authenticated.POST("/files", fileController.UploadFile)
	}
}
