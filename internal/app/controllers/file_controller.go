package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/acitm/admissions/internal/app/models/dto"
	"github.com/acitm/admissions/internal/middleware"
	"github.com/acitm/admissions/internal/pkg/apperrors"
	"github.com/acitm/admissions/internal/pkg/filestorage"
)

// FileController handles uploads of student media (photos and signatures)
type FileController struct {
	storage filestorage.FileStorage
	logger  zerolog.Logger
}

// NewFileController creates a new FileController
func NewFileController(storage filestorage.FileStorage, logger zerolog.Logger) *FileController {
	return &FileController{
		storage: storage,
		logger:  logger,
	}
}

// UploadFile stores an uploaded file and returns its public URL
// @Summary Upload a file
// @Description Stores the file under a timestamped key and returns the URL to reference from admission records.
// @Tags files
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "File to upload"
// @Success 201 {object} dto.APIResponse{data=dto.UploadResponse} "Stored file URL"
// @Failure 400 {object} dto.ErrorResponse "Missing file"
// @Failure 500 {object} dto.ErrorResponse "Upload failed"
// @Router /files [post]
func (c *FileController) UploadFile(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Missing file")
		errorDetail = errorDetail.WithField("file")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	url, err := c.storage.SaveFile(fileHeader)
	if err != nil {
		c.logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("File upload failed")
		middleware.HandleAPIError(ctx, apperrors.ErrUploadFailed)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{
		Data:      dto.UploadResponse{URL: url},
		Timestamp: time.Now(),
	})
}
