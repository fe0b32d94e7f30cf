package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/pkg/apperrors"
	"github.com/acitm/admissions/internal/pkg/logger"
)

const (
	exportSheetName = "Students"

	// Photo cell dimensions in the generated workbook.
	exportPhotoSize    = 100
	exportRowHeight    = 80
	maxPhotoBytes      = 8 << 20
	photoFetchTimeout  = 10 * time.Second
	exportNoImageLabel = "No Image"
)

type exportStudentSource interface {
	GetByIDs(ctx context.Context, ids []string) ([]*models.Student, error)
}

type exportCenterSource interface {
	GetByID(ctx context.Context, id string) (*models.Center, error)
}

// ExportService renders selected admission records into an xlsx workbook
// with embedded student photos.
type ExportService struct {
	students   exportStudentSource
	centers    exportCenterSource
	httpClient *http.Client
}

// NewExportService creates a new export service
func NewExportService(students exportStudentSource, centers exportCenterSource) *ExportService {
	return &ExportService{
		students: students,
		centers:  centers,
		httpClient: &http.Client{
			Timeout: photoFetchTimeout,
		},
	}
}

var exportColumns = []struct {
	header string
	width  float64
}{
	{"Photo", 15},
	{"Name", 30},
	{"Father's Name", 30},
	{"Course", 40},
	{"Center", 30},
	{"Status", 15},
	{"Mobile", 20},
	{"Admission Date", 20},
}

// ExportStudents builds a workbook containing the selected records. A
// center-role actor can only export records of their own center; ids outside
// that scope are silently skipped, the same way the listing hides them.
func (s *ExportService) ExportStudents(ctx context.Context, actor *models.User, ids []string) (*excelize.File, error) {
	students, err := s.students.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	if actor.Role == models.RoleCenter {
		if actor.CenterID == nil {
			return nil, apperrors.ErrPermissionDenied
		}
		own := students[:0]
		for _, st := range students {
			if st.CenterID == *actor.CenterID {
				own = append(own, st)
			}
		}
		students = own
	}

	if len(students) == 0 {
		return nil, apperrors.ErrStudentNotFound
	}

	f := excelize.NewFile()
	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create worksheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default worksheet: %w", err)
	}

	if err := s.writeHeader(f); err != nil {
		return nil, err
	}

	centerNames := make(map[string]string)
	for i, student := range students {
		row := i + 2
		if err := s.writeStudentRow(ctx, f, row, student, centerNames); err != nil {
			return nil, err
		}
	}

	logger.Info().Int("students", len(students)).Msg("Export workbook generated")
	return f, nil
}

func (s *ExportService) writeHeader(f *excelize.File) error {
	for i, col := range exportColumns {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(exportSheetName, name, name, col.width); err != nil {
			return err
		}

		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheetName, cell, col.header); err != nil {
			return err
		}
	}

	styleID, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	last, err := excelize.CoordinatesToCellName(len(exportColumns), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(exportSheetName, "A1", last, styleID)
}

func (s *ExportService) writeStudentRow(ctx context.Context, f *excelize.File, row int, student *models.Student, centerNames map[string]string) error {
	if err := f.SetRowHeight(exportSheetName, row, exportRowHeight); err != nil {
		return err
	}

	values := []interface{}{
		nil, // photo column, filled below
		student.Name,
		student.FatherName,
		student.Course,
		s.centerName(ctx, student.CenterID, centerNames),
		string(student.Status),
		student.Mobile,
		student.AdmissionDate,
	}
	for i, value := range values {
		if value == nil {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(exportSheetName, cell, value); err != nil {
			return err
		}
	}

	photoCell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := s.embedPhoto(ctx, f, photoCell, student.PhotoURL); err != nil {
		return f.SetCellValue(exportSheetName, photoCell, exportNoImageLabel)
	}
	return nil
}

// centerName resolves a center id to its display name, caching lookups for
// the duration of one export. Dangling ids render as Unknown.
func (s *ExportService) centerName(ctx context.Context, centerID string, cache map[string]string) string {
	if name, ok := cache[centerID]; ok {
		return name
	}

	name := "Unknown"
	if center, err := s.centers.GetByID(ctx, centerID); err == nil {
		name = center.Name
	}
	cache[centerID] = name
	return name
}

// embedPhoto fetches the photo over HTTP and anchors it to the cell, scaled
// to a fixed square. Any failure falls back to a text placeholder.
func (s *ExportService) embedPhoto(ctx context.Context, f *excelize.File, cell, photoURL string) error {
	if photoURL == "" {
		return fmt.Errorf("no photo url")
	}

	data, ext, err := s.fetchPhoto(ctx, photoURL)
	if err != nil {
		logger.Warn().Err(err).Str("url", photoURL).Msg("Photo fetch failed, exporting placeholder")
		return err
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil || cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("failed to decode photo dimensions: %w", err)
	}

	return f.AddPictureFromBytes(exportSheetName, cell, &excelize.Picture{
		Extension: ext,
		File:      data,
		Format: &excelize.GraphicOptions{
			ScaleX: exportPhotoSize / float64(cfg.Width),
			ScaleY: exportPhotoSize / float64(cfg.Height),
		},
	})
}

func (s *ExportService) fetchPhoto(ctx context.Context, photoURL string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, photoURL, nil)
	if err != nil {
		return nil, "", err
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d fetching photo", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, "", err
	}

	switch http.DetectContentType(data) {
	case "image/jpeg":
		return data, ".jpg", nil
	case "image/png":
		return data, ".png", nil
	case "image/gif":
		return data, ".gif", nil
	default:
		return nil, "", fmt.Errorf("unsupported photo content type")
	}
}
