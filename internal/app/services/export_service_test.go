package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/acitm/admissions/internal/app/models"
	"github.com/acitm/admissions/internal/pkg/apperrors"
)

type fakeExportStudents struct {
	students []*models.Student
}

func (f *fakeExportStudents) GetByIDs(_ context.Context, ids []string) ([]*models.Student, error) {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	var out []*models.Student
	for _, s := range f.students {
		if set[s.ID] {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeExportCenters struct {
	centers map[string]*models.Center
}

func (f *fakeExportCenters) GetByID(_ context.Context, id string) (*models.Center, error) {
	center, ok := f.centers[id]
	if !ok {
		return nil, apperrors.ErrCenterNotFound
	}
	return center, nil
}

func testPhotoServer(t *testing.T) *httptest.Server {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := 0; x < 4; x++ {
		for y := 0; y < 4; y++ {
			img.Set(x, y, color.RGBA{R: 200, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/photo.png" {
			w.Header().Set("Content-Type", "image/png")
			w.Write(buf.Bytes())
			return
		}
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestExportStudentsWorkbook(t *testing.T) {
	srv := testPhotoServer(t)

	students := &fakeExportStudents{students: []*models.Student{
		{
			ID: "s1", Name: "Ravi Kumar", FatherName: "Suresh Kumar",
			Course: "DCA", AdmissionDate: "2026-08-01", Mobile: "9876543210",
			Status: models.StatusAccepted, CenterID: "c1",
			PhotoURL: srv.URL + "/photo.png",
		},
		{
			ID: "s2", Name: "Meena Devi", FatherName: "Raj Singh",
			Course: "Tally", AdmissionDate: "2026-08-02", Mobile: "9876500000",
			Status: models.StatusPending, CenterID: "c-gone",
			PhotoURL: srv.URL + "/missing.png",
		},
	}}
	centers := &fakeExportCenters{centers: map[string]*models.Center{
		"c1": {ID: "c1", Name: "North Center"},
	}}

	svc := NewExportService(students, centers)
	workbook, err := svc.ExportStudents(context.Background(), &models.User{Role: models.RoleAdmin}, []string{"s1", "s2"})
	if err != nil {
		t.Fatalf("ExportStudents() error = %v", err)
	}

	sheets := workbook.GetSheetList()
	if len(sheets) != 1 || sheets[0] != "Students" {
		t.Fatalf("sheets = %v, want [Students]", sheets)
	}

	headerChecks := map[string]string{
		"A1": "Photo", "B1": "Name", "C1": "Father's Name", "D1": "Course",
		"E1": "Center", "F1": "Status", "G1": "Mobile", "H1": "Admission Date",
	}
	for cell, want := range headerChecks {
		got, err := workbook.GetCellValue("Students", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Errorf("header %s = %q, want %q", cell, got, want)
		}
	}

	rowChecks := map[string]string{
		"B2": "Ravi Kumar",
		"E2": "North Center",
		"F2": "Accepted",
		"A3": "No Image", // photo fetch fails for the second record
		"E3": "Unknown",  // dangling center id
	}
	for cell, want := range rowChecks {
		got, err := workbook.GetCellValue("Students", cell)
		if err != nil {
			t.Fatalf("GetCellValue(%s) error = %v", cell, err)
		}
		if got != want {
			t.Errorf("cell %s = %q, want %q", cell, got, want)
		}
	}

	// The fetched photo is embedded, not written as text.
	if got, _ := workbook.GetCellValue("Students", "A2"); got != "" {
		t.Errorf("cell A2 = %q, want embedded picture and no text", got)
	}
	pics, err := workbook.GetPictures("Students", "A2")
	if err != nil {
		t.Fatalf("GetPictures() error = %v", err)
	}
	if len(pics) != 1 {
		t.Errorf("got %d pictures in A2, want 1", len(pics))
	}
}

func TestExportStudentsScopesCenterRole(t *testing.T) {
	students := &fakeExportStudents{students: []*models.Student{
		{ID: "s1", Name: "Own", CenterID: "c1"},
		{ID: "s2", Name: "Foreign", CenterID: "c2"},
	}}
	centers := &fakeExportCenters{centers: map[string]*models.Center{}}
	svc := NewExportService(students, centers)

	centerID := "c1"
	actor := &models.User{Role: models.RoleCenter, CenterID: &centerID}

	workbook, err := svc.ExportStudents(context.Background(), actor, []string{"s1", "s2"})
	if err != nil {
		t.Fatalf("ExportStudents() error = %v", err)
	}

	if got, _ := workbook.GetCellValue("Students", "B2"); got != "Own" {
		t.Errorf("B2 = %q, want %q", got, "Own")
	}
	if got, _ := workbook.GetCellValue("Students", "B3"); got != "" {
		t.Errorf("B3 = %q, foreign record must be excluded", got)
	}
}

func TestExportStudentsNoMatches(t *testing.T) {
	svc := NewExportService(&fakeExportStudents{}, &fakeExportCenters{})

	_, err := svc.ExportStudents(context.Background(), &models.User{Role: models.RoleAdmin}, []string{"nope"})
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Fatalf("error = %v, want ErrStudentNotFound", err)
	}
}
