package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/KSRM-F-2025/feedback-service/internal/cache"
	"github.com/KSRM-F-2025/feedback-service/internal/models"
)

func newTestReportService(repo *memRepository) ReportService {
	analytics := NewAnalyticsService(repo, nil, testLogger(), cache.NewCacheManager(nil), time.UTC)
	return NewReportService(analytics, testLogger(), time.UTC)
}

func seedReportData(repo *memRepository) {
	repo.faculty = append(repo.faculty,
		models.Faculty{FacultyID: "FAC001", Name: "Prof. Rao", Designation: "Professor"},
		models.Faculty{FacultyID: "FAC002", Name: "Dr. Iyer", Designation: "Assistant Professor"},
	)
	base := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	ratings := map[string][]int{
		"FAC001": {9, 8, 10},
		"FAC002": {5, 4, 7},
	}
	for facultyID, values := range ratings {
		for i, v := range values {
			record := feedbackRecord(facultyID, v, base.Add(time.Duration(i)*time.Hour))
			record.SubjectName = fmt.Sprintf("Subject %d", i)
			repo.feedback = append(repo.feedback, record)
		}
	}
}

func TestReportService_Export(t *testing.T) {
	ctx := context.Background()

	t.Run("filename carries type and date", func(t *testing.T) {
		repo := newMemRepository()
		seedReportData(repo)
		service := newTestReportService(repo)

		file, err := service.Export(ctx, ReportSummary, FormatCSV)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}
		want := fmt.Sprintf("summary-report-%s.csv", time.Now().UTC().Format("2006-01-02"))
		if file.Filename != want {
			t.Errorf("expected filename %q, got %q", want, file.Filename)
		}
		if file.ContentType != "text/csv" {
			t.Errorf("unexpected content type %q", file.ContentType)
		}
	})

	t.Run("json report wraps data with metadata", func(t *testing.T) {
		repo := newMemRepository()
		seedReportData(repo)
		service := newTestReportService(repo)

		file, err := service.Export(ctx, ReportComplete, FormatJSON)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		var payload struct {
			ReportType  string          `json:"report_type"`
			GeneratedAt string          `json:"generated_at"`
			Data        json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(file.Data, &payload); err != nil {
			t.Fatalf("report is not valid json: %v", err)
		}
		if payload.ReportType != "complete" {
			t.Errorf("expected report_type complete, got %q", payload.ReportType)
		}
		if payload.GeneratedAt == "" {
			t.Error("expected generated_at timestamp")
		}

		var snapshot AnalyticsSnapshot
		if err := json.Unmarshal(payload.Data, &snapshot); err != nil {
			t.Fatalf("data is not a snapshot: %v", err)
		}
		if snapshot.TotalFeedback != 6 {
			t.Errorf("expected 6 records, got %d", snapshot.TotalFeedback)
		}
	})

	t.Run("summary rates derived from distribution", func(t *testing.T) {
		repo := newMemRepository()
		seedReportData(repo)
		service := newTestReportService(repo)

		file, err := service.Export(ctx, ReportSummary, FormatJSON)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		var payload struct {
			Data SummaryReport `json:"data"`
		}
		if err := json.Unmarshal(file.Data, &payload); err != nil {
			t.Fatalf("failed to decode summary: %v", err)
		}

		// Ratings 9,8,10,5,4,7: four at >=7 and two below 6.
		if payload.Data.SatisfactionRate != 66.67 {
			t.Errorf("expected satisfaction 66.67, got %v", payload.Data.SatisfactionRate)
		}
		if payload.Data.ImprovementRate != 33.33 {
			t.Errorf("expected improvement 33.33, got %v", payload.Data.ImprovementRate)
		}
	})

	t.Run("csv faculty report parses back", func(t *testing.T) {
		repo := newMemRepository()
		seedReportData(repo)
		service := newTestReportService(repo)

		file, err := service.Export(ctx, ReportFaculty, FormatCSV)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		rows, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		if err != nil {
			t.Fatalf("csv parse failed: %v", err)
		}
		if len(rows) != 3 {
			t.Fatalf("expected header + 2 faculty rows, got %d", len(rows))
		}
		if rows[0][0] != "faculty_id" {
			t.Errorf("unexpected header: %v", rows[0])
		}
		// FAC001 averages 9.00 and ranks first.
		if rows[1][0] != "FAC001" || rows[1][3] != "9.00" {
			t.Errorf("unexpected first row: %v", rows[1])
		}
	})

	t.Run("xlsx report opens and has rows", func(t *testing.T) {
		repo := newMemRepository()
		seedReportData(repo)
		service := newTestReportService(repo)

		file, err := service.Export(ctx, ReportDepartments, FormatXLSX)
		if err != nil {
			t.Fatalf("Export failed: %v", err)
		}

		workbook, err := excelize.OpenReader(bytes.NewReader(file.Data))
		if err != nil {
			t.Fatalf("workbook did not open: %v", err)
		}
		defer workbook.Close()

		rows, err := workbook.GetRows("Report")
		if err != nil {
			t.Fatalf("failed to read sheet: %v", err)
		}
		if len(rows) != 3 {
			t.Errorf("expected header + 2 department rows, got %d", len(rows))
		}
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestReportService(repo)

		_, err := service.Export(ctx, ReportType("bogus"), FormatJSON)
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})

	t.Run("unknown format rejected", func(t *testing.T) {
		repo := newMemRepository()
		service := newTestReportService(repo)

		_, err := service.Export(ctx, ReportComplete, ReportFormat("pdf"))
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("expected ErrInvalidRequest, got %v", err)
		}
	})
}
