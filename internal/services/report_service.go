package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
)

// ReportType selects which view of the analytics snapshot to export.
type ReportType string

const (
	ReportComplete    ReportType = "complete"
	ReportFaculty     ReportType = "faculty"
	ReportSummary     ReportType = "summary"
	ReportDepartments ReportType = "departments"
)

// ReportFormat selects the output encoding.
type ReportFormat string

const (
	FormatJSON ReportFormat = "json"
	FormatCSV  ReportFormat = "csv"
	FormatXLSX ReportFormat = "xlsx"
)

// ===== RESPONSE DTOs =====

// ReportFile is a rendered report ready to stream to the client.
type ReportFile struct {
	Filename    string
	ContentType string
	Data        []byte
}

// SummaryReport condenses the snapshot into headline percentages.
// SatisfactionRate is the share of overall ratings at 7 or above;
// ImprovementRate is the share below 6.
type SummaryReport struct {
	TotalFeedback        int64   `json:"total_feedback"`
	AverageOverallRating float64 `json:"average_overall_rating"`
	SatisfactionRate     float64 `json:"satisfaction_rate"`
	ImprovementRate      float64 `json:"improvement_rate"`
	FacultyCount         int     `json:"faculty_count"`
}

// DepartmentReportRow aggregates faculty standing by designation.
type DepartmentReportRow struct {
	Designation   string  `json:"designation"`
	FacultyCount  int     `json:"faculty_count"`
	FeedbackCount int64   `json:"feedback_count"`
	AverageRating float64 `json:"average_rating"`
}

// ===== SERVICE IMPLEMENTATION =====

type reportService struct {
	analytics AnalyticsService
	logger    *slog.Logger
	location  *time.Location
}

// NewReportService creates a new report service. loc determines the date
// stamped into generated filenames.
func NewReportService(analytics AnalyticsService, logger *slog.Logger, loc *time.Location) ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &reportService{
		analytics: analytics,
		logger:    logger,
		location:  loc,
	}
}

// Export renders the requested report type in the requested format.
func (s *reportService) Export(ctx context.Context, reportType ReportType, format ReportFormat) (*ReportFile, error) {
	switch reportType {
	case ReportComplete, ReportFaculty, ReportSummary, ReportDepartments:
	default:
		return nil, fmt.Errorf("%w: unknown report type %q", ErrInvalidRequest, reportType)
	}

	snapshot, err := s.analytics.GetSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load analytics snapshot: %w", err)
	}

	var data []byte
	var contentType, ext string

	switch format {
	case FormatJSON:
		data, err = s.renderJSON(reportType, snapshot)
		contentType, ext = "application/json", "json"
	case FormatCSV:
		data, err = s.renderCSV(reportType, snapshot)
		contentType, ext = "text/csv", "csv"
	case FormatXLSX:
		data, err = s.renderXLSX(reportType, snapshot)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
		ext = "xlsx"
	default:
		return nil, fmt.Errorf("%w: unknown report format %q", ErrInvalidRequest, format)
	}
	if err != nil {
		return nil, err
	}

	filename := fmt.Sprintf("%s-report-%s.%s", reportType, time.Now().In(s.location).Format("2006-01-02"), ext)

	s.logger.Info("Report generated", "type", reportType, "format", format, "bytes", len(data))

	return &ReportFile{
		Filename:    filename,
		ContentType: contentType,
		Data:        data,
	}, nil
}

func (s *reportService) renderJSON(reportType ReportType, snapshot *AnalyticsSnapshot) ([]byte, error) {
	payload := map[string]interface{}{
		"report_type":  reportType,
		"generated_at": time.Now().In(s.location).Format(time.RFC3339),
		"data":         s.reportData(reportType, snapshot),
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode report: %w", err)
	}
	return data, nil
}

func (s *reportService) reportData(reportType ReportType, snapshot *AnalyticsSnapshot) interface{} {
	switch reportType {
	case ReportFaculty:
		return snapshot.FacultyRatings
	case ReportSummary:
		return buildSummary(snapshot)
	case ReportDepartments:
		return buildDepartments(snapshot)
	default:
		return snapshot
	}
}

func (s *reportService) renderCSV(reportType ReportType, snapshot *AnalyticsSnapshot) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	for _, row := range reportRows(reportType, snapshot) {
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *reportService) renderXLSX(reportType ReportType, snapshot *AnalyticsSnapshot) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Report"
	f.SetSheetName(f.GetSheetName(0), sheet)

	for i, row := range reportRows(reportType, snapshot) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to build cell reference: %w", err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write sheet row: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// reportRows flattens a report into tabular rows shared by the CSV and
// XLSX encoders.
func reportRows(reportType ReportType, snapshot *AnalyticsSnapshot) [][]string {
	switch reportType {
	case ReportFaculty:
		return facultyRows(snapshot)
	case ReportSummary:
		return summaryRows(snapshot)
	case ReportDepartments:
		return departmentRows(snapshot)
	default:
		return completeRows(snapshot)
	}
}

func facultyRows(snapshot *AnalyticsSnapshot) [][]string {
	rows := [][]string{{"faculty_id", "faculty_name", "designation", "average_rating", "feedback_count"}}
	for _, fr := range snapshot.FacultyRatings {
		rows = append(rows, []string{
			fr.FacultyID,
			fr.FacultyName,
			fr.Designation,
			formatFloat(fr.AverageRating),
			strconv.FormatInt(fr.FeedbackCount, 10),
		})
	}
	return rows
}

func summaryRows(snapshot *AnalyticsSnapshot) [][]string {
	summary := buildSummary(snapshot)
	return [][]string{
		{"metric", "value"},
		{"total_feedback", strconv.FormatInt(summary.TotalFeedback, 10)},
		{"average_overall_rating", formatFloat(summary.AverageOverallRating)},
		{"satisfaction_rate", formatFloat(summary.SatisfactionRate)},
		{"improvement_rate", formatFloat(summary.ImprovementRate)},
		{"faculty_count", strconv.Itoa(summary.FacultyCount)},
	}
}

func departmentRows(snapshot *AnalyticsSnapshot) [][]string {
	rows := [][]string{{"designation", "faculty_count", "feedback_count", "average_rating"}}
	for _, d := range buildDepartments(snapshot) {
		rows = append(rows, []string{
			d.Designation,
			strconv.Itoa(d.FacultyCount),
			strconv.FormatInt(d.FeedbackCount, 10),
			formatFloat(d.AverageRating),
		})
	}
	return rows
}

func completeRows(snapshot *AnalyticsSnapshot) [][]string {
	rows := [][]string{
		{"section", "key", "value"},
		{"totals", "total_feedback", strconv.FormatInt(snapshot.TotalFeedback, 10)},
		{"totals", "average_overall_rating", formatFloat(snapshot.AverageOverallRating)},
	}
	for v := models.RatingMin; v <= models.RatingMax; v++ {
		rows = append(rows, []string{"distribution", strconv.Itoa(v), strconv.FormatInt(snapshot.RatingDistribution[v], 10)})
	}
	for _, fr := range snapshot.FacultyRatings {
		rows = append(rows, []string{"faculty", fr.FacultyID, formatFloat(fr.AverageRating)})
	}
	for _, t := range snapshot.MonthlyTrends {
		rows = append(rows, []string{"monthly", t.Month, formatFloat(t.AverageRating)})
	}
	return rows
}

func buildSummary(snapshot *AnalyticsSnapshot) SummaryReport {
	var rated, satisfied, needsWork int64
	for v := models.RatingMin; v <= models.RatingMax; v++ {
		count := snapshot.RatingDistribution[v]
		rated += count
		if v >= 7 {
			satisfied += count
		}
		if v < 6 {
			needsWork += count
		}
	}

	summary := SummaryReport{
		TotalFeedback:        snapshot.TotalFeedback,
		AverageOverallRating: snapshot.AverageOverallRating,
		FacultyCount:         len(snapshot.FacultyRatings),
	}
	if rated > 0 {
		summary.SatisfactionRate = roundFloat(float64(satisfied)/float64(rated)*100, 2)
		summary.ImprovementRate = roundFloat(float64(needsWork)/float64(rated)*100, 2)
	}
	return summary
}

func buildDepartments(snapshot *AnalyticsSnapshot) []DepartmentReportRow {
	type agg struct {
		facultyCount  int
		feedbackCount int64
		weightedSum   float64
	}
	aggs := make(map[string]*agg)

	for _, fr := range snapshot.FacultyRatings {
		designation := fr.Designation
		if designation == "" {
			designation = "Unassigned"
		}
		a := aggs[designation]
		if a == nil {
			a = &agg{}
			aggs[designation] = a
		}
		a.facultyCount++
		a.feedbackCount += fr.FeedbackCount
		a.weightedSum += fr.AverageRating * float64(fr.FeedbackCount)
	}

	names := make([]string, 0, len(aggs))
	for name := range aggs {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]DepartmentReportRow, 0, len(names))
	for _, name := range names {
		a := aggs[name]
		row := DepartmentReportRow{
			Designation:   name,
			FacultyCount:  a.facultyCount,
			FeedbackCount: a.feedbackCount,
		}
		if a.feedbackCount > 0 {
			row.AverageRating = roundFloat(a.weightedSum/float64(a.feedbackCount), 2)
		}
		rows = append(rows, row)
	}
	return rows
}

func formatFloat(x float64) string {
	return strconv.FormatFloat(x, 'f', 2, 64)
}
