package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/cache"
	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
)

// ===== RESPONSE DTOs =====

// AnalyticsSnapshot is the full aggregate view over every stored
// submission. It carries no timestamps so recomputing over unchanged data
// yields an identical value.
type AnalyticsSnapshot struct {
	TotalFeedback        int64              `json:"total_feedback"`
	AverageOverallRating float64            `json:"average_overall_rating"`
	FacultyRatings       []FacultyRating    `json:"faculty_ratings"`
	RatingDistribution   map[int]int64      `json:"rating_distribution"`
	MonthlyTrends        []MonthlyTrend     `json:"monthly_trends"`
	CriteriaAverages     map[string]float64 `json:"criteria_averages"`
}

// FacultyRating is one faculty member's aggregate standing, ordered by
// average rating descending, faculty ID ascending on ties.
type FacultyRating struct {
	FacultyID     string  `json:"faculty_id"`
	FacultyName   string  `json:"faculty_name"`
	Designation   string  `json:"designation"`
	AverageRating float64 `json:"average_rating"`
	FeedbackCount int64   `json:"feedback_count"`
}

// MonthlyTrend is submission volume and average rating for one calendar
// month, bucketed in the reporting timezone.
type MonthlyTrend struct {
	Month         string  `json:"month"`
	FeedbackCount int64   `json:"feedback_count"`
	AverageRating float64 `json:"average_rating"`
}

// FacultyAnalyticsResponse is the per-faculty drill-down.
type FacultyAnalyticsResponse struct {
	FacultyID        string             `json:"faculty_id"`
	FacultyName      string             `json:"faculty_name"`
	Designation      string             `json:"designation"`
	FeedbackCount    int64              `json:"feedback_count"`
	AverageRating    float64            `json:"average_rating"`
	CriteriaAverages map[string]float64 `json:"criteria_averages"`
	RecentComments   []FacultyComment   `json:"recent_comments"`
}

// FacultyComment is one piece of free-text feedback. Anonymous records
// never expose the author.
type FacultyComment struct {
	StudentID   string    `json:"student_id,omitempty"`
	Comment     string    `json:"comment"`
	SubjectName string    `json:"subject_name"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// OverviewResponse is the admin dashboard headline numbers.
type OverviewResponse struct {
	TotalStudents        int64   `json:"total_students"`
	TotalFaculty         int64   `json:"total_faculty"`
	TotalCourses         int64   `json:"total_courses"`
	TotalFeedback        int64   `json:"total_feedback"`
	AverageOverallRating float64 `json:"average_overall_rating"`
}

// ===== SERVICE IMPLEMENTATION =====

type analyticsService struct {
	repo         repositories.Repository
	db           *gorm.DB
	logger       *slog.Logger
	cacheManager *cache.CacheManager
	location     *time.Location
}

// NewAnalyticsService creates a new analytics service. loc is the
// timezone used for monthly trend bucketing.
func NewAnalyticsService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, cacheManager *cache.CacheManager, loc *time.Location) AnalyticsService {
	if loc == nil {
		loc = time.UTC
	}
	return &analyticsService{
		repo:         repo,
		db:           db,
		logger:       logger,
		cacheManager: cacheManager,
		location:     loc,
	}
}

// GetSnapshot serves the cached aggregate view, recomputing on miss.
func (s *analyticsService) GetSnapshot(ctx context.Context) (*AnalyticsSnapshot, error) {
	var snapshot AnalyticsSnapshot
	err := s.cacheManager.Analytics.CacheOrExecute(ctx, "snapshot", &snapshot, cache.AnalyticsCacheConfig.TTL, func() (interface{}, error) {
		return s.computeSnapshot(ctx)
	})
	if err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *analyticsService) computeSnapshot(ctx context.Context) (*AnalyticsSnapshot, error) {
	records, err := s.repo.Feedback().ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}

	facultyList, err := s.repo.Faculty().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load faculty: %w", err)
	}
	facultyByID := make(map[string]models.Faculty, len(facultyList))
	for _, f := range facultyList {
		facultyByID[f.FacultyID] = f
	}

	return ComputeSnapshot(records, facultyByID, s.location), nil
}

// ComputeSnapshot aggregates feedback records into a snapshot. It is a
// pure function of its inputs: the same records always produce the same
// snapshot, so recomputation is safe at any time.
func ComputeSnapshot(records []models.Feedback, facultyByID map[string]models.Faculty, loc *time.Location) *AnalyticsSnapshot {
	if loc == nil {
		loc = time.UTC
	}

	snapshot := &AnalyticsSnapshot{
		TotalFeedback:      int64(len(records)),
		FacultyRatings:     []FacultyRating{},
		RatingDistribution: make(map[int]int64, models.RatingMax),
		MonthlyTrends:      []MonthlyTrend{},
		CriteriaAverages:   make(map[string]float64),
	}
	// Every bucket is always present, even at zero.
	for v := models.RatingMin; v <= models.RatingMax; v++ {
		snapshot.RatingDistribution[v] = 0
	}

	var overallSum, overallCount int64
	type facultyAgg struct {
		sum   int64
		count int64
	}
	facultyAggs := make(map[string]*facultyAgg)
	type monthAgg struct {
		sum   int64
		count int64
	}
	monthAggs := make(map[string]*monthAgg)
	criteriaSums := make(map[string]int64)
	criteriaCounts := make(map[string]int64)

	for i := range records {
		r := &records[i]

		for _, c := range r.RatingCriteria() {
			if c.Value == nil {
				continue
			}
			criteriaSums[c.Name] += int64(*c.Value)
			criteriaCounts[c.Name]++
		}

		if r.OverallRating == nil {
			continue
		}
		v := *r.OverallRating
		overallSum += int64(v)
		overallCount++
		if v >= models.RatingMin && v <= models.RatingMax {
			snapshot.RatingDistribution[v]++
		}

		agg := facultyAggs[r.FacultyID]
		if agg == nil {
			agg = &facultyAgg{}
			facultyAggs[r.FacultyID] = agg
		}
		agg.sum += int64(v)
		agg.count++

		month := r.SubmittedAt.In(loc).Format("2006-01")
		m := monthAggs[month]
		if m == nil {
			m = &monthAgg{}
			monthAggs[month] = m
		}
		m.sum += int64(v)
		m.count++
	}

	if overallCount > 0 {
		snapshot.AverageOverallRating = roundFloat(float64(overallSum)/float64(overallCount), 2)
	}

	for name, sum := range criteriaSums {
		snapshot.CriteriaAverages[name] = roundFloat(float64(sum)/float64(criteriaCounts[name]), 2)
	}

	for facultyID, agg := range facultyAggs {
		rating := FacultyRating{
			FacultyID:     facultyID,
			AverageRating: roundFloat(float64(agg.sum)/float64(agg.count), 2),
			FeedbackCount: agg.count,
		}
		if f, ok := facultyByID[facultyID]; ok {
			rating.FacultyName = f.Name
			rating.Designation = f.Designation
		}
		snapshot.FacultyRatings = append(snapshot.FacultyRatings, rating)
	}
	sort.Slice(snapshot.FacultyRatings, func(i, j int) bool {
		a, b := snapshot.FacultyRatings[i], snapshot.FacultyRatings[j]
		if a.AverageRating != b.AverageRating {
			return a.AverageRating > b.AverageRating
		}
		return a.FacultyID < b.FacultyID
	})

	months := make([]string, 0, len(monthAggs))
	for month := range monthAggs {
		months = append(months, month)
	}
	sort.Strings(months)
	for _, month := range months {
		m := monthAggs[month]
		snapshot.MonthlyTrends = append(snapshot.MonthlyTrends, MonthlyTrend{
			Month:         month,
			FeedbackCount: m.count,
			AverageRating: roundFloat(float64(m.sum)/float64(m.count), 2),
		})
	}

	return snapshot
}

// GetFacultyAnalytics serves the per-faculty drill-down. Faculty sessions
// may only view their own record.
func (s *analyticsService) GetFacultyAnalytics(ctx context.Context, session SessionContext, facultyID string) (*FacultyAnalyticsResponse, error) {
	if session.Role == models.RoleFaculty && session.FacultyID != facultyID {
		return nil, fmt.Errorf("%w: faculty can only view their own analytics", ErrForbidden)
	}

	faculty, err := s.repo.Faculty().GetByID(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("%w: faculty %s", ErrNotFound, facultyID)
	}

	records, err := s.repo.Feedback().ListByFaculty(ctx, facultyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}

	resp := &FacultyAnalyticsResponse{
		FacultyID:        faculty.FacultyID,
		FacultyName:      faculty.Name,
		Designation:      faculty.Designation,
		FeedbackCount:    int64(len(records)),
		CriteriaAverages: make(map[string]float64),
		RecentComments:   []FacultyComment{},
	}

	criteriaSums := make(map[string]int64)
	criteriaCounts := make(map[string]int64)
	var overallSum, overallCount int64

	for i := range records {
		r := &records[i]
		for _, c := range r.RatingCriteria() {
			if c.Value == nil {
				continue
			}
			criteriaSums[c.Name] += int64(*c.Value)
			criteriaCounts[c.Name]++
		}
		if r.OverallRating != nil {
			overallSum += int64(*r.OverallRating)
			overallCount++
		}

		// Records arrive newest first.
		if len(resp.RecentComments) < 10 {
			for _, text := range []*string{r.PositiveFeedback, r.SuggestionsForImprovement, r.AdditionalComments} {
				if text == nil || *text == "" {
					continue
				}
				comment := FacultyComment{
					Comment:     *text,
					SubjectName: r.SubjectName,
					SubmittedAt: r.SubmittedAt,
				}
				if !r.IsAnonymous {
					comment.StudentID = r.StudentID.String()
				}
				resp.RecentComments = append(resp.RecentComments, comment)
				if len(resp.RecentComments) >= 10 {
					break
				}
			}
		}
	}

	if overallCount > 0 {
		resp.AverageRating = roundFloat(float64(overallSum)/float64(overallCount), 2)
	}
	for name, sum := range criteriaSums {
		resp.CriteriaAverages[name] = roundFloat(float64(sum)/float64(criteriaCounts[name]), 2)
	}

	return resp, nil
}

// GetOverview serves the dashboard headline counters. Cached beside the
// snapshot so a feedback submission invalidates both views together.
func (s *analyticsService) GetOverview(ctx context.Context) (*OverviewResponse, error) {
	var overview OverviewResponse
	err := s.cacheManager.Analytics.CacheOrExecute(ctx, "overview", &overview, cache.AnalyticsCacheConfig.TTL, func() (interface{}, error) {
		students, err := s.repo.Student().Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count students: %w", err)
		}
		faculty, err := s.repo.Faculty().Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count faculty: %w", err)
		}
		courses, err := s.repo.Course().Count(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to count courses: %w", err)
		}

		snapshot, err := s.computeSnapshot(ctx)
		if err != nil {
			return nil, err
		}

		return &OverviewResponse{
			TotalStudents:        students,
			TotalFaculty:         faculty,
			TotalCourses:         courses,
			TotalFeedback:        snapshot.TotalFeedback,
			AverageOverallRating: snapshot.AverageOverallRating,
		}, nil
	})
	if err != nil {
		return nil, err
	}
	return &overview, nil
}

// roundFloat rounds to the given number of decimal places.
func roundFloat(x float64, places int) float64 {
	shift := math.Pow(10, float64(places))
	return math.Round(x*shift) / shift
}
