package services

import (
	"context"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/KSRM-F-2025/feedback-service/internal/models"
	"github.com/KSRM-F-2025/feedback-service/internal/repositories"
)

// memRepository is an in-memory Repository used across the service tests.
type memRepository struct {
	students    []models.StudentProfile
	staff       []models.StaffAccount
	faculty     []models.Faculty
	courses     []models.Course
	assignments []models.CourseAssignment
	feedback    []models.Feedback
	settings    map[string]models.PortalSetting
}

func newMemRepository() *memRepository {
	return &memRepository{settings: make(map[string]models.PortalSetting)}
}

func (m *memRepository) Student() repositories.StudentRepository { return &memStudentRepo{m} }
func (m *memRepository) Staff() repositories.StaffRepository     { return &memStaffRepo{m} }
func (m *memRepository) Faculty() repositories.FacultyRepository { return &memFacultyRepo{m} }
func (m *memRepository) Course() repositories.CourseRepository   { return &memCourseRepo{m} }
func (m *memRepository) Feedback() repositories.FeedbackRepository {
	return &memFeedbackRepo{m}
}
func (m *memRepository) Setting() repositories.SettingRepository { return &memSettingRepo{m} }

func (m *memRepository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return fn(m)
}
func (m *memRepository) Ping(ctx context.Context) error { return nil }
func (m *memRepository) Close() error                   { return nil }

// ===== STUDENT =====

type memStudentRepo struct{ m *memRepository }

func (r *memStudentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StudentProfile, error) {
	for i := range r.m.students {
		if r.m.students[i].ID == id {
			return &r.m.students[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStudentRepo) GetByEmail(ctx context.Context, email string) (*models.StudentProfile, error) {
	for i := range r.m.students {
		if strings.EqualFold(r.m.students[i].CollegeEmail, email) {
			return &r.m.students[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStudentRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.students)), nil
}

// ===== STAFF =====

type memStaffRepo struct{ m *memRepository }

func (r *memStaffRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.StaffAccount, error) {
	for i := range r.m.staff {
		if r.m.staff[i].ID == id {
			return &r.m.staff[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memStaffRepo) GetByEmail(ctx context.Context, email string) (*models.StaffAccount, error) {
	for i := range r.m.staff {
		if strings.EqualFold(r.m.staff[i].Email, email) {
			return &r.m.staff[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ===== FACULTY =====

type memFacultyRepo struct{ m *memRepository }

func (r *memFacultyRepo) Create(ctx context.Context, faculty *models.Faculty) error {
	r.m.faculty = append(r.m.faculty, *faculty)
	return nil
}

func (r *memFacultyRepo) Update(ctx context.Context, faculty *models.Faculty) error {
	for i := range r.m.faculty {
		if r.m.faculty[i].FacultyID == faculty.FacultyID {
			r.m.faculty[i] = *faculty
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memFacultyRepo) Delete(ctx context.Context, facultyID string) error {
	for i := range r.m.faculty {
		if r.m.faculty[i].FacultyID == facultyID {
			r.m.faculty = append(r.m.faculty[:i], r.m.faculty[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memFacultyRepo) GetByID(ctx context.Context, facultyID string) (*models.Faculty, error) {
	for i := range r.m.faculty {
		if r.m.faculty[i].FacultyID == facultyID {
			return &r.m.faculty[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFacultyRepo) List(ctx context.Context) ([]models.Faculty, error) {
	out := make([]models.Faculty, len(r.m.faculty))
	copy(out, r.m.faculty)
	sort.Slice(out, func(i, j int) bool { return out[i].FacultyID < out[j].FacultyID })
	return out, nil
}

func (r *memFacultyRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.faculty)), nil
}

// ===== COURSE =====

type memCourseRepo struct{ m *memRepository }

func (r *memCourseRepo) Create(ctx context.Context, course *models.Course) error {
	r.m.courses = append(r.m.courses, *course)
	return nil
}

func (r *memCourseRepo) Delete(ctx context.Context, courseID string) error {
	for i := range r.m.courses {
		if r.m.courses[i].CourseID == courseID {
			r.m.courses = append(r.m.courses[:i], r.m.courses[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memCourseRepo) GetByID(ctx context.Context, courseID string) (*models.Course, error) {
	for i := range r.m.courses {
		if r.m.courses[i].CourseID == courseID {
			return &r.m.courses[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memCourseRepo) List(ctx context.Context) ([]models.Course, error) {
	out := make([]models.Course, len(r.m.courses))
	copy(out, r.m.courses)
	return out, nil
}

func (r *memCourseRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.courses)), nil
}

func (r *memCourseRepo) CreateAssignment(ctx context.Context, assignment *models.CourseAssignment) error {
	r.m.assignments = append(r.m.assignments, *assignment)
	return nil
}

func (r *memCourseRepo) DeleteAssignment(ctx context.Context, id uuid.UUID) error {
	for i := range r.m.assignments {
		if r.m.assignments[i].ID == id {
			r.m.assignments = append(r.m.assignments[:i], r.m.assignments[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (r *memCourseRepo) ListAssignments(ctx context.Context, filters repositories.AssignmentFilters) ([]models.CourseAssignment, error) {
	var out []models.CourseAssignment
	for _, a := range r.m.assignments {
		if filters.FacultyID != nil && a.FacultyID != *filters.FacultyID {
			continue
		}
		if filters.Section != nil && a.Section != *filters.Section {
			continue
		}
		if filters.Semester != nil && a.Semester != *filters.Semester {
			continue
		}
		if filters.AcademicYear != nil && a.AcademicYear != *filters.AcademicYear {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

// ===== FEEDBACK =====

type memFeedbackRepo struct{ m *memRepository }

func (r *memFeedbackRepo) Create(ctx context.Context, feedback *models.Feedback) error {
	r.m.feedback = append(r.m.feedback, *feedback)
	return nil
}

func (r *memFeedbackRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Feedback, error) {
	for i := range r.m.feedback {
		if r.m.feedback[i].ID == id {
			return &r.m.feedback[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFeedbackRepo) List(ctx context.Context, filters repositories.FeedbackFilters) ([]models.Feedback, int64, error) {
	var matched []models.Feedback
	for _, f := range r.m.feedback {
		if filters.FacultyID != nil && f.FacultyID != *filters.FacultyID {
			continue
		}
		if filters.Semester != nil && f.Semester != *filters.Semester {
			continue
		}
		if filters.AcademicYear != nil && f.AcademicYear != *filters.AcademicYear {
			continue
		}
		if filters.Anonymous != nil && f.IsAnonymous != *filters.Anonymous {
			continue
		}
		matched = append(matched, f)
	}
	sort.Slice(matched, func(i, j int) bool {
		return matched[i].SubmittedAt.After(matched[j].SubmittedAt)
	})

	total := int64(len(matched))
	if filters.Offset > 0 {
		if filters.Offset >= len(matched) {
			matched = nil
		} else {
			matched = matched[filters.Offset:]
		}
	}
	if filters.Limit > 0 && filters.Limit < len(matched) {
		matched = matched[:filters.Limit]
	}
	return matched, total, nil
}

func (r *memFeedbackRepo) ListAll(ctx context.Context) ([]models.Feedback, error) {
	out := make([]models.Feedback, len(r.m.feedback))
	copy(out, r.m.feedback)
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.Before(out[j].SubmittedAt)
	})
	return out, nil
}

func (r *memFeedbackRepo) Exists(ctx context.Context, key repositories.SubmissionKey) (bool, error) {
	for _, f := range r.m.feedback {
		if f.StudentID == key.StudentID &&
			f.FacultyID == key.FacultyID &&
			f.SubjectName == key.SubjectName &&
			f.Semester == key.Semester &&
			f.AcademicYear == key.AcademicYear {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFeedbackRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.m.feedback)), nil
}

func (r *memFeedbackRepo) CountByFaculty(ctx context.Context, facultyID string) (int64, error) {
	var count int64
	for _, f := range r.m.feedback {
		if f.FacultyID == facultyID {
			count++
		}
	}
	return count, nil
}

func (r *memFeedbackRepo) ListByFaculty(ctx context.Context, facultyID string) ([]models.Feedback, error) {
	var out []models.Feedback
	for _, f := range r.m.feedback {
		if f.FacultyID == facultyID {
			out = append(out, f)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].SubmittedAt.After(out[j].SubmittedAt)
	})
	return out, nil
}

// ===== SETTINGS =====

type memSettingRepo struct{ m *memRepository }

func (r *memSettingRepo) Get(ctx context.Context, key string) (*models.PortalSetting, error) {
	setting, ok := r.m.settings[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &setting, nil
}

func (r *memSettingRepo) GetAll(ctx context.Context) ([]models.PortalSetting, error) {
	keys := make([]string, 0, len(r.m.settings))
	for k := range r.m.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]models.PortalSetting, 0, len(keys))
	for _, k := range keys {
		out = append(out, r.m.settings[k])
	}
	return out, nil
}

func (r *memSettingRepo) Upsert(ctx context.Context, setting *models.PortalSetting) error {
	r.m.settings[setting.Key] = *setting
	return nil
}
