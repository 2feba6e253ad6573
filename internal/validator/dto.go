package validator

// StudentLoginRequest carries the student's email plus exactly one
// secondary factor. Exclusivity is checked in the auth service, not here.
type StudentLoginRequest struct {
	CollegeEmail string  `json:"college_email" validate:"required,email"`
	DateOfBirth  *string `json:"date_of_birth,omitempty"`
	RollNumber   *string `json:"roll_number,omitempty"`
}

// StaffLoginRequest is an admin or faculty email + password login.
type StaffLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// SubmitFeedbackRequest is a student's feedback for one faculty/subject.
// The student identity comes from the session, never from the body.
type SubmitFeedbackRequest struct {
	FacultyID    string `json:"faculty_id"`
	SubjectName  string `json:"subject_name"`
	Semester     string `json:"semester"`
	AcademicYear string `json:"academic_year"`

	TeachingEffectiveness *int `json:"teaching_effectiveness,omitempty"`
	CourseContent         *int `json:"course_content,omitempty"`
	CommunicationSkills   *int `json:"communication_skills,omitempty"`
	Punctuality           *int `json:"punctuality,omitempty"`
	StudentInteraction    *int `json:"student_interaction,omitempty"`
	OverallRating         *int `json:"overall_rating,omitempty"`

	PositiveFeedback          *string `json:"positive_feedback,omitempty"`
	SuggestionsForImprovement *string `json:"suggestions_for_improvement,omitempty"`
	AdditionalComments        *string `json:"additional_comments,omitempty"`

	IsAnonymous *bool `json:"is_anonymous,omitempty"`
}

// FacultyCreateRequest creates a faculty member.
type FacultyCreateRequest struct {
	FacultyID     string  `json:"faculty_id" validate:"required,max=50"`
	Name          string  `json:"name" validate:"required,max=255"`
	Designation   string  `json:"designation" validate:"required,max=100"`
	Qualification *string `json:"qualification,omitempty" validate:"omitempty,max=255"`
	Experience    *string `json:"experience,omitempty" validate:"omitempty,max=100"`
}

// FacultyUpdateRequest updates mutable faculty fields.
type FacultyUpdateRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,max=255"`
	Designation   *string `json:"designation,omitempty" validate:"omitempty,max=100"`
	Qualification *string `json:"qualification,omitempty" validate:"omitempty,max=255"`
	Experience    *string `json:"experience,omitempty" validate:"omitempty,max=100"`
}

// CourseCreateRequest creates a course.
type CourseCreateRequest struct {
	CourseID   string `json:"course_id" validate:"required,max=50"`
	CourseName string `json:"course_name" validate:"required,max=255"`
}

// CourseAssignmentCreateRequest maps a faculty member to a course section.
type CourseAssignmentCreateRequest struct {
	CourseID     string `json:"course_id" validate:"required,max=50"`
	FacultyID    string `json:"faculty_id" validate:"required,max=50"`
	Section      string `json:"section" validate:"required,max=10"`
	Semester     string `json:"semester" validate:"required,semester"`
	AcademicYear string `json:"academic_year" validate:"required,academic_year"`
}

// SettingUpdateRequest upserts one portal setting.
type SettingUpdateRequest struct {
	Value interface{} `json:"value" validate:"required"`
}
