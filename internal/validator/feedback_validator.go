package validator

import (
	"strings"
)

// ValidateFeedbackSubmission checks a submission in a fixed order, stopping
// at the first violation:
//  1. required fields, checked in the order faculty_id, student_id,
//     subject_name, semester, academic_year, overall_rating
//  2. any supplied rating outside [1,10]
//
// The duplicate check happens later in the service, against storage.
func (v *Validator) ValidateFeedbackSubmission(studentID string, req *SubmitFeedbackRequest) ValidationErrors {
	required := []struct {
		field string
		empty bool
	}{
		{"faculty_id", strings.TrimSpace(req.FacultyID) == ""},
		{"student_id", strings.TrimSpace(studentID) == ""},
		{"subject_name", strings.TrimSpace(req.SubjectName) == ""},
		{"semester", strings.TrimSpace(req.Semester) == ""},
		{"academic_year", strings.TrimSpace(req.AcademicYear) == ""},
		{"overall_rating", req.OverallRating == nil},
	}
	for _, r := range required {
		if r.empty {
			return ValidationErrors{{
				Field:   r.field,
				Message: "is required",
				Rule:    "required",
			}}
		}
	}

	ratings := []struct {
		field string
		value *int
	}{
		{"teaching_effectiveness", req.TeachingEffectiveness},
		{"course_content", req.CourseContent},
		{"communication_skills", req.CommunicationSkills},
		{"punctuality", req.Punctuality},
		{"student_interaction", req.StudentInteraction},
		{"overall_rating", req.OverallRating},
	}
	for _, r := range ratings {
		if r.value == nil {
			continue
		}
		if *r.value < 1 || *r.value > 10 {
			return ValidationErrors{{
				Field:   r.field,
				Message: "must be an integer between 1 and 10",
				Value:   *r.value,
				Rule:    "rating",
			}}
		}
	}

	return nil
}

// NormalizeFeedbackSubmission trims text fields and drops the ones that are
// empty after trimming, so stored text is either meaningful or absent.
func NormalizeFeedbackSubmission(req *SubmitFeedbackRequest) {
	req.FacultyID = strings.TrimSpace(req.FacultyID)
	req.SubjectName = strings.TrimSpace(req.SubjectName)
	req.Semester = strings.TrimSpace(req.Semester)
	req.AcademicYear = strings.TrimSpace(req.AcademicYear)

	req.PositiveFeedback = normalizeText(req.PositiveFeedback)
	req.SuggestionsForImprovement = normalizeText(req.SuggestionsForImprovement)
	req.AdditionalComments = normalizeText(req.AdditionalComments)
}

func normalizeText(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
