package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"interview-assistant/internal/domain"
)

const (
	maxSearchLength = 200
	maxNoteLength   = 10000
)

var (
	validULID       = regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{26}$`)
	validIdentifier = regexp.MustCompile(`^[a-zA-Z0-9_.-]{1,100}$`)
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSessionID checks that id is a ULID.
func (v *Validator) ValidateSessionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("session_id"))
	} else if !isValidULID(id) {
		errors = append(errors, domain.NewInvalidFormatError("session_id", id))
	}
	return errors
}

// ValidateQuestionID checks the shape of a question id path parameter.
func (v *Validator) ValidateQuestionID(id string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if strings.TrimSpace(id) == "" {
		errors = append(errors, domain.NewMissingFieldError("question_id"))
	} else if !validIdentifier.MatchString(id) {
		errors = append(errors, domain.NewInvalidFormatError("question_id", id))
	}
	return errors
}

// ValidateQuestionQuery validates the optional filters of a question listing.
func (v *Validator) ValidateQuestionQuery(categoryID, skillLevel, text string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if categoryID != "" && !validIdentifier.MatchString(categoryID) {
		errors = append(errors, domain.NewInvalidFormatError("category", categoryID))
	}
	if skillLevel != "" {
		if _, ok := domain.ParseSkillLevel(skillLevel); !ok {
			errors = append(errors, domain.NewInvalidFormatError("skill_level", skillLevel))
		}
	}
	if n := utf8.RuneCountInString(text); n > maxSearchLength {
		errors = append(errors, domain.NewOutOfRangeError("q", n, 0, maxSearchLength))
	}
	return errors
}

// ValidateGrade checks a rating is within 1-5.
func (v *Validator) ValidateGrade(rating int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if rating < domain.MinGrade || rating > domain.MaxGrade {
		errors = append(errors, domain.NewOutOfRangeError("rating", rating, domain.MinGrade, domain.MaxGrade))
	}
	return errors
}

// ValidateNote bounds the size of a note.
func (v *Validator) ValidateNote(text string) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if n := utf8.RuneCountInString(text); n > maxNoteLength {
		errors = append(errors, domain.NewOutOfRangeError("text", n, 0, maxNoteLength))
	}
	return errors
}

// ValidatePoint checks the indices of an answer point against the question.
func (v *Validator) ValidatePoint(q domain.Question, categoryIndex, pointIndex int) domain.ValidationErrors {
	var errors domain.ValidationErrors
	if categoryIndex < 0 || categoryIndex >= len(q.AnswerInsights) {
		errors = append(errors, domain.NewOutOfRangeError("category_index", categoryIndex, 0, len(q.AnswerInsights)-1))
		return errors
	}
	points := len(q.AnswerInsights[categoryIndex].Points)
	if pointIndex < 0 || pointIndex >= points {
		errors = append(errors, domain.NewOutOfRangeError("point_index", pointIndex, 0, points-1))
	}
	return errors
}

// isValidULID checks if the string is a valid ULID format
func isValidULID(s string) bool {
	return len(s) == 26 && validULID.MatchString(s)
}
