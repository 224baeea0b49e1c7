package domain

import (
	"strings"
	"unicode/utf8"
)

// SkillLevel is the ordinal difficulty tag of a question.
type SkillLevel string

const (
	SkillBeginner     SkillLevel = "beginner"
	SkillIntermediate SkillLevel = "intermediate"
	SkillAdvanced     SkillLevel = "advanced"
)

// SkillLevels lists the levels in rank order.
var SkillLevels = []SkillLevel{SkillBeginner, SkillIntermediate, SkillAdvanced}

// Rank returns 1 for beginner, 2 for intermediate, 3 for advanced and 0 for
// anything else, so unknown levels sort first.
func (s SkillLevel) Rank() int {
	switch s {
	case SkillBeginner:
		return 1
	case SkillIntermediate:
		return 2
	case SkillAdvanced:
		return 3
	default:
		return 0
	}
}

func (s SkillLevel) Valid() bool {
	return s.Rank() > 0
}

// ParseSkillLevel accepts the level names case-insensitively.
func ParseSkillLevel(raw string) (SkillLevel, bool) {
	level := SkillLevel(strings.ToLower(strings.TrimSpace(raw)))
	return level, level.Valid()
}

// InsightCategory labels one of the three answer-insight blocks.
type InsightCategory string

const (
	InsightBasic        InsightCategory = "Basic"
	InsightIntermediate InsightCategory = "Intermediate"
	InsightAdvanced     InsightCategory = "Advanced"
)

// InsightCategories is the canonical order every question's insights follow.
var InsightCategories = []InsightCategory{InsightBasic, InsightIntermediate, InsightAdvanced}

func (c InsightCategory) Valid() bool {
	for _, known := range InsightCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Point is a bullet inside an answer insight. OriginalIndex is its position
// within the insight and is the stable key for selected-point bookkeeping.
type Point struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	OriginalIndex int    `json:"originalIndex"`
}

type AnswerInsight struct {
	Category InsightCategory `json:"category"`
	Points   []Point         `json:"points"`
}

// Question is immutable once loaded. Slices are shared between copies and
// must not be modified by consumers.
type Question struct {
	ID               string          `json:"id"`
	SkillLevel       SkillLevel      `json:"skillLevel"`
	Question         string          `json:"question"`
	ShortTitle       string          `json:"shortTitle,omitempty"`
	CategoryID       string          `json:"categoryId"`
	SubcategoryName  string          `json:"subcategoryName"`
	SetID            string          `json:"setId"`
	AnswerInsights   []AnswerInsight `json:"answerInsights"`
	RelatedQuestions []string        `json:"relatedQuestions"`
	Tags             []string        `json:"tags,omitempty"`
}

const displayTitleLimit = 60

// DisplayTitle is the short title when authored, otherwise the question text
// cut at the last word boundary within 60 characters with an ellipsis.
func (q Question) DisplayTitle() string {
	if title := strings.TrimSpace(q.ShortTitle); title != "" {
		return title
	}
	return TruncateTitle(q.Question, displayTitleLimit)
}

// TruncateTitle shortens text to at most limit runes plus an ellipsis,
// preferring to cut on whitespace.
func TruncateTitle(text string, limit int) string {
	text = strings.Join(strings.Fields(text), " ")
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	cut := string(runes[:limit])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

// Category is static catalog configuration.
type Category struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
}

// HasSubcategory reports whether name is listed for the category.
func (c Category) HasSubcategory(name string) bool {
	for _, sub := range c.Subcategories {
		if sub == name {
			return true
		}
	}
	return false
}

// SetDocument pairs a subcategory with the document that holds its questions
// inside one question set.
type SetDocument struct {
	Subcategory string `json:"subcategory" yaml:"subcategory"`
	Path        string `json:"path" yaml:"path"`
}

// QuestionSet is a named group of documents contributed to a category.
type QuestionSet struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	CategoryID string        `json:"categoryId"`
	Files      []SetDocument `json:"files"`
}

// Subcategories returns the subcategory names the set covers, in order.
func (s QuestionSet) Subcategories() []string {
	names := make([]string, 0, len(s.Files))
	for _, f := range s.Files {
		names = append(names, f.Subcategory)
	}
	return names
}
