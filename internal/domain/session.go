package domain

import (
	"fmt"
	"maps"
	"strconv"
	"strings"
	"time"
)

// StateVersion is written into every persisted session record.
const StateVersion = "1.0.0"

// MinGrade and MaxGrade bound interviewer ratings.
const (
	MinGrade = 1
	MaxGrade = 5
)

// PointKey builds the "categoryIndex-pointIndex" key of a selected point.
func PointKey(categoryIndex, pointIndex int) string {
	return fmt.Sprintf("%d-%d", categoryIndex, pointIndex)
}

// ParsePointKey splits a key built by PointKey. Keys not in that exact form
// report false.
func ParsePointKey(key string) (categoryIndex, pointIndex int, ok bool) {
	ci, pi, found := strings.Cut(key, "-")
	if !found {
		return 0, 0, false
	}
	c, err := strconv.Atoi(ci)
	if err != nil {
		return 0, 0, false
	}
	p, err := strconv.Atoi(pi)
	if err != nil {
		return 0, 0, false
	}
	if PointKey(c, p) != key {
		return 0, 0, false
	}
	return c, p, true
}

// SessionState is the interviewer's in-progress data for one session.
type SessionState struct {
	SelectedLanguage        string                     `json:"selectedLanguage"`
	CurrentQuestion         *Question                  `json:"currentQuestion"`
	NotesMap                map[string]string          `json:"notesMap"`
	GradesMap               map[string]int             `json:"gradesMap"`
	SelectedAnswerPointsMap map[string]map[string]bool `json:"selectedAnswerPointsMap"`
}

// NewSessionState returns an empty state with non-nil maps.
func NewSessionState(language string) SessionState {
	return SessionState{
		SelectedLanguage:        language,
		NotesMap:                map[string]string{},
		GradesMap:               map[string]int{},
		SelectedAnswerPointsMap: map[string]map[string]bool{},
	}
}

// Normalize replaces nil maps with empty ones, inner point maps included.
func (s *SessionState) Normalize() {
	if s.NotesMap == nil {
		s.NotesMap = map[string]string{}
	}
	if s.GradesMap == nil {
		s.GradesMap = map[string]int{}
	}
	if s.SelectedAnswerPointsMap == nil {
		s.SelectedAnswerPointsMap = map[string]map[string]bool{}
	}
	for id, points := range s.SelectedAnswerPointsMap {
		if points == nil {
			s.SelectedAnswerPointsMap[id] = map[string]bool{}
		}
	}
}

// Clone returns a deep copy of the maps. The current question snapshot is
// shared because questions are immutable.
func (s SessionState) Clone() SessionState {
	out := SessionState{
		SelectedLanguage:        s.SelectedLanguage,
		CurrentQuestion:         s.CurrentQuestion,
		NotesMap:                maps.Clone(s.NotesMap),
		GradesMap:               maps.Clone(s.GradesMap),
		SelectedAnswerPointsMap: make(map[string]map[string]bool, len(s.SelectedAnswerPointsMap)),
	}
	for id, points := range s.SelectedAnswerPointsMap {
		out.SelectedAnswerPointsMap[id] = maps.Clone(points)
	}
	out.Normalize()
	return out
}

// IsSelected reports whether the point is marked selected for the question.
func (s SessionState) IsSelected(questionID string, categoryIndex, pointIndex int) bool {
	return s.SelectedAnswerPointsMap[questionID][PointKey(categoryIndex, pointIndex)]
}

// HasContent reports whether the interviewer recorded anything for the
// question: a non-blank note, a grade above zero or a selected point.
func (s SessionState) HasContent(questionID string) bool {
	if note, ok := s.NotesMap[questionID]; ok && strings.TrimSpace(note) != "" {
		return true
	}
	if s.GradesMap[questionID] > 0 {
		return true
	}
	for _, selected := range s.SelectedAnswerPointsMap[questionID] {
		if selected {
			return true
		}
	}
	return false
}

// StatePatch is a partial update. Nil fields are left untouched; nested maps
// are merged key by key so sibling entries survive.
type StatePatch struct {
	SelectedLanguage        *string
	CurrentQuestion         *Question
	ClearCurrentQuestion    bool
	NotesMap                map[string]string
	GradesMap               map[string]int
	SelectedAnswerPointsMap map[string]map[string]bool
}

// PersistedRecord is the single JSON blob written to session storage.
type PersistedRecord struct {
	Version   string       `json:"version"`
	Timestamp string       `json:"timestamp"`
	Data      SessionState `json:"data"`
}

// TimestampLayout matches the ISO-8601 form browsers produce.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// NewPersistedRecord stamps state with the current version and time.
func NewPersistedRecord(state SessionState, now time.Time) PersistedRecord {
	return PersistedRecord{
		Version:   StateVersion,
		Timestamp: now.UTC().Format(TimestampLayout),
		Data:      state,
	}
}
