package dto

import "time"

// SessionStateResponse is the interviewer data of a session
type SessionStateResponse struct {
	SelectedLanguage     string                     `json:"selected_language"`
	CurrentQuestion      *QuestionResponse          `json:"current_question"`
	Notes                map[string]string          `json:"notes"`
	Grades               map[string]int             `json:"grades"`
	SelectedAnswerPoints map[string]map[string]bool `json:"selected_answer_points"`
}

// SessionStatusResponse reports the health of a session's persistence
type SessionStatusResponse struct {
	Health          string     `json:"health"`
	LastError       string     `json:"last_error,omitempty"`
	LastPersistedAt *time.Time `json:"last_persisted_at,omitempty"`
	PendingWrite    bool       `json:"pending_write"`
	VersionMismatch bool       `json:"version_mismatch"`
}

// SessionResponse represents a session in the API response
// @Description Session state and persistence status
type SessionResponse struct {
	ID      string                `json:"id"`
	State   SessionStateResponse  `json:"state"`
	Status  SessionStatusResponse `json:"status"`
	Warning string                `json:"warning,omitempty"`
}

// UpdateSessionRequest is a partial update. Omitted fields are unchanged;
// maps are merged key by key. An empty current_question_id clears the
// current question.
type UpdateSessionRequest struct {
	SelectedLanguage     *string                    `json:"selected_language"`
	CurrentQuestionID    *string                    `json:"current_question_id"`
	Notes                map[string]string          `json:"notes"`
	Grades               map[string]int             `json:"grades"`
	SelectedAnswerPoints map[string]map[string]bool `json:"selected_answer_points"`
}

// NoteRequest sets the note of a question
type NoteRequest struct {
	Text string `json:"text"`
}

// GradeRequest sets the 1-5 rating of a question
type GradeRequest struct {
	Rating int `json:"rating"`
}

// TogglePointRequest flips one answer point
type TogglePointRequest struct {
	CategoryIndex int `json:"category_index"`
	PointIndex    int `json:"point_index"`
}

type TogglePointResponse struct {
	QuestionID string `json:"question_id"`
	Key        string `json:"key"`
	Selected   bool   `json:"selected"`
}

// HealthResponse reports service state
type HealthResponse struct {
	Status    string `json:"status"`
	Storage   string `json:"storage"`
	Backend   string `json:"backend"`
	Degraded  bool   `json:"degraded"`
	Questions int    `json:"questions"`
	Sessions  int    `json:"sessions"`
}
