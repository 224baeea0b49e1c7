package dto

// CategoryResponse represents a category in the API response
// @Description Category with its ordered subcategories
type CategoryResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Subcategories []string `json:"subcategories"`
	QuestionCount int      `json:"question_count"`
}

// CategoryListResponse wraps the category list
type CategoryListResponse struct {
	Categories []CategoryResponse `json:"categories"`
}

// SetDocumentResponse maps one subcategory of a set to its document
type SetDocumentResponse struct {
	Subcategory string `json:"subcategory"`
	Path        string `json:"path"`
}

// QuestionSetResponse represents question set metadata
type QuestionSetResponse struct {
	ID         string                `json:"id"`
	Name       string                `json:"name"`
	CategoryID string                `json:"category_id"`
	Documents  []SetDocumentResponse `json:"documents"`
}

// QuestionSetListResponse wraps the sets of one category
type QuestionSetListResponse struct {
	CategoryID string                `json:"category_id"`
	Sets       []QuestionSetResponse `json:"sets"`
}

type PointResponse struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	OriginalIndex int    `json:"original_index"`
}

type AnswerInsightResponse struct {
	Category string          `json:"category"`
	Points   []PointResponse `json:"points"`
}

// QuestionResponse represents a full question in the API response
// @Description Question with its answer insights
type QuestionResponse struct {
	ID               string                  `json:"id"`
	DisplayTitle     string                  `json:"display_title"`
	Question         string                  `json:"question"`
	ShortTitle       string                  `json:"short_title,omitempty"`
	SkillLevel       string                  `json:"skill_level"`
	CategoryID       string                  `json:"category_id"`
	SubcategoryName  string                  `json:"subcategory_name"`
	SetID            string                  `json:"set_id"`
	AnswerInsights   []AnswerInsightResponse `json:"answer_insights"`
	RelatedQuestions []string                `json:"related_questions"`
	Tags             []string                `json:"tags,omitempty"`
}

// QuestionSummaryResponse is the list form of a question
type QuestionSummaryResponse struct {
	ID              string `json:"id"`
	DisplayTitle    string `json:"display_title"`
	SkillLevel      string `json:"skill_level"`
	CategoryID      string `json:"category_id"`
	SubcategoryName string `json:"subcategory_name"`
}

// QuestionListResponse holds questions in canonical order
type QuestionListResponse struct {
	Questions []QuestionSummaryResponse `json:"questions"`
	Total     int                       `json:"total"`
}

// QuestionQuery carries the optional, AND-combined listing filters
type QuestionQuery struct {
	CategoryID  string
	Subcategory string
	SkillLevel  string
	Text        string
}
