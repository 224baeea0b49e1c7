package service

import (
	"strings"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/dto"
	"interview-assistant/internal/index"
	"interview-assistant/internal/logger"

	"go.uber.org/zap"
)

// Catalog is the read-only question index.
type Catalog interface {
	Len() int
	All() []domain.Question
	ByID(id string) (domain.Question, bool)
	ByCategory(categoryID string) []domain.Question
	Filtered(f index.Filter) []domain.Question
	Search(text string, f index.Filter) []domain.Question
	SetsForCategory(categoryID string) []domain.QuestionSet
	Related(id string) []domain.Question
	Categories() []domain.Category
	Category(categoryID string) (domain.Category, bool)
}

// CatalogService defines the interface for question catalog queries
type CatalogService interface {
	ListCategories() *dto.CategoryListResponse
	GetCategorySets(categoryID string) (*dto.QuestionSetListResponse, error)
	ListQuestions(query dto.QuestionQuery) (*dto.QuestionListResponse, error)
	GetQuestion(id string) (*dto.QuestionResponse, error)
	GetRelated(id string) (*dto.QuestionListResponse, error)
}

type catalogService struct {
	catalog Catalog
}

// NewCatalogService creates a new instance of catalogService
func NewCatalogService(catalog Catalog) CatalogService {
	return &catalogService{catalog: catalog}
}

func (s *catalogService) ListCategories() *dto.CategoryListResponse {
	categories := s.catalog.Categories()
	resp := &dto.CategoryListResponse{Categories: make([]dto.CategoryResponse, 0, len(categories))}
	for _, c := range categories {
		subs := c.Subcategories
		if subs == nil {
			subs = []string{}
		}
		resp.Categories = append(resp.Categories, dto.CategoryResponse{
			ID:            c.ID,
			Name:          c.Name,
			Subcategories: subs,
			QuestionCount: len(s.catalog.ByCategory(c.ID)),
		})
	}
	return resp
}

func (s *catalogService) GetCategorySets(categoryID string) (*dto.QuestionSetListResponse, error) {
	if _, ok := s.catalog.Category(categoryID); !ok {
		return nil, domain.NewCategoryNotFoundError(categoryID)
	}
	sets := s.catalog.SetsForCategory(categoryID)
	resp := &dto.QuestionSetListResponse{CategoryID: categoryID, Sets: make([]dto.QuestionSetResponse, 0, len(sets))}
	for _, set := range sets {
		docs := make([]dto.SetDocumentResponse, 0, len(set.Files))
		for _, f := range set.Files {
			docs = append(docs, dto.SetDocumentResponse{Subcategory: f.Subcategory, Path: f.Path})
		}
		resp.Sets = append(resp.Sets, dto.QuestionSetResponse{
			ID:         set.ID,
			Name:       set.Name,
			CategoryID: set.CategoryID,
			Documents:  docs,
		})
	}
	return resp, nil
}

// ListQuestions applies the filters; a text query narrows further. Unknown
// categories simply match nothing.
func (s *catalogService) ListQuestions(query dto.QuestionQuery) (*dto.QuestionListResponse, error) {
	f := index.Filter{
		CategoryID:  query.CategoryID,
		Subcategory: query.Subcategory,
	}
	if query.SkillLevel != "" {
		level, ok := domain.ParseSkillLevel(query.SkillLevel)
		if !ok {
			return nil, domain.NewInvalidInputError("unknown skill level").WithContext("skill_level", query.SkillLevel)
		}
		f.SkillLevel = level
	}

	var questions []domain.Question
	if text := strings.TrimSpace(query.Text); text != "" {
		questions = s.catalog.Search(text, f)
	} else {
		questions = s.catalog.Filtered(f)
	}
	logger.Get().Debug("Questions listed",
		zap.String("category", f.CategoryID),
		zap.String("subcategory", f.Subcategory),
		zap.String("skill_level", string(f.SkillLevel)),
		zap.Int("count", len(questions)))

	return &dto.QuestionListResponse{Questions: toQuestionSummaries(questions), Total: len(questions)}, nil
}

func (s *catalogService) GetQuestion(id string) (*dto.QuestionResponse, error) {
	q, ok := s.catalog.ByID(id)
	if !ok {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	return toQuestionResponse(q), nil
}

func (s *catalogService) GetRelated(id string) (*dto.QuestionListResponse, error) {
	if _, ok := s.catalog.ByID(id); !ok {
		return nil, domain.NewQuestionNotFoundError(id)
	}
	related := s.catalog.Related(id)
	return &dto.QuestionListResponse{Questions: toQuestionSummaries(related), Total: len(related)}, nil
}
