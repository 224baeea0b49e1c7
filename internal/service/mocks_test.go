package service

import (
	"context"
	"time"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/index"
	"interview-assistant/internal/session"

	"github.com/stretchr/testify/mock"
)

// --- MockSessionManager ---
type MockSessionManager struct {
	mock.Mock
}

func (m *MockSessionManager) Create(ctx context.Context) *session.Store {
	args := m.Called(ctx)
	return args.Get(0).(*session.Store)
}

func (m *MockSessionManager) Get(ctx context.Context, id string) (*session.Store, session.RestoreResult, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Get(1).(session.RestoreResult), args.Error(2)
	}
	return args.Get(0).(*session.Store), args.Get(1).(session.RestoreResult), args.Error(2)
}

func (m *MockSessionManager) Clear(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSessionManager) Len() int {
	return m.Called().Int(0)
}

func (m *MockSessionManager) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSessionManager) Degraded() bool {
	return m.Called().Bool(0)
}

// --- fixtures ---

var testNow = time.Date(2026, 10, 14, 11, 0, 0, 0, time.UTC)

func fixtureInsights() []domain.AnswerInsight {
	out := make([]domain.AnswerInsight, 0, len(domain.InsightCategories))
	for _, cat := range domain.InsightCategories {
		out = append(out, domain.AnswerInsight{Category: cat, Points: []domain.Point{
			{Title: "First", Description: "first point", OriginalIndex: 0},
			{Title: "Second", Description: "second point", OriginalIndex: 1},
		}})
	}
	return out
}

func fixtureIndex() *index.Index {
	questions := []domain.Question{
		{ID: "java-sync", SkillLevel: domain.SkillBeginner, Question: "Explain synchronization", CategoryID: "java", SubcategoryName: "Concurrency", SetID: "java-core", AnswerInsights: fixtureInsights(), RelatedQuestions: []string{"java-jmm", "missing"}, Tags: []string{"threads"}},
		{ID: "java-jmm", SkillLevel: domain.SkillAdvanced, Question: "Describe the Java memory model", ShortTitle: "Java memory model", CategoryID: "java", SubcategoryName: "Concurrency", SetID: "java-core", AnswerInsights: fixtureInsights(), RelatedQuestions: []string{"java-sync"}},
		{ID: "sd-cache", SkillLevel: domain.SkillIntermediate, Question: "Design a distributed cache", CategoryID: "system-design", SubcategoryName: "Caching", SetID: "sd-basics", AnswerInsights: fixtureInsights()},
	}
	categories := []domain.Category{
		{ID: "java", Name: "Java", Subcategories: []string{"Concurrency"}},
		{ID: "system-design", Name: "System Design", Subcategories: []string{"Caching"}},
	}
	sets := map[string][]domain.QuestionSet{
		"java": {{ID: "java-core", Name: "Java Core", CategoryID: "java", Files: []domain.SetDocument{{Subcategory: "Concurrency", Path: "java/concurrency.json"}}}},
	}
	return index.NewFromQuestions(questions, categories, sets)
}
