package index

import (
	"math/rand"
	"testing"

	"interview-assistant/internal/config"
	"interview-assistant/internal/corpus"
	"interview-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func q(id string, level domain.SkillLevel, text string, opts ...func(*domain.Question)) domain.Question {
	out := domain.Question{
		ID:               id,
		SkillLevel:       level,
		Question:         text,
		CategoryID:       "java",
		SubcategoryName:  "Concurrency",
		RelatedQuestions: []string{},
	}
	for _, opt := range opts {
		opt(&out)
	}
	return out
}

func inCategory(category, subcategory string) func(*domain.Question) {
	return func(q *domain.Question) {
		q.CategoryID = category
		q.SubcategoryName = subcategory
	}
}

func related(ids ...string) func(*domain.Question) {
	return func(q *domain.Question) { q.RelatedQuestions = ids }
}

func ids(qs []domain.Question) []string {
	out := make([]string, 0, len(qs))
	for _, q := range qs {
		out = append(out, q.ID)
	}
	return out
}

func fixture() []domain.Question {
	return []domain.Question{
		q("jmm", domain.SkillAdvanced, "Describe the Java Memory Model.", related("sync", "volatile")),
		q("volatile", domain.SkillIntermediate, "What does volatile guarantee?", related("sync", "missing", "volatile", "sync")),
		q("sync", domain.SkillBeginner, "Explain synchronization in Java.", related("volatile", "jmm")),
		q("banana", domain.SkillBeginner, "Banana locking?", inCategory("java", "Collections")),
		q("apple", domain.SkillBeginner, "apple locking?", inCategory("java", "Collections")),
		q("cache", domain.SkillBeginner, "What is a cache?", inCategory("sd", "Caching"), func(q *domain.Question) {
			q.Tags = []string{"Performance"}
		}),
	}
}

func newFixtureIndex() *Index {
	categories := []domain.Category{
		{ID: "java", Name: "Java", Subcategories: []string{"Concurrency", "Collections"}},
		{ID: "sd", Name: "System Design", Subcategories: []string{"Caching"}},
	}
	sets := map[string][]domain.QuestionSet{
		"java": {{ID: "java-core", Name: "Java Core", CategoryID: "java"}},
	}
	return NewFromQuestions(fixture(), categories, sets)
}

func TestIndex_CanonicalOrder(t *testing.T) {
	idx := newFixtureIndex()
	// Collation puts "apple" before "Banana" regardless of case.
	assert.Equal(t, []string{"apple", "banana", "sync", "cache", "volatile", "jmm"}, ids(idx.All()))
	assert.Equal(t, 6, idx.Len())
}

func TestIndex_OrderIsIndependentOfLoadOrder(t *testing.T) {
	want := ids(newFixtureIndex().All())
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := fixture()
		r.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, ids(NewFromQuestions(shuffled, nil, nil).All()))
	}
}

func TestIndex_EqualKeysKeepLoadOrder(t *testing.T) {
	short := func(q *domain.Question) { q.ShortTitle = "Explain synchronization" }
	questions := []domain.Question{
		q("second-author", domain.SkillBeginner, "Explain synchronization, take two.", short),
		q("first-author", domain.SkillBeginner, "Explain synchronization in Java.", short),
	}
	idx := NewFromQuestions(questions, nil, nil)
	assert.Equal(t, []string{"second-author", "first-author"}, ids(idx.All()))
}

func TestIndex_ByIDFirstLoadedWins(t *testing.T) {
	questions := []domain.Question{
		q("dup", domain.SkillAdvanced, "First definition"),
		q("dup", domain.SkillBeginner, "Second definition"),
	}
	idx := NewFromQuestions(questions, nil, nil)

	got, ok := idx.ByID("dup")
	require.True(t, ok)
	assert.Equal(t, "First definition", got.Question)

	_, ok = idx.ByID("absent")
	assert.False(t, ok)
}

func TestIndex_Filtered(t *testing.T) {
	idx := newFixtureIndex()

	tests := []struct {
		name   string
		filter Filter
		want   []string
	}{
		{name: "All", filter: Filter{}, want: []string{"apple", "banana", "sync", "cache", "volatile", "jmm"}},
		{name: "Category", filter: Filter{CategoryID: "java"}, want: []string{"apple", "banana", "sync", "volatile", "jmm"}},
		{name: "Subcategory", filter: Filter{CategoryID: "java", Subcategory: "Collections"}, want: []string{"apple", "banana"}},
		{name: "SkillLevel", filter: Filter{SkillLevel: domain.SkillBeginner, CategoryID: "java", Subcategory: "Concurrency"}, want: []string{"sync"}},
		{name: "NoMatch", filter: Filter{CategoryID: "go"}, want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(idx.Filtered(tt.filter)))
		})
	}
	assert.Equal(t, ids(idx.Filtered(Filter{CategoryID: "sd"})), ids(idx.ByCategory("sd")))
}

func TestIndex_Search(t *testing.T) {
	idx := newFixtureIndex()

	assert.Equal(t, []string{"apple", "banana"}, ids(idx.Search("LOCKING", Filter{})))
	assert.Equal(t, []string{"cache"}, ids(idx.Search("performance", Filter{})), "tags are searched")
	assert.Empty(t, idx.Search("locking", Filter{CategoryID: "sd"}))
	assert.Equal(t, ids(idx.All()), ids(idx.Search("   ", Filter{})))
}

func TestIndex_Related(t *testing.T) {
	idx := newFixtureIndex()

	// Dangling, self and repeated ids are dropped.
	assert.Equal(t, []string{"sync"}, ids(idx.Related("volatile")))
	assert.Equal(t, []string{"sync", "volatile"}, ids(idx.Related("jmm")))
	assert.Equal(t, []string{"volatile", "jmm"}, ids(idx.Related("sync")), "related questions are in canonical order")
	assert.Empty(t, idx.Related("apple"))
	assert.NotNil(t, idx.Related("absent"))
	assert.Empty(t, idx.Related("absent"))
}

func TestIndex_CategoriesAndSets(t *testing.T) {
	idx := newFixtureIndex()

	require.Len(t, idx.Categories(), 2)
	assert.Equal(t, "java", idx.Categories()[0].ID)

	cat, ok := idx.Category("sd")
	require.True(t, ok)
	assert.Equal(t, "System Design", cat.Name)
	_, ok = idx.Category("go")
	assert.False(t, ok)

	sync, _ := idx.ByID("sync")
	cat, ok = idx.CategoryForQuestion(sync)
	require.True(t, ok)
	assert.Equal(t, "Java", cat.Name)

	assert.Len(t, idx.SetsForCategory("java"), 1)
	assert.NotNil(t, idx.SetsForCategory("sd"))
	assert.Empty(t, idx.SetsForCategory("sd"))
}

func TestIndex_ResultsAreCopies(t *testing.T) {
	idx := newFixtureIndex()
	all := idx.All()
	all[0] = domain.Question{ID: "mutated"}
	assert.Equal(t, "apple", idx.All()[0].ID)
}

func TestIndex_BundledCorpus(t *testing.T) {
	c, err := corpus.Open(config.CorpusConfig{})
	require.NoError(t, err)
	idx := New(c)
	assert.Equal(t, 11, idx.Len())

	sync, ok := idx.ByID("java-synchronization")
	require.True(t, ok)
	assert.Equal(t, "Explain synchronization", sync.DisplayTitle())
	assert.Equal(t, []string{"java-volatile", "java-memory-model"}, ids(idx.Related("java-synchronization")))
}
