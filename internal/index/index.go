// Package index answers catalog queries over the loaded question corpus.
// An Index is built once and never modified, so it is safe for concurrent use.
package index

import (
	"slices"
	"sort"
	"strings"

	"interview-assistant/internal/corpus"
	"interview-assistant/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Filter narrows a query. Empty fields match everything; set fields are
// AND-combined.
type Filter struct {
	CategoryID  string
	Subcategory string
	SkillLevel  domain.SkillLevel
}

func (f Filter) matches(q domain.Question) bool {
	if f.CategoryID != "" && q.CategoryID != f.CategoryID {
		return false
	}
	if f.Subcategory != "" && q.SubcategoryName != f.Subcategory {
		return false
	}
	if f.SkillLevel != "" && q.SkillLevel != f.SkillLevel {
		return false
	}
	return true
}

// Index is the query surface over the corpus.
type Index struct {
	ordered    []domain.Question
	byID       map[string]int
	categories []domain.Category
	categoryBy map[string]int
	sets       map[string][]domain.QuestionSet
}

// New builds an index from the corpus. When two questions share an id the
// first one loaded wins the id lookup; the validation pass reports the clash.
func New(c *corpus.Corpus) *Index {
	return NewFromQuestions(c.Questions(), c.Categories, c.Sets)
}

// NewFromQuestions builds an index from already loaded parts.
func NewFromQuestions(questions []domain.Question, categories []domain.Category, sets map[string][]domain.QuestionSet) *Index {
	// perm[k] is the load position of the k-th question in canonical order.
	perm := make([]int, len(questions))
	for i := range perm {
		perm[i] = i
	}
	cmp := collate.New(language.English)
	sort.SliceStable(perm, func(i, j int) bool {
		return Less(cmp, questions[perm[i]], questions[perm[j]])
	})

	idx := &Index{
		ordered:    make([]domain.Question, len(questions)),
		byID:       make(map[string]int, len(questions)),
		categories: slices.Clone(categories),
		categoryBy: make(map[string]int, len(categories)),
		sets:       make(map[string][]domain.QuestionSet, len(sets)),
	}
	position := make([]int, len(questions))
	for k, loadPos := range perm {
		idx.ordered[k] = questions[loadPos]
		position[loadPos] = k
	}
	for loadPos, q := range questions {
		if _, ok := idx.byID[q.ID]; !ok {
			idx.byID[q.ID] = position[loadPos]
		}
	}
	for i, c := range idx.categories {
		idx.categoryBy[c.ID] = i
	}
	for categoryID, s := range sets {
		idx.sets[categoryID] = slices.Clone(s)
	}
	return idx
}

// Len is the number of questions in the index.
func (idx *Index) Len() int {
	return len(idx.ordered)
}

// All returns every question in canonical order.
func (idx *Index) All() []domain.Question {
	return slices.Clone(idx.ordered)
}

// ByID looks a question up by id.
func (idx *Index) ByID(id string) (domain.Question, bool) {
	i, ok := idx.byID[id]
	if !ok {
		return domain.Question{}, false
	}
	return idx.ordered[i], true
}

// ByCategory returns the questions of one category in canonical order.
func (idx *Index) ByCategory(categoryID string) []domain.Question {
	return idx.Filtered(Filter{CategoryID: categoryID})
}

// Filtered returns the questions matching every set field of f.
func (idx *Index) Filtered(f Filter) []domain.Question {
	out := make([]domain.Question, 0)
	for _, q := range idx.ordered {
		if f.matches(q) {
			out = append(out, q)
		}
	}
	return out
}

// Search matches text case-insensitively against the question text, the
// short title and tags, restricted by f. Blank text behaves like Filtered.
func (idx *Index) Search(text string, f Filter) []domain.Question {
	needle := strings.ToLower(strings.TrimSpace(text))
	if needle == "" {
		return idx.Filtered(f)
	}
	out := make([]domain.Question, 0)
	for _, q := range idx.ordered {
		if f.matches(q) && containsText(q, needle) {
			out = append(out, q)
		}
	}
	return out
}

func containsText(q domain.Question, needle string) bool {
	if strings.Contains(strings.ToLower(q.Question), needle) ||
		strings.Contains(strings.ToLower(q.ShortTitle), needle) {
		return true
	}
	for _, tag := range q.Tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

// SetsForCategory returns the question sets contributing to a category, or an
// empty slice for an unknown category.
func (idx *Index) SetsForCategory(categoryID string) []domain.QuestionSet {
	sets, ok := idx.sets[categoryID]
	if !ok {
		return []domain.QuestionSet{}
	}
	return slices.Clone(sets)
}

// Related resolves the question's related ids. Unknown ids, self references
// and repeated ids are dropped; the result is in canonical order.
func (idx *Index) Related(id string) []domain.Question {
	q, ok := idx.ByID(id)
	if !ok {
		return []domain.Question{}
	}
	seen := make(map[string]struct{}, len(q.RelatedQuestions))
	out := make([]domain.Question, 0, len(q.RelatedQuestions))
	for _, relatedID := range q.RelatedQuestions {
		if relatedID == q.ID {
			continue
		}
		if _, dup := seen[relatedID]; dup {
			continue
		}
		seen[relatedID] = struct{}{}
		if related, ok := idx.ByID(relatedID); ok {
			out = append(out, related)
		}
	}
	SortQuestions(out)
	return out
}

// Categories returns the static category list in registry order.
func (idx *Index) Categories() []domain.Category {
	return slices.Clone(idx.categories)
}

// Category looks a category up by id.
func (idx *Index) Category(categoryID string) (domain.Category, bool) {
	i, ok := idx.categoryBy[categoryID]
	if !ok {
		return domain.Category{}, false
	}
	return idx.categories[i], true
}

// CategoryForQuestion returns the category the question belongs to.
func (idx *Index) CategoryForQuestion(q domain.Question) (domain.Category, bool) {
	return idx.Category(q.CategoryID)
}
