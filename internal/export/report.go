// Package export turns a session's recorded observations into a report
// document. Session state is only read.
package export

import (
	"sort"
	"strings"
	"time"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/index"
	"interview-assistant/internal/util"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// StarSlots is the number of rating stars drawn per question.
const StarSlots = domain.MaxGrade

// QuestionSource is the part of the catalog a report needs.
type QuestionSource interface {
	All() []domain.Question
	Category(categoryID string) (domain.Category, bool)
}

// Report is the format-independent report model.
type Report struct {
	Title         string
	Candidate     string
	GeneratedAt   time.Time
	QuestionCount int
	GradedCount   int
	AverageRating float64
	Groups        []Group
}

// Empty reports whether no question carried any observation.
func (r Report) Empty() bool {
	return r.QuestionCount == 0
}

// Group holds the reported questions of one category/subcategory pair.
type Group struct {
	Category    string
	Subcategory string
	Questions   []Question
}

type Question struct {
	ID         string
	Title      string
	Text       string
	SkillLevel domain.SkillLevel
	Insights   []Insight
	Rating     int
	Stars      []bool
	Notes      string
}

// HasNotes is false for blank notes, which render as a placeholder.
func (q Question) HasNotes() bool {
	return strings.TrimSpace(q.Notes) != ""
}

type Insight struct {
	Category domain.InsightCategory
	Points   []Point
}

// Point is one answer point. Unselected points are kept and rendered
// de-emphasised.
type Point struct {
	Title       string
	Description string
	Selected    bool
}

// BuildOptions carry the report header.
type BuildOptions struct {
	Title       string
	Candidate   string
	GeneratedAt time.Time
}

// Build collects every question with content and groups it by category name
// then subcategory name. Within a group questions are ordered by skill rank,
// keeping catalog order for equal ranks.
func Build(state domain.SessionState, src QuestionSource, opts BuildOptions) Report {
	report := Report{
		Title:       opts.Title,
		Candidate:   strings.TrimSpace(opts.Candidate),
		GeneratedAt: opts.GeneratedAt,
	}

	type groupKey struct{ category, subcategory string }
	buckets := make(map[groupKey][]domain.Question)
	var keys []groupKey
	for _, q := range src.All() {
		if !state.HasContent(q.ID) {
			continue
		}
		name := q.CategoryID
		if cat, ok := src.Category(q.CategoryID); ok && cat.Name != "" {
			name = cat.Name
		}
		k := groupKey{category: name, subcategory: q.SubcategoryName}
		if _, seen := buckets[k]; !seen {
			keys = append(keys, k)
		}
		buckets[k] = append(buckets[k], q)
	}

	cmp := collate.New(language.English)
	sort.SliceStable(keys, func(i, j int) bool {
		if c := cmp.CompareString(keys[i].category, keys[j].category); c != 0 {
			return c < 0
		}
		return cmp.CompareString(keys[i].subcategory, keys[j].subcategory) < 0
	})

	var ratings []int
	for _, k := range keys {
		qs := buckets[k]
		index.SortBySkill(qs)
		g := Group{Category: k.category, Subcategory: k.subcategory}
		for _, q := range qs {
			rq := buildQuestion(state, q)
			if rq.Rating > 0 {
				ratings = append(ratings, rq.Rating)
			}
			g.Questions = append(g.Questions, rq)
		}
		report.QuestionCount += len(g.Questions)
		report.Groups = append(report.Groups, g)
	}

	report.GradedCount = len(ratings)
	if len(ratings) > 0 {
		report.AverageRating = util.Round(util.Mean(ratings), 1)
	}
	return report
}

func buildQuestion(state domain.SessionState, q domain.Question) Question {
	rating := state.GradesMap[q.ID]
	if rating < 0 {
		rating = 0
	}
	if rating > StarSlots {
		rating = StarSlots
	}
	stars := make([]bool, StarSlots)
	for i := 0; i < rating; i++ {
		stars[i] = true
	}

	insights := make([]Insight, 0, len(q.AnswerInsights))
	for ci, insight := range q.AnswerInsights {
		points := make([]Point, 0, len(insight.Points))
		for pi, p := range insight.Points {
			points = append(points, Point{
				Title:       p.Title,
				Description: p.Description,
				Selected:    state.IsSelected(q.ID, ci, pi),
			})
		}
		insights = append(insights, Insight{Category: insight.Category, Points: points})
	}

	return Question{
		ID:         q.ID,
		Title:      q.DisplayTitle(),
		Text:       q.Question,
		SkillLevel: q.SkillLevel,
		Insights:   insights,
		Rating:     rating,
		Stars:      stars,
		Notes:      state.NotesMap[q.ID],
	}
}
