package corpus

import (
	"interview-assistant/internal/domain"
)

type rawPoint struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type rawInsight struct {
	Category string     `json:"category"`
	Points   []rawPoint `json:"points"`
}

// NormalizeInsights returns exactly one insight per canonical category, in
// canonical order. Insights with a missing or unknown label are dropped and
// missing categories are synthesized with no points. The authored labels are
// returned in source order along with the dropped ones.
func NormalizeInsights(raw []rawInsight) (insights []domain.AnswerInsight, authored []string, dropped []string) {
	byCategory := make(map[domain.InsightCategory]rawInsight, len(raw))
	for _, ri := range raw {
		authored = append(authored, ri.Category)
		category := domain.InsightCategory(ri.Category)
		if !category.Valid() {
			dropped = append(dropped, ri.Category)
			continue
		}
		byCategory[category] = ri
	}

	insights = make([]domain.AnswerInsight, 0, len(domain.InsightCategories))
	for _, category := range domain.InsightCategories {
		ri, ok := byCategory[category]
		points := make([]domain.Point, 0, len(ri.Points))
		if ok {
			for i, p := range ri.Points {
				points = append(points, domain.Point{
					Title:         p.Title,
					Description:   p.Description,
					OriginalIndex: i,
				})
			}
		}
		insights = append(insights, domain.AnswerInsight{Category: category, Points: points})
	}
	return insights, authored, dropped
}
