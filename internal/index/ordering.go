package index

import (
	"sort"

	"interview-assistant/internal/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Less orders questions by skill rank, then by display title using English
// collation. cmp must not be shared across goroutines.
func Less(cmp *collate.Collator, a, b domain.Question) bool {
	ra, rb := a.SkillLevel.Rank(), b.SkillLevel.Rank()
	if ra != rb {
		return ra < rb
	}
	return cmp.CompareString(a.DisplayTitle(), b.DisplayTitle()) < 0
}

// SortQuestions sorts qs in place into canonical order. The sort is stable so
// questions with equal keys keep their input order.
func SortQuestions(qs []domain.Question) {
	cmp := collate.New(language.English)
	sort.SliceStable(qs, func(i, j int) bool {
		return Less(cmp, qs[i], qs[j])
	})
}

// SortBySkill orders by skill rank only, keeping input order for equal ranks.
func SortBySkill(qs []domain.Question) {
	sort.SliceStable(qs, func(i, j int) bool {
		return qs[i].SkillLevel.Rank() < qs[j].SkillLevel.Rank()
	})
}
