package index

import (
	"testing"

	"interview-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestSortQuestions_UnknownLevelsFirst(t *testing.T) {
	qs := []domain.Question{
		q("b", domain.SkillBeginner, "B"),
		q("x", domain.SkillLevel("expert"), "X"),
		q("a", domain.SkillAdvanced, "A"),
	}
	SortQuestions(qs)
	assert.Equal(t, []string{"x", "b", "a"}, ids(qs))
}

func TestSortQuestions_UsesDisplayTitle(t *testing.T) {
	qs := []domain.Question{
		q("long", domain.SkillBeginner, "Zebra question text", func(q *domain.Question) { q.ShortTitle = "Alpha" }),
		q("plain", domain.SkillBeginner, "Middle"),
	}
	SortQuestions(qs)
	assert.Equal(t, []string{"long", "plain"}, ids(qs))
}

func TestSortBySkill_IsStable(t *testing.T) {
	qs := []domain.Question{
		q("z", domain.SkillAdvanced, "Z"),
		q("m", domain.SkillBeginner, "M"),
		q("a", domain.SkillBeginner, "A"),
		q("i", domain.SkillIntermediate, "I"),
	}
	SortBySkill(qs)
	assert.Equal(t, []string{"m", "a", "i", "z"}, ids(qs))
}
