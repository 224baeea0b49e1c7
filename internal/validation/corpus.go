package validation

import (
	"fmt"
	"slices"
	"strings"

	"interview-assistant/internal/corpus"
	"interview-assistant/internal/domain"
)

// Severity of a corpus diagnostic. Errors block a content build, warnings
// are informational.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// DiagnosticCode identifies the check that produced a diagnostic.
type DiagnosticCode string

const (
	DiagSkippedDocument    DiagnosticCode = "SKIPPED_DOCUMENT"
	DiagSkippedEntry       DiagnosticCode = "SKIPPED_ENTRY"
	DiagMissingField       DiagnosticCode = "MISSING_FIELD"
	DiagInvalidSkillLevel  DiagnosticCode = "INVALID_SKILL_LEVEL"
	DiagInsightShape       DiagnosticCode = "INSIGHT_SHAPE"
	DiagIncompletePoint    DiagnosticCode = "INCOMPLETE_POINT"
	DiagDuplicateID        DiagnosticCode = "DUPLICATE_ID"
	DiagSelfReference      DiagnosticCode = "SELF_REFERENCE"
	DiagDuplicateRelated   DiagnosticCode = "DUPLICATE_RELATED"
	DiagDanglingRelated    DiagnosticCode = "DANGLING_RELATED"
	DiagNonMutualRelation  DiagnosticCode = "NON_MUTUAL_RELATION"
	DiagUnknownCategory    DiagnosticCode = "UNKNOWN_CATEGORY"
	DiagUnknownSubcategory DiagnosticCode = "UNKNOWN_SUBCATEGORY"
)

// Diagnostic is one finding of the corpus validation pass.
type Diagnostic struct {
	Severity   Severity       `json:"severity"`
	Code       DiagnosticCode `json:"code"`
	QuestionID string         `json:"question_id,omitempty"`
	Source     string         `json:"source"`
	Message    string         `json:"message"`
}

func (d Diagnostic) String() string {
	if d.QuestionID != "" {
		return fmt.Sprintf("[%s] %s %s (%s): %s", d.Severity, d.Code, d.QuestionID, d.Source, d.Message)
	}
	return fmt.Sprintf("[%s] %s (%s): %s", d.Severity, d.Code, d.Source, d.Message)
}

// Report holds every diagnostic in check order.
type Report struct {
	Questions   int          `json:"questions"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

func (r Report) filter(s Severity) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, d := range r.Diagnostics {
		if d.Severity == s {
			out = append(out, d)
		}
	}
	return out
}

func (r Report) Errors() []Diagnostic   { return r.filter(SeverityError) }
func (r Report) Warnings() []Diagnostic { return r.filter(SeverityWarning) }

// HasErrors reports whether the corpus should fail a content build.
func (r Report) HasErrors() bool {
	return len(r.Errors()) > 0
}

// ByCode returns the diagnostics produced by one check.
func (r Report) ByCode(code DiagnosticCode) []Diagnostic {
	out := make([]Diagnostic, 0)
	for _, d := range r.Diagnostics {
		if d.Code == code {
			out = append(out, d)
		}
	}
	return out
}

type checker struct {
	report Report
}

func (c *checker) add(sev Severity, code DiagnosticCode, questionID string, src corpus.Source, format string, args ...interface{}) {
	c.report.Diagnostics = append(c.report.Diagnostics, Diagnostic{
		Severity:   sev,
		Code:       code,
		QuestionID: questionID,
		Source:     src.String(),
		Message:    fmt.Sprintf(format, args...),
	})
}

// ValidateCorpus runs every independent check over a loaded corpus.
func ValidateCorpus(c *corpus.Corpus) Report {
	ch := &checker{}

	for _, doc := range c.SkippedDocs {
		ch.add(SeverityError, DiagSkippedDocument, "", doc.Source, "%s", doc.Reason)
	}

	loaded := make([]corpus.EntryResult, 0, len(c.Results))
	for _, r := range c.Results {
		if r.Kind == corpus.ResultSkipped {
			ch.add(SeverityError, DiagSkippedEntry, "", r.Source, "entry has wrong field types: %s", r.Reason)
			continue
		}
		loaded = append(loaded, r)
	}
	ch.report.Questions = len(loaded)

	categories := make(map[string]domain.Category, len(c.Categories))
	for _, cat := range c.Categories {
		categories[cat.ID] = cat
	}

	for _, r := range loaded {
		ch.checkFields(r, categories)
		ch.checkInsights(r)
	}
	ch.checkUniqueIDs(loaded)
	ch.checkRelations(loaded)

	return ch.report
}

func (c *checker) checkFields(r corpus.EntryResult, categories map[string]domain.Category) {
	q := r.Question
	if strings.TrimSpace(q.ID) == "" {
		c.add(SeverityError, DiagMissingField, "", r.Source, "id is required")
	}
	if strings.TrimSpace(q.Question) == "" {
		c.add(SeverityError, DiagMissingField, q.ID, r.Source, "question is required")
	}
	if q.SkillLevel == "" {
		c.add(SeverityError, DiagMissingField, q.ID, r.Source, "skillLevel is required")
	} else if !q.SkillLevel.Valid() {
		c.add(SeverityError, DiagInvalidSkillLevel, q.ID, r.Source, "unknown skill level %q", q.SkillLevel)
	}
	if strings.TrimSpace(q.CategoryID) == "" {
		c.add(SeverityError, DiagMissingField, q.ID, r.Source, "categoryId is required")
	} else if cat, ok := categories[q.CategoryID]; !ok {
		c.add(SeverityError, DiagUnknownCategory, q.ID, r.Source, "category %q is not in the registry", q.CategoryID)
	} else if q.SubcategoryName != "" && !cat.HasSubcategory(q.SubcategoryName) {
		c.add(SeverityWarning, DiagUnknownSubcategory, q.ID, r.Source, "subcategory %q is not listed for category %q", q.SubcategoryName, q.CategoryID)
	}
	if strings.TrimSpace(q.SubcategoryName) == "" {
		c.add(SeverityError, DiagMissingField, q.ID, r.Source, "subcategoryName is required")
	}
}

func (c *checker) checkInsights(r corpus.EntryResult) {
	q := r.Question
	want := make([]string, 0, len(domain.InsightCategories))
	for _, cat := range domain.InsightCategories {
		want = append(want, string(cat))
	}
	if !slices.Equal(r.AuthoredInsights, want) {
		c.add(SeverityError, DiagInsightShape, q.ID, r.Source,
			"answerInsights must be exactly %v in that order, got %v", want, r.AuthoredInsights)
	}
	for _, insight := range q.AnswerInsights {
		for _, p := range insight.Points {
			if strings.TrimSpace(p.Title) == "" || strings.TrimSpace(p.Description) == "" {
				c.add(SeverityError, DiagIncompletePoint, q.ID, r.Source,
					"%s point %d needs a title and a description", insight.Category, p.OriginalIndex)
			}
		}
	}
}

func (c *checker) checkUniqueIDs(loaded []corpus.EntryResult) {
	first := make(map[string]corpus.Source, len(loaded))
	for _, r := range loaded {
		id := r.Question.ID
		if id == "" {
			continue
		}
		if prev, dup := first[id]; dup {
			c.add(SeverityError, DiagDuplicateID, id, r.Source, "id already used by %s", prev)
			continue
		}
		first[id] = r.Source
	}
}

func (c *checker) checkRelations(loaded []corpus.EntryResult) {
	related := make(map[string][]string, len(loaded))
	for _, r := range loaded {
		if _, seen := related[r.Question.ID]; !seen {
			related[r.Question.ID] = r.Question.RelatedQuestions
		}
	}

	for _, r := range loaded {
		q := r.Question
		seen := make(map[string]struct{}, len(q.RelatedQuestions))
		for _, target := range q.RelatedQuestions {
			if target == q.ID {
				c.add(SeverityError, DiagSelfReference, q.ID, r.Source, "question references itself")
				continue
			}
			if _, dup := seen[target]; dup {
				c.add(SeverityError, DiagDuplicateRelated, q.ID, r.Source, "related question %q listed more than once", target)
				continue
			}
			seen[target] = struct{}{}

			back, exists := related[target]
			if !exists {
				c.add(SeverityError, DiagDanglingRelated, q.ID, r.Source, "related question %q does not exist", target)
				continue
			}
			if !slices.Contains(back, q.ID) {
				c.add(SeverityWarning, DiagNonMutualRelation, q.ID, r.Source, "%q does not reference %q back", target, q.ID)
			}
		}
	}
}
