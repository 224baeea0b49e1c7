package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"path"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/logger"

	"go.uber.org/zap"
)

// ResultKind tags the outcome of loading one corpus entry.
type ResultKind int

const (
	ResultOK ResultKind = iota
	ResultSkipped
)

func (k ResultKind) String() string {
	if k == ResultOK {
		return "ok"
	}
	return "skipped"
}

// Source locates an entry or document inside the corpus. Index is the entry's
// position in the document's questions array, or -1 for a whole document.
type Source struct {
	CategoryID  string
	SetID       string
	Subcategory string
	Path        string
	Index       int
}

func (s Source) String() string {
	if s.Index < 0 {
		return s.Path
	}
	return fmt.Sprintf("%s#%d", s.Path, s.Index)
}

// EntryResult is either a loaded question (Kind == ResultOK) or a skipped
// entry with the reason it could not be loaded.
type EntryResult struct {
	Kind     ResultKind
	Source   Source
	Question domain.Question
	Reason   string

	// AuthoredInsights are the insight labels in source order, before
	// normalization. DroppedInsights are the ones normalization discarded.
	AuthoredInsights []string
	DroppedInsights  []string
}

// Corpus is the outcome of a load pass: the registry metadata plus one result
// per entry and every skipped document.
type Corpus struct {
	Categories  []domain.Category
	Sets        map[string][]domain.QuestionSet
	Results     []EntryResult
	SkippedDocs []EntryResult
}

// Questions returns the loaded questions in load order.
func (c *Corpus) Questions() []domain.Question {
	out := make([]domain.Question, 0, len(c.Results))
	for _, r := range c.Results {
		if r.Kind == ResultOK {
			out = append(out, r.Question)
		}
	}
	return out
}

// SkippedCount is the number of entries and documents that were not loaded.
func (c *Corpus) SkippedCount() int {
	n := len(c.SkippedDocs)
	for _, r := range c.Results {
		if r.Kind == ResultSkipped {
			n++
		}
	}
	return n
}

// DroppedInsightCount is the number of authored insights normalization discarded.
func (c *Corpus) DroppedInsightCount() int {
	n := 0
	for _, r := range c.Results {
		n += len(r.DroppedInsights)
	}
	return n
}

type rawQuestion struct {
	ID               string       `json:"id"`
	SkillLevel       string       `json:"skillLevel"`
	Question         string       `json:"question"`
	ShortTitle       string       `json:"shortTitle"`
	AnswerInsights   []rawInsight `json:"answerInsights"`
	RelatedQuestions []string     `json:"relatedQuestions"`
	Tags             []string     `json:"tags"`
}

type rawDocument struct {
	Questions json.RawMessage `json:"questions"`
}

// Loader flattens the registry's documents into a single corpus.
type Loader struct {
	fsys     fs.FS
	registry *Registry
	log      *zap.Logger
}

// NewLoader creates a loader reading documents from fsys. Document paths in the
// registry are relative to the root of fsys.
func NewLoader(fsys fs.FS, registry *Registry) *Loader {
	return &Loader{fsys: fsys, registry: registry, log: logger.Get()}
}

// Load reads the registry at registryPath in fsys and loads every document.
func Load(fsys fs.FS, registryPath string) (*Corpus, error) {
	reg, err := LoadRegistry(fsys, registryPath)
	if err != nil {
		return nil, err
	}
	return NewLoader(fsys, reg).LoadAll(), nil
}

// LoadAll walks categories, sets and documents in registry order. Unreadable or
// malformed documents and entries are skipped, never fatal.
func (l *Loader) LoadAll() *Corpus {
	c := &Corpus{
		Categories: l.registry.DomainCategories(),
		Sets:       l.registry.DomainSets(),
	}

	for _, category := range l.registry.Categories {
		for _, set := range category.Sets {
			for _, file := range set.Files {
				src := Source{
					CategoryID:  category.ID,
					SetID:       set.ID,
					Subcategory: file.Subcategory,
					Path:        path.Clean(file.Path),
					Index:       -1,
				}
				l.loadDocument(c, src)
			}
		}
	}

	l.log.Info("Question corpus loaded",
		zap.Int("questions", len(c.Questions())),
		zap.Int("skipped", c.SkippedCount()),
		zap.Int("dropped_insights", c.DroppedInsightCount()),
	)
	return c
}

func (l *Loader) loadDocument(c *Corpus, src Source) {
	data, err := fs.ReadFile(l.fsys, src.Path)
	if err != nil {
		l.skipDocument(c, src, fmt.Sprintf("unreadable document: %v", err))
		return
	}

	var doc rawDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		l.skipDocument(c, src, fmt.Sprintf("malformed document: %v", err))
		return
	}
	trimmed := bytes.TrimSpace(doc.Questions)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		l.skipDocument(c, src, "document has no questions array")
		return
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(trimmed, &entries); err != nil {
		l.skipDocument(c, src, fmt.Sprintf("malformed questions array: %v", err))
		return
	}

	for i, entry := range entries {
		entrySrc := src
		entrySrc.Index = i
		c.Results = append(c.Results, l.loadEntry(entry, entrySrc))
	}
}

func (l *Loader) loadEntry(entry json.RawMessage, src Source) EntryResult {
	var raw rawQuestion
	if err := json.Unmarshal(entry, &raw); err != nil {
		l.log.Warn("Skipping malformed question entry",
			zap.String("source", src.String()),
			zap.Error(err),
		)
		return EntryResult{Kind: ResultSkipped, Source: src, Reason: err.Error()}
	}

	insights, authored, dropped := NormalizeInsights(raw.AnswerInsights)
	if len(dropped) > 0 {
		l.log.Warn("Dropped unrecognized answer insights",
			zap.String("question_id", raw.ID),
			zap.Strings("categories", dropped),
		)
	}

	return EntryResult{
		Kind:   ResultOK,
		Source: src,
		Question: domain.Question{
			ID:               raw.ID,
			SkillLevel:       domain.SkillLevel(raw.SkillLevel),
			Question:         raw.Question,
			ShortTitle:       raw.ShortTitle,
			CategoryID:       src.CategoryID,
			SubcategoryName:  src.Subcategory,
			SetID:            src.SetID,
			AnswerInsights:   insights,
			RelatedQuestions: nonNil(raw.RelatedQuestions),
			Tags:             raw.Tags,
		},
		AuthoredInsights: authored,
		DroppedInsights:  dropped,
	}
}

func (l *Loader) skipDocument(c *Corpus, src Source, reason string) {
	l.log.Warn("Skipping corpus document",
		zap.String("path", src.Path),
		zap.String("category_id", src.CategoryID),
		zap.String("set_id", src.SetID),
		zap.String("reason", reason),
	)
	c.SkippedDocs = append(c.SkippedDocs, EntryResult{Kind: ResultSkipped, Source: src, Reason: reason})
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
