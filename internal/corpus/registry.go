package corpus

import (
	"fmt"
	"io/fs"

	"interview-assistant/internal/domain"

	"gopkg.in/yaml.v3"
)

// Registry lists the categories of the corpus and, per category, the question
// sets that contribute documents. Order in the file is load order.
type Registry struct {
	Categories []RegistryCategory `yaml:"categories"`
}

type RegistryCategory struct {
	ID            string        `yaml:"id"`
	Name          string        `yaml:"name"`
	Subcategories []string      `yaml:"subcategories"`
	Sets          []RegistrySet `yaml:"sets"`
}

type RegistrySet struct {
	ID    string               `yaml:"id"`
	Name  string               `yaml:"name"`
	Files []domain.SetDocument `yaml:"files"`
}

// ParseRegistry decodes a registry document.
func ParseRegistry(data []byte) (*Registry, error) {
	var reg Registry
	if err := yaml.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("failed to parse corpus registry: %w", err)
	}
	seen := make(map[string]struct{}, len(reg.Categories))
	for _, c := range reg.Categories {
		if c.ID == "" {
			return nil, fmt.Errorf("corpus registry: category %q has no id", c.Name)
		}
		if _, dup := seen[c.ID]; dup {
			return nil, fmt.Errorf("corpus registry: duplicate category id %q", c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return &reg, nil
}

// LoadRegistry reads and parses the registry at path inside fsys.
func LoadRegistry(fsys fs.FS, path string) (*Registry, error) {
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus registry %s: %w", path, err)
	}
	return ParseRegistry(data)
}

// DomainCategories converts the registry entries to domain categories.
func (r *Registry) DomainCategories() []domain.Category {
	out := make([]domain.Category, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, domain.Category{
			ID:            c.ID,
			Name:          c.Name,
			Subcategories: append([]string(nil), c.Subcategories...),
		})
	}
	return out
}

// DomainSets returns set metadata keyed by category id.
func (r *Registry) DomainSets() map[string][]domain.QuestionSet {
	out := make(map[string][]domain.QuestionSet, len(r.Categories))
	for _, c := range r.Categories {
		sets := make([]domain.QuestionSet, 0, len(c.Sets))
		for _, s := range c.Sets {
			sets = append(sets, domain.QuestionSet{
				ID:         s.ID,
				Name:       s.Name,
				CategoryID: c.ID,
				Files:      append([]domain.SetDocument(nil), s.Files...),
			})
		}
		out[c.ID] = sets
	}
	return out
}
