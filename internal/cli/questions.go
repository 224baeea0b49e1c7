package cli

import (
	"encoding/json"
	"fmt"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/index"

	"github.com/spf13/cobra"
)

var (
	questionsCategory    string
	questionsSubcategory string
	questionsSkillLevel  string
	questionsSearch      string
	questionsJSON        bool
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List corpus questions",
	Long: `Lists questions in canonical order. Filters combine; --search matches the
question text, short title and tags case-insensitively.`,
	Args: cobra.NoArgs,
	RunE: runQuestions,
}

func init() {
	questionsCmd.Flags().StringVar(&questionsCategory, "category", "", "category id")
	questionsCmd.Flags().StringVar(&questionsSubcategory, "subcategory", "", "subcategory name")
	questionsCmd.Flags().StringVar(&questionsSkillLevel, "skill-level", "", "beginner, intermediate or advanced")
	questionsCmd.Flags().StringVarP(&questionsSearch, "search", "q", "", "free text search")
	questionsCmd.Flags().BoolVar(&questionsJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(questionsCmd)
}

func runQuestions(cmd *cobra.Command, _ []string) error {
	filter := index.Filter{CategoryID: questionsCategory, Subcategory: questionsSubcategory}
	if questionsSkillLevel != "" {
		level, ok := domain.ParseSkillLevel(questionsSkillLevel)
		if !ok {
			return fmt.Errorf("unknown skill level %q", questionsSkillLevel)
		}
		filter.SkillLevel = level
	}

	_, idx, err := openIndex()
	if err != nil {
		return err
	}

	var results []domain.Question
	if questionsSearch != "" {
		results = idx.Search(questionsSearch, filter)
	} else {
		results = idx.Filtered(filter)
	}

	if questionsJSON {
		data, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal questions: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(results) == 0 {
		cmd.Println("No questions found.")
		return nil
	}
	for _, q := range results {
		cmd.Printf("%-13s %-32s %s / %s: %s\n", q.SkillLevel, q.ID, q.CategoryID, q.SubcategoryName, q.DisplayTitle())
	}
	return nil
}
