package cli

import (
	"encoding/json"
	"fmt"

	"interview-assistant/internal/corpus"
	"interview-assistant/internal/validation"

	"github.com/spf13/cobra"
)

var validateJSON bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the question corpus",
	Long: `Runs every corpus check and prints the diagnostics. Exits non-zero when
any check reports an error; warnings alone do not fail.`,
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, _ []string) error {
	c, err := corpus.Open(corpusConfig())
	if err != nil {
		return err
	}
	report := validation.ValidateCorpus(c)

	if validateJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		cmd.Println(string(data))
	} else {
		for _, d := range report.Diagnostics {
			cmd.Println(d.String())
		}
		cmd.Printf("%d questions, %d errors, %d warnings\n",
			report.Questions, len(report.Errors()), len(report.Warnings()))
	}

	if report.HasErrors() {
		return fmt.Errorf("corpus validation failed with %d errors", len(report.Errors()))
	}
	return nil
}
