// Package cli implements the interviewctl operator commands.
package cli

import (
	"interview-assistant/internal/config"
	"interview-assistant/internal/corpus"
	"interview-assistant/internal/index"
	"interview-assistant/internal/logger"

	"github.com/spf13/cobra"
)

var version = "dev"

var (
	corpusDir    string
	registryPath string
	logLevel     string
)

var rootCmd = &cobra.Command{
	Use:   "interviewctl",
	Short: "Operate on the interview question corpus and session records",
	Long: `interviewctl validates the question corpus, queries it, and exports
persisted interview sessions as HTML or PDF reports without running the API.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		return logger.Initialize(config.LoggerConfig{Level: logLevel, Env: "development"})
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&corpusDir, "corpus-dir", "", "corpus directory (default: the bundled corpus)")
	rootCmd.PersistentFlags().StringVar(&registryPath, "registry", "registry.yaml", "registry file inside the corpus directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func corpusConfig() config.CorpusConfig {
	return config.CorpusConfig{Dir: corpusDir, Registry: registryPath}
}

func openIndex() (*corpus.Corpus, *index.Index, error) {
	c, err := corpus.Open(corpusConfig())
	if err != nil {
		return nil, nil, err
	}
	return c, index.New(c), nil
}
