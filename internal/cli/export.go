package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"interview-assistant/internal/domain"
	"interview-assistant/internal/export"

	"github.com/spf13/cobra"
)

var (
	exportSession   string
	exportFormat    string
	exportCandidate string
	exportOut       string
	exportTitle     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a persisted session record as a report",
	Long: `Reads a persisted session record (the JSON blob written to session
storage) and writes the rendered report into --out.`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportSession, "session", "", "persisted session record file")
	exportCmd.Flags().StringVar(&exportFormat, "format", "html", "html or pdf")
	exportCmd.Flags().StringVar(&exportCandidate, "candidate", "", "candidate name for the header and filename")
	exportCmd.Flags().StringVar(&exportOut, "out", ".", "output directory")
	exportCmd.Flags().StringVar(&exportTitle, "title", "Interview Report", "report title")
	_ = exportCmd.MarkFlagRequired("session")
	rootCmd.AddCommand(exportCmd)
}

func readRecord(path string) (domain.PersistedRecord, error) {
	var record domain.PersistedRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return record, fmt.Errorf("failed to read session record: %w", err)
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("malformed session record %s: %w", path, err)
	}
	record.Data.Normalize()
	return record, nil
}

func runExport(cmd *cobra.Command, _ []string) error {
	format, ok := export.ParseFormat(exportFormat)
	if !ok {
		return fmt.Errorf("unsupported format %q", exportFormat)
	}

	record, err := readRecord(exportSession)
	if err != nil {
		return err
	}
	if record.Version != domain.StateVersion {
		cmd.PrintErrf("warning: record version %q differs from %q, exporting anyway\n", record.Version, domain.StateVersion)
	}

	_, idx, err := openIndex()
	if err != nil {
		return err
	}

	exporter := export.NewExporter(export.Options{Title: exportTitle, PDFEnabled: true})
	doc, err := exporter.Export(context.Background(), record.Data, idx, format, exportCandidate)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(exportOut, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	target := filepath.Join(exportOut, doc.Filename)
	if err := os.WriteFile(target, doc.Body, 0o644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	cmd.Printf("Wrote %s (%d questions)\n", target, doc.Report.QuestionCount)
	return nil
}
