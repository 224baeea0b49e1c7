package export

import (
	"context"
	"strings"
	"time"

	"interview-assistant/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

// Format of an exported document.
type Format string

const (
	FormatHTML Format = "html"
	FormatPDF  Format = "pdf"
)

// ParseFormat accepts "html" and "pdf"; empty means HTML.
func ParseFormat(raw string) (Format, bool) {
	switch Format(strings.ToLower(strings.TrimSpace(raw))) {
	case "", FormatHTML:
		return FormatHTML, true
	case FormatPDF:
		return FormatPDF, true
	default:
		return "", false
	}
}

func (f Format) Extension() string { return string(f) }

func (f Format) ContentType() string {
	if f == FormatPDF {
		return "application/pdf"
	}
	return "text/html; charset=utf-8"
}

// Document is a rendered report ready for download.
type Document struct {
	Format      Format
	Filename    string
	ContentType string
	Body        []byte
	Report      Report
}

// Renderer produces an encoded document from a report.
type Renderer interface {
	Render(ctx context.Context, r Report) ([]byte, error)
}

type Options struct {
	Title      string
	PDFEnabled bool
	Now        func() time.Time
	Logger     *zap.Logger
}

// Exporter renders reports. At most one PDF export runs at a time; HTML
// exports are not limited.
type Exporter struct {
	opts    Options
	pdf     Renderer
	pdfSlot *semaphore.Weighted
	log     *zap.Logger
}

func NewExporter(opts Options) *Exporter {
	if opts.Title == "" {
		opts.Title = "Interview Report"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Exporter{
		opts:    opts,
		pdf:     PDFRenderer{Creator: "interview-assistant"},
		pdfSlot: semaphore.NewWeighted(1),
		log:     opts.Logger,
	}
}

// Export builds the report of state and renders it in format.
func (e *Exporter) Export(ctx context.Context, state domain.SessionState, src QuestionSource, format Format, candidate string) (*Document, error) {
	now := e.opts.Now()
	report := Build(state, src, BuildOptions{
		Title:       e.opts.Title,
		Candidate:   candidate,
		GeneratedAt: now,
	})

	doc := &Document{
		Format:      format,
		Filename:    Filename(now, candidate, format),
		ContentType: format.ContentType(),
		Report:      report,
	}

	switch format {
	case FormatHTML:
		body, err := RenderHTML(report)
		if err != nil {
			e.log.Error("HTML report rendering failed", zap.Error(err))
			return nil, domain.NewExportFailedError(err)
		}
		doc.Body = body
	case FormatPDF:
		body, err := e.renderPDF(ctx, report)
		if err != nil {
			return nil, err
		}
		doc.Body = body
	default:
		return nil, domain.NewInvalidInputError("unsupported export format").WithContext("format", string(format))
	}

	e.log.Info("Report exported",
		zap.String("format", string(format)),
		zap.String("filename", doc.Filename),
		zap.Int("questions", report.QuestionCount))
	return doc, nil
}

func (e *Exporter) renderPDF(ctx context.Context, report Report) ([]byte, error) {
	if !e.opts.PDFEnabled {
		return nil, domain.NewPDFUnavailableError()
	}
	if !e.pdfSlot.TryAcquire(1) {
		return nil, domain.NewExportInProgressError()
	}
	defer e.pdfSlot.Release(1)

	body, err := e.pdf.Render(ctx, report)
	if err != nil {
		e.log.Warn("PDF report rendering failed", zap.Error(err))
		return nil, domain.NewPDFExportFailedError(err)
	}
	return body, nil
}
