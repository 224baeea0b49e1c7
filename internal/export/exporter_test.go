package export

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"interview-assistant/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type blockingRenderer struct {
	started chan struct{}
	release chan struct{}
}

func (b *blockingRenderer) Render(ctx context.Context, _ Report) ([]byte, error) {
	close(b.started)
	<-b.release
	return []byte("%PDF-1.3"), nil
}

type failingRenderer struct{}

func (failingRenderer) Render(context.Context, Report) ([]byte, error) {
	return nil, errors.New("font not found")
}

func newTestExporter(pdfEnabled bool) *Exporter {
	return NewExporter(Options{
		Title:      "Interview Report",
		PDFEnabled: pdfEnabled,
		Now:        func() time.Time { return reportTime },
	})
}

func gradedState() domain.SessionState {
	state := domain.NewSessionState("en")
	state.GradesMap["j-beg"] = 4
	state.NotesMap["sd-cache"] = "Talked about <eviction> & TTLs"
	state.SelectedAnswerPointsMap["sd-cache"] = map[string]bool{"2-0": true}
	return state
}

func TestExporter_HTML(t *testing.T) {
	e := newTestExporter(false)

	doc, err := e.Export(context.Background(), gradedState(), testIndex(), FormatHTML, "Jane Doe")
	require.NoError(t, err)
	assert.Equal(t, "interview-report-2026-10-14-jane-doe.html", doc.Filename)
	assert.Equal(t, "text/html; charset=utf-8", doc.ContentType)

	html := string(doc.Body)
	assert.Contains(t, html, "Candidate: <strong>Jane Doe</strong>")
	assert.Contains(t, html, "Explain synchronization")
	assert.Contains(t, html, "Talked about &lt;eviction&gt; &amp; TTLs")
	assert.Contains(t, html, "No notes recorded.")
	assert.Contains(t, html, `aria-label="4 of 5"`)
	assert.Contains(t, html, "point unselected")
	assert.Contains(t, html, "point selected")
	assert.NotContains(t, html, "Compare ArrayList and LinkedList")
}

func TestExporter_HTMLNothingToReport(t *testing.T) {
	doc, err := newTestExporter(true).Export(context.Background(), domain.NewSessionState("en"), testIndex(), FormatHTML, "")
	require.NoError(t, err)
	assert.Contains(t, string(doc.Body), "Nothing to report.")
	assert.True(t, doc.Report.Empty())
}

func TestExporter_PDF(t *testing.T) {
	doc, err := newTestExporter(true).Export(context.Background(), gradedState(), testIndex(), FormatPDF, "José")
	require.NoError(t, err)
	assert.Equal(t, "interview-report-2026-10-14-jose.pdf", doc.Filename)
	assert.Equal(t, "application/pdf", doc.ContentType)
	assert.True(t, bytes.HasPrefix(doc.Body, []byte("%PDF-")))
}

func TestExporter_PDFDisabled(t *testing.T) {
	e := newTestExporter(false)

	_, err := e.Export(context.Background(), gradedState(), testIndex(), FormatPDF, "")
	assert.True(t, domain.HasCode(err, domain.CodePDFUnavailable))

	// HTML keeps working.
	_, err = e.Export(context.Background(), gradedState(), testIndex(), FormatHTML, "")
	assert.NoError(t, err)
}

func TestExporter_PDFFailureIsDistinct(t *testing.T) {
	e := newTestExporter(true)
	e.pdf = failingRenderer{}

	_, err := e.Export(context.Background(), gradedState(), testIndex(), FormatPDF, "")
	assert.True(t, domain.HasCode(err, domain.CodePDFExportFailed))
}

func TestExporter_PDFCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestExporter(true).Export(ctx, gradedState(), testIndex(), FormatPDF, "")
	assert.True(t, domain.HasCode(err, domain.CodePDFExportFailed))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExporter_SinglePDFInFlight(t *testing.T) {
	e := newTestExporter(true)
	blocker := &blockingRenderer{started: make(chan struct{}), release: make(chan struct{})}
	e.pdf = blocker

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := e.Export(context.Background(), gradedState(), testIndex(), FormatPDF, "")
		assert.NoError(t, err)
	}()
	<-blocker.started

	_, err := e.Export(context.Background(), gradedState(), testIndex(), FormatPDF, "")
	assert.True(t, domain.HasCode(err, domain.CodeExportInProgress))

	_, err = e.Export(context.Background(), gradedState(), testIndex(), FormatHTML, "")
	assert.NoError(t, err, "HTML is not limited")

	close(blocker.release)
	wg.Wait()
}

func TestParseFormat(t *testing.T) {
	f, ok := ParseFormat("")
	assert.True(t, ok)
	assert.Equal(t, FormatHTML, f)

	f, ok = ParseFormat("PDF")
	assert.True(t, ok)
	assert.Equal(t, FormatPDF, f)

	_, ok = ParseFormat("docx")
	assert.False(t, ok)
}
