package export

import (
	"bytes"
	"context"
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"
)

const (
	pdfMargin     = 15.0
	pdfLineHeight = 5.0
	pdfStarSize   = 4.0
)

// PDFRenderer lays a report out on fixed-size A4 pages.
type PDFRenderer struct {
	Creator string
}

type pdfDoc struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	w   float64 // printable width
}

// Render returns the encoded PDF. It stops between questions when ctx is
// done.
func (p PDFRenderer) Render(ctx context.Context, r Report) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetCreationDate(r.GeneratedAt)
	pdf.SetTitle(r.Title, true)
	if p.Creator != "" {
		pdf.SetCreator(p.Creator, true)
	}
	pdf.AliasNbPages("")

	pageW, _ := pdf.GetPageSize()
	d := &pdfDoc{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), w: pageW - 2*pdfMargin}
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 5, fmt.Sprintf("Page %d/{nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})

	pdf.AddPage()
	d.header(r)

	if r.Empty() {
		d.text("Helvetica", "", 11, 60, 60, 60, "Nothing to report. No notes, ratings or answer points were recorded in this session.")
	}
	for _, g := range r.Groups {
		d.groupHeading(g)
		for _, q := range g.Questions {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			d.question(q)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *pdfDoc) text(family, style string, size float64, red, green, blue int, s string) {
	d.pdf.SetFont(family, style, size)
	d.pdf.SetTextColor(red, green, blue)
	d.pdf.MultiCell(d.w, pdfLineHeight+size/6, d.tr(s), "", "L", false)
}

func (d *pdfDoc) header(r Report) {
	d.text("Helvetica", "B", 18, 31, 41, 51, r.Title)
	meta := "Generated " + r.GeneratedAt.Format("2006-01-02 15:04 MST")
	if r.Candidate != "" {
		meta = "Candidate: " + r.Candidate + "   " + meta
	}
	meta += fmt.Sprintf("   Questions: %d", r.QuestionCount)
	if r.GradedCount > 0 {
		meta += fmt.Sprintf("   Average rating: %.1f / 5", r.AverageRating)
	}
	d.text("Helvetica", "", 9, 82, 96, 109, meta)

	y := d.pdf.GetY() + 2
	d.pdf.SetDrawColor(59, 130, 246)
	d.pdf.SetLineWidth(0.6)
	d.pdf.Line(pdfMargin, y, pdfMargin+d.w, y)
	d.pdf.Ln(6)
}

func (d *pdfDoc) groupHeading(g Group) {
	d.pdf.Ln(2)
	d.text("Helvetica", "B", 14, 31, 41, 51, g.Category)
	d.text("Helvetica", "", 11, 82, 96, 109, g.Subcategory)
	d.pdf.Ln(1)
}

func (d *pdfDoc) question(q Question) {
	d.text("Helvetica", "B", 11, 31, 41, 51, fmt.Sprintf("[%s] %s", q.SkillLevel, q.Title))
	if q.Text != q.Title {
		d.text("Helvetica", "", 10, 31, 41, 51, q.Text)
	}
	d.stars(q.Stars)

	for _, insight := range q.Insights {
		d.text("Helvetica", "B", 10, 31, 41, 51, string(insight.Category))
		for _, p := range insight.Points {
			if p.Selected {
				d.text("Helvetica", "B", 9, 22, 101, 52, "[x] "+p.Title+": "+p.Description)
			} else {
				d.text("Helvetica", "", 9, 154, 165, 177, "[ ] "+p.Title+": "+p.Description)
			}
		}
	}

	d.text("Helvetica", "B", 10, 31, 41, 51, "Notes")
	if q.HasNotes() {
		d.text("Helvetica", "", 10, 31, 41, 51, q.Notes)
	} else {
		d.text("Helvetica", "I", 10, 154, 165, 177, "No notes recorded.")
	}

	y := d.pdf.GetY() + 2
	d.pdf.SetDrawColor(217, 226, 236)
	d.pdf.SetLineWidth(0.2)
	d.pdf.Line(pdfMargin, y, pdfMargin+d.w, y)
	d.pdf.Ln(5)
}

func (d *pdfDoc) stars(filled []bool) {
	_, pageH := d.pdf.GetPageSize()
	if d.pdf.GetY()+pdfStarSize+2 > pageH-pdfMargin {
		d.pdf.AddPage()
	}
	x, y := pdfMargin, d.pdf.GetY()+1
	d.pdf.SetDrawColor(245, 158, 11)
	d.pdf.SetLineWidth(0.2)
	for _, on := range filled {
		style := "D"
		if on {
			d.pdf.SetFillColor(245, 158, 11)
			style = "FD"
		}
		d.pdf.Polygon(starPoints(x+pdfStarSize/2, y+pdfStarSize/2, pdfStarSize/2), style)
		x += pdfStarSize + 1.5
	}
	d.pdf.SetY(y + pdfStarSize + 1)
}

// starPoints returns the ten vertices of a five-pointed star.
func starPoints(cx, cy, outer float64) []fpdf.PointType {
	inner := outer * 0.4
	pts := make([]fpdf.PointType, 0, 10)
	for i := 0; i < 10; i++ {
		radius := outer
		if i%2 == 1 {
			radius = inner
		}
		angle := -math.Pi/2 + float64(i)*math.Pi/5
		pts = append(pts, fpdf.PointType{X: cx + radius*math.Cos(angle), Y: cy + radius*math.Sin(angle)})
	}
	return pts
}
