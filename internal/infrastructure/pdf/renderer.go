package pdf

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/riskibarqy/itp-onboarding/internal/domain/consent"
	"github.com/valyala/bytebufferpool"
)

const (
	marginLeft = 50.0
	marginTop  = 62.0
	lineHeight = 16.0
)

type lineStyle struct {
	family string
	weight string
	size   float64
	gray   int
	after  float64
}

var styles = map[consent.Style]lineStyle{
	consent.StyleTitle:    {family: "Helvetica", weight: "B", size: 20, gray: 0, after: 15},
	consent.StyleSubtitle: {family: "Helvetica", size: 11, gray: 102, after: 30},
	consent.StyleHeading:  {family: "Helvetica", weight: "B", size: 12, gray: 0, after: 30},
	consent.StyleBody:     {family: "Helvetica", size: 11, gray: 0, after: lineHeight},
}

// Renderer draws consent documents on A4 with the core Helvetica fonts.
type Renderer struct {
	now func() time.Time
}

func NewRenderer() *Renderer {
	return &Renderer{now: time.Now}
}

func (r *Renderer) Render(ctx context.Context, doc consent.Document) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetTitle(doc.Title, true)
	pdf.SetCreator("ITP Trial Onboarding", true)
	pdf.SetCreationDate(r.now().UTC())

	// Core fonts are cp1252; umlauts and the em dash map onto it.
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	for _, page := range doc.Pages {
		pdf.AddPage()
		pdf.SetY(marginTop)
		for _, line := range page.Lines {
			style, ok := styles[line.Style]
			if !ok {
				style = styles[consent.StyleBody]
			}
			pdf.SetFont(style.family, style.weight, style.size)
			pdf.SetTextColor(style.gray, style.gray, style.gray)
			pdf.SetX(marginLeft)
			pdf.CellFormat(0, style.size, tr(line.Text), "", 0, "L", false, 0, "")
			pdf.Ln(style.after)
		}
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render %s pdf: %w", doc.Kind, err)
	}

	out := make([]byte, buf.Len())
	copy(out, buf.B)
	return out, nil
}
