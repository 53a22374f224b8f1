package pipeline

import (
	"context"
	"fmt"
	"math"

	"github.com/poiesic/inquest/core"
	"github.com/poiesic/inquest/pdf"
)

const (
	// maxRedactionDarkness is the per-channel fill level at or above
	// which a rectangle is no longer considered a redaction mark.
	maxRedactionDarkness = 0.1

	// minRedactionArea filters out hairline rules and table borders,
	// in square points.
	minRedactionArea = 100.0

	// maxRectsPerPage bounds the stored per-page rectangle list.
	maxRectsPerPage = 20
)

// DetectRedaction runs the redaction analysis stage for a document. It
// scans each page's vector geometry for large dark filled rectangles
// and stores a per-page and per-document redacted-area ratio. The
// document's status is not changed; a failure fails only the job.
func (p *Pipeline) DetectRedaction(ctx context.Context, documentID core.ID) error {
	doc, err := p.documents.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load document %d: %w", documentID, err)
	}

	geometry, err := p.parser.Geometry(doc.SourcePath)
	if err != nil {
		return fmt.Errorf("read geometry from %s: %w", doc.SourcePath, err)
	}

	detail := analyzeRedactions(geometry)
	doc.RedactionScore = detail.Score
	doc.RedactionDetail = detail

	if _, err := p.documents.UpdateDocuments(ctx, doc); err != nil {
		return fmt.Errorf("store redaction detail for %d: %w", doc.Id, err)
	}

	p.logger.Info("analyzed redactions", "document", doc.Id,
		"score", detail.Score, "pages_with_redactions", detail.PagesWithRedactions)
	return nil
}

// analyzeRedactions computes redacted-area ratios from page geometry.
func analyzeRedactions(geometry []pdf.PageGeometry) core.RedactionDetail {
	detail := core.RedactionDetail{TotalPages: len(geometry)}

	var totalArea, totalRedacted float64
	for _, page := range geometry {
		pageArea := page.Width * page.Height
		totalArea += pageArea

		var redacted float64
		var rects []core.Rect
		count := 0
		for _, r := range page.Rects {
			if !isRedactionRect(r) {
				continue
			}
			redacted += math.Abs(r.Width * r.Height)
			count++
			if len(rects) < maxRectsPerPage {
				rects = append(rects, core.Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height})
			}
		}

		if count > 0 {
			totalRedacted += redacted
			detail.PagesWithRedactions++
		}

		// Clean pages get a zero row so the detail covers every page.
		score := 0.0
		if pageArea > 0 && redacted > 0 {
			score = roundScore(redacted / pageArea)
		}
		detail.Pages = append(detail.Pages, core.PageRedactions{
			Page:           page.Page,
			Score:          score,
			RedactionCount: count,
			Rects:          rects,
		})
	}

	if totalArea > 0 {
		detail.Score = roundScore(totalRedacted / totalArea)
	}
	return detail
}

// isRedactionRect reports whether a filled rectangle looks like a
// redaction mark: dark on every channel and bigger than incidental
// line work.
func isRedactionRect(r pdf.FilledRect) bool {
	if r.R >= maxRedactionDarkness || r.G >= maxRedactionDarkness || r.B >= maxRedactionDarkness {
		return false
	}
	return math.Abs(r.Width*r.Height) > minRedactionArea
}

// roundScore rounds a ratio to four decimal places.
func roundScore(x float64) float64 {
	return math.Round(x*10000) / 10000
}
