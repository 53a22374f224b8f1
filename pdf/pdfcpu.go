package pdf

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// CpuParser implements Parser using pdfcpu for structure-aware parsing.
// Text and geometry come from the page content streams; raster pixel
// data is never decoded.
type CpuParser struct {
	logger *slog.Logger
}

var _ Parser = (*CpuParser)(nil)

// NewParser creates a pdfcpu-backed Parser.
func NewParser() Parser {
	return &CpuParser{
		logger: slog.Default().With("component", "pdf-parser"),
	}
}

// ExtractPages extracts text per page via pdfcpu content streams.
func (p *CpuParser) ExtractPages(path string) ([]string, error) {
	ctx, err := p.readContext(path)
	if err != nil {
		return nil, err
	}

	pages := make([]string, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		pages[pageNr-1] = p.extractPageText(ctx, pageNr)
	}
	return pages, nil
}

// Geometry returns per-page dimensions and filled rectangles.
func (p *CpuParser) Geometry(path string) ([]PageGeometry, error) {
	ctx, err := p.readContext(path)
	if err != nil {
		return nil, err
	}

	dims, err := ctx.PageDims()
	if err != nil {
		return nil, fmt.Errorf("pdfcpu page dims: %w", err)
	}

	geometry := make([]PageGeometry, ctx.PageCount)
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		page := PageGeometry{Page: pageNr}
		if pageNr-1 < len(dims) {
			page.Width = dims[pageNr-1].Width
			page.Height = dims[pageNr-1].Height
		}

		data := p.pageContent(ctx, pageNr)
		if len(data) > 0 {
			page.Rects = extractFilledRects(data)
		}
		geometry[pageNr-1] = page
	}
	return geometry, nil
}

// readContext opens and validates the PDF.
func (p *CpuParser) readContext(path string) (*model.Context, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	ctx, err := api.ReadValidateAndOptimize(f, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}
	return ctx, nil
}

// extractPageText extracts text from a single PDF page content stream.
func (p *CpuParser) extractPageText(ctx *model.Context, pageNr int) string {
	data := p.pageContent(ctx, pageNr)
	if len(data) == 0 {
		return ""
	}
	return extractTextFromStream(data)
}

// pageContent reads a page's raw content stream, empty on failure.
func (p *CpuParser) pageContent(ctx *model.Context, pageNr int) []byte {
	r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
	if err != nil {
		p.logger.Debug("failed to extract page content", "page", pageNr, "err", err)
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		p.logger.Debug("failed to read page content", "page", pageNr, "err", err)
		return nil
	}
	return data
}
