package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/inquest/core"
)

// ExtractText runs the text extraction stage for a document: parse the
// source file, join the page texts, repair extraction artifacts, and
// persist the result. On success the document moves to text_extracted
// and the downstream ner and embed jobs are enqueued; on failure the
// document is marked failed and the error is returned so the job is
// failed too.
func (p *Pipeline) ExtractText(ctx context.Context, documentID core.ID) error {
	doc, err := p.documents.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load document %d: %w", documentID, err)
	}

	pages, err := p.parser.ExtractPages(doc.SourcePath)
	if err != nil {
		p.markFailed(ctx, doc)
		return fmt.Errorf("extract pages from %s: %w", doc.SourcePath, err)
	}

	nonEmpty := make([]string, 0, len(pages))
	for _, page := range pages {
		if strings.TrimSpace(page) != "" {
			nonEmpty = append(nonEmpty, page)
		}
	}

	doc.ExtractedText = Repair(strings.Join(nonEmpty, pageBreak))
	doc.PageCount = len(pages)
	doc.Status = core.DocumentTextExtracted
	doc.NeedsOCR = needsOCR(doc.ExtractedText, doc.PageCount)
	if doc.NeedsOCR {
		p.logger.Info("document likely needs OCR",
			"document", doc.Id, "pages", doc.PageCount,
			"chars", utf8.RuneCountInString(doc.ExtractedText))
	}

	if _, err := p.documents.UpdateDocuments(ctx, doc); err != nil {
		return fmt.Errorf("store extracted text for %d: %w", doc.Id, err)
	}

	// Fan out the stages that consume the extracted text.
	_, err = p.jobs.AddJobs(ctx,
		&core.ProcessingJob{DocumentId: doc.Id, Kind: core.JobNER, Priority: PriorityNER},
		&core.ProcessingJob{DocumentId: doc.Id, Kind: core.JobEmbed, Priority: PriorityEmbed},
	)
	if err != nil {
		return fmt.Errorf("enqueue downstream jobs for %d: %w", doc.Id, err)
	}

	p.logger.Info("extracted text", "document", doc.Id, "pages", doc.PageCount,
		"chars", utf8.RuneCountInString(doc.ExtractedText))
	return nil
}

// markFailed records extraction failure on the document, best effort.
func (p *Pipeline) markFailed(ctx context.Context, doc *core.Document) {
	doc.Status = core.DocumentFailed
	if _, err := p.documents.UpdateDocuments(ctx, doc); err != nil {
		p.logger.Warn("failed to mark document failed", "document", doc.Id, "err", err)
	}
}

// needsOCR reports whether the text density is too low to be a real
// extraction, which usually means the pages are scanned images.
func needsOCR(text string, pageCount int) bool {
	if pageCount <= 0 {
		return false
	}
	return utf8.RuneCountInString(text)/pageCount < minCharsPerPage
}
