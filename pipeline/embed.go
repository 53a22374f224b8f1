package pipeline

import (
	"context"
	"fmt"

	"github.com/poiesic/inquest/core"
)

// GenerateEmbeddings runs the embedding stage for a document: chunk the
// extracted text into overlapping word windows, embed every chunk, and
// replace the document's stored embeddings with the new set. Documents
// with no extracted text, or whose text yields no chunks, are skipped.
func (p *Pipeline) GenerateEmbeddings(ctx context.Context, documentID core.ID) error {
	doc, err := p.documents.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load document %d: %w", documentID, err)
	}
	if doc.ExtractedText == "" {
		p.logger.Info("skipping embedding generation, no text", "document", doc.Id)
		return nil
	}

	chunks := ChunkWords(doc.ExtractedText, p.chunkSize, p.chunkOverlap)
	if len(chunks) == 0 {
		p.logger.Info("skipping embedding generation, no chunks", "document", doc.Id)
		return nil
	}

	vectors, err := p.provider.Embedder().EmbedTexts(ctx, chunks)
	if err != nil {
		return fmt.Errorf("embed %d chunks of document %d: %w", len(chunks), doc.Id, err)
	}
	if len(vectors) != len(chunks) {
		return fmt.Errorf("document %d: got %d vectors for %d chunks: %w",
			doc.Id, len(vectors), len(chunks), ErrEmbeddingCountMismatch)
	}

	rows := make([]*core.Embedding, len(chunks))
	for i, chunk := range chunks {
		rows[i] = &core.Embedding{
			DocumentId: doc.Id,
			ChunkIndex: i,
			ChunkText:  chunk,
			Vector:     vectors[i],
		}
	}

	if _, err := p.embeddings.ReplaceForDocument(ctx, doc.Id, rows); err != nil {
		return fmt.Errorf("store embeddings for document %d: %w", doc.Id, err)
	}

	p.logger.Info("generated embeddings", "document", doc.Id, "chunks", len(chunks))
	return nil
}
