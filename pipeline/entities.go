package pipeline

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/poiesic/inquest/ai"
	"github.com/poiesic/inquest/core"
)

// ExtractEntities runs the entity extraction stage for a document. The
// extracted text is fed through the entity recognizer in segments that
// fit its input window; the recognized spans are normalized, grouped by
// canonical identity, and recorded as mentions against corpus-wide
// entities. Documents with no extracted text are skipped.
func (p *Pipeline) ExtractEntities(ctx context.Context, documentID core.ID) error {
	doc, err := p.documents.GetDocument(ctx, documentID)
	if err != nil {
		return fmt.Errorf("load document %d: %w", documentID, err)
	}
	if doc.ExtractedText == "" {
		p.logger.Info("skipping entity extraction, no text", "document", doc.Id)
		return nil
	}

	recognizer := p.provider.EntityRecognizer()
	segments := SegmentRunes(doc.ExtractedText, recognizer.MaxInputLength())

	type group struct {
		name       string
		entityType string
		mentions   []*core.EntityMention
	}
	groups := make(map[string]*group)
	var order []string

	for _, seg := range segments {
		recognized, err := recognizer.Recognize(ctx, seg.Text)
		if err != nil {
			return fmt.Errorf("recognize entities in document %d: %w", doc.Id, err)
		}

		segRunes := []rune(seg.Text)
		for _, ent := range recognized {
			if !ai.SupportedEntityType(ent.Label) {
				continue
			}
			// The normalized name is the canonical identity; case is
			// preserved, so "IBM" and "ibm" stay distinct entities.
			name := normalizeEntityName(ent.Text)
			if name == "" {
				continue
			}

			key := ent.Label + ":" + name
			g, ok := groups[key]
			if !ok {
				g = &group{name: name, entityType: ent.Label}
				groups[key] = g
				order = append(order, key)
			}
			g.mentions = append(g.mentions, &core.EntityMention{
				DocumentId: doc.Id,
				CharOffset: seg.Offset + ent.Start,
				Context:    mentionContext(segRunes, ent.Start, ent.End),
				Confidence: 1.0,
			})
		}
	}

	total := 0
	for _, key := range order {
		g := groups[key]
		if _, err := p.entities.RecordMentions(ctx, g.name, g.name, g.entityType, g.mentions); err != nil {
			return fmt.Errorf("record mentions of %q in document %d: %w", g.name, doc.Id, err)
		}
		total += len(g.mentions)
	}

	p.logger.Info("extracted entities", "document", doc.Id,
		"entities", len(groups), "mentions", total)
	return nil
}

// normalizeEntityName cleans up a recognized entity span: trim
// whitespace, strip punctuation from the edges, and collapse internal
// whitespace runs. Names shorter than two runes are dropped.
func normalizeEntityName(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, `.,;:!?()[]{}"'`)
	name = strings.Join(strings.Fields(name), " ")
	if utf8.RuneCountInString(name) < 2 {
		return ""
	}
	return name
}

// mentionContext returns the text surrounding a mention, up to
// contextWindow runes on each side, clipped to the segment.
func mentionContext(segRunes []rune, start, end int) string {
	lo := start - contextWindow
	if lo < 0 {
		lo = 0
	}
	hi := end + contextWindow
	if hi > len(segRunes) {
		hi = len(segRunes)
	}
	if lo >= hi {
		return ""
	}
	return string(segRunes[lo:hi])
}
