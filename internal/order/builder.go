// Package order turns utterances and optional intent hints into validated,
// priced order lines.
package order

import (
	"warunggo/internal/domain"
	"warunggo/internal/match"
	"warunggo/internal/text"
)

type Builder struct {
	matcher *match.Matcher
}

func NewBuilder() *Builder {
	return &Builder{matcher: match.NewMatcher()}
}

// BuildLine resolves one utterance, with at most one hint, into a candidate
// line. A valid hint field beats the inferred value; an invalid hint item
// falls back to text matching. Quantity is clamped to at least 1. It reports
// false when nothing in the text or hint names a catalog item.
func (b *Builder) BuildLine(raw string, snap domain.Snapshot, hint *domain.Hint) (domain.CandidateLine, bool) {
	normalized := text.Normalize(raw)
	if normalized == "" || snap.Empty() {
		return domain.CandidateLine{}, false
	}

	qty := 0
	if hint != nil && hint.Qty > 0 {
		qty = hint.Qty
	} else if n, ok := text.ResolveQuantity(raw); ok {
		qty = n
	}
	if qty < 1 {
		qty = 1
	}

	key := ""
	if hint != nil && hint.Item != "" {
		if candidate := text.Slug(hint.Item); snap.HasItem(candidate) {
			key = candidate
		}
	}
	if key == "" {
		matched, ok := b.matcher.Match(normalized, snap.Keys)
		if !ok {
			return domain.CandidateLine{}, false
		}
		key = matched
	}

	return domain.CandidateLine{ItemKey: key, Quantity: qty}, true
}

// BuildLines is the multi-order variant. Each hint is resolved on its own
// and dropped when its item is not a catalog key; the rest of the batch
// continues. With no hints at all it degrades to a single locally matched
// line.
func (b *Builder) BuildLines(raw string, snap domain.Snapshot, hints []domain.Hint) []domain.CandidateLine {
	if snap.Empty() {
		return nil
	}
	if len(hints) == 0 {
		line, ok := b.BuildLine(raw, snap, nil)
		if !ok {
			return nil
		}
		return []domain.CandidateLine{line}
	}

	var lines []domain.CandidateLine
	for _, hint := range hints {
		line, ok := buildHintLine(snap, hint)
		if ok {
			lines = append(lines, line)
		}
	}
	return lines
}

// buildHintLine resolves one hint from a multi-item batch. Unlike the single
// path there is no text fallback: every batch entry must name its own item.
func buildHintLine(snap domain.Snapshot, hint domain.Hint) (domain.CandidateLine, bool) {
	if hint.Item == "" {
		return domain.CandidateLine{}, false
	}
	key := text.Slug(hint.Item)
	if !snap.HasItem(key) {
		return domain.CandidateLine{}, false
	}
	qty := hint.Qty
	if qty < 1 {
		qty = 1
	}
	return domain.CandidateLine{ItemKey: key, Quantity: qty}, true
}
