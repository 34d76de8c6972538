package order

import "warunggo/internal/domain"

// Resolver is the full pipeline: build candidate lines from the utterance
// and hints, then validate them against the snapshot. It is stateless and
// safe to share across goroutines.
type Resolver struct {
	builder *Builder
}

func NewResolver() *Resolver {
	return &Resolver{builder: NewBuilder()}
}

func (r *Resolver) Resolve(raw string, snap domain.Snapshot, hints []domain.Hint) domain.Outcome {
	if snap.Empty() {
		return domain.Outcome{Kind: domain.OutcomeEmptyCatalog}
	}
	lines := r.builder.BuildLines(raw, snap, hints)
	if len(lines) == 0 {
		return domain.Outcome{Kind: domain.OutcomeUnresolved}
	}
	return Validate(lines, snap)
}
