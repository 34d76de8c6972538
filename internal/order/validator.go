package order

import "warunggo/internal/domain"

// Validate checks candidate lines against the stock ledger in input order.
// The first stock failure wins and stops the check; there is no partial
// invoice for a multi-item order. Lines that pass are priced from the
// catalog.
func Validate(lines []domain.CandidateLine, snap domain.Snapshot) domain.Outcome {
	for _, line := range lines {
		available := snap.Stock[line.ItemKey]
		if available <= 0 {
			return domain.Outcome{Kind: domain.OutcomeOutOfStock, ItemKey: line.ItemKey}
		}
		if line.Quantity > available {
			return domain.Outcome{
				Kind:      domain.OutcomeInsufficientStock,
				ItemKey:   line.ItemKey,
				Available: available,
			}
		}
	}

	validated := make([]domain.ValidatedLine, 0, len(lines))
	total := 0
	for _, line := range lines {
		price := snap.Menu[line.ItemKey]
		subtotal := price * line.Quantity
		validated = append(validated, domain.ValidatedLine{
			CandidateLine: line,
			UnitPrice:     price,
			Subtotal:      subtotal,
		})
		total += subtotal
	}

	return domain.Outcome{Kind: domain.OutcomeResolved, Lines: validated, Total: total}
}
