package reconciliation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/concilia/backend/internal/domain/entity"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// flagDuplicateMovements is the first post-pass: movements sharing an exact
// (calendar day, amount-in-cents) pair are inherently ambiguous, so every
// member of such a group is overridden to DuplicateReview regardless of what
// the matching passes decided. Returns a new outcome list; stage-1 outcomes
// are not mutated.
func flagDuplicateMovements(
	outcomes []valueobject.ReconciliationOutcome,
	movements []*entity.BankMovement,
) []valueobject.ReconciliationOutcome {
	groups := make(map[string][]*entity.BankMovement)
	for _, m := range movements {
		if m.Date.IsZero() || m.Amount.IsZero() {
			continue // records that failed validation never form a group
		}
		key := valueobject.CentKey(m.Day(), m.Amount)
		groups[key] = append(groups[key], m)
	}

	byMovement := make(map[uuid.UUID]*entity.BankMovement, len(movements))
	for _, m := range movements {
		byMovement[m.ID] = m
	}

	result := make([]valueobject.ReconciliationOutcome, len(outcomes))
	for i, outcome := range outcomes {
		movement, ok := byMovement[outcome.MovementID]
		if !ok || movement.Date.IsZero() || movement.Amount.IsZero() {
			result[i] = outcome
			continue
		}

		group := groups[valueobject.CentKey(movement.Day(), movement.Amount)]
		if len(group) <= 1 {
			result[i] = outcome
			continue
		}

		siblings := siblingIDs(group, movement.ID)
		reason := fmt.Sprintf("%d movements share amount %s on %s (siblings: %s)",
			len(group),
			movement.Amount.Round(2).StringFixed(2),
			movement.Day().Format("2006-01-02"),
			joinIDs(siblings),
		)
		result[i] = outcome.WithReview(reason, siblings)
	}

	return result
}

// siblingIDs returns the other members of a duplicate group, sorted ascending
// for reproducible reasons.
func siblingIDs(group []*entity.BankMovement, self uuid.UUID) []uuid.UUID {
	siblings := make([]uuid.UUID, 0, len(group)-1)
	for _, m := range group {
		if m.ID != self {
			siblings = append(siblings, m.ID)
		}
	}
	sort.Slice(siblings, func(i, j int) bool {
		return siblings[i].String() < siblings[j].String()
	})
	return siblings
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, ", ")
}
