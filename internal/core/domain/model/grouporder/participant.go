package grouporder

import (
	"time"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/errs"
)

// Participant is a child entity of the GroupOrder aggregate: one user's
// contribution to the shared order. A user appears at most once per group order.
//
// Participants are only mutated through the aggregate root, which enforces
// ownership and status guards before delegating here.
type Participant struct {
	userID             kernel.UUID
	items              []Item
	isReady            bool
	budgetContribution int64
	joinedAt           time.Time
}

// NewParticipant creates a participant with no items and readiness unset.
func NewParticipant(userID kernel.UUID, joinedAt time.Time) (*Participant, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	return &Participant{
		userID:   userID,
		joinedAt: joinedAt.UTC(),
	}, nil
}

// RestoreParticipant reconstructs a participant from persistent storage.
func RestoreParticipant(
	userID kernel.UUID,
	items []Item,
	isReady bool,
	budgetContribution int64,
	joinedAt time.Time,
) (*Participant, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	if budgetContribution < 0 {
		return nil, errs.NewValueIsInvalidError("budget contribution")
	}

	return &Participant{
		userID:             userID,
		items:              items,
		isReady:            isReady,
		budgetContribution: budgetContribution,
		joinedAt:           joinedAt.UTC(),
	}, nil
}

// UserID returns the identity this participant belongs to.
func (p *Participant) UserID() kernel.UUID {
	return p.userID
}

// Items returns a copy of the participant's item list.
func (p *Participant) Items() []Item {
	items := make([]Item, len(p.items))
	copy(items, p.items)
	return items
}

// IsReady reports whether the participant has declared readiness.
func (p *Participant) IsReady() bool {
	return p.isReady
}

// BudgetContribution returns what this participant chipped into the shared
// budget, in minor currency units.
func (p *Participant) BudgetContribution() int64 {
	return p.budgetContribution
}

// JoinedAt returns when the participant joined, in UTC.
func (p *Participant) JoinedAt() time.Time {
	return p.joinedAt
}

// HasItems reports whether the participant has contributed anything.
func (p *Participant) HasItems() bool {
	return len(p.items) > 0
}

// Subtotal returns the sum of the participant's line subtotals.
func (p *Participant) Subtotal() int64 {
	var sum int64
	for _, item := range p.items {
		sum += item.Subtotal()
	}
	return sum
}

// setItems replaces the item list and withdraws readiness: a changed selection
// must be re-confirmed before the group can reach all-ready again.
func (p *Participant) setItems(items []Item) {
	p.items = make([]Item, len(items))
	copy(p.items, items)
	p.isReady = false
}

func (p *Participant) setReady(ready bool) {
	p.isReady = ready
}

// chipIn adds to the participant's budget contribution. Contributions are
// additive and never withdrawn.
func (p *Participant) chipIn(amount int64) {
	p.budgetContribution += amount
}
