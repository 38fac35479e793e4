package grouporder

import (
	"errors"
	"time"

	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/errs"
	"grouporder/internal/pkg/guard"
)

// DefaultTTL is the group order lifetime observed in product behavior.
const DefaultTTL = time.Hour

// Business outcomes of group order operations. All of these are expected,
// user-facing results and are matched with errors.Is at the transport boundary.
var (
	// ErrGroupOrderIsNotConstructed is returned when a GroupOrder instance was not
	// created through NewGroupOrder or RestoreGroupOrder.
	ErrGroupOrderIsNotConstructed = errors.New("GroupOrder must be created via NewGroupOrder constructor")
	// ErrStatusIsInvalid is returned for status values outside the defined enum.
	ErrStatusIsInvalid = errs.NewValueIsInvalidError("status")
	// ErrGroupOrderNotJoinable is returned when join is attempted outside Forming/Collecting.
	ErrGroupOrderNotJoinable = errors.New("group order is not accepting participants")
	// ErrGroupOrderLocked is returned when item lists are frozen (AllReady).
	ErrGroupOrderLocked = errors.New("group order is locked for editing")
	// ErrGroupOrderClosed is returned for any mutation of a terminal group order.
	ErrGroupOrderClosed = errors.New("group order is closed")
	// ErrGroupOrderExpired is returned when the TTL elapsed before the operation.
	ErrGroupOrderExpired = errors.New("group order has expired")
	// ErrGroupOrderNotReady is returned when finalize is attempted before all-ready
	// without the creator's explicit override.
	ErrGroupOrderNotReady = errors.New("group order is not all ready")
	// ErrEmptyContribution is returned when readiness is declared over an empty item list.
	ErrEmptyContribution = errors.New("cannot declare ready with no items")
	// ErrNothingToFinalize is returned when finalize would produce an order with no lines.
	ErrNothingToFinalize = errors.New("no participant has contributed any items")
	// ErrForbidden is returned when the acting identity does not own the resource.
	ErrForbidden = errors.New("actor is not allowed to perform this operation")
	// ErrParticipantNotFound is returned when the target user never joined.
	ErrParticipantNotFound = errors.New("participant not found")
)

// GroupOrder is the aggregate root for one jointly built order. It owns the
// participant ledger and is the unit of mutual exclusion: all state-changing
// operations on one group order are serialized through an optimistic version
// check at the storage layer, so a join, a concurrent ready call and the expiry
// reaper can never interleave into an inconsistent status.
//
// Invariants:
//   - creator and share token are set at creation and never change
//   - a user joins at most once; rejoining returns the existing participant
//   - item lists are mutable only while the status accepts contributions
//   - finalizedOrderID is set if and only if status is Finalized
//   - a group order past expiresAt can never transition to Finalized
type GroupOrder struct {
	id               kernel.UUID
	creatorID        kernel.UUID
	title            string
	initialBudget    int64
	shareToken       ShareToken
	status           Status
	createdAt        time.Time
	expiresAt        time.Time
	finalizedOrderID *kernel.UUID
	participants     []*Participant

	// version backs the storage-layer compare-and-swap. It is read and bumped by
	// the repository, never by domain logic.
	version int

	guard guard.ConstructorGuard
}

// NewGroupOrder creates a group order in Forming status with a freshly minted
// share token. The token lives exactly as long as the group order: resolution
// re-checks expiresAt, so no separate token expiry is tracked.
func NewGroupOrder(
	id kernel.UUID,
	creatorID kernel.UUID,
	title string,
	initialBudget int64,
	createdAt time.Time,
	ttl time.Duration,
) (*GroupOrder, error) {
	if err := errors.Join(id.Validate(), creatorID.Validate()); err != nil {
		return nil, err
	}
	if ttl <= 0 {
		return nil, errs.NewValueIsInvalidError("ttl")
	}
	if initialBudget < 0 {
		return nil, errs.NewValueIsInvalidError("initial budget")
	}

	token, err := MintShareToken()
	if err != nil {
		return nil, err
	}

	createdAt = createdAt.UTC()
	return &GroupOrder{
		id:            id,
		creatorID:     creatorID,
		title:         title,
		initialBudget: initialBudget,
		shareToken:    token,
		status:        Forming,
		createdAt:     createdAt,
		expiresAt:     createdAt.Add(ttl),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// RestoreGroupOrder reconstructs a group order from persistent storage,
// including its participant ledger and the storage version used for
// optimistic concurrency control.
func RestoreGroupOrder(
	id kernel.UUID,
	creatorID kernel.UUID,
	title string,
	initialBudget int64,
	shareToken ShareToken,
	status Status,
	createdAt time.Time,
	expiresAt time.Time,
	finalizedOrderID *kernel.UUID,
	participants []*Participant,
	version int,
) (*GroupOrder, error) {
	if err := errors.Join(
		id.Validate(),
		creatorID.Validate(),
		shareToken.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("group order version")
	}
	if initialBudget < 0 {
		return nil, errs.NewValueIsInvalidError("initial budget")
	}

	g := &GroupOrder{
		id:               id,
		creatorID:        creatorID,
		title:            title,
		initialBudget:    initialBudget,
		shareToken:       shareToken,
		status:           status,
		createdAt:        createdAt.UTC(),
		expiresAt:        expiresAt.UTC(),
		finalizedOrderID: finalizedOrderID,
		participants:     participants,
		version:          version,
		guard:            guard.NewConstructorGuard(),
	}

	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks construction and the finalized-order invariant.
func (g *GroupOrder) Validate() error {
	if g == nil {
		return ErrGroupOrderIsNotConstructed
	}
	if err := g.guard.Validate(ErrGroupOrderIsNotConstructed); err != nil {
		return err
	}
	if (g.status == Finalized) != (g.finalizedOrderID != nil) {
		return errs.NewValueIsInvalidError("finalized order id must be set exactly when status is finalized")
	}
	return nil
}

// IsEqual compares two group orders by identifier.
func (g *GroupOrder) IsEqual(other *GroupOrder) bool {
	return other != nil && g.id.IsEqual(other.id)
}

// ID returns the group order's unique identifier.
func (g *GroupOrder) ID() kernel.UUID {
	return g.id
}

// CreatorID returns the owning identity set at creation.
func (g *GroupOrder) CreatorID() kernel.UUID {
	return g.creatorID
}

// Title returns the display title, possibly empty.
func (g *GroupOrder) Title() string {
	return g.title
}

// InitialBudget returns the budget seeded by the creator at creation, in
// minor currency units.
func (g *GroupOrder) InitialBudget() int64 {
	return g.initialBudget
}

// TotalBudget returns the initial budget plus every participant's chip-in.
func (g *GroupOrder) TotalBudget() int64 {
	total := g.initialBudget
	for _, p := range g.participants {
		total += p.budgetContribution
	}
	return total
}

// ShareToken returns the join credential bound to this group order.
func (g *GroupOrder) ShareToken() ShareToken {
	return g.shareToken
}

// Status returns the current lifecycle state.
func (g *GroupOrder) Status() Status {
	return g.status
}

// CreatedAt returns the creation instant in UTC.
func (g *GroupOrder) CreatedAt() time.Time {
	return g.createdAt
}

// ExpiresAt returns the absolute expiry instant in UTC.
func (g *GroupOrder) ExpiresAt() time.Time {
	return g.expiresAt
}

// FinalizedOrderID returns the consolidated order id, nil unless Finalized.
func (g *GroupOrder) FinalizedOrderID() *kernel.UUID {
	return g.finalizedOrderID
}

// Participants returns the participant ledger in join order.
func (g *GroupOrder) Participants() []*Participant {
	return g.participants
}

// Version returns the storage version for optimistic concurrency control.
func (g *GroupOrder) Version() int {
	return g.version
}

// Participant finds a participant by user id.
func (g *GroupOrder) Participant(userID kernel.UUID) (*Participant, bool) {
	for _, p := range g.participants {
		if p.UserID().IsEqual(userID) {
			return p, true
		}
	}
	return nil, false
}

// IsExpiredAt reports whether the TTL elapsed at the given instant.
func (g *GroupOrder) IsExpiredAt(now time.Time) bool {
	return !now.Before(g.expiresAt)
}

// Join adds a user to the participant ledger. The second return value reports
// whether this call created the membership.
//
// Join is idempotent: a user who already joined gets their existing participant
// back unchanged, with no reset of items or readiness. The first join by someone
// other than the creator moves the group order from Forming to Collecting.
func (g *GroupOrder) Join(userID kernel.UUID, now time.Time) (*Participant, bool, error) {
	if err := userID.Validate(); err != nil {
		return nil, false, err
	}
	if err := g.ensureOpen(now); err != nil {
		return nil, false, err
	}

	if existing, ok := g.Participant(userID); ok {
		return existing, false, nil
	}

	if !g.status.AcceptsContributions() {
		return nil, false, ErrGroupOrderNotJoinable
	}

	participant, err := NewParticipant(userID, now)
	if err != nil {
		return nil, false, err
	}
	g.participants = append(g.participants, participant)

	if !userID.IsEqual(g.creatorID) {
		newStatus, statusErr := g.status.Collect()
		if statusErr != nil {
			return nil, false, statusErr
		}
		g.status = newStatus
	}

	return participant, true, nil
}

// ChangeItems replaces a participant's item list.
//
// Only the owning identity may change its own list; the creator has no special
// power here and edits only their own contribution. Changing items withdraws the
// participant's readiness so the new selection must be re-confirmed.
func (g *GroupOrder) ChangeItems(actorID, targetUserID kernel.UUID, items []Item, now time.Time) error {
	if !actorID.IsEqual(targetUserID) {
		return ErrForbidden
	}
	// Any status outside forming/collecting reports the list as locked,
	// terminal states included; expiry still wins when it elapsed unnoticed.
	if !g.status.IsTerminal() && g.IsExpiredAt(now) {
		return ErrGroupOrderExpired
	}
	if !g.status.AcceptsContributions() {
		return ErrGroupOrderLocked
	}

	participant, ok := g.Participant(targetUserID)
	if !ok {
		return ErrParticipantNotFound
	}

	participant.setItems(items)
	return nil
}

// ChipInToBudget adds to the acting participant's budget contribution. The
// actor must have joined first; contributions are additive and accepted until
// the group order reaches a terminal state or its TTL elapses. Chipping in
// never touches the item ledger or readiness.
func (g *GroupOrder) ChipInToBudget(actorID kernel.UUID, amount int64, now time.Time) error {
	if amount <= 0 {
		return errs.NewValueIsInvalidError("amount")
	}
	if err := g.ensureOpen(now); err != nil {
		return err
	}

	participant, ok := g.Participant(actorID)
	if !ok {
		return ErrParticipantNotFound
	}

	participant.chipIn(amount)
	return nil
}

// SetReady declares or withdraws a participant's readiness and recomputes the
// aggregate status synchronously, so the caller's view of the status reflects
// this call before it returns.
//
// Declaring ready over an empty item list fails with ErrEmptyContribution and
// mutates nothing. Withdrawing readiness while AllReady reopens editing for
// everyone by rolling the status back to Collecting.
func (g *GroupOrder) SetReady(actorID, targetUserID kernel.UUID, ready bool, now time.Time) error {
	if !actorID.IsEqual(targetUserID) {
		return ErrForbidden
	}
	if err := g.ensureOpen(now); err != nil {
		return err
	}

	participant, ok := g.Participant(targetUserID)
	if !ok {
		return ErrParticipantNotFound
	}

	if ready {
		if g.status != Collecting && g.status != Forming {
			return ErrGroupOrderLocked
		}
		if !participant.HasItems() {
			return ErrEmptyContribution
		}
		participant.setReady(true)

		if g.status == Collecting && g.allParticipantsReady() {
			newStatus, err := g.status.MarkAllReady()
			if err != nil {
				return err
			}
			g.status = newStatus
		}
		return nil
	}

	if g.status == AllReady {
		newStatus, err := g.status.Reopen()
		if err != nil {
			return err
		}
		g.status = newStatus
	} else if !g.status.AcceptsContributions() {
		return ErrGroupOrderClosed
	}
	participant.setReady(false)
	return nil
}

// Finalize irreversibly closes the group order and records the consolidated
// order id. Only the creator may finalize. Without force the status must be
// AllReady; with force the creator may finalize early as long as at least one
// participant has contributed items. A group order past its expiry can never
// finalize, whatever its in-memory status says.
func (g *GroupOrder) Finalize(actorID, finalizedOrderID kernel.UUID, force bool, now time.Time) error {
	if err := finalizedOrderID.Validate(); err != nil {
		return err
	}
	if !actorID.IsEqual(g.creatorID) {
		return ErrForbidden
	}
	if err := g.ensureOpen(now); err != nil {
		return err
	}
	if !g.hasAnyItems() {
		return ErrNothingToFinalize
	}

	newStatus, err := g.status.Finalize(force)
	if err != nil {
		return err
	}

	g.status = newStatus
	g.finalizedOrderID = &finalizedOrderID
	return nil
}

// Cancel closes the group order without producing an order. Creator-only.
func (g *GroupOrder) Cancel(actorID kernel.UUID, now time.Time) error {
	if !actorID.IsEqual(g.creatorID) {
		return ErrForbidden
	}
	if err := g.ensureOpen(now); err != nil {
		return err
	}

	newStatus, err := g.status.Cancel()
	if err != nil {
		return err
	}
	g.status = newStatus
	return nil
}

// Expire transitions an elapsed group order to Expired. Called by the reaper
// sweep and by the lazy expiry check on access. The participant ledger is kept
// frozen for audit, never deleted.
func (g *GroupOrder) Expire(now time.Time) error {
	if g.status.IsTerminal() {
		return ErrGroupOrderClosed
	}
	if !g.IsExpiredAt(now) {
		return errs.NewValueIsInvalidError("group order has not reached its expiry")
	}

	newStatus, err := g.status.Expire()
	if err != nil {
		return err
	}
	g.status = newStatus
	return nil
}

// ensureOpen rejects operations on terminal or elapsed group orders.
// Elapsed-but-not-yet-reaped orders report ErrGroupOrderExpired so the caller
// can persist the lazy expiry transition before answering.
func (g *GroupOrder) ensureOpen(now time.Time) error {
	if g.status.IsTerminal() {
		return ErrGroupOrderClosed
	}
	if g.IsExpiredAt(now) {
		return ErrGroupOrderExpired
	}
	return nil
}

func (g *GroupOrder) allParticipantsReady() bool {
	if len(g.participants) == 0 {
		return false
	}
	for _, p := range g.participants {
		if !p.IsReady() || !p.HasItems() {
			return false
		}
	}
	return true
}

func (g *GroupOrder) hasAnyItems() bool {
	for _, p := range g.participants {
		if p.HasItems() {
			return true
		}
	}
	return false
}
