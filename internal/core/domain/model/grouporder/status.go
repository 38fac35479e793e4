package grouporder

// Status represents the lifecycle state of a group order.
// It implements a state machine with defined transitions so that group orders
// follow the coordination workflow and never reach an illegal state.
//
// State transitions:
//
//	Forming ──────────────┬──> Collecting ──> AllReady ──> Finalized
//	   │                  │        ^              │
//	   │                  │        └──────────────┘
//	   │                  │   (ready rollback reopens editing)
//	   └──> Cancelled <───┘
//	   └──> Expired  <────┴──────── (also from AllReady)
//
// Finalized, Cancelled and Expired are terminal; no transition leaves them.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Forming is the initial status: the group order exists but no one besides
	// the creator has joined yet.
	Forming

	// Collecting means at least one other participant has joined and people are
	// still adding items and declaring readiness.
	Collecting

	// AllReady means every participant has declared readiness with a non-empty
	// item list. Item lists are frozen pending finalize or a ready rollback.
	AllReady

	// Finalized means the contributions were consolidated into one order.
	// This is the only transition that produces a finalized order id.
	Finalized

	// Cancelled means the creator cancelled the group order before finalize.
	Cancelled

	// Expired means the group order's TTL elapsed before finalize.
	Expired
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Forming:    "forming",
		Collecting: "collecting",
		AllReady:   "all_ready",
		Finalized:  "finalized",
		Cancelled:  "cancelled",
		Expired:    "expired",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Forming:    "forming",
		Collecting: "collecting",
		AllReady:   "all_ready",
		Finalized:  "finalized",
		Cancelled:  "cancelled",
		Expired:    "expired",
	}
}

// StatusFromString parses the persisted/external representation of a status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, ErrStatusIsInvalid
}

// Validate checks that the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return ErrStatusIsInvalid
	}
	return nil
}

// String returns the wire-format name of the status ("forming", "all_ready", ...).
// It implements fmt.Stringer and is safe to call on invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions can leave this status.
func (s Status) IsTerminal() bool {
	return s == Finalized || s == Cancelled || s == Expired
}

// AcceptsContributions reports whether participants may join or edit item lists.
// Only Forming and Collecting accept contributions; AllReady freezes item lists.
func (s Status) AcceptsContributions() bool {
	return s == Forming || s == Collecting
}

// Collect transitions to Collecting on the first join by a non-creator.
//
// Valid transitions:
//   - Forming -> Collecting
//   - Collecting -> Collecting (subsequent joins are no-ops status-wise)
func (s Status) Collect() (Status, error) {
	if s.IsTerminal() {
		return 0, ErrGroupOrderClosed
	}
	if !s.AcceptsContributions() {
		return 0, ErrGroupOrderNotJoinable
	}
	return Collecting, nil
}

// MarkAllReady transitions to AllReady when the readiness aggregate is satisfied.
//
// Valid transitions:
//   - Collecting -> AllReady
func (s Status) MarkAllReady() (Status, error) {
	if s != Collecting {
		return 0, ErrGroupOrderLocked
	}
	return AllReady, nil
}

// Reopen rolls back to Collecting when a participant withdraws readiness.
//
// Valid transitions:
//   - AllReady -> Collecting
func (s Status) Reopen() (Status, error) {
	if s != AllReady {
		return 0, ErrGroupOrderLocked
	}
	return Collecting, nil
}

// Finalize transitions to Finalized. The force path lets the creator finalize
// before the aggregate reports all-ready; the aggregate root enforces who may force.
//
// Valid transitions:
//   - AllReady -> Finalized
//   - Forming/Collecting -> Finalized (force only)
func (s Status) Finalize(force bool) (Status, error) {
	if s.IsTerminal() {
		return 0, ErrGroupOrderClosed
	}
	if s != AllReady && !force {
		return 0, ErrGroupOrderNotReady
	}
	return Finalized, nil
}

// Cancel transitions to Cancelled.
//
// Valid transitions:
//   - Forming/Collecting -> Cancelled
//
// AllReady rejects cancellation: the contributions are frozen for finalize and a
// participant must first withdraw readiness to reopen the group order.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() {
		return 0, ErrGroupOrderClosed
	}
	if !s.AcceptsContributions() {
		return 0, ErrGroupOrderLocked
	}
	return Cancelled, nil
}

// Expire transitions to Expired once the TTL has elapsed.
//
// Valid transitions:
//   - Forming/Collecting/AllReady -> Expired
func (s Status) Expire() (Status, error) {
	if s.IsTerminal() {
		return 0, ErrGroupOrderClosed
	}
	return Expired, nil
}
