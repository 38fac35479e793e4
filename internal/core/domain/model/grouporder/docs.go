// Package grouporder provides the domain model for coordinating one order built
// jointly by several people. It implements the GroupOrder aggregate root with its
// participant ledger, share token and lifecycle state machine.
//
// The package includes:
//   - GroupOrder: the aggregate root owning membership, contributions and lifecycle
//   - Participant: one user's item list and readiness flag within a group order
//   - Item: a single contributed dish line with a catalogue price snapshot
//   - Status: the closed lifecycle enum owning all legal transitions
//   - ShareToken: the opaque, unguessable join credential
//
// Key business rules:
//   - joining is idempotent per user; the first non-creator join starts collecting
//   - item lists belong to their participant and freeze once everyone is ready
//   - readiness requires a non-empty item list; withdrawing it reopens editing
//   - finalize is creator-only, irreversible, and impossible after expiry
//   - expiry and cancellation freeze the ledger for audit instead of deleting it
//
// The aggregate is the unit of mutual exclusion: the persistence layer serializes
// all writes to one group order through an optimistic version check, surfacing
// lost races as retryable conflicts.
package grouporder
