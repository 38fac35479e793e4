package services

import (
	"grouporder/internal/core/domain/model/grouporder"
)

// Readiness is the aggregate readiness snapshot for one group order.
type Readiness struct {
	ReadyCount int
	TotalCount int
	AllReady   bool
}

// ReadinessAggregator computes overall group readiness from the participant
// ledger. It is a pure function over the aggregate snapshot: no hidden state,
// so concurrent recomputes over different snapshots cannot disagree with the
// snapshot they were given.
type ReadinessAggregator struct{}

// NewReadinessAggregator creates a readiness aggregator.
func NewReadinessAggregator() *ReadinessAggregator {
	return &ReadinessAggregator{}
}

// Recompute counts declared-ready participants and decides whether the
// all-ready finalize condition is met.
//
// All-ready requires at least one participant and every participant both ready
// and holding a non-empty item list. A group order nobody joined can therefore
// never become all-ready through this path; finalizing it takes the creator's
// explicit override.
func (a *ReadinessAggregator) Recompute(g *grouporder.GroupOrder) Readiness {
	participants := g.Participants()

	result := Readiness{TotalCount: len(participants)}
	allReady := len(participants) > 0
	for _, p := range participants {
		if p.IsReady() {
			result.ReadyCount++
		}
		if !p.IsReady() || !p.HasItems() {
			allReady = false
		}
	}
	result.AllReady = allReady
	return result
}
