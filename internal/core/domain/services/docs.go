// Package services contains stateless domain services for group order
// coordination: readiness aggregation over the participant ledger and
// consolidation of participant contributions into one finalized order.
//
// Both services are pure functions over an aggregate snapshot. They hold no
// state of their own, so a fresh instance per call is cheap and safe.
package services
