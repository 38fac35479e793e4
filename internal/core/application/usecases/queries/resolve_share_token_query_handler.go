package queries

import (
	"context"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ResolveShareTokenQueryHandler resolves share tokens against the database.
// A token maps to exactly one group order for that order's whole life; expiry
// is checked against expires_at, so the answer stays correct even before the
// expired transition was persisted.
type ResolveShareTokenQueryHandler struct {
	db *gorm.DB
}

// NewResolveShareTokenQueryHandler creates a handler for token resolution.
// Requires a GORM database connection for query execution.
func NewResolveShareTokenQueryHandler(db *gorm.DB) ResolveShareTokenQueryHandler {
	return ResolveShareTokenQueryHandler{db: db}
}

// Handle executes the token resolution.
// Returns an ObjectNotFoundError for tokens that match no group order.
func (h ResolveShareTokenQueryHandler) Handle(
	ctx context.Context,
	query ResolveShareTokenQuery,
) (ResolveShareTokenQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return ResolveShareTokenQueryResponse{}, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			creator_id,
			title,
			status,
			expires_at
		FROM group_orders
		WHERE share_token = ?
	`, query.Token().String()).Rows()
	if err != nil {
		return ResolveShareTokenQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return ResolveShareTokenQueryResponse{}, err
		}
		return ResolveShareTokenQueryResponse{},
			errs.NewObjectNotFoundError("shareToken", query.Token().String())
	}

	var (
		id        uuid.UUID
		creatorID uuid.UUID
		title     string
		status    int
		expiresAt time.Time
	)
	if err = rows.Scan(&id, &creatorID, &title, &status, &expiresAt); err != nil {
		return ResolveShareTokenQueryResponse{}, err
	}

	response := ResolveShareTokenQueryResponse{Title: title, ExpiresAt: expiresAt.UTC()}
	if response.GroupOrderID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return ResolveShareTokenQueryResponse{}, err
	}
	if response.CreatorID, err = kernel.UUIDFromBytes(creatorID[:]); err != nil {
		return ResolveShareTokenQueryResponse{}, err
	}
	response.Status = effectiveStatus(grouporder.Status(status), response.ExpiresAt, time.Now().UTC()).String()

	return response, nil
}
