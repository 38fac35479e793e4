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

// effectiveStatus overlays lazy expiry on the stored status: an elapsed
// non-terminal group order reads as expired even before a command or the
// reaper persisted the transition.
func effectiveStatus(status grouporder.Status, expiresAt, now time.Time) grouporder.Status {
	if !status.IsTerminal() && !now.Before(expiresAt) {
		return grouporder.Expired
	}
	return status
}

// GetGroupOrderStatusQueryHandler reads the status view straight from the
// database. Readiness counts are recomputed from the participant rows on
// every poll, never cached.
type GetGroupOrderStatusQueryHandler struct {
	db *gorm.DB
}

// NewGetGroupOrderStatusQueryHandler creates a handler for status polls.
// Requires a GORM database connection for query execution.
func NewGetGroupOrderStatusQueryHandler(db *gorm.DB) GetGroupOrderStatusQueryHandler {
	return GetGroupOrderStatusQueryHandler{db: db}
}

// Handle executes the status poll.
// Returns an ObjectNotFoundError when the group order does not exist.
func (h GetGroupOrderStatusQueryHandler) Handle(
	ctx context.Context,
	query GetGroupOrderStatusQuery,
) (GetGroupOrderStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetGroupOrderStatusQueryResponse{}, err
	}

	response, err := h.readGroupOrder(ctx, query.GroupOrderID())
	if err != nil {
		return GetGroupOrderStatusQueryResponse{}, err
	}

	if err = h.readParticipants(ctx, query.GroupOrderID(), &response); err != nil {
		return GetGroupOrderStatusQueryResponse{}, err
	}

	return response, nil
}

func (h GetGroupOrderStatusQueryHandler) readGroupOrder(
	ctx context.Context,
	groupOrderID kernel.UUID,
) (GetGroupOrderStatusQueryResponse, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			creator_id,
			title,
			initial_budget,
			status,
			expires_at,
			finalized_order_id
		FROM group_orders
		WHERE id = ?
	`, groupOrderID.String()).Rows()
	if err != nil {
		return GetGroupOrderStatusQueryResponse{}, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return GetGroupOrderStatusQueryResponse{}, err
		}
		return GetGroupOrderStatusQueryResponse{},
			errs.NewObjectNotFoundError("groupOrderID", groupOrderID)
	}

	var (
		id               uuid.UUID
		creatorID        uuid.UUID
		title            string
		initialBudget    int64
		status           int
		expiresAt        time.Time
		finalizedOrderID uuid.NullUUID
	)
	if err = rows.Scan(&id, &creatorID, &title, &initialBudget, &status, &expiresAt, &finalizedOrderID); err != nil {
		return GetGroupOrderStatusQueryResponse{}, err
	}

	response := GetGroupOrderStatusQueryResponse{
		Title:         title,
		InitialBudget: initialBudget,
		ExpiresAt:     expiresAt.UTC(),
	}

	if response.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetGroupOrderStatusQueryResponse{}, err
	}
	if response.CreatorID, err = kernel.UUIDFromBytes(creatorID[:]); err != nil {
		return GetGroupOrderStatusQueryResponse{}, err
	}
	if finalizedOrderID.Valid {
		finalizedID, idErr := kernel.UUIDFromBytes(finalizedOrderID.UUID[:])
		if idErr != nil {
			return GetGroupOrderStatusQueryResponse{}, idErr
		}
		response.FinalizedOrderID = &finalizedID
	}

	response.Status = effectiveStatus(grouporder.Status(status), response.ExpiresAt, time.Now().UTC()).String()
	return response, nil
}

func (h GetGroupOrderStatusQueryHandler) readParticipants(
	ctx context.Context,
	groupOrderID kernel.UUID,
	response *GetGroupOrderStatusQueryResponse,
) error {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.user_id,
			p.is_ready,
			p.budget_contribution,
			p.joined_at,
			COUNT(i.id),
			COALESCE(SUM(i.quantity * i.unit_price), 0)
		FROM group_order_participants p
		LEFT JOIN group_order_items i
			ON i.group_order_id = p.group_order_id AND i.user_id = p.user_id
		WHERE p.group_order_id = ?
		GROUP BY p.user_id, p.is_ready, p.budget_contribution, p.joined_at
		ORDER BY p.joined_at, p.user_id
	`, groupOrderID.String()).Rows()
	if err != nil {
		return err
	}
	defer rows.Close()

	response.Participants = make([]ParticipantStatusResponse, 0)
	response.TotalBudget = response.InitialBudget
	allReady := true
	for rows.Next() {
		var (
			userID             uuid.UUID
			isReady            bool
			budgetContribution int64
			joinedAt           time.Time
			count              int
			subtotal           int64
		)
		if err = rows.Scan(&userID, &isReady, &budgetContribution, &joinedAt, &count, &subtotal); err != nil {
			return err
		}

		participantID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return idErr
		}

		response.Participants = append(response.Participants, ParticipantStatusResponse{
			UserID:             participantID,
			IsReady:            isReady,
			ItemCount:          count,
			Subtotal:           subtotal,
			BudgetContribution: budgetContribution,
			JoinedAt:           joinedAt.UTC(),
		})
		response.TotalCount++
		response.TotalBudget += budgetContribution
		if isReady {
			response.ReadyCount++
		}
		if !isReady || count == 0 {
			allReady = false
		}
	}
	if err = rows.Err(); err != nil {
		return err
	}

	response.AllReady = allReady && response.TotalCount > 0
	return nil
}
