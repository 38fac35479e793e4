package grouporderrepo

import (
	"context"
	"errors"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormGroupOrderRepository implements GroupOrderRepository using GORM.
//
// The aggregate is stored across three tables: the group_orders header row,
// the participant ledger, and the item lines. Every update goes through a
// compare-and-swap on the header's version column, which makes the aggregate
// the unit of mutual exclusion: two writers loading the same version can both
// try, only one lands.
type GormGroupOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormGroupOrderRepository creates a new GORM group order repository.
func NewGormGroupOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormGroupOrderRepository {
	return &GormGroupOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new group order to the database.
// Fails if the id or share token already exists.
func (r *GormGroupOrderRepository) Add(ctx context.Context, aggregate *grouporder.GroupOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, participants, items := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&header).Error; err != nil {
		return err
	}
	if err := r.insertChildren(ctx, participants, items); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing group order using optimistic concurrency control.
// The header row is updated only when its version still matches the version
// the aggregate was loaded with; the ledger rows are then replaced wholesale.
// Returns a ConcurrencyConflictError when a concurrent writer won the race.
func (r *GormGroupOrderRepository) Update(ctx context.Context, aggregate *grouporder.GroupOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	header, participants, items := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&GroupOrderDTO{}).
		Where("id = ? AND version = ?", header.ID, aggregate.Version()).
		Updates(map[string]any{
			"status":             header.Status,
			"title":              header.Title,
			"expires_at":         header.ExpiresAt,
			"finalized_order_id": header.FinalizedOrderID,
			"version":            aggregate.Version() + 1,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).Model(&GroupOrderDTO{}).
			Where("id = ?", header.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("groupOrder", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("groupOrder", aggregate.ID().String())
	}

	if err := r.db.WithContext(ctx).
		Where("group_order_id = ?", header.ID).Delete(&ItemDTO{}).Error; err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).
		Where("group_order_id = ?", header.ID).Delete(&ParticipantDTO{}).Error; err != nil {
		return err
	}
	if err := r.insertChildren(ctx, participants, items); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a group order with its complete participant ledger.
func (r *GormGroupOrderRepository) Get(ctx context.Context, id kernel.UUID) (*grouporder.GroupOrder, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var header GroupOrderDTO
	if err := r.db.WithContext(ctx).First(&header, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("groupOrder", id.String())
		}
		return nil, err
	}

	return r.loadAggregate(ctx, header)
}

// GetByShareToken resolves a share token to its group order.
func (r *GormGroupOrderRepository) GetByShareToken(
	ctx context.Context,
	token grouporder.ShareToken,
) (*grouporder.GroupOrder, error) {
	if err := token.Validate(); err != nil {
		return nil, err
	}

	var header GroupOrderDTO
	if err := r.db.WithContext(ctx).First(&header, "share_token = ?", token.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shareToken", token.String())
		}
		return nil, err
	}

	return r.loadAggregate(ctx, header)
}

// GetAllElapsed retrieves group orders whose expiry has passed and that are
// still in a non-terminal status, oldest first, up to limit.
func (r *GormGroupOrderRepository) GetAllElapsed(
	ctx context.Context,
	now time.Time,
	limit int,
) ([]*grouporder.GroupOrder, error) {
	var headers []GroupOrderDTO
	if err := r.db.WithContext(ctx).
		Where("expires_at <= ? AND status IN ?", now, []int{
			int(grouporder.Forming),
			int(grouporder.Collecting),
			int(grouporder.AllReady),
		}).
		Order("expires_at").
		Limit(limit).
		Find(&headers).Error; err != nil {
		return nil, err
	}

	groupOrders := make([]*grouporder.GroupOrder, 0, len(headers))
	for _, header := range headers {
		g, err := r.loadAggregate(ctx, header)
		if err != nil {
			return nil, err
		}
		groupOrders = append(groupOrders, g)
	}
	return groupOrders, nil
}

func (r *GormGroupOrderRepository) insertChildren(
	ctx context.Context,
	participants []ParticipantDTO,
	items []ItemDTO,
) error {
	if len(participants) > 0 {
		if err := r.db.WithContext(ctx).Create(&participants).Error; err != nil {
			return err
		}
	}
	if len(items) > 0 {
		if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
			return err
		}
	}
	return nil
}

func (r *GormGroupOrderRepository) loadAggregate(
	ctx context.Context,
	header GroupOrderDTO,
) (*grouporder.GroupOrder, error) {
	var participants []ParticipantDTO
	if err := r.db.WithContext(ctx).
		Where("group_order_id = ?", header.ID).
		Order("joined_at, user_id").
		Find(&participants).Error; err != nil {
		return nil, err
	}

	var items []ItemDTO
	if err := r.db.WithContext(ctx).
		Where("group_order_id = ?", header.ID).
		Order("user_id, position").
		Find(&items).Error; err != nil {
		return nil, err
	}

	return toDomain(header, participants, items)
}
