// Package grouporderrepo provides data transfer objects and mapping functions
// for group order persistence. This package implements the repository pattern
// for the group order aggregate, handling the conversion between the domain
// aggregate (with its participant ledger) and the relational tables.
package grouporderrepo

import (
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// GroupOrderDTO represents the database structure for persisting group order
// aggregates. Version backs the optimistic concurrency check on every update.
type GroupOrderDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CreatorID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Title            string     `gorm:"type:varchar(255)"`
	InitialBudget    int64      `gorm:"type:bigint;not null"`
	ShareToken       string     `gorm:"type:varchar(22);not null;uniqueIndex"`
	Status           int        `gorm:"type:int;not null;index"`
	CreatedAt        time.Time  `gorm:"not null"`
	ExpiresAt        time.Time  `gorm:"not null;index"`
	FinalizedOrderID *uuid.UUID `gorm:"type:uuid"`
	Version          int        `gorm:"type:int;not null"`
}

// TableName specifies the database table name for group order entities.
func (GroupOrderDTO) TableName() string {
	return "group_orders"
}

// ParticipantDTO represents one participant row of a group order's ledger.
// A user appears at most once per group order, enforced by the composite key.
type ParticipantDTO struct {
	GroupOrderID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	IsReady            bool      `gorm:"not null"`
	BudgetContribution int64     `gorm:"type:bigint;not null"`
	JoinedAt           time.Time `gorm:"not null"`
}

// TableName specifies the database table name for participant entities.
func (ParticipantDTO) TableName() string {
	return "group_order_participants"
}

// ItemDTO represents one line of a participant's item list. Position keeps
// the list order the participant submitted.
type ItemDTO struct {
	ID                  uint      `gorm:"primaryKey;autoIncrement"`
	GroupOrderID        uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID              uuid.UUID `gorm:"type:uuid;not null;index"`
	DishID              uuid.UUID `gorm:"type:uuid;not null"`
	Name                string    `gorm:"type:varchar(255);not null"`
	Quantity            int       `gorm:"type:int;not null"`
	UnitPrice           int64     `gorm:"type:bigint;not null"`
	SpecialInstructions string    `gorm:"type:text"`
	Position            int       `gorm:"type:int;not null"`
}

// TableName specifies the database table name for item entities.
func (ItemDTO) TableName() string {
	return "group_order_items"
}

// fromDomain converts a group order aggregate to its database representation:
// the header row plus the participant and item rows belonging to it.
func fromDomain(g *grouporder.GroupOrder) (GroupOrderDTO, []ParticipantDTO, []ItemDTO) {
	groupOrderID := g.ID().Bytes()

	var finalizedOrderID *uuid.UUID
	if id := g.FinalizedOrderID(); id != nil {
		raw := id.Bytes()
		finalizedOrderID = &raw
	}

	header := GroupOrderDTO{
		ID:               groupOrderID,
		CreatorID:        g.CreatorID().Bytes(),
		Title:            g.Title(),
		InitialBudget:    g.InitialBudget(),
		ShareToken:       g.ShareToken().String(),
		Status:           int(g.Status()),
		CreatedAt:        g.CreatedAt(),
		ExpiresAt:        g.ExpiresAt(),
		FinalizedOrderID: finalizedOrderID,
		Version:          g.Version(),
	}

	participants := make([]ParticipantDTO, 0, len(g.Participants()))
	items := make([]ItemDTO, 0)
	for _, p := range g.Participants() {
		userID := p.UserID().Bytes()
		participants = append(participants, ParticipantDTO{
			GroupOrderID:       groupOrderID,
			UserID:             userID,
			IsReady:            p.IsReady(),
			BudgetContribution: p.BudgetContribution(),
			JoinedAt:           p.JoinedAt(),
		})

		for position, item := range p.Items() {
			items = append(items, ItemDTO{
				GroupOrderID:        groupOrderID,
				UserID:              userID,
				DishID:              item.DishID().Bytes(),
				Name:                item.Name(),
				Quantity:            item.Quantity(),
				UnitPrice:           item.UnitPrice(),
				SpecialInstructions: item.SpecialInstructions(),
				Position:            position,
			})
		}
	}

	return header, participants, items
}

// toDomain converts database rows back to a group order aggregate.
// Participant rows must be ordered by join time, item rows by position.
func toDomain(header GroupOrderDTO, participantRows []ParticipantDTO, itemRows []ItemDTO) (*grouporder.GroupOrder, error) {
	id, err := kernel.UUIDFromBytes(header.ID[:])
	if err != nil {
		return nil, err
	}
	creatorID, err := kernel.UUIDFromBytes(header.CreatorID[:])
	if err != nil {
		return nil, err
	}
	token, err := grouporder.ShareTokenFromString(header.ShareToken)
	if err != nil {
		return nil, err
	}

	var finalizedOrderID *kernel.UUID
	if header.FinalizedOrderID != nil {
		finalizedID, idErr := kernel.UUIDFromBytes((*header.FinalizedOrderID)[:])
		if idErr != nil {
			return nil, idErr
		}
		finalizedOrderID = &finalizedID
	}

	itemsByUser := make(map[uuid.UUID][]grouporder.Item)
	for _, row := range itemRows {
		dishID, idErr := kernel.UUIDFromBytes(row.DishID[:])
		if idErr != nil {
			return nil, idErr
		}
		item, itemErr := grouporder.NewItem(dishID, row.Name, row.Quantity, row.UnitPrice, row.SpecialInstructions)
		if itemErr != nil {
			return nil, itemErr
		}
		itemsByUser[row.UserID] = append(itemsByUser[row.UserID], item)
	}

	participants := make([]*grouporder.Participant, 0, len(participantRows))
	for _, row := range participantRows {
		userID, idErr := kernel.UUIDFromBytes(row.UserID[:])
		if idErr != nil {
			return nil, idErr
		}
		participant, pErr := grouporder.RestoreParticipant(userID, itemsByUser[row.UserID], row.IsReady, row.BudgetContribution, row.JoinedAt)
		if pErr != nil {
			return nil, pErr
		}
		participants = append(participants, participant)
	}

	return grouporder.RestoreGroupOrder(
		id,
		creatorID,
		header.Title,
		header.InitialBudget,
		token,
		grouporder.Status(header.Status),
		header.CreatedAt,
		header.ExpiresAt,
		finalizedOrderID,
		participants,
		header.Version,
	)
}
