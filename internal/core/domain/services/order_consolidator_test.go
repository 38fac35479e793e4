package services_test

import (
	"testing"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"
	"grouporder/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderConsolidator_Consolidate(t *testing.T) {
	now := time.Now()
	consolidator := services.NewOrderConsolidator()

	t.Run("merges contributions tagged by participant", func(t *testing.T) {
		creatorID := kernel.NewUUID()
		g, err := grouporder.NewGroupOrder(kernel.NewUUID(), creatorID, "Friday lunch", 0, now, time.Hour)
		require.NoError(t, err)

		userB := joinWithItems(t, g, now, []grouporder.Item{
			mustItem(t, "Jollof rice", 1, 1250),
			mustItem(t, "Plantain", 2, 300),
		}, true)
		userC := joinWithItems(t, g, now, []grouporder.Item{
			mustItem(t, "Suya skewers", 1, 800),
		}, true)

		consolidatedOrderID := kernel.NewUUID()
		order, err := consolidator.Consolidate(g, consolidatedOrderID)
		require.NoError(t, err)

		assert.True(t, consolidatedOrderID.IsEqual(order.ID))
		assert.True(t, g.ID().IsEqual(order.GroupOrderID))
		assert.True(t, creatorID.IsEqual(order.CreatorID))

		require.Len(t, order.Lines, 3)
		assert.True(t, userB.IsEqual(order.Lines[0].UserID))
		assert.True(t, userB.IsEqual(order.Lines[1].UserID))
		assert.True(t, userC.IsEqual(order.Lines[2].UserID))
		assert.Equal(t, int64(600), order.Lines[1].Subtotal)

		// 1250 + 600 + 800 = 2650, 25% group discount for two contributors.
		assert.Equal(t, int64(2650), order.Total)
		assert.Equal(t, 25, order.DiscountPercentage)
		assert.Equal(t, int64(662), order.DiscountAmount)
		assert.Equal(t, int64(1988), order.FinalTotal)
	})

	t.Run("single contributor gets no group discount", func(t *testing.T) {
		g, err := grouporder.NewGroupOrder(kernel.NewUUID(), kernel.NewUUID(), "", 0, now, time.Hour)
		require.NoError(t, err)

		joinWithItems(t, g, now, []grouporder.Item{mustItem(t, "Egusi soup", 2, 1500)}, true)

		order, err := consolidator.Consolidate(g, kernel.NewUUID())
		require.NoError(t, err)
		assert.Equal(t, int64(3000), order.Total)
		assert.Equal(t, 0, order.DiscountPercentage)
		assert.Equal(t, int64(3000), order.FinalTotal)
	})

	t.Run("nothing to consolidate", func(t *testing.T) {
		g, err := grouporder.NewGroupOrder(kernel.NewUUID(), kernel.NewUUID(), "", 0, now, time.Hour)
		require.NoError(t, err)
		joinWithItems(t, g, now, nil, false)

		_, err = consolidator.Consolidate(g, kernel.NewUUID())
		require.ErrorIs(t, err, grouporder.ErrNothingToFinalize)
	})
}
