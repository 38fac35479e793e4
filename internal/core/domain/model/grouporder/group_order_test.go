package grouporder_test

import (
	"testing"
	"time"

	"grouporder/internal/core/domain/model/grouporder"
	"grouporder/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustItem(t *testing.T, name string, quantity int, unitPrice int64) grouporder.Item {
	t.Helper()
	item, err := grouporder.NewItem(kernel.NewUUID(), name, quantity, unitPrice, "")
	require.NoError(t, err)
	return item
}

func newTestGroupOrder(t *testing.T, creatorID kernel.UUID, now time.Time) *grouporder.GroupOrder {
	t.Helper()
	g, err := grouporder.NewGroupOrder(kernel.NewUUID(), creatorID, "Friday lunch", 0, now, time.Hour)
	require.NoError(t, err)
	return g
}

func TestNewGroupOrder(t *testing.T) {
	now := time.Now()
	creatorID := kernel.NewUUID()

	t.Run("valid", func(t *testing.T) {
		g, err := grouporder.NewGroupOrder(kernel.NewUUID(), creatorID, "Friday lunch", 0, now, time.Hour)
		require.NoError(t, err)
		assert.Equal(t, grouporder.Forming, g.Status())
		assert.Equal(t, creatorID, g.CreatorID())
		assert.Equal(t, "Friday lunch", g.Title())
		assert.NoError(t, g.ShareToken().Validate())
		assert.Nil(t, g.FinalizedOrderID())
		assert.Empty(t, g.Participants())
		assert.Equal(t, now.UTC().Add(time.Hour), g.ExpiresAt())
	})

	t.Run("invalid creator", func(t *testing.T) {
		_, err := grouporder.NewGroupOrder(kernel.NewUUID(), kernel.UUID{}, "", 0, now, time.Hour)
		require.Error(t, err)
	})

	t.Run("non-positive ttl", func(t *testing.T) {
		_, err := grouporder.NewGroupOrder(kernel.NewUUID(), creatorID, "", 0, now, 0)
		require.Error(t, err)
	})

	t.Run("negative initial budget", func(t *testing.T) {
		_, err := grouporder.NewGroupOrder(kernel.NewUUID(), creatorID, "", -1, now, time.Hour)
		require.Error(t, err)
	})
}

func TestGroupOrder_Validate(t *testing.T) {
	t.Run("zero value is not constructed", func(t *testing.T) {
		var g grouporder.GroupOrder
		require.ErrorIs(t, g.Validate(), grouporder.ErrGroupOrderIsNotConstructed)
	})

	t.Run("restore rejects finalized without order id", func(t *testing.T) {
		token, err := grouporder.MintShareToken()
		require.NoError(t, err)

		now := time.Now()
		_, err = grouporder.RestoreGroupOrder(
			kernel.NewUUID(), kernel.NewUUID(), "", 0, token,
			grouporder.Finalized, now, now.Add(time.Hour), nil, nil, 1,
		)
		require.Error(t, err)
	})
}

func TestGroupOrder_Join(t *testing.T) {
	now := time.Now()
	creatorID := kernel.NewUUID()

	t.Run("first non-creator join moves forming to collecting", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)

		p, created, err := g.Join(kernel.NewUUID(), now)
		require.NoError(t, err)
		assert.True(t, created)
		assert.False(t, p.IsReady())
		assert.Empty(t, p.Items())
		assert.Equal(t, grouporder.Collecting, g.Status())
	})

	t.Run("creator joining keeps forming", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)

		_, _, err := g.Join(creatorID, now)
		require.NoError(t, err)
		assert.Equal(t, grouporder.Forming, g.Status())
	})

	t.Run("join is idempotent", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		userID := kernel.NewUUID()

		first, created, err := g.Join(userID, now)
		require.NoError(t, err)
		assert.True(t, created)
		require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Jollof rice", 2, 1250)}, now))
		require.NoError(t, g.SetReady(userID, userID, true, now))

		again, created, err := g.Join(userID, now)
		require.NoError(t, err)
		assert.False(t, created)
		assert.Same(t, first, again)
		assert.True(t, again.IsReady())
		assert.Len(t, again.Items(), 1)
		assert.Len(t, g.Participants(), 1)
	})

	t.Run("join after expiry", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)

		_, _, err := g.Join(kernel.NewUUID(), now.Add(2*time.Hour))
		require.ErrorIs(t, err, grouporder.ErrGroupOrderExpired)
	})

	t.Run("join after cancel", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		require.NoError(t, g.Cancel(creatorID, now))

		_, _, err := g.Join(kernel.NewUUID(), now)
		require.ErrorIs(t, err, grouporder.ErrGroupOrderClosed)
	})
}

func TestGroupOrder_ChangeItems(t *testing.T) {
	now := time.Now()
	creatorID := kernel.NewUUID()
	userID := kernel.NewUUID()

	t.Run("owner can change own items", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)

		items := []grouporder.Item{mustItem(t, "Suya skewers", 1, 800)}
		require.NoError(t, g.ChangeItems(userID, userID, items, now))

		p, ok := g.Participant(userID)
		require.True(t, ok)
		assert.Len(t, p.Items(), 1)
		assert.Equal(t, int64(800), p.Subtotal())
	})

	t.Run("non-owner is forbidden and state is untouched", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)

		err = g.ChangeItems(kernel.NewUUID(), userID, []grouporder.Item{mustItem(t, "Suya skewers", 1, 800)}, now)
		require.ErrorIs(t, err, grouporder.ErrForbidden)

		p, _ := g.Participant(userID)
		assert.Empty(t, p.Items())
	})

	t.Run("changing items withdraws readiness", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)

		require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Suya skewers", 1, 800)}, now))
		require.NoError(t, g.SetReady(userID, userID, true, now))

		require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Moi moi", 2, 450)}, now))
		p, _ := g.Participant(userID)
		assert.False(t, p.IsReady())
	})

	t.Run("locked once all ready", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)
		require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Suya skewers", 1, 800)}, now))
		require.NoError(t, g.SetReady(userID, userID, true, now))
		require.Equal(t, grouporder.AllReady, g.Status())

		err = g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Moi moi", 2, 450)}, now)
		require.ErrorIs(t, err, grouporder.ErrGroupOrderLocked)
	})

	t.Run("unknown participant", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		stranger := kernel.NewUUID()
		err := g.ChangeItems(stranger, stranger, nil, now)
		require.ErrorIs(t, err, grouporder.ErrParticipantNotFound)
	})
}

func TestGroupOrder_SetReady(t *testing.T) {
	now := time.Now()
	creatorID := kernel.NewUUID()

	t.Run("ready with empty items is rejected without mutation", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		userID := kernel.NewUUID()
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)

		err = g.SetReady(userID, userID, true, now)
		require.ErrorIs(t, err, grouporder.ErrEmptyContribution)

		p, _ := g.Participant(userID)
		assert.False(t, p.IsReady())
	})

	t.Run("all ready once every participant confirmed", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		userB := kernel.NewUUID()
		userC := kernel.NewUUID()

		for _, userID := range []kernel.UUID{userB, userC} {
			_, _, err := g.Join(userID, now)
			require.NoError(t, err)
			require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Egusi soup", 1, 1500)}, now))
		}

		require.NoError(t, g.SetReady(userB, userB, true, now))
		assert.Equal(t, grouporder.Collecting, g.Status())

		require.NoError(t, g.SetReady(userC, userC, true, now))
		assert.Equal(t, grouporder.AllReady, g.Status())
	})

	t.Run("withdrawing readiness reopens editing", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		userID := kernel.NewUUID()
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)
		require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Egusi soup", 1, 1500)}, now))
		require.NoError(t, g.SetReady(userID, userID, true, now))
		require.Equal(t, grouporder.AllReady, g.Status())

		require.NoError(t, g.SetReady(userID, userID, false, now))
		assert.Equal(t, grouporder.Collecting, g.Status())

		require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Moi moi", 1, 450)}, now))
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		userID := kernel.NewUUID()
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)

		err = g.SetReady(kernel.NewUUID(), userID, true, now)
		require.ErrorIs(t, err, grouporder.ErrForbidden)
	})
}

func TestGroupOrder_Finalize(t *testing.T) {
	now := time.Now()
	creatorID := kernel.NewUUID()

	setupAllReady := func(t *testing.T) (*grouporder.GroupOrder, kernel.UUID) {
		t.Helper()
		g := newTestGroupOrder(t, creatorID, now)
		userID := kernel.NewUUID()
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)
		require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Pounded yam", 1, 1200)}, now))
		require.NoError(t, g.SetReady(userID, userID, true, now))
		require.Equal(t, grouporder.AllReady, g.Status())
		return g, userID
	}

	t.Run("creator finalizes an all-ready group order", func(t *testing.T) {
		g, _ := setupAllReady(t)
		finalizedOrderID := kernel.NewUUID()

		require.NoError(t, g.Finalize(creatorID, finalizedOrderID, false, now))
		assert.Equal(t, grouporder.Finalized, g.Status())
		require.NotNil(t, g.FinalizedOrderID())
		assert.True(t, finalizedOrderID.IsEqual(*g.FinalizedOrderID()))
		require.NoError(t, g.Validate())
	})

	t.Run("only the creator may finalize", func(t *testing.T) {
		g, userID := setupAllReady(t)
		err := g.Finalize(userID, kernel.NewUUID(), false, now)
		require.ErrorIs(t, err, grouporder.ErrForbidden)
	})

	t.Run("not ready without force", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		userID := kernel.NewUUID()
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)
		require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Pounded yam", 1, 1200)}, now))

		err = g.Finalize(creatorID, kernel.NewUUID(), false, now)
		require.ErrorIs(t, err, grouporder.ErrGroupOrderNotReady)

		require.NoError(t, g.Finalize(creatorID, kernel.NewUUID(), true, now))
		assert.Equal(t, grouporder.Finalized, g.Status())
	})

	t.Run("force with no contributed items", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		_, _, err := g.Join(kernel.NewUUID(), now)
		require.NoError(t, err)

		err = g.Finalize(creatorID, kernel.NewUUID(), true, now)
		require.ErrorIs(t, err, grouporder.ErrNothingToFinalize)
	})

	t.Run("finalize after expiry is impossible", func(t *testing.T) {
		g, _ := setupAllReady(t)
		err := g.Finalize(creatorID, kernel.NewUUID(), false, now.Add(2*time.Hour))
		require.ErrorIs(t, err, grouporder.ErrGroupOrderExpired)
		assert.Equal(t, grouporder.AllReady, g.Status())
	})

	t.Run("second finalize is rejected", func(t *testing.T) {
		g, _ := setupAllReady(t)
		require.NoError(t, g.Finalize(creatorID, kernel.NewUUID(), false, now))

		err := g.Finalize(creatorID, kernel.NewUUID(), false, now)
		require.ErrorIs(t, err, grouporder.ErrGroupOrderClosed)
	})
}

func TestGroupOrder_ChipInToBudget(t *testing.T) {
	now := time.Now()
	creatorID := kernel.NewUUID()

	t.Run("contributions accumulate on top of the initial budget", func(t *testing.T) {
		g, err := grouporder.NewGroupOrder(kernel.NewUUID(), creatorID, "Friday lunch", 2000, now, time.Hour)
		require.NoError(t, err)
		userB := kernel.NewUUID()
		userC := kernel.NewUUID()
		_, _, err = g.Join(userB, now)
		require.NoError(t, err)
		_, _, err = g.Join(userC, now)
		require.NoError(t, err)

		require.NoError(t, g.ChipInToBudget(userB, 500, now))
		require.NoError(t, g.ChipInToBudget(userB, 250, now))
		require.NoError(t, g.ChipInToBudget(userC, 1000, now))

		p, ok := g.Participant(userB)
		require.True(t, ok)
		assert.Equal(t, int64(750), p.BudgetContribution())
		assert.Equal(t, int64(2000), g.InitialBudget())
		assert.Equal(t, int64(3750), g.TotalBudget())
	})

	t.Run("only joined participants chip in", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		err := g.ChipInToBudget(kernel.NewUUID(), 500, now)
		require.ErrorIs(t, err, grouporder.ErrParticipantNotFound)
		assert.Equal(t, int64(0), g.TotalBudget())
	})

	t.Run("non-positive amount is rejected", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		userID := kernel.NewUUID()
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)

		require.Error(t, g.ChipInToBudget(userID, 0, now))
		require.Error(t, g.ChipInToBudget(userID, -100, now))
	})

	t.Run("chipping in never touches items or readiness", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		userID := kernel.NewUUID()
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)
		require.NoError(t, g.ChangeItems(userID, userID, []grouporder.Item{mustItem(t, "Egusi soup", 1, 1500)}, now))
		require.NoError(t, g.SetReady(userID, userID, true, now))

		require.NoError(t, g.ChipInToBudget(userID, 500, now))

		p, _ := g.Participant(userID)
		assert.True(t, p.IsReady())
		assert.Len(t, p.Items(), 1)
	})

	t.Run("closed and elapsed group orders reject chip-ins", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		userID := kernel.NewUUID()
		_, _, err := g.Join(userID, now)
		require.NoError(t, err)

		err = g.ChipInToBudget(userID, 500, now.Add(2*time.Hour))
		require.ErrorIs(t, err, grouporder.ErrGroupOrderExpired)

		require.NoError(t, g.Cancel(creatorID, now))
		err = g.ChipInToBudget(userID, 500, now)
		require.ErrorIs(t, err, grouporder.ErrGroupOrderClosed)
	})
}

func TestGroupOrder_Expire(t *testing.T) {
	now := time.Now()
	creatorID := kernel.NewUUID()

	t.Run("elapsed group order expires", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		require.NoError(t, g.Expire(now.Add(2*time.Hour)))
		assert.Equal(t, grouporder.Expired, g.Status())
	})

	t.Run("not yet elapsed", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		require.Error(t, g.Expire(now.Add(time.Minute)))
		assert.Equal(t, grouporder.Forming, g.Status())
	})

	t.Run("terminal is closed", func(t *testing.T) {
		g := newTestGroupOrder(t, creatorID, now)
		require.NoError(t, g.Cancel(creatorID, now))
		require.ErrorIs(t, g.Expire(now.Add(2*time.Hour)), grouporder.ErrGroupOrderClosed)
	})
}

// Mirrors the product flow: creator starts a group order, two friends join,
// contribute and confirm, and the creator finalizes the consolidated order.
func TestGroupOrder_FullFlow(t *testing.T) {
	now := time.Now()
	creatorID := kernel.NewUUID()
	userB := kernel.NewUUID()
	userC := kernel.NewUUID()

	g := newTestGroupOrder(t, creatorID, now)

	_, _, err := g.Join(userB, now)
	require.NoError(t, err)
	require.NoError(t, g.ChangeItems(userB, userB, []grouporder.Item{
		mustItem(t, "Jollof rice", 1, 1250),
		mustItem(t, "Plantain", 2, 300),
	}, now))
	require.NoError(t, g.SetReady(userB, userB, true, now))

	_, _, err = g.Join(userC, now)
	require.NoError(t, err)
	assert.Equal(t, grouporder.Collecting, g.Status())

	require.NoError(t, g.ChangeItems(userC, userC, []grouporder.Item{mustItem(t, "Suya skewers", 1, 800)}, now))
	require.NoError(t, g.SetReady(userC, userC, true, now))

	// The ledger holds exactly the two joiners; the creator owns the group
	// order without appearing in it, so two confirmations reach all-ready.
	assert.Len(t, g.Participants(), 2)
	_, creatorJoined := g.Participant(creatorID)
	assert.False(t, creatorJoined)
	assert.Equal(t, grouporder.AllReady, g.Status())

	finalizedOrderID := kernel.NewUUID()
	require.NoError(t, g.Finalize(creatorID, finalizedOrderID, false, now))

	err = g.ChangeItems(userB, userB, []grouporder.Item{mustItem(t, "Moi moi", 1, 450)}, now)
	require.ErrorIs(t, err, grouporder.ErrGroupOrderLocked)
}
