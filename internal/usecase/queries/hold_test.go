//go:build unit

package queries

import (
	"context"
	"testing"
	"time"

	"slabstock/internal/pkg/clock"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func TestDaysRemaining(t *testing.T) {
	cases := []struct {
		name      string
		expiresAt time.Time
		want      int
	}{
		{"full window", testNow.Add(240 * time.Hour), 10},
		{"partial day floors down", testNow.Add(239 * time.Hour), 9},
		{"under a day", testNow.Add(6 * time.Hour), 0},
		{"just overdue floors negative", testNow.Add(-time.Hour), -1},
		{"long overdue", testNow.Add(-49 * time.Hour), -3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DaysRemaining(testNow, tc.expiresAt))
		})
	}
}

func TestHoldQueriesGetByID(t *testing.T) {
	ctx := context.Background()
	holdID := uuid.New()

	t.Run("decorates days remaining", func(t *testing.T) {
		store := new(MockHoldReadStore)
		stored := HoldView{
			ID:        holdID,
			State:     "active",
			ExpiresAt: testNow.Add(72 * time.Hour),
		}
		returned := stored
		store.On("FindByID", ctx, holdID).Return(&returned, nil)

		view, err := NewHoldQueries(store, clock.NewMockClock(testNow)).GetByID(ctx, holdID)
		require.NoError(t, err)

		want := stored
		want.DaysRemaining = 3
		if diff := cmp.Diff(&want, view); diff != "" {
			t.Errorf("decorated view mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("overdue hold shows negative days", func(t *testing.T) {
		store := new(MockHoldReadStore)
		store.On("FindByID", ctx, holdID).Return(&HoldView{
			ID:        holdID,
			State:     "active",
			ExpiresAt: testNow.Add(-36 * time.Hour),
		}, nil)

		view, err := NewHoldQueries(store, clock.NewMockClock(testNow)).GetByID(ctx, holdID)
		require.NoError(t, err)
		assert.Equal(t, -2, view.DaysRemaining)
	})

	t.Run("missing hold", func(t *testing.T) {
		store := new(MockHoldReadStore)
		store.On("FindByID", ctx, holdID).Return(nil, notFoundErr())

		_, err := NewHoldQueries(store, clock.NewMockClock(testNow)).GetByID(ctx, holdID)
		assert.ErrorIs(t, err, ErrHoldNotFound)
	})
}

func TestHoldQueriesListExpiring(t *testing.T) {
	ctx := context.Background()

	t.Run("deadline covers the whole last day", func(t *testing.T) {
		store := new(MockHoldReadStore)
		store.On("ListActiveExpiringBefore", ctx, testNow.Add(4*24*time.Hour)).Return([]*HoldListItem{
			{ID: uuid.New(), ExpiresAt: testNow.Add(30 * time.Hour)},
			{ID: uuid.New(), ExpiresAt: testNow.Add(90 * time.Hour)},
		}, nil)

		items, err := NewHoldQueries(store, clock.NewMockClock(testNow)).ListExpiring(ctx, 3)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, 1, items[0].DaysRemaining)
		assert.Equal(t, 3, items[1].DaysRemaining)
	})

	t.Run("negative horizon clamps to today", func(t *testing.T) {
		store := new(MockHoldReadStore)
		store.On("ListActiveExpiringBefore", ctx, testNow.Add(24*time.Hour)).Return([]*HoldListItem{}, nil)

		items, err := NewHoldQueries(store, clock.NewMockClock(testNow)).ListExpiring(ctx, -5)
		require.NoError(t, err)
		assert.Empty(t, items)
		store.AssertExpectations(t)
	})
}

func TestHoldQueriesListByLot(t *testing.T) {
	ctx := context.Background()
	lotID := uuid.New()

	store := new(MockHoldReadStore)
	store.On("ListByLot", ctx, lotID).Return([]*HoldListItem{
		{ID: uuid.New(), State: "active", ExpiresAt: testNow.Add(48 * time.Hour)},
		{ID: uuid.New(), State: "expired", ExpiresAt: testNow.Add(-24 * time.Hour)},
	}, nil)

	items, err := NewHoldQueries(store, clock.NewMockClock(testNow)).ListByLot(ctx, lotID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, 2, items[0].DaysRemaining)
	assert.Equal(t, -1, items[1].DaysRemaining)
}
