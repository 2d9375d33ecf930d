package queries

import (
	"context"
	"math"
	"time"

	"slabstock/internal/infra"
	"slabstock/internal/pkg/clock"
	"slabstock/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrHoldNotFound = errs.New("hold not found")

type HoldQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*HoldView, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]*HoldListItem, error)
	// ListExpiring returns active holds with at most the given number of
	// days left, soonest first.
	ListExpiring(ctx context.Context, withinDays int) ([]*HoldListItem, error)
}

type HoldReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*HoldView, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]*HoldListItem, error)
	ListActiveExpiringBefore(ctx context.Context, deadline time.Time) ([]*HoldListItem, error)
}

type holdQueriesImpl struct {
	readStore HoldReadStore
	clock     clock.Clock
}

func NewHoldQueries(readStore HoldReadStore, clk clock.Clock) HoldQueries {
	return &holdQueriesImpl{readStore: readStore, clock: clk}
}

func (q *holdQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*HoldView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrHoldNotFound
		}
		return nil, err
	}
	view.DaysRemaining = DaysRemaining(q.clock.Now(), view.ExpiresAt)
	return view, nil
}

func (q *holdQueriesImpl) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*HoldListItem, error) {
	items, err := q.readStore.ListByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	now := q.clock.Now()
	for _, item := range items {
		item.DaysRemaining = DaysRemaining(now, item.ExpiresAt)
	}
	return items, nil
}

func (q *holdQueriesImpl) ListExpiring(ctx context.Context, withinDays int) ([]*HoldListItem, error) {
	if withinDays < 0 {
		withinDays = 0
	}
	now := q.clock.Now()
	deadline := now.Add(time.Duration(withinDays+1) * 24 * time.Hour)

	items, err := q.readStore.ListActiveExpiringBefore(ctx, deadline)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		item.DaysRemaining = DaysRemaining(now, item.ExpiresAt)
	}
	return items, nil
}

// DaysRemaining floors toward negative infinity so an overdue hold shows
// negative days rather than rounding up to zero.
func DaysRemaining(now, expiresAt time.Time) int {
	return int(math.Floor(expiresAt.Sub(now).Hours() / 24))
}
