package queries

import (
	"context"
	"time"

	"slabstock/internal/infra"
	"slabstock/internal/pkg/clock"
	"slabstock/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrStockUnitNotFound = errs.New("stock unit not found")

// AvailabilityRequest scopes the computation. When BeneficiaryID is set,
// units held for that partner count as available to them.
type AvailabilityRequest struct {
	ProductID     uuid.UUID
	LocationID    uuid.UUID
	LotID         *uuid.UUID
	BeneficiaryID *uuid.UUID
}

type AvailabilityQueries interface {
	// Available subtracts the full quantity of units carrying unexpired
	// active holds for other beneficiaries from base availability. Pure
	// read, no state is modified.
	Available(ctx context.Context, req AvailabilityRequest) (*AvailabilityView, error)
	// CandidateUnits lists units of a product usable by the operation's
	// beneficiary at selection time. Units held for someone else are
	// excluded; units held for the beneficiary are flagged.
	CandidateUnits(ctx context.Context, operationID, productID uuid.UUID) ([]*CandidateUnitView, error)
}

type StockUnitQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*StockUnitView, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]*StockUnitView, error)
}

type AvailabilityReadStore interface {
	Available(ctx context.Context, req AvailabilityRequest, now time.Time) (*AvailabilityView, error)
	CandidateUnits(ctx context.Context, operationID, productID uuid.UUID, now time.Time) ([]*CandidateUnitView, error)
}

type StockUnitReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*StockUnitView, error)
	ListByLot(ctx context.Context, lotID uuid.UUID) ([]*StockUnitView, error)
}

type availabilityQueriesImpl struct {
	readStore AvailabilityReadStore
	clock     clock.Clock
}

func NewAvailabilityQueries(readStore AvailabilityReadStore, clk clock.Clock) AvailabilityQueries {
	return &availabilityQueriesImpl{readStore: readStore, clock: clk}
}

func (q *availabilityQueriesImpl) Available(ctx context.Context, req AvailabilityRequest) (*AvailabilityView, error) {
	view, err := q.readStore.Available(ctx, req, q.clock.Now())
	if err != nil {
		return nil, err
	}
	view.Available = view.BaseAvailable - view.HeldQuantity
	if view.Available < 0 {
		view.Available = 0
	}
	return view, nil
}

func (q *availabilityQueriesImpl) CandidateUnits(ctx context.Context, operationID, productID uuid.UUID) ([]*CandidateUnitView, error) {
	return q.readStore.CandidateUnits(ctx, operationID, productID, q.clock.Now())
}

type stockUnitQueriesImpl struct {
	readStore StockUnitReadStore
	clock     clock.Clock
}

func NewStockUnitQueries(readStore StockUnitReadStore, clk clock.Clock) StockUnitQueries {
	return &stockUnitQueriesImpl{readStore: readStore, clock: clk}
}

func (q *stockUnitQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*StockUnitView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrStockUnitNotFound
		}
		return nil, err
	}
	q.decorate(view)
	return view, nil
}

func (q *stockUnitQueriesImpl) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*StockUnitView, error) {
	views, err := q.readStore.ListByLot(ctx, lotID)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		q.decorate(v)
	}
	return views, nil
}

// decorate fills the derived hold mirror fields from the raw expiry.
func (q *stockUnitQueriesImpl) decorate(v *StockUnitView) {
	if !v.HasActiveHold || v.HoldExpiresAt == nil {
		return
	}
	days := DaysRemaining(q.clock.Now(), *v.HoldExpiresAt)
	v.HoldDaysRemaining = &days
}
