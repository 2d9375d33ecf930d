//go:build unit

package queries

import (
	"context"
	"time"

	"slabstock/internal/infra"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func notFoundErr() error {
	return infra.WrapRepoErr("record not found", nil, infra.KindNotFound)
}

type MockHoldReadStore struct {
	mock.Mock
}

func (m *MockHoldReadStore) FindByID(ctx context.Context, id uuid.UUID) (*HoldView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HoldView), args.Error(1)
}

func (m *MockHoldReadStore) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*HoldListItem, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*HoldListItem), args.Error(1)
}

func (m *MockHoldReadStore) ListActiveExpiringBefore(ctx context.Context, deadline time.Time) ([]*HoldListItem, error) {
	args := m.Called(ctx, deadline)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*HoldListItem), args.Error(1)
}

type MockAvailabilityReadStore struct {
	mock.Mock
}

func (m *MockAvailabilityReadStore) Available(ctx context.Context, req AvailabilityRequest, now time.Time) (*AvailabilityView, error) {
	args := m.Called(ctx, req, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*AvailabilityView), args.Error(1)
}

func (m *MockAvailabilityReadStore) CandidateUnits(ctx context.Context, operationID, productID uuid.UUID, now time.Time) ([]*CandidateUnitView, error) {
	args := m.Called(ctx, operationID, productID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*CandidateUnitView), args.Error(1)
}

type MockStockUnitReadStore struct {
	mock.Mock
}

func (m *MockStockUnitReadStore) FindByID(ctx context.Context, id uuid.UUID) (*StockUnitView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*StockUnitView), args.Error(1)
}

func (m *MockStockUnitReadStore) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*StockUnitView, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*StockUnitView), args.Error(1)
}

type MockLotReadStore struct {
	mock.Mock
}

func (m *MockLotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*LotView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*LotView), args.Error(1)
}

func (m *MockLotReadStore) ListPhotos(ctx context.Context, lotID uuid.UUID) ([]*PhotoView, error) {
	args := m.Called(ctx, lotID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*PhotoView), args.Error(1)
}

func (m *MockLotReadStore) FindPhotoByID(ctx context.Context, photoID uuid.UUID) (*PhotoView, error) {
	args := m.Called(ctx, photoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*PhotoView), args.Error(1)
}
