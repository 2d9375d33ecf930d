//go:build unit

package commands

import (
	"context"
	"time"

	"slabstock/internal/domain/hold"
	"slabstock/internal/domain/lot"
	"slabstock/internal/infra"
	"slabstock/internal/infra/db"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// fakeUow runs the transactional closure against a bundle of testify mocks.
// It never retries, so expectations stay exact.
type fakeUow struct {
	tx *fakeTx
}

func newFakeUow() *fakeUow {
	return &fakeUow{tx: newFakeTx()}
}

func (u *fakeUow) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, u.tx)
}

func (u *fakeUow) CommandReads() shared.CommandReads {
	return u.tx.reads
}

type fakeTx struct {
	holds      *MockHoldRepository
	stockUnits *MockStockUnitRepository
	operations *MockOperationRepository
	lots       *MockLotRepository
	photos     *MockPhotoRepository
	users      *MockUserRepository
	reads      *MockCommandReads
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		holds:      &MockHoldRepository{},
		stockUnits: &MockStockUnitRepository{},
		operations: &MockOperationRepository{},
		lots:       &MockLotRepository{},
		photos:     &MockPhotoRepository{},
		users:      &MockUserRepository{},
		reads:      &MockCommandReads{},
	}
}

func (t *fakeTx) Holds() shared.HoldRepository           { return t.holds }
func (t *fakeTx) StockUnits() shared.StockUnitRepository { return t.stockUnits }
func (t *fakeTx) Operations() shared.OperationRepository { return t.operations }
func (t *fakeTx) Lots() shared.LotRepository             { return t.lots }
func (t *fakeTx) Photos() shared.PhotoRepository         { return t.photos }
func (t *fakeTx) Users() shared.UserRepository           { return t.users }
func (t *fakeTx) Reads() shared.CommandReads             { return t.reads }
func (t *fakeTx) DB() db.DBTX                            { return nil }

func (t *fakeTx) AssertExpectations(tt mock.TestingT) {
	t.holds.AssertExpectations(tt)
	t.stockUnits.AssertExpectations(tt)
	t.operations.AssertExpectations(tt)
	t.lots.AssertExpectations(tt)
	t.photos.AssertExpectations(tt)
	t.users.AssertExpectations(tt)
	t.reads.AssertExpectations(tt)
}

// notFoundErr mimics what the repositories return when a row is missing.
func notFoundErr() error {
	return infra.WrapRepoErr("record not found", nil, infra.KindNotFound)
}

func conflictErr() error {
	return infra.WrapRepoErr("unique violation", nil, infra.KindConflict)
}

type MockHoldRepository struct {
	mock.Mock
}

func (m *MockHoldRepository) Create(ctx context.Context, tx db.DBTX, h *hold.Hold) (uuid.UUID, error) {
	args := m.Called(ctx, tx, h)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockHoldRepository) Update(ctx context.Context, tx db.DBTX, h *hold.Hold) error {
	args := m.Called(ctx, tx, h)
	return args.Error(0)
}

func (m *MockHoldRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*hold.Hold, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*hold.Hold), args.Error(1)
}

func (m *MockHoldRepository) ExpireDue(ctx context.Context, tx db.DBTX, now time.Time) ([]uuid.UUID, error) {
	args := m.Called(ctx, tx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

func (m *MockHoldRepository) FindActiveDuplicates(ctx context.Context, tx db.DBTX) ([]uuid.UUID, error) {
	args := m.Called(ctx, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]uuid.UUID), args.Error(1)
}

type MockStockUnitRepository struct {
	mock.Mock
}

func (m *MockStockUnitRepository) LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.StockUnitSnapshot, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.StockUnitSnapshot), args.Error(1)
}

type MockOperationRepository struct {
	mock.Mock
}

func (m *MockOperationRepository) CreateBinding(ctx context.Context, tx db.DBTX, operationID, stockUnitID uuid.UUID, quantity float64, autoAssigned bool) (uuid.UUID, error) {
	args := m.Called(ctx, tx, operationID, stockUnitID, quantity, autoAssigned)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockOperationRepository) ReassignBinding(ctx context.Context, tx db.DBTX, bindingID, stockUnitID uuid.UUID) error {
	args := m.Called(ctx, tx, bindingID, stockUnitID)
	return args.Error(0)
}

func (m *MockOperationRepository) UpdateBindingQuantity(ctx context.Context, tx db.DBTX, bindingID uuid.UUID, quantity float64) error {
	args := m.Called(ctx, tx, bindingID, quantity)
	return args.Error(0)
}

func (m *MockOperationRepository) ClearAutoAssigned(ctx context.Context, tx db.DBTX, salesOrderID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tx, salesOrderID)
	return args.Get(0).(int64), args.Error(1)
}

type MockLotRepository struct {
	mock.Mock
}

func (m *MockLotRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*lot.Lot, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lot.Lot), args.Error(1)
}

func (m *MockLotRepository) Update(ctx context.Context, tx db.DBTX, l *lot.Lot) error {
	args := m.Called(ctx, tx, l)
	return args.Error(0)
}

type MockPhotoRepository struct {
	mock.Mock
}

func (m *MockPhotoRepository) Create(ctx context.Context, tx db.DBTX, p *lot.Photo) (uuid.UUID, error) {
	args := m.Called(ctx, tx, p)
	return args.Get(0).(uuid.UUID), args.Error(1)
}

func (m *MockPhotoRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*lot.Photo, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*lot.Photo), args.Error(1)
}

func (m *MockPhotoRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error {
	args := m.Called(ctx, tx, userID)
	return args.Error(0)
}

type MockCommandReads struct {
	mock.Mock
}

func (m *MockCommandReads) StockUnitByID(ctx context.Context, id uuid.UUID) (*shared.StockUnitSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.StockUnitSnapshot), args.Error(1)
}

func (m *MockCommandReads) ActiveHoldByStockUnit(ctx context.Context, stockUnitID uuid.UUID) (*shared.ActiveHoldSnapshot, error) {
	args := m.Called(ctx, stockUnitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.ActiveHoldSnapshot), args.Error(1)
}

func (m *MockCommandReads) OperationByID(ctx context.Context, id uuid.UUID) (*shared.OperationSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.OperationSnapshot), args.Error(1)
}

func (m *MockCommandReads) BindingByID(ctx context.Context, id uuid.UUID) (*shared.BindingSnapshot, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.BindingSnapshot), args.Error(1)
}

func (m *MockCommandReads) BindingsByOperation(ctx context.Context, operationID uuid.UUID) ([]shared.BindingSnapshot, error) {
	args := m.Called(ctx, operationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]shared.BindingSnapshot), args.Error(1)
}

func (m *MockCommandReads) UserByEmail(ctx context.Context, email string) (*shared.UserSnapshot, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*shared.UserSnapshot), args.Error(1)
}

func (m *MockCommandReads) PartnerNameByID(ctx context.Context, id uuid.UUID) (string, error) {
	args := m.Called(ctx, id)
	return args.String(0), args.Error(1)
}
