package shared

import (
	"context"
	"time"

	"slabstock/internal/domain/hold"
	"slabstock/internal/domain/lot"
	"slabstock/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Holds() HoldRepository
	StockUnits() StockUnitRepository
	Operations() OperationRepository
	Lots() LotRepository
	Photos() PhotoRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	StockUnitByID(ctx context.Context, id uuid.UUID) (*StockUnitSnapshot, error)
	// ActiveHoldByStockUnit returns KindNotFound when the unit carries no
	// active hold.
	ActiveHoldByStockUnit(ctx context.Context, stockUnitID uuid.UUID) (*ActiveHoldSnapshot, error)
	OperationByID(ctx context.Context, id uuid.UUID) (*OperationSnapshot, error)
	BindingByID(ctx context.Context, id uuid.UUID) (*BindingSnapshot, error)
	BindingsByOperation(ctx context.Context, operationID uuid.UUID) ([]BindingSnapshot, error)
	UserByEmail(ctx context.Context, email string) (*UserSnapshot, error)
	PartnerNameByID(ctx context.Context, id uuid.UUID) (string, error)
}

type HoldRepository interface {
	Create(ctx context.Context, tx db.DBTX, h *hold.Hold) (uuid.UUID, error)
	Update(ctx context.Context, tx db.DBTX, h *hold.Hold) error
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*hold.Hold, error)
	// ExpireDue flips every active hold with expires_at at or before now to
	// expired and returns the affected stock unit IDs. Safe to re-run.
	ExpireDue(ctx context.Context, tx db.DBTX, now time.Time) ([]uuid.UUID, error)
	// FindActiveDuplicates reports stock units carrying more than one active
	// hold. Must always come back empty; anything else is a core defect.
	FindActiveDuplicates(ctx context.Context, tx db.DBTX) ([]uuid.UUID, error)
}

type StockUnitRepository interface {
	// LockByID acquires a row lock on the stock unit for the duration of the
	// surrounding transaction. Hold creation and binding writes serialize on it.
	LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*StockUnitSnapshot, error)
}

type OperationRepository interface {
	CreateBinding(ctx context.Context, tx db.DBTX, operationID, stockUnitID uuid.UUID, quantity float64, autoAssigned bool) (uuid.UUID, error)
	ReassignBinding(ctx context.Context, tx db.DBTX, bindingID, stockUnitID uuid.UUID) error
	UpdateBindingQuantity(ctx context.Context, tx db.DBTX, bindingID uuid.UUID, quantity float64) error
	// ClearAutoAssigned removes automatically assigned bindings from every
	// open operation of the sales order so assignment re-runs hold-aware.
	ClearAutoAssigned(ctx context.Context, tx db.DBTX, salesOrderID uuid.UUID) (int64, error)
}

type LotRepository interface {
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*lot.Lot, error)
	Update(ctx context.Context, tx db.DBTX, l *lot.Lot) error
}

type PhotoRepository interface {
	Create(ctx context.Context, tx db.DBTX, p *lot.Photo) (uuid.UUID, error)
	FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*lot.Photo, error)
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, tx db.DBTX, userID uuid.UUID) error
}
