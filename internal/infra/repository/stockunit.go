package repository

import (
	"context"

	"slabstock/internal/infra"
	"slabstock/internal/infra/db"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
)

const lockStockUnitSQL = `
SELECT id, product_id, location_id, lot_id, quantity, reserved_qty
FROM stock_units
WHERE id = $1
FOR UPDATE`

type StockUnitRepository struct{}

func NewStockUnitRepository() *StockUnitRepository {
	return &StockUnitRepository{}
}

// LockByID serializes hold creation and binding writes per unit. Must run
// inside a transaction; on a pool connection the lock is released
// immediately and protects nothing.
func (r *StockUnitRepository) LockByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*shared.StockUnitSnapshot, error) {
	var snap shared.StockUnitSnapshot
	err := tx.QueryRow(ctx, lockStockUnitSQL, id).Scan(
		&snap.ID, &snap.ProductID, &snap.LocationID, &snap.LotID,
		&snap.Quantity, &snap.ReservedQty)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("stock unit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock stock unit", err)
	}
	return &snap, nil
}
