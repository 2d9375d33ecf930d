package readstore

import (
	"context"
	"time"

	"slabstock/internal/infra"
	"slabstock/internal/infra/db"
	"slabstock/internal/usecase/queries"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
)

const stockUnitViewSQL = `
SELECT su.id, su.product_id, su.location_id, su.lot_id, l.name,
       su.quantity, su.reserved_qty,
       h.partner_id, p.name, h.expires_at
FROM stock_units su
JOIN lots l ON l.id = su.lot_id
LEFT JOIN holds h ON h.stock_unit_id = su.id AND h.state = 'active'
LEFT JOIN partners p ON p.id = h.partner_id`

const findStockUnitViewSQL = stockUnitViewSQL + `
WHERE su.id = $1`

const listStockUnitViewsByLotSQL = stockUnitViewSQL + `
WHERE su.lot_id = $1
ORDER BY su.created_at`

const stockUnitSnapshotSQL = `
SELECT id, product_id, location_id, lot_id, quantity, reserved_qty
FROM stock_units
WHERE id = $1`

type StockUnitReadStore struct {
	db db.DBTX
}

func NewStockUnitReadStore(dbtx db.DBTX) *StockUnitReadStore {
	return &StockUnitReadStore{db: dbtx}
}

func (r *StockUnitReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.StockUnitView, error) {
	row := r.db.QueryRow(ctx, findStockUnitViewSQL, id)
	view, err := scanStockUnitView(row)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("stock unit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find stock unit view", err)
	}
	return view, nil
}

func (r *StockUnitReadStore) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*queries.StockUnitView, error) {
	rows, err := r.db.Query(ctx, listStockUnitViewsByLotSQL, lotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list stock units", err)
	}
	defer rows.Close()

	var views []*queries.StockUnitView
	for rows.Next() {
		view, err := scanStockUnitView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan stock unit row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read stock unit rows", err)
	}
	return views, nil
}

// FindSnapshot serves command-side validation reads.
func (r *StockUnitReadStore) FindSnapshot(ctx context.Context, id uuid.UUID) (*shared.StockUnitSnapshot, error) {
	var snap shared.StockUnitSnapshot
	err := r.db.QueryRow(ctx, stockUnitSnapshotSQL, id).Scan(
		&snap.ID, &snap.ProductID, &snap.LocationID, &snap.LotID,
		&snap.Quantity, &snap.ReservedQty)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("stock unit not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find stock unit", err)
	}
	return &snap, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStockUnitView(row rowScanner) (*queries.StockUnitView, error) {
	var (
		view      queries.StockUnitView
		heldForID *uuid.UUID
		heldName  *string
		expiresAt *time.Time
	)
	err := row.Scan(
		&view.ID, &view.ProductID, &view.LocationID, &view.LotID, &view.LotName,
		&view.Quantity, &view.ReservedQty,
		&heldForID, &heldName, &expiresAt)
	if err != nil {
		return nil, err
	}
	if heldForID != nil {
		view.HasActiveHold = true
		view.HeldForID = heldForID
		view.HeldForName = heldName
		view.HoldExpiresAt = expiresAt
	}
	return &view, nil
}
