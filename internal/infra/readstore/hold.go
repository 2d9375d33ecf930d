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

const findHoldViewSQL = `
SELECT h.id, h.stock_unit_id, h.lot_id, l.name, h.partner_id, p.name,
       h.created_by, h.state, h.note, h.created_at, h.expires_at
FROM holds h
JOIN lots l ON l.id = h.lot_id
JOIN partners p ON p.id = h.partner_id
WHERE h.id = $1`

const listHoldsByLotSQL = `
SELECT h.id, h.stock_unit_id, l.name, p.name, h.state, h.expires_at
FROM holds h
JOIN lots l ON l.id = h.lot_id
JOIN partners p ON p.id = h.partner_id
WHERE h.lot_id = $1
ORDER BY h.created_at DESC`

const listActiveExpiringSQL = `
SELECT h.id, h.stock_unit_id, l.name, p.name, h.state, h.expires_at
FROM holds h
JOIN lots l ON l.id = h.lot_id
JOIN partners p ON p.id = h.partner_id
WHERE h.state = 'active' AND h.expires_at < $1
ORDER BY h.expires_at`

const activeHoldByUnitSQL = `
SELECT h.id, h.stock_unit_id, h.partner_id, p.name, h.expires_at
FROM holds h
JOIN partners p ON p.id = h.partner_id
WHERE h.stock_unit_id = $1 AND h.state = 'active'`

type HoldReadStore struct {
	db db.DBTX
}

func NewHoldReadStore(dbtx db.DBTX) *HoldReadStore {
	return &HoldReadStore{db: dbtx}
}

func (r *HoldReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.HoldView, error) {
	var (
		view queries.HoldView
		note string
	)
	err := r.db.QueryRow(ctx, findHoldViewSQL, id).Scan(
		&view.ID, &view.StockUnitID, &view.LotID, &view.LotName,
		&view.PartnerID, &view.PartnerName, &view.CreatedBy,
		&view.State, &note, &view.CreatedAt, &view.ExpiresAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hold view", err)
	}
	if note != "" {
		view.Note = &note
	}
	return &view, nil
}

func (r *HoldReadStore) ListByLot(ctx context.Context, lotID uuid.UUID) ([]*queries.HoldListItem, error) {
	return r.list(ctx, listHoldsByLotSQL, lotID)
}

func (r *HoldReadStore) ListActiveExpiringBefore(ctx context.Context, deadline time.Time) ([]*queries.HoldListItem, error) {
	return r.list(ctx, listActiveExpiringSQL, deadline)
}

func (r *HoldReadStore) list(ctx context.Context, sql string, arg any) ([]*queries.HoldListItem, error) {
	rows, err := r.db.Query(ctx, sql, arg)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list holds", err)
	}
	defer rows.Close()

	var items []*queries.HoldListItem
	for rows.Next() {
		var item queries.HoldListItem
		if err := rows.Scan(&item.ID, &item.StockUnitID, &item.LotName, &item.PartnerName, &item.State, &item.ExpiresAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan hold row", err)
		}
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read hold rows", err)
	}
	return items, nil
}

// ActiveHoldByStockUnit serves the command side; at most one row can match
// thanks to the partial unique index.
func (r *HoldReadStore) ActiveHoldByStockUnit(ctx context.Context, stockUnitID uuid.UUID) (*shared.ActiveHoldSnapshot, error) {
	var snap shared.ActiveHoldSnapshot
	err := r.db.QueryRow(ctx, activeHoldByUnitSQL, stockUnitID).Scan(
		&snap.ID, &snap.StockUnitID, &snap.PartnerID, &snap.PartnerName, &snap.ExpiresAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no active hold for stock unit", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find active hold", err)
	}
	return &snap, nil
}
