package readstore

import (
	"context"
	"time"

	"slabstock/internal/infra"
	"slabstock/internal/infra/db"
	"slabstock/internal/usecase/queries"

	"github.com/google/uuid"
)

// Held quantity counts the FULL quantity of a unit carrying a blocking
// hold: a held slab is all-or-nothing, partial consumption of a held unit
// is not a thing.
const availabilitySQL = `
SELECT
  COALESCE(SUM(su.quantity - su.reserved_qty), 0) AS base_available,
  COALESCE(SUM(CASE WHEN h.id IS NOT NULL THEN su.quantity ELSE 0 END), 0) AS held_quantity
FROM stock_units su
LEFT JOIN holds h ON h.stock_unit_id = su.id
  AND h.state = 'active'
  AND h.expires_at > $3
  AND ($4::uuid IS NULL OR h.partner_id <> $4)
WHERE su.product_id = $1
  AND su.location_id = $2
  AND ($5::uuid IS NULL OR su.lot_id = $5)`

// Units held for the operation's beneficiary sort first so the picker
// consumes reserved material before free stock.
const candidateUnitsSQL = `
WITH op AS (
  SELECT COALESCE(so.customer_id, o.partner_id) AS beneficiary_id
  FROM stock_operations o
  LEFT JOIN sales_orders so ON so.id = o.sales_order_id
  WHERE o.id = $1
)
SELECT su.id, su.lot_id, l.name, su.quantity, h.partner_id
FROM stock_units su
JOIN lots l ON l.id = su.lot_id
LEFT JOIN holds h ON h.stock_unit_id = su.id
  AND h.state = 'active'
  AND h.expires_at > $3
WHERE su.product_id = $2
  AND su.quantity > su.reserved_qty
  AND (h.id IS NULL OR h.partner_id = (SELECT beneficiary_id FROM op))
ORDER BY (h.id IS NOT NULL) DESC, su.created_at`

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

func (r *AvailabilityReadStore) Available(ctx context.Context, req queries.AvailabilityRequest, now time.Time) (*queries.AvailabilityView, error) {
	view := queries.AvailabilityView{
		ProductID:  req.ProductID,
		LocationID: req.LocationID,
	}
	err := r.db.QueryRow(ctx, availabilitySQL,
		req.ProductID, req.LocationID, now, req.BeneficiaryID, req.LotID,
	).Scan(&view.BaseAvailable, &view.HeldQuantity)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to compute availability", err)
	}
	return &view, nil
}

func (r *AvailabilityReadStore) CandidateUnits(ctx context.Context, operationID, productID uuid.UUID, now time.Time) ([]*queries.CandidateUnitView, error) {
	rows, err := r.db.Query(ctx, candidateUnitsSQL, operationID, productID, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list candidate units", err)
	}
	defer rows.Close()

	var views []*queries.CandidateUnitView
	for rows.Next() {
		var view queries.CandidateUnitView
		if err := rows.Scan(&view.StockUnitID, &view.LotID, &view.LotName, &view.Quantity, &view.HeldForID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan candidate unit", err)
		}
		views = append(views, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read candidate units", err)
	}
	return views, nil
}
