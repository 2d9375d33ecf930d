package readstore

import (
	"context"

	"slabstock/internal/infra"
	"slabstock/internal/infra/db"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
)

// Beneficiary resolution happens here and nowhere else: the sales-order
// customer when the operation traces to one, else the document partner.
const operationSnapshotSQL = `
SELECT o.id, o.reference, o.kind, o.status, o.partner_id, o.sales_order_id,
       COALESCE(so.customer_id, o.partner_id) AS beneficiary_id,
       COALESCE(p.name, '') AS beneficiary_name
FROM stock_operations o
LEFT JOIN sales_orders so ON so.id = o.sales_order_id
LEFT JOIN partners p ON p.id = COALESCE(so.customer_id, o.partner_id)
WHERE o.id = $1`

const bindingSnapshotSQL = `
SELECT id, operation_id, stock_unit_id, quantity, auto_assigned
FROM unit_bindings
WHERE id = $1`

const bindingsByOperationSQL = `
SELECT id, operation_id, stock_unit_id, quantity, auto_assigned
FROM unit_bindings
WHERE operation_id = $1
ORDER BY created_at`

type OperationReadStore struct {
	db db.DBTX
}

func NewOperationReadStore(dbtx db.DBTX) *OperationReadStore {
	return &OperationReadStore{db: dbtx}
}

func (r *OperationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.OperationSnapshot, error) {
	var snap shared.OperationSnapshot
	err := r.db.QueryRow(ctx, operationSnapshotSQL, id).Scan(
		&snap.ID, &snap.Reference, &snap.Kind, &snap.Status,
		&snap.PartnerID, &snap.SalesOrderID,
		&snap.BeneficiaryID, &snap.BeneficiaryName)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("stock operation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find stock operation", err)
	}
	return &snap, nil
}

func (r *OperationReadStore) FindBindingByID(ctx context.Context, id uuid.UUID) (*shared.BindingSnapshot, error) {
	var snap shared.BindingSnapshot
	err := r.db.QueryRow(ctx, bindingSnapshotSQL, id).Scan(
		&snap.ID, &snap.OperationID, &snap.StockUnitID, &snap.Quantity, &snap.AutoAssigned)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("unit binding not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find unit binding", err)
	}
	return &snap, nil
}

func (r *OperationReadStore) ListBindings(ctx context.Context, operationID uuid.UUID) ([]shared.BindingSnapshot, error) {
	rows, err := r.db.Query(ctx, bindingsByOperationSQL, operationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list unit bindings", err)
	}
	defer rows.Close()

	var snaps []shared.BindingSnapshot
	for rows.Next() {
		var snap shared.BindingSnapshot
		if err := rows.Scan(&snap.ID, &snap.OperationID, &snap.StockUnitID, &snap.Quantity, &snap.AutoAssigned); err != nil {
			return nil, infra.WrapRepoErr("failed to scan unit binding", err)
		}
		snaps = append(snaps, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read unit bindings", err)
	}
	return snaps, nil
}
