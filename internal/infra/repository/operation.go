package repository

import (
	"context"

	"slabstock/internal/infra"
	"slabstock/internal/infra/db"

	"github.com/google/uuid"
)

const createBindingSQL = `
INSERT INTO unit_bindings (operation_id, stock_unit_id, quantity, auto_assigned)
VALUES ($1, $2, $3, $4)
RETURNING id`

const reassignBindingSQL = `
UPDATE unit_bindings
SET stock_unit_id = $2, updated_at = NOW()
WHERE id = $1`

const updateBindingQuantitySQL = `
UPDATE unit_bindings
SET quantity = $2, updated_at = NOW()
WHERE id = $1`

const clearAutoAssignedSQL = `
DELETE FROM unit_bindings
WHERE auto_assigned
  AND operation_id IN (
    SELECT id FROM stock_operations
    WHERE sales_order_id = $1 AND status = 'open'
  )`

type OperationRepository struct{}

func NewOperationRepository() *OperationRepository {
	return &OperationRepository{}
}

func (r *OperationRepository) CreateBinding(ctx context.Context, tx db.DBTX, operationID, stockUnitID uuid.UUID, quantity float64, autoAssigned bool) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createBindingSQL, operationID, stockUnitID, quantity, autoAssigned).Scan(&id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("binding references missing row", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create unit binding", err)
	}
	return id, nil
}

func (r *OperationRepository) ReassignBinding(ctx context.Context, tx db.DBTX, bindingID, stockUnitID uuid.UUID) error {
	tag, err := tx.Exec(ctx, reassignBindingSQL, bindingID, stockUnitID)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return infra.WrapRepoErr("binding references missing stock unit", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to reassign unit binding", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("unit binding not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OperationRepository) UpdateBindingQuantity(ctx context.Context, tx db.DBTX, bindingID uuid.UUID, quantity float64) error {
	tag, err := tx.Exec(ctx, updateBindingQuantitySQL, bindingID, quantity)
	if err != nil {
		return infra.WrapRepoErr("failed to update binding quantity", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("unit binding not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *OperationRepository) ClearAutoAssigned(ctx context.Context, tx db.DBTX, salesOrderID uuid.UUID) (int64, error) {
	tag, err := tx.Exec(ctx, clearAutoAssignedSQL, salesOrderID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to clear auto-assigned bindings", err)
	}
	return tag.RowsAffected(), nil
}
