package request

import (
	"slabstock/internal/usecase/commands"

	"github.com/google/uuid"
)

type BindUnitRequest struct {
	StockUnitID  uuid.UUID `json:"stock_unit_id" binding:"required"`
	Quantity     float64   `json:"quantity" binding:"required,gt=0"`
	AutoAssigned bool      `json:"auto_assigned"`
}

func (r *BindUnitRequest) ToCommand(operationID uuid.UUID) commands.BindUnitRequest {
	return commands.BindUnitRequest{
		OperationID:  operationID,
		StockUnitID:  r.StockUnitID,
		Quantity:     r.Quantity,
		AutoAssigned: r.AutoAssigned,
	}
}

type ReassignBindingRequest struct {
	StockUnitID uuid.UUID `json:"stock_unit_id" binding:"required"`
}
