package request

import (
	"slabstock/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateHoldRequest struct {
	StockUnitID uuid.UUID `json:"stock_unit_id" binding:"required"`
	PartnerID   uuid.UUID `json:"partner_id" binding:"required"`
	Note        string    `json:"note" binding:"max=500"`
}

func (r *CreateHoldRequest) ToCommand() commands.CreateHoldRequest {
	return commands.CreateHoldRequest{
		StockUnitID: r.StockUnitID,
		PartnerID:   r.PartnerID,
		Note:        r.Note,
	}
}
