package request

import (
	"slabstock/internal/usecase/commands"

	"github.com/google/uuid"
)

type UpdateLotAttributesRequest struct {
	ThicknessCM  *float64 `json:"thickness_cm" binding:"omitempty,gt=0"`
	HeightM      *float64 `json:"height_m" binding:"omitempty,gt=0"`
	WidthM       *float64 `json:"width_m" binding:"omitempty,gt=0"`
	BlockCode    *string  `json:"block_code" binding:"omitempty,max=100"`
	BundleCode   *string  `json:"bundle_code" binding:"omitempty,max=100"`
	Format       *string  `json:"format" binding:"omitempty,max=50"`
	PlateDetails *string  `json:"plate_details" binding:"omitempty,max=1000"`
}

func (r *UpdateLotAttributesRequest) ToCommand() commands.UpdateLotAttributesRequest {
	return commands.UpdateLotAttributesRequest{
		ThicknessCM:  r.ThicknessCM,
		HeightM:      r.HeightM,
		WidthM:       r.WidthM,
		BlockCode:    r.BlockCode,
		BundleCode:   r.BundleCode,
		Format:       r.Format,
		PlateDetails: r.PlateDetails,
	}
}

type CaptureReceptionRequest struct {
	BindingID   uuid.UUID `json:"binding_id" binding:"required"`
	ThicknessCM float64   `json:"thickness_cm" binding:"required,gt=0"`
	HeightM     float64   `json:"height_m" binding:"required,gt=0"`
	WidthM      float64   `json:"width_m" binding:"required,gt=0"`
}

func (r *CaptureReceptionRequest) ToCommand() commands.CaptureReceptionRequest {
	return commands.CaptureReceptionRequest{
		BindingID:   r.BindingID,
		ThicknessCM: r.ThicknessCM,
		HeightM:     r.HeightM,
		WidthM:      r.WidthM,
	}
}
