package response

import (
	"time"

	"slabstock/internal/usecase/commands"
	"slabstock/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type HoldResponse struct {
	ID            uuid.UUID `json:"id"`
	StockUnitID   uuid.UUID `json:"stock_unit_id"`
	LotID         uuid.UUID `json:"lot_id"`
	LotName       string    `json:"lot_name"`
	PartnerID     uuid.UUID `json:"partner_id"`
	PartnerName   string    `json:"partner_name"`
	CreatedBy     uuid.UUID `json:"created_by"`
	State         string    `json:"state"`
	Note          *string   `json:"note,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `json:"expires_at"`
	DaysRemaining int       `json:"days_remaining"`
}

func FromHoldView(v *queries.HoldView) *HoldResponse {
	var resp HoldResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

type HoldListItemResponse struct {
	ID            uuid.UUID `json:"id"`
	StockUnitID   uuid.UUID `json:"stock_unit_id"`
	LotName       string    `json:"lot_name"`
	PartnerName   string    `json:"partner_name"`
	State         string    `json:"state"`
	ExpiresAt     time.Time `json:"expires_at"`
	DaysRemaining int       `json:"days_remaining"`
}

func FromHoldList(items []*queries.HoldListItem) []*HoldListItemResponse {
	res := make([]*HoldListItemResponse, len(items))
	for i, it := range items {
		var resp HoldListItemResponse
		_ = copier.Copy(&resp, it)
		res[i] = &resp
	}
	return res
}

// HoldConflictDetail explains a rejected create so the caller can surface
// who holds the unit and until when.
type HoldConflictDetail struct {
	HoldID        uuid.UUID `json:"hold_id"`
	PartnerName   string    `json:"partner_name"`
	ExpiresAt     time.Time `json:"expires_at"`
	DaysRemaining int       `json:"days_remaining"`
}

func FromConflictError(e *commands.ConflictError) *HoldConflictDetail {
	return &HoldConflictDetail{
		HoldID:        e.HoldID,
		PartnerName:   e.PartnerName,
		ExpiresAt:     e.ExpiresAt,
		DaysRemaining: e.DaysRemaining,
	}
}

type SweepResponse struct {
	Expired    int         `json:"expired"`
	StockUnits []uuid.UUID `json:"stock_units"`
}

func FromSweepResult(r *commands.SweepResult) *SweepResponse {
	return &SweepResponse{
		Expired:    r.Expired,
		StockUnits: r.StockUnits,
	}
}
