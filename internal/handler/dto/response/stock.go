package response

import (
	"time"

	"slabstock/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type StockUnitResponse struct {
	ID                uuid.UUID  `json:"id"`
	ProductID         uuid.UUID  `json:"product_id"`
	LocationID        uuid.UUID  `json:"location_id"`
	LotID             uuid.UUID  `json:"lot_id"`
	LotName           string     `json:"lot_name"`
	Quantity          float64    `json:"quantity"`
	ReservedQty       float64    `json:"reserved_qty"`
	HasActiveHold     bool       `json:"has_active_hold"`
	HeldForID         *uuid.UUID `json:"held_for_id,omitempty"`
	HeldForName       *string    `json:"held_for_name,omitempty"`
	HoldExpiresAt     *time.Time `json:"hold_expires_at,omitempty"`
	HoldDaysRemaining *int       `json:"hold_days_remaining,omitempty"`
}

func FromStockUnitView(v *queries.StockUnitView) *StockUnitResponse {
	var resp StockUnitResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromStockUnitList(items []*queries.StockUnitView) []*StockUnitResponse {
	res := make([]*StockUnitResponse, len(items))
	for i, it := range items {
		res[i] = FromStockUnitView(it)
	}
	return res
}

type AvailabilityResponse struct {
	ProductID     uuid.UUID `json:"product_id"`
	LocationID    uuid.UUID `json:"location_id"`
	BaseAvailable float64   `json:"base_available"`
	HeldQuantity  float64   `json:"held_quantity"`
	Available     float64   `json:"available"`
}

func FromAvailabilityView(v *queries.AvailabilityView) *AvailabilityResponse {
	var resp AvailabilityResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

type CandidateUnitResponse struct {
	StockUnitID uuid.UUID  `json:"stock_unit_id"`
	LotID       uuid.UUID  `json:"lot_id"`
	LotName     string     `json:"lot_name"`
	Quantity    float64    `json:"quantity"`
	HeldForID   *uuid.UUID `json:"held_for_id,omitempty"`
}

func FromCandidateUnits(items []*queries.CandidateUnitView) []*CandidateUnitResponse {
	res := make([]*CandidateUnitResponse, len(items))
	for i, it := range items {
		var resp CandidateUnitResponse
		_ = copier.Copy(&resp, it)
		res[i] = &resp
	}
	return res
}
