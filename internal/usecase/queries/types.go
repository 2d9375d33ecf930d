package queries

import (
	"time"

	"github.com/google/uuid"
)

// HoldView represents read-optimized hold data. DaysRemaining is derived
// from the clock at query time and may be negative for overdue holds that
// the sweep has not retired yet.
type HoldView struct {
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

type HoldListItem struct {
	ID            uuid.UUID `json:"id"`
	StockUnitID   uuid.UUID `json:"stock_unit_id"`
	LotName       string    `json:"lot_name"`
	PartnerName   string    `json:"partner_name"`
	State         string    `json:"state"`
	ExpiresAt     time.Time `json:"expires_at"`
	DaysRemaining int       `json:"days_remaining"`
}

// StockUnitView mirrors the hold onto the unit for list screens. The mirror
// fields are computed on read, never stored.
type StockUnitView struct {
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

// AvailabilityView is base availability minus the quantity of units held
// for other beneficiaries, floored at zero.
type AvailabilityView struct {
	ProductID     uuid.UUID `json:"product_id"`
	LocationID    uuid.UUID `json:"location_id"`
	BaseAvailable float64   `json:"base_available"`
	HeldQuantity  float64   `json:"held_quantity"`
	Available     float64   `json:"available"`
}

type CandidateUnitView struct {
	StockUnitID uuid.UUID  `json:"stock_unit_id"`
	LotID       uuid.UUID  `json:"lot_id"`
	LotName     string     `json:"lot_name"`
	Quantity    float64    `json:"quantity"`
	HeldForID   *uuid.UUID `json:"held_for_id,omitempty"`
}

type LotView struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ProductID    uuid.UUID `json:"product_id"`
	ThicknessCM  float64   `json:"thickness_cm"`
	HeightM      float64   `json:"height_m"`
	WidthM       float64   `json:"width_m"`
	AreaM2       float64   `json:"area_m2"`
	BlockCode    string    `json:"block_code"`
	BundleCode   string    `json:"bundle_code"`
	Format       string    `json:"format"`
	PlateDetails string    `json:"plate_details"`
	PhotoCount   int       `json:"photo_count"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type PhotoView struct {
	ID          uuid.UUID `json:"id"`
	LotID       uuid.UUID `json:"lot_id"`
	DisplayName string    `json:"display_name"`
	Sequence    int       `json:"sequence"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CapturedAt  time.Time `json:"captured_at"`
	Note        *string   `json:"note,omitempty"`
	URL         string    `json:"url,omitempty"`
	BlobKey     string    `json:"-"`
}

type AuthorizedUserView struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Role     string    `json:"role"`
	IsActive bool      `json:"is_active"`
}
