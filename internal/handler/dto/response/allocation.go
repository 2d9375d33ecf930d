package response

import (
	"time"

	"slabstock/internal/usecase/commands"

	"github.com/google/uuid"
)

type BindingResponse struct {
	BindingID uuid.UUID `json:"binding_id"`
}

// AllocationBlockedDetail names the hold that prevented the assignment.
type AllocationBlockedDetail struct {
	StockUnitID uuid.UUID `json:"stock_unit_id"`
	PartnerName string    `json:"partner_name"`
	ExpiresAt   time.Time `json:"expires_at"`
}

func FromBlockedError(e *commands.BlockedError) *AllocationBlockedDetail {
	return &AllocationBlockedDetail{
		StockUnitID: e.StockUnitID,
		PartnerName: e.PartnerName,
		ExpiresAt:   e.ExpiresAt,
	}
}

type OperationViolationDetail struct {
	OperationRef string                     `json:"operation_ref"`
	Blocked      []*AllocationBlockedDetail `json:"blocked"`
}

func FromViolationError(e *commands.ViolationError) *OperationViolationDetail {
	blocked := make([]*AllocationBlockedDetail, len(e.Blocked))
	for i := range e.Blocked {
		blocked[i] = FromBlockedError(&e.Blocked[i])
	}
	return &OperationViolationDetail{
		OperationRef: e.OperationRef,
		Blocked:      blocked,
	}
}

type ReleaseResponse struct {
	Released int64 `json:"released"`
}
