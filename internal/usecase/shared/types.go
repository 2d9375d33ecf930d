package shared

import (
	"time"

	"github.com/google/uuid"
)

type StockUnitSnapshot struct {
	ID          uuid.UUID
	ProductID   uuid.UUID
	LocationID  uuid.UUID
	LotID       uuid.UUID
	Quantity    float64
	ReservedQty float64
}

type ActiveHoldSnapshot struct {
	ID          uuid.UUID
	StockUnitID uuid.UUID
	PartnerID   uuid.UUID
	PartnerName string
	ExpiresAt   time.Time
}

// OperationSnapshot is the guarded slice of a host picking document. The
// beneficiary is resolved in one place: the originating sales-order customer
// when the operation traces to one, else the document partner.
type OperationSnapshot struct {
	ID              uuid.UUID
	Reference       string
	Kind            string
	Status          string
	PartnerID       *uuid.UUID
	SalesOrderID    *uuid.UUID
	BeneficiaryID   *uuid.UUID
	BeneficiaryName string
}

func (o OperationSnapshot) IsOutgoing() bool {
	return o.Kind == "outgoing"
}

func (o OperationSnapshot) IsOpen() bool {
	return o.Status == "open"
}

type BindingSnapshot struct {
	ID           uuid.UUID
	OperationID  uuid.UUID
	StockUnitID  uuid.UUID
	Quantity     float64
	AutoAssigned bool
}

type UserSnapshot struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
}
