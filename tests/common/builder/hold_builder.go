//go:build unit || e2e

package builder

import (
	"time"

	reqdto "slabstock/internal/handler/dto/request"
	"slabstock/internal/usecase/queries"

	"github.com/google/uuid"
)

type HoldBuilder struct {
	ID          uuid.UUID
	StockUnitID uuid.UUID
	LotID       uuid.UUID
	LotName     string
	PartnerID   uuid.UUID
	PartnerName string
	CreatedBy   uuid.UUID
	State       string
	Note        string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func NewHoldBuilder() *HoldBuilder {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return &HoldBuilder{
		ID:          uuid.New(),
		StockUnitID: uuid.New(),
		LotID:       uuid.New(),
		LotName:     "Calacatta Oro #81",
		PartnerID:   uuid.New(),
		PartnerName: "Marble & Co",
		CreatedBy:   uuid.New(),
		State:       "active",
		CreatedAt:   now,
		ExpiresAt:   now.Add(240 * time.Hour),
	}
}

func (b *HoldBuilder) WithState(state string) *HoldBuilder {
	b.State = state
	return b
}

func (b *HoldBuilder) WithExpiresAt(t time.Time) *HoldBuilder {
	b.ExpiresAt = t
	return b
}

func (b *HoldBuilder) BuildDTO() reqdto.CreateHoldRequest {
	return reqdto.CreateHoldRequest{
		StockUnitID: b.StockUnitID,
		PartnerID:   b.PartnerID,
		Note:        b.Note,
	}
}

func (b *HoldBuilder) BuildView() *queries.HoldView {
	var note *string
	if b.Note != "" {
		note = &b.Note
	}
	return &queries.HoldView{
		ID:          b.ID,
		StockUnitID: b.StockUnitID,
		LotID:       b.LotID,
		LotName:     b.LotName,
		PartnerID:   b.PartnerID,
		PartnerName: b.PartnerName,
		CreatedBy:   b.CreatedBy,
		State:       b.State,
		Note:        note,
		CreatedAt:   b.CreatedAt,
		ExpiresAt:   b.ExpiresAt,
	}
}
