package repository

import (
	"context"
	"time"

	"slabstock/internal/domain/hold"
	"slabstock/internal/infra"
	"slabstock/internal/infra/db"

	"github.com/google/uuid"
)

const createHoldSQL = `
INSERT INTO holds (id, stock_unit_id, lot_id, partner_id, created_by, state, note, created_at, expires_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
RETURNING id`

const updateHoldSQL = `
UPDATE holds
SET state = $2, note = $3, created_at = $4, expires_at = $5, updated_at = NOW()
WHERE id = $1`

const findHoldByIDSQL = `
SELECT id, stock_unit_id, lot_id, partner_id, created_by, state, note, created_at, expires_at, updated_at
FROM holds
WHERE id = $1`

const expireDueSQL = `
UPDATE holds
SET state = 'expired', updated_at = NOW()
WHERE state = 'active' AND expires_at <= $1
RETURNING stock_unit_id`

const findActiveDuplicatesSQL = `
SELECT stock_unit_id
FROM holds
WHERE state = 'active'
GROUP BY stock_unit_id
HAVING COUNT(*) > 1`

type HoldRepository struct{}

func NewHoldRepository() *HoldRepository {
	return &HoldRepository{}
}

func (r *HoldRepository) Create(ctx context.Context, tx db.DBTX, h *hold.Hold) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createHoldSQL,
		h.ID(), h.StockUnitID(), h.LotID(), h.PartnerID(), h.CreatedBy(),
		string(h.State()), h.Note().String(), h.CreatedAt(), h.ExpiresAt(),
	).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("active hold already exists for stock unit", err, infra.KindConflict)
		}
		if db.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("hold references missing row", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create hold", err)
	}
	return id, nil
}

func (r *HoldRepository) Update(ctx context.Context, tx db.DBTX, h *hold.Hold) error {
	tag, err := tx.Exec(ctx, updateHoldSQL,
		h.ID(), string(h.State()), h.Note().String(), h.CreatedAt(), h.ExpiresAt())
	if err != nil {
		if db.IsUniqueViolation(err) {
			return infra.WrapRepoErr("active hold already exists for stock unit", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to update hold", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("hold not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *HoldRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*hold.Hold, error) {
	var (
		holdID, stockUnitID, lotID, partnerID, createdBy uuid.UUID
		state, note                                      string
		createdAt, expiresAt, updatedAt                  time.Time
	)
	err := tx.QueryRow(ctx, findHoldByIDSQL, id).Scan(
		&holdID, &stockUnitID, &lotID, &partnerID, &createdBy,
		&state, &note, &createdAt, &expiresAt, &updatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("hold not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hold", err)
	}

	return hold.ReconstructHold(
		holdID, stockUnitID, lotID, partnerID, createdBy,
		hold.State(state), hold.NewNote(note),
		createdAt, expiresAt, updatedAt), nil
}

func (r *HoldRepository) ExpireDue(ctx context.Context, tx db.DBTX, now time.Time) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, expireDueSQL, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire due holds", err)
	}
	defer rows.Close()

	var unitIDs []uuid.UUID
	for rows.Next() {
		var unitID uuid.UUID
		if err := rows.Scan(&unitID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired hold row", err)
		}
		unitIDs = append(unitIDs, unitID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired hold rows", err)
	}
	return unitIDs, nil
}

func (r *HoldRepository) FindActiveDuplicates(ctx context.Context, tx db.DBTX) ([]uuid.UUID, error) {
	rows, err := tx.Query(ctx, findActiveDuplicatesSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to check active hold duplicates", err)
	}
	defer rows.Close()

	var unitIDs []uuid.UUID
	for rows.Next() {
		var unitID uuid.UUID
		if err := rows.Scan(&unitID); err != nil {
			return nil, infra.WrapRepoErr("failed to scan duplicate hold row", err)
		}
		unitIDs = append(unitIDs, unitID)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read duplicate hold rows", err)
	}
	return unitIDs, nil
}
