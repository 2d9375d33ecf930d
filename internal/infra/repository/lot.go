package repository

import (
	"context"
	"time"

	"slabstock/internal/domain/lot"
	"slabstock/internal/infra"
	"slabstock/internal/infra/db"

	"github.com/google/uuid"
)

const findLotByIDSQL = `
SELECT id, name, product_id, thickness_cm, height_m, width_m,
       block_code, bundle_code, format_code, plate_details, created_at, updated_at
FROM lots
WHERE id = $1`

const updateLotSQL = `
UPDATE lots
SET thickness_cm = $2, height_m = $3, width_m = $4,
    block_code = $5, bundle_code = $6, format_code = $7, plate_details = $8,
    updated_at = NOW()
WHERE id = $1`

type LotRepository struct{}

func NewLotRepository() *LotRepository {
	return &LotRepository{}
}

func (r *LotRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*lot.Lot, error) {
	var (
		lotID, productID                                 uuid.UUID
		name, blockCode, bundleCode, format, plateDetail string
		thicknessCM, heightM, widthM                     float64
		createdAt, updatedAt                             time.Time
	)
	err := tx.QueryRow(ctx, findLotByIDSQL, id).Scan(
		&lotID, &name, &productID, &thicknessCM, &heightM, &widthM,
		&blockCode, &bundleCode, &format, &plateDetail, &createdAt, &updatedAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find lot", err)
	}

	dims, err := lot.NewDimensions(thicknessCM, heightM, widthM)
	if err != nil {
		return nil, infra.WrapRepoErr("stored lot dimensions invalid", err)
	}
	return lot.ReconstructLot(
		lotID, name, productID, dims,
		blockCode, bundleCode, lot.Format(format), plateDetail,
		createdAt, updatedAt), nil
}

func (r *LotRepository) Update(ctx context.Context, tx db.DBTX, l *lot.Lot) error {
	dims := l.Dimensions()
	tag, err := tx.Exec(ctx, updateLotSQL,
		l.ID(), dims.ThicknessCM(), dims.HeightM(), dims.WidthM(),
		l.BlockCode(), l.BundleCode(), string(l.Format()), l.PlateDetails())
	if err != nil {
		return infra.WrapRepoErr("failed to update lot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("lot not found", nil, infra.KindNotFound)
	}
	return nil
}
