package readstore

import (
	"context"

	"slabstock/internal/infra"
	"slabstock/internal/infra/db"
	"slabstock/internal/usecase/queries"

	"github.com/google/uuid"
)

const findLotViewSQL = `
SELECT l.id, l.name, l.product_id, l.thickness_cm, l.height_m, l.width_m,
       l.block_code, l.bundle_code, l.format_code, l.plate_details,
       l.created_at, l.updated_at,
       (SELECT COUNT(*) FROM lot_photos lp WHERE lp.lot_id = l.id) AS photo_count
FROM lots l
WHERE l.id = $1`

const listPhotosSQL = `
SELECT id, lot_id, display_name, sequence, content_type, size_bytes, captured_at, note, blob_key
FROM lot_photos
WHERE lot_id = $1
ORDER BY sequence, created_at`

const findPhotoViewSQL = `
SELECT id, lot_id, display_name, sequence, content_type, size_bytes, captured_at, note, blob_key
FROM lot_photos
WHERE id = $1`

type LotReadStore struct {
	db db.DBTX
}

func NewLotReadStore(dbtx db.DBTX) *LotReadStore {
	return &LotReadStore{db: dbtx}
}

func (r *LotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.LotView, error) {
	var view queries.LotView
	err := r.db.QueryRow(ctx, findLotViewSQL, id).Scan(
		&view.ID, &view.Name, &view.ProductID,
		&view.ThicknessCM, &view.HeightM, &view.WidthM,
		&view.BlockCode, &view.BundleCode, &view.Format, &view.PlateDetails,
		&view.CreatedAt, &view.UpdatedAt, &view.PhotoCount)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("lot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find lot view", err)
	}
	return &view, nil
}

func (r *LotReadStore) ListPhotos(ctx context.Context, lotID uuid.UUID) ([]*queries.PhotoView, error) {
	rows, err := r.db.Query(ctx, listPhotosSQL, lotID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list photos", err)
	}
	defer rows.Close()

	var views []*queries.PhotoView
	for rows.Next() {
		view, err := scanPhotoView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan photo row", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read photo rows", err)
	}
	return views, nil
}

func (r *LotReadStore) FindPhotoByID(ctx context.Context, photoID uuid.UUID) (*queries.PhotoView, error) {
	view, err := scanPhotoView(r.db.QueryRow(ctx, findPhotoViewSQL, photoID))
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("photo not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find photo view", err)
	}
	return view, nil
}

func scanPhotoView(row rowScanner) (*queries.PhotoView, error) {
	var (
		view queries.PhotoView
		note string
	)
	err := row.Scan(
		&view.ID, &view.LotID, &view.DisplayName, &view.Sequence,
		&view.ContentType, &view.SizeBytes, &view.CapturedAt, &note, &view.BlobKey)
	if err != nil {
		return nil, err
	}
	if note != "" {
		view.Note = &note
	}
	return &view, nil
}
