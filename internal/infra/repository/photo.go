package repository

import (
	"context"
	"time"

	"slabstock/internal/domain/lot"
	"slabstock/internal/infra"
	"slabstock/internal/infra/db"

	"github.com/google/uuid"
)

const createPhotoSQL = `
INSERT INTO lot_photos (id, lot_id, display_name, sequence, blob_key, content_type, size_bytes, captured_at, note)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id`

const findPhotoByIDSQL = `
SELECT id, lot_id, display_name, sequence, blob_key, content_type, size_bytes, captured_at, note, created_at
FROM lot_photos
WHERE id = $1`

const deletePhotoSQL = `DELETE FROM lot_photos WHERE id = $1`

type PhotoRepository struct{}

func NewPhotoRepository() *PhotoRepository {
	return &PhotoRepository{}
}

func (r *PhotoRepository) Create(ctx context.Context, tx db.DBTX, p *lot.Photo) (uuid.UUID, error) {
	var id uuid.UUID
	err := tx.QueryRow(ctx, createPhotoSQL,
		p.ID(), p.LotID(), p.DisplayName(), p.Sequence(), p.BlobKey(),
		p.ContentType(), p.SizeBytes(), p.CapturedAt(), p.Note(),
	).Scan(&id)
	if err != nil {
		if db.IsForeignKeyViolation(err) {
			return uuid.Nil, infra.WrapRepoErr("photo references missing lot", err, infra.KindForeignKeyViolated)
		}
		return uuid.Nil, infra.WrapRepoErr("failed to create photo", err)
	}
	return id, nil
}

func (r *PhotoRepository) FindByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*lot.Photo, error) {
	var (
		photoID, lotID                           uuid.UUID
		displayName, blobKey, contentType, note  string
		sequence                                 int
		sizeBytes                                int64
		capturedAt, createdAt                    time.Time
	)
	err := tx.QueryRow(ctx, findPhotoByIDSQL, id).Scan(
		&photoID, &lotID, &displayName, &sequence, &blobKey,
		&contentType, &sizeBytes, &capturedAt, &note, &createdAt)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, infra.WrapRepoErr("photo not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find photo", err)
	}
	return lot.ReconstructPhoto(photoID, lotID, displayName, sequence, blobKey, contentType, sizeBytes, capturedAt, note, createdAt), nil
}

func (r *PhotoRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, deletePhotoSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete photo", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("photo not found", nil, infra.KindNotFound)
	}
	return nil
}
