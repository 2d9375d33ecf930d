package commands

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"slabstock/internal/blob"
	"slabstock/internal/domain/lot"
	"slabstock/internal/infra"
	"slabstock/internal/pkg/clock"
	"slabstock/internal/pkg/errs"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrPhotoNotFound    = errs.New("photo not found")
	ErrPhotoWriteFailed = errs.New("photo write failed")
	ErrEmptyPhoto       = errs.New("photo payload is empty")
)

type AddPhotoRequest struct {
	LotID       uuid.UUID
	DisplayName string
	Sequence    int
	ContentType string
	Payload     []byte
	CapturedAt  *time.Time
	Note        string
}

type PhotoCommands interface {
	Add(ctx context.Context, req AddPhotoRequest) (uuid.UUID, error)
	Delete(ctx context.Context, photoID uuid.UUID) error
}

type photoCommandsImpl struct {
	uow   shared.UnitOfWork
	store blob.Store
	clock clock.Clock
}

func NewPhotoCommands(uow shared.UnitOfWork, store blob.Store, clk clock.Clock) PhotoCommands {
	return &photoCommandsImpl{uow: uow, store: store, clock: clk}
}

// Add stores the payload in blob storage first, then records the photo row.
// An orphaned blob after a failed insert is cleaned up best effort; an
// orphan that survives is harmless and invisible.
func (c *photoCommandsImpl) Add(ctx context.Context, req AddPhotoRequest) (uuid.UUID, error) {
	if len(req.Payload) == 0 {
		return uuid.Nil, ErrEmptyPhoto
	}

	capturedAt := c.clock.Now()
	if req.CapturedAt != nil {
		capturedAt = *req.CapturedAt
	}

	var photoID uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, err := tx.Lots().FindByID(ctx, tx.DB(), req.LotID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLotNotFound
			}
			return errs.Mark(err, ErrPhotoWriteFailed)
		}

		key := blobKey(req.LotID, uuid.New())

		entity, err := lot.NewPhoto(req.LotID, req.DisplayName, req.Sequence, key, req.ContentType, int64(len(req.Payload)), capturedAt, req.Note)
		if err != nil {
			return errs.Mark(err, ErrPhotoWriteFailed)
		}

		if _, err = c.store.Put(ctx, key, bytes.NewReader(req.Payload), blob.PutOptions{ContentType: req.ContentType}); err != nil {
			return errs.Mark(err, ErrPhotoWriteFailed)
		}

		if _, err = tx.Photos().Create(ctx, tx.DB(), entity); err != nil {
			if _, derr := c.store.Delete(ctx, key); derr != nil {
				slog.Warn("failed to clean up orphaned photo blob", "key", key, "error", derr)
			}
			return errs.Mark(err, ErrPhotoWriteFailed)
		}
		photoID = entity.ID()
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}

	slog.Info("lot photo added", "photo_id", photoID, "lot_id", req.LotID)
	return photoID, nil
}

func (c *photoCommandsImpl) Delete(ctx context.Context, photoID uuid.UUID) error {
	var key string
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Photos().FindByID(ctx, tx.DB(), photoID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPhotoNotFound
			}
			return errs.Mark(err, ErrPhotoWriteFailed)
		}
		key = entity.BlobKey()
		if derr := tx.Photos().Delete(ctx, tx.DB(), photoID); derr != nil {
			return errs.Mark(derr, ErrPhotoWriteFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if _, derr := c.store.Delete(ctx, key); derr != nil {
		slog.Warn("failed to delete photo blob", "key", key, "error", derr)
	}
	return nil
}

func blobKey(lotID, photoID uuid.UUID) string {
	return fmt.Sprintf("lots/%s/%s", lotID, photoID)
}
