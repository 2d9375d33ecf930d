package queries

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"slabstock/internal/blob"
	"slabstock/internal/infra"
	"slabstock/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrLotNotFound   = errs.New("lot not found")
	ErrPhotoNotFound = errs.New("photo not found")
)

const photoURLExpiry = 15 * time.Minute

type LotQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*LotView, error)
	// ListPhotos returns the lot's photos in display order. When the blob
	// driver supports presigning each view carries a download URL.
	ListPhotos(ctx context.Context, lotID uuid.UUID) ([]*PhotoView, error)
	GetPhoto(ctx context.Context, photoID uuid.UUID) (*PhotoView, []byte, error)
}

type LotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*LotView, error)
	ListPhotos(ctx context.Context, lotID uuid.UUID) ([]*PhotoView, error)
	FindPhotoByID(ctx context.Context, photoID uuid.UUID) (*PhotoView, error)
}

type lotQueriesImpl struct {
	readStore LotReadStore
	store     blob.Store
}

func NewLotQueries(readStore LotReadStore, store blob.Store) LotQueries {
	return &lotQueriesImpl{readStore: readStore, store: store}
}

func (q *lotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*LotView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrLotNotFound
		}
		return nil, err
	}
	view.AreaM2 = view.HeightM * view.WidthM
	return view, nil
}

func (q *lotQueriesImpl) ListPhotos(ctx context.Context, lotID uuid.UUID) ([]*PhotoView, error) {
	views, err := q.readStore.ListPhotos(ctx, lotID)
	if err != nil {
		return nil, err
	}
	for _, v := range views {
		q.attachURL(ctx, v)
	}
	return views, nil
}

func (q *lotQueriesImpl) GetPhoto(ctx context.Context, photoID uuid.UUID) (*PhotoView, []byte, error) {
	view, err := q.readStore.FindPhotoByID(ctx, photoID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, nil, ErrPhotoNotFound
		}
		return nil, nil, err
	}

	_, rc, err := q.store.Get(ctx, view.BlobKey)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to read photo blob")
	}
	defer func() { _ = rc.Close() }()

	payload, err := io.ReadAll(rc)
	if err != nil {
		return nil, nil, errs.Wrap(err, "failed to read photo blob")
	}
	return view, payload, nil
}

func (q *lotQueriesImpl) attachURL(ctx context.Context, v *PhotoView) {
	url, err := q.store.PresignURL(ctx, v.BlobKey, photoURLExpiry)
	if err != nil {
		// fs and memory drivers cannot presign; the payload endpoint
		// still serves the bytes.
		if !errors.Is(err, blob.ErrUnsupported) {
			slog.Warn("failed to presign photo url", "photo_id", v.ID, "error", err)
		}
		return
	}
	v.URL = url
}
