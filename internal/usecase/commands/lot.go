package commands

import (
	"context"
	"log/slog"

	"slabstock/internal/domain/lot"
	"slabstock/internal/infra"
	"slabstock/internal/pkg/errs"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrLotNotFound         = errs.New("lot not found")
	ErrLotWriteFailed      = errs.New("lot write failed")
	ErrIncompleteDimension = errs.New("height and width are required")
	ErrNotIncoming         = errs.New("operation is not an incoming reception")
)

// Nil fields are left untouched.
type UpdateLotAttributesRequest struct {
	ThicknessCM  *float64
	HeightM      *float64
	WidthM       *float64
	BlockCode    *string
	BundleCode   *string
	Format       *string
	PlateDetails *string
}

type CaptureReceptionRequest struct {
	BindingID   uuid.UUID
	ThicknessCM float64
	HeightM     float64
	WidthM      float64
}

type LotCommands interface {
	UpdateAttributes(ctx context.Context, lotID uuid.UUID, req UpdateLotAttributesRequest) error
	// CaptureReception records measured dimensions on a reception line and
	// writes them through to the lot. The received quantity becomes the
	// slab surface, height times width in square meters.
	CaptureReception(ctx context.Context, req CaptureReceptionRequest) (float64, error)
}

type lotCommandsImpl struct {
	uow shared.UnitOfWork
}

func NewLotCommands(uow shared.UnitOfWork) LotCommands {
	return &lotCommandsImpl{uow: uow}
}

func (c *lotCommandsImpl) UpdateAttributes(ctx context.Context, lotID uuid.UUID, req UpdateLotAttributesRequest) error {
	return c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Lots().FindByID(ctx, tx.DB(), lotID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrLotNotFound
			}
			return errs.Mark(err, ErrLotWriteFailed)
		}

		if req.ThicknessCM != nil || req.HeightM != nil || req.WidthM != nil {
			cur := entity.Dimensions()
			dims, derr := lot.NewDimensions(
				pick(req.ThicknessCM, cur.ThicknessCM()),
				pick(req.HeightM, cur.HeightM()),
				pick(req.WidthM, cur.WidthM()),
			)
			if derr != nil {
				return derr
			}
			entity.SetDimensions(dims)
		}
		if req.BlockCode != nil || req.BundleCode != nil {
			entity.SetCodes(
				pick(req.BlockCode, entity.BlockCode()),
				pick(req.BundleCode, entity.BundleCode()),
			)
		}
		if req.Format != nil {
			format, ferr := lot.NewFormat(*req.Format)
			if ferr != nil {
				return ferr
			}
			if ferr = entity.SetFormat(format); ferr != nil {
				return ferr
			}
		}
		if req.PlateDetails != nil {
			entity.SetPlateDetails(*req.PlateDetails)
		}

		if uerr := tx.Lots().Update(ctx, tx.DB(), entity); uerr != nil {
			return errs.Mark(uerr, ErrLotWriteFailed)
		}
		return nil
	})
}

func (c *lotCommandsImpl) CaptureReception(ctx context.Context, req CaptureReceptionRequest) (float64, error) {
	dims, err := lot.NewDimensions(req.ThicknessCM, req.HeightM, req.WidthM)
	if err != nil {
		return 0, err
	}
	if !dims.IsComplete() {
		return 0, ErrIncompleteDimension
	}
	quantity := dims.Area()

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		binding, berr := tx.Reads().BindingByID(ctx, req.BindingID)
		if berr != nil {
			if infra.IsKind(berr, infra.KindNotFound) {
				return ErrBindingNotFound
			}
			return errs.Mark(berr, ErrLotWriteFailed)
		}

		op, oerr := tx.Reads().OperationByID(ctx, binding.OperationID)
		if oerr != nil {
			return errs.Mark(oerr, ErrLotWriteFailed)
		}
		if op.IsOutgoing() || !op.IsOpen() {
			return ErrNotIncoming
		}

		unit, uerr := tx.Reads().StockUnitByID(ctx, binding.StockUnitID)
		if uerr != nil {
			return errs.Mark(uerr, ErrLotWriteFailed)
		}

		entity, lerr := tx.Lots().FindByID(ctx, tx.DB(), unit.LotID)
		if lerr != nil {
			return errs.Mark(lerr, ErrLotWriteFailed)
		}
		entity.SetDimensions(dims)
		if lerr = tx.Lots().Update(ctx, tx.DB(), entity); lerr != nil {
			return errs.Mark(lerr, ErrLotWriteFailed)
		}

		if uerr := tx.Operations().UpdateBindingQuantity(ctx, tx.DB(), req.BindingID, quantity); uerr != nil {
			return errs.Mark(uerr, ErrLotWriteFailed)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	slog.Info("reception dimensions captured",
		"binding_id", req.BindingID,
		"height_m", req.HeightM,
		"width_m", req.WidthM,
		"quantity_m2", quantity)
	return quantity, nil
}

func pick[T any](override *T, current T) T {
	if override != nil {
		return *override
	}
	return current
}
