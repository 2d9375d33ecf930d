package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"slabstock/internal/domain/hold"
	"slabstock/internal/infra"
	"slabstock/internal/pkg/clock"
	"slabstock/internal/pkg/errs"
	"slabstock/internal/pkg/metrics"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrStockUnitNotFound = errs.New("stock unit not found")
	ErrPartnerNotFound   = errs.New("partner not found")
	ErrHoldNotFound      = errs.New("hold not found")
	ErrHoldConflict      = errs.New("stock unit already held")
	ErrHoldNotActive     = errs.New("hold is not active")
	ErrHoldWriteFailed   = errs.New("hold write failed")
	ErrHoldIntegrity     = errs.New("duplicate active holds detected")
)

// ConflictError carries what the caller needs to render a useful rejection:
// who holds the unit and until when. It is always marked with ErrHoldConflict.
type ConflictError struct {
	HoldID        uuid.UUID
	PartnerName   string
	ExpiresAt     time.Time
	DaysRemaining int
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("stock unit already held by %s until %s", e.PartnerName, e.ExpiresAt.Format("2006-01-02"))
}

type CreateHoldRequest struct {
	StockUnitID uuid.UUID
	PartnerID   uuid.UUID
	Note        string
}

type SweepResult struct {
	Expired    int
	StockUnits []uuid.UUID
}

type HoldCommands interface {
	Create(ctx context.Context, req CreateHoldRequest, actorID uuid.UUID) (uuid.UUID, error)
	Cancel(ctx context.Context, holdID uuid.UUID) error
	Renew(ctx context.Context, holdID uuid.UUID) error
	SweepExpired(ctx context.Context) (*SweepResult, error)
}

type holdCommandsImpl struct {
	uow      shared.UnitOfWork
	clock    clock.Clock
	duration time.Duration
	metrics  *metrics.Recorder
}

func NewHoldCommands(uow shared.UnitOfWork, clk clock.Clock, duration time.Duration, rec *metrics.Recorder) HoldCommands {
	if duration <= 0 {
		duration = hold.DefaultDuration
	}
	return &holdCommandsImpl{
		uow:      uow,
		clock:    clk,
		duration: duration,
		metrics:  rec,
	}
}

// Create places a hold on a free stock unit. The unit row is locked for the
// duration of the transaction so concurrent attempts serialize; the partial
// unique index on active holds backstops anything that slips through.
func (h *holdCommandsImpl) Create(ctx context.Context, req CreateHoldRequest, actorID uuid.UUID) (uuid.UUID, error) {
	now := h.clock.Now()

	var createdID uuid.UUID
	var partnerName string
	err := h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		unit, err := tx.StockUnits().LockByID(ctx, tx.DB(), req.StockUnitID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrStockUnitNotFound
			}
			return errs.Mark(err, ErrHoldWriteFailed)
		}

		// A dangling beneficiary would only fail at insert time as an FK
		// violation; resolve the partner up front instead.
		partnerName, err = tx.Reads().PartnerNameByID(ctx, req.PartnerID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrPartnerNotFound
			}
			return errs.Mark(err, ErrHoldWriteFailed)
		}

		existing, err := tx.Reads().ActiveHoldByStockUnit(ctx, req.StockUnitID)
		if err != nil && !infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrHoldWriteFailed)
		}
		if existing != nil {
			if now.Before(existing.ExpiresAt) {
				return h.conflict(existing, now)
			}
			// Overdue but not yet swept: retire it in place rather than
			// waiting for the sweep.
			if err = h.expireInPlace(ctx, tx, existing.ID); err != nil {
				return err
			}
		}

		entity, err := hold.NewHold(unit.ID, unit.LotID, req.PartnerID, actorID, hold.NewNote(req.Note), now, h.duration)
		if err != nil {
			return errs.Mark(err, ErrHoldWriteFailed)
		}

		id, err := tx.Holds().Create(ctx, tx.DB(), entity)
		if err != nil {
			if infra.IsKind(err, infra.KindConflict) || infra.IsKind(err, infra.KindDuplicateKey) {
				// Lost a race despite the row lock; surface as a conflict.
				return ErrHoldConflict
			}
			return errs.Mark(err, ErrHoldWriteFailed)
		}
		createdID = id
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrHoldConflict) {
			h.metrics.HoldConflicts.Inc()
		}
		return uuid.Nil, err
	}

	h.metrics.HoldsCreated.Inc()
	slog.Info("hold created",
		"hold_id", createdID,
		"stock_unit_id", req.StockUnitID,
		"partner_id", req.PartnerID,
		"partner", partnerName,
		"expires_at", now.Add(h.duration))
	return createdID, nil
}

// Cancel is idempotent: cancelling a hold that is already cancelled or
// expired succeeds without touching it.
func (h *holdCommandsImpl) Cancel(ctx context.Context, holdID uuid.UUID) error {
	var changed bool
	err := h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Holds().FindByID(ctx, tx.DB(), holdID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrHoldNotFound
			}
			return errs.Mark(err, ErrHoldWriteFailed)
		}

		changed = entity.Cancel()
		if !changed {
			return nil
		}
		if uerr := tx.Holds().Update(ctx, tx.DB(), entity); uerr != nil {
			return errs.Mark(uerr, ErrHoldWriteFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if changed {
		h.metrics.HoldsCancelled.Inc()
		slog.Info("hold cancelled", "hold_id", holdID)
	}
	return nil
}

// Renew restarts the window from now for an active hold. A hold that is
// overdue but unswept cannot be renewed; it must be recreated.
func (h *holdCommandsImpl) Renew(ctx context.Context, holdID uuid.UUID) error {
	now := h.clock.Now()

	err := h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		entity, err := tx.Holds().FindByID(ctx, tx.DB(), holdID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrHoldNotFound
			}
			return errs.Mark(err, ErrHoldWriteFailed)
		}

		if !entity.IsActive() || entity.HasExpired(now) {
			return ErrHoldNotActive
		}
		if err = entity.Renew(now, h.duration); err != nil {
			return errs.Mark(err, ErrHoldNotActive)
		}
		if uerr := tx.Holds().Update(ctx, tx.DB(), entity); uerr != nil {
			return errs.Mark(uerr, ErrHoldWriteFailed)
		}
		return nil
	})
	if err != nil {
		return err
	}

	h.metrics.HoldsRenewed.Inc()
	slog.Info("hold renewed", "hold_id", holdID, "expires_at", now.Add(h.duration))
	return nil
}

// SweepExpired retires every active hold past its window. Expiry is decided
// by the absolute expires_at, so a sweep that runs late still retires holds
// at the boundary they were promised.
func (h *holdCommandsImpl) SweepExpired(ctx context.Context) (*SweepResult, error) {
	now := h.clock.Now()

	var result SweepResult
	err := h.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		units, err := tx.Holds().ExpireDue(ctx, tx.DB(), now)
		if err != nil {
			return errs.Mark(err, ErrHoldWriteFailed)
		}
		result = SweepResult{Expired: len(units), StockUnits: units}

		dupes, err := tx.Holds().FindActiveDuplicates(ctx, tx.DB())
		if err != nil {
			return errs.Mark(err, ErrHoldWriteFailed)
		}
		if len(dupes) > 0 {
			slog.Error("stock units with multiple active holds", "stock_unit_ids", dupes)
			return ErrHoldIntegrity
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	h.metrics.SweepRuns.Inc()
	if result.Expired > 0 {
		h.metrics.HoldsExpired.Add(float64(result.Expired))
		slog.Info("expired holds swept", "count", result.Expired)
	}
	return &result, nil
}

func (h *holdCommandsImpl) conflict(existing *shared.ActiveHoldSnapshot, now time.Time) error {
	days := int(existing.ExpiresAt.Sub(now).Hours() / 24)
	return errs.Mark(&ConflictError{
		HoldID:        existing.ID,
		PartnerName:   existing.PartnerName,
		ExpiresAt:     existing.ExpiresAt,
		DaysRemaining: days,
	}, ErrHoldConflict)
}

func (h *holdCommandsImpl) expireInPlace(ctx context.Context, tx shared.Tx, holdID uuid.UUID) error {
	entity, err := tx.Holds().FindByID(ctx, tx.DB(), holdID)
	if err != nil {
		return errs.Mark(err, ErrHoldWriteFailed)
	}
	if err = entity.Expire(); err != nil {
		return errs.Mark(err, ErrHoldWriteFailed)
	}
	if uerr := tx.Holds().Update(ctx, tx.DB(), entity); uerr != nil {
		return errs.Mark(uerr, ErrHoldWriteFailed)
	}
	return nil
}
