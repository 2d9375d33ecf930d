package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"slabstock/internal/infra"
	"slabstock/internal/pkg/clock"
	"slabstock/internal/pkg/errs"
	"slabstock/internal/pkg/metrics"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrOperationNotFound  = errs.New("stock operation not found")
	ErrOperationNotOpen   = errs.New("stock operation is not open")
	ErrBindingNotFound    = errs.New("unit binding not found")
	ErrAllocationBlocked  = errs.New("stock unit held for another customer")
	ErrAllocationFailed   = errs.New("allocation write failed")
	ErrOperationViolation = errs.New("operation carries units held for other customers")
)

// BlockedError reports a single rejected unit: which unit, who holds it,
// until when. Always marked with ErrAllocationBlocked.
type BlockedError struct {
	StockUnitID uuid.UUID
	PartnerName string
	ExpiresAt   time.Time
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("stock unit %s is held for %s until %s", e.StockUnitID, e.PartnerName, e.ExpiresAt.Format("2006-01-02"))
}

// ViolationError aggregates every blocked unit found on an operation at
// validation time. Always marked with ErrOperationViolation.
type ViolationError struct {
	OperationRef string
	Blocked      []BlockedError
}

func (e *ViolationError) Error() string {
	parts := make([]string, len(e.Blocked))
	for i, b := range e.Blocked {
		parts[i] = b.Error()
	}
	return fmt.Sprintf("operation %s blocked: %s", e.OperationRef, strings.Join(parts, "; "))
}

type BindUnitRequest struct {
	OperationID  uuid.UUID
	StockUnitID  uuid.UUID
	Quantity     float64
	AutoAssigned bool
}

type AllocationCommands interface {
	// BindUnit attaches a stock unit to an outgoing operation, refusing
	// units held for a different beneficiary. This is the hard barrier:
	// every write path lands here regardless of what the caller filtered.
	BindUnit(ctx context.Context, req BindUnitRequest) (uuid.UUID, error)
	// ReassignBinding swaps the unit on an existing binding under the
	// same guard.
	ReassignBinding(ctx context.Context, bindingID, stockUnitID uuid.UUID) error
	// ValidateOperation re-checks every binding of an operation against
	// current holds. Run before completing an outgoing operation and after
	// any automatic assignment pass.
	ValidateOperation(ctx context.Context, operationID uuid.UUID) error
	// ReleaseAutoAssignments drops automatically assigned bindings from the
	// open operations of a sales order so the next assignment pass picks
	// units hold-aware.
	ReleaseAutoAssignments(ctx context.Context, salesOrderID uuid.UUID) (int64, error)
}

type allocationCommandsImpl struct {
	uow     shared.UnitOfWork
	clock   clock.Clock
	metrics *metrics.Recorder
}

func NewAllocationCommands(uow shared.UnitOfWork, clk clock.Clock, rec *metrics.Recorder) AllocationCommands {
	return &allocationCommandsImpl{uow: uow, clock: clk, metrics: rec}
}

func (a *allocationCommandsImpl) BindUnit(ctx context.Context, req BindUnitRequest) (uuid.UUID, error) {
	now := a.clock.Now()

	var bindingID uuid.UUID
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		op, err := a.openOperation(ctx, tx, req.OperationID)
		if err != nil {
			return err
		}

		if _, err = tx.StockUnits().LockByID(ctx, tx.DB(), req.StockUnitID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrStockUnitNotFound
			}
			return errs.Mark(err, ErrAllocationFailed)
		}

		if err = a.guardUnit(ctx, tx, op, req.StockUnitID, now); err != nil {
			return err
		}

		id, err := tx.Operations().CreateBinding(ctx, tx.DB(), req.OperationID, req.StockUnitID, req.Quantity, req.AutoAssigned)
		if err != nil {
			return errs.Mark(err, ErrAllocationFailed)
		}
		bindingID = id
		return nil
	})
	if err != nil {
		a.countRejection(err)
		return uuid.Nil, err
	}
	return bindingID, nil
}

func (a *allocationCommandsImpl) ReassignBinding(ctx context.Context, bindingID, stockUnitID uuid.UUID) error {
	now := a.clock.Now()

	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		binding, err := tx.Reads().BindingByID(ctx, bindingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrBindingNotFound
			}
			return errs.Mark(err, ErrAllocationFailed)
		}

		op, err := a.openOperation(ctx, tx, binding.OperationID)
		if err != nil {
			return err
		}

		if _, err = tx.StockUnits().LockByID(ctx, tx.DB(), stockUnitID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrStockUnitNotFound
			}
			return errs.Mark(err, ErrAllocationFailed)
		}

		if err = a.guardUnit(ctx, tx, op, stockUnitID, now); err != nil {
			return err
		}
		if uerr := tx.Operations().ReassignBinding(ctx, tx.DB(), bindingID, stockUnitID); uerr != nil {
			return errs.Mark(uerr, ErrAllocationFailed)
		}
		return nil
	})
	if err != nil {
		a.countRejection(err)
	}
	return err
}

func (a *allocationCommandsImpl) ValidateOperation(ctx context.Context, operationID uuid.UUID) error {
	now := a.clock.Now()

	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		op, err := tx.Reads().OperationByID(ctx, operationID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOperationNotFound
			}
			return errs.Mark(err, ErrAllocationFailed)
		}
		if !op.IsOutgoing() {
			return nil
		}

		bindings, err := tx.Reads().BindingsByOperation(ctx, operationID)
		if err != nil {
			return errs.Mark(err, ErrAllocationFailed)
		}

		var blocked []BlockedError
		for _, b := range bindings {
			gerr := a.guardUnit(ctx, tx, op, b.StockUnitID, now)
			if gerr == nil {
				continue
			}
			var be *BlockedError
			if errors.As(gerr, &be) {
				blocked = append(blocked, *be)
				continue
			}
			return gerr
		}
		if len(blocked) > 0 {
			return errs.Mark(&ViolationError{OperationRef: op.Reference, Blocked: blocked}, ErrOperationViolation)
		}
		return nil
	})
	if err != nil {
		a.countRejection(err)
	}
	return err
}

func (a *allocationCommandsImpl) ReleaseAutoAssignments(ctx context.Context, salesOrderID uuid.UUID) (int64, error) {
	var released int64
	err := a.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		n, err := tx.Operations().ClearAutoAssigned(ctx, tx.DB(), salesOrderID)
		if err != nil {
			return errs.Mark(err, ErrAllocationFailed)
		}
		released = n
		return nil
	})
	if err != nil {
		return 0, err
	}

	if released > 0 {
		slog.Info("auto-assigned bindings released", "sales_order_id", salesOrderID, "count", released)
	}
	return released, nil
}

// guardUnit rejects the unit when it carries an unexpired active hold for
// someone other than the operation's beneficiary. An operation with no
// resolvable beneficiary may never consume a held unit.
func (a *allocationCommandsImpl) guardUnit(ctx context.Context, tx shared.Tx, op *shared.OperationSnapshot, stockUnitID uuid.UUID, now time.Time) error {
	if !op.IsOutgoing() {
		return nil
	}
	existing, err := tx.Reads().ActiveHoldByStockUnit(ctx, stockUnitID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil
		}
		return errs.Mark(err, ErrAllocationFailed)
	}
	if !now.Before(existing.ExpiresAt) {
		// Overdue, waiting for the sweep: no longer protects the unit.
		return nil
	}
	if op.BeneficiaryID != nil && *op.BeneficiaryID == existing.PartnerID {
		return nil
	}
	return errs.Mark(&BlockedError{
		StockUnitID: stockUnitID,
		PartnerName: existing.PartnerName,
		ExpiresAt:   existing.ExpiresAt,
	}, ErrAllocationBlocked)
}

func (a *allocationCommandsImpl) openOperation(ctx context.Context, tx shared.Tx, operationID uuid.UUID) (*shared.OperationSnapshot, error) {
	op, err := tx.Reads().OperationByID(ctx, operationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOperationNotFound
		}
		return nil, errs.Mark(err, ErrAllocationFailed)
	}
	if !op.IsOpen() {
		return nil, ErrOperationNotOpen
	}
	return op, nil
}

func (a *allocationCommandsImpl) countRejection(err error) {
	if errors.Is(err, ErrAllocationBlocked) || errors.Is(err, ErrOperationViolation) {
		a.metrics.AllocationRejections.Inc()
	}
}
