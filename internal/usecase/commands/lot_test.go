//go:build unit

package commands

import (
	"context"
	"testing"
	"time"

	"slabstock/internal/domain/lot"
	"slabstock/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testLot(t *testing.T, id uuid.UUID) *lot.Lot {
	t.Helper()
	dims, err := lot.NewDimensions(2, 0, 0)
	require.NoError(t, err)
	return lot.ReconstructLot(
		id, "Calacatta Oro #81", uuid.New(), dims,
		"BL-081", "BD-03", lot.FormatSlab, "",
		testNow.Add(-30*24*time.Hour), testNow.Add(-24*time.Hour),
	)
}

func TestUpdateLotAttributes(t *testing.T) {
	ctx := context.Background()
	lotID := uuid.New()

	t.Run("patches only the provided fields", func(t *testing.T) {
		uow := newFakeUow()
		entity := testLot(t, lotID)
		uow.tx.lots.On("FindByID", ctx, nil, lotID).Return(entity, nil)
		uow.tx.lots.On("Update", ctx, nil, mock.Anything).Return(nil)

		height := 2.8
		block := "BL-082"
		err := NewLotCommands(uow).UpdateAttributes(ctx, lotID, UpdateLotAttributesRequest{
			HeightM:   &height,
			BlockCode: &block,
		})
		require.NoError(t, err)

		assert.InDelta(t, 2.8, entity.Dimensions().HeightM(), 1e-9)
		assert.InDelta(t, 2.0, entity.Dimensions().ThicknessCM(), 1e-9, "untouched field keeps its value")
		assert.Equal(t, "BL-082", entity.BlockCode())
		assert.Equal(t, "BD-03", entity.BundleCode(), "untouched code keeps its value")
		uow.tx.AssertExpectations(t)
	})

	t.Run("rejects a negative dimension", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.lots.On("FindByID", ctx, nil, lotID).Return(testLot(t, lotID), nil)

		height := -1.0
		err := NewLotCommands(uow).UpdateAttributes(ctx, lotID, UpdateLotAttributesRequest{HeightM: &height})
		assert.ErrorIs(t, err, lot.ErrNegativeDimension)
		uow.tx.lots.AssertNotCalled(t, "Update", ctx, nil, mock.Anything)
	})

	t.Run("rejects an unknown format", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.lots.On("FindByID", ctx, nil, lotID).Return(testLot(t, lotID), nil)

		format := "999x999"
		err := NewLotCommands(uow).UpdateAttributes(ctx, lotID, UpdateLotAttributesRequest{Format: &format})
		assert.ErrorIs(t, err, lot.ErrInvalidFormat)
	})

	t.Run("missing lot", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.lots.On("FindByID", ctx, nil, lotID).Return(nil, notFoundErr())

		height := 2.8
		err := NewLotCommands(uow).UpdateAttributes(ctx, lotID, UpdateLotAttributesRequest{HeightM: &height})
		assert.ErrorIs(t, err, ErrLotNotFound)
	})
}

func TestCaptureReception(t *testing.T) {
	ctx := context.Background()
	bindingID := uuid.New()
	lotID := uuid.New()
	unitID := uuid.New()

	incomingOp := &shared.OperationSnapshot{ID: uuid.New(), Reference: "IN/2025/0019", Kind: "incoming", Status: "open"}
	binding := &shared.BindingSnapshot{ID: bindingID, OperationID: incomingOp.ID, StockUnitID: unitID}
	unit := &shared.StockUnitSnapshot{ID: unitID, LotID: lotID}

	t.Run("captured surface becomes the received quantity", func(t *testing.T) {
		uow := newFakeUow()
		entity := testLot(t, lotID)
		uow.tx.reads.On("BindingByID", ctx, bindingID).Return(binding, nil)
		uow.tx.reads.On("OperationByID", ctx, incomingOp.ID).Return(incomingOp, nil)
		uow.tx.reads.On("StockUnitByID", ctx, unitID).Return(unit, nil)
		uow.tx.lots.On("FindByID", ctx, nil, lotID).Return(entity, nil)
		uow.tx.lots.On("Update", ctx, nil, mock.Anything).Return(nil)
		uow.tx.operations.On("UpdateBindingQuantity", ctx, nil, bindingID, mock.Anything).Return(nil)

		quantity, err := NewLotCommands(uow).CaptureReception(ctx, CaptureReceptionRequest{
			BindingID: bindingID, ThicknessCM: 2, HeightM: 2.8, WidthM: 1.4,
		})
		require.NoError(t, err)
		assert.InDelta(t, 3.92, quantity, 1e-9)
		assert.InDelta(t, 2.8, entity.Dimensions().HeightM(), 1e-9)
		assert.InDelta(t, 1.4, entity.Dimensions().WidthM(), 1e-9)
		uow.tx.AssertExpectations(t)
	})

	t.Run("missing side is rejected before touching storage", func(t *testing.T) {
		uow := newFakeUow()
		_, err := NewLotCommands(uow).CaptureReception(ctx, CaptureReceptionRequest{
			BindingID: bindingID, ThicknessCM: 2, HeightM: 2.8, WidthM: 0,
		})
		assert.ErrorIs(t, err, ErrIncompleteDimension)
		uow.tx.reads.AssertNotCalled(t, "BindingByID", ctx, bindingID)
	})

	t.Run("outgoing operation is refused", func(t *testing.T) {
		uow := newFakeUow()
		outgoing := &shared.OperationSnapshot{ID: incomingOp.ID, Kind: "outgoing", Status: "open"}
		uow.tx.reads.On("BindingByID", ctx, bindingID).Return(binding, nil)
		uow.tx.reads.On("OperationByID", ctx, incomingOp.ID).Return(outgoing, nil)

		_, err := NewLotCommands(uow).CaptureReception(ctx, CaptureReceptionRequest{
			BindingID: bindingID, ThicknessCM: 2, HeightM: 2.8, WidthM: 1.4,
		})
		assert.ErrorIs(t, err, ErrNotIncoming)
	})

	t.Run("closed reception is refused", func(t *testing.T) {
		uow := newFakeUow()
		done := &shared.OperationSnapshot{ID: incomingOp.ID, Kind: "incoming", Status: "done"}
		uow.tx.reads.On("BindingByID", ctx, bindingID).Return(binding, nil)
		uow.tx.reads.On("OperationByID", ctx, incomingOp.ID).Return(done, nil)

		_, err := NewLotCommands(uow).CaptureReception(ctx, CaptureReceptionRequest{
			BindingID: bindingID, ThicknessCM: 2, HeightM: 2.8, WidthM: 1.4,
		})
		assert.ErrorIs(t, err, ErrNotIncoming)
	})

	t.Run("missing binding", func(t *testing.T) {
		uow := newFakeUow()
		uow.tx.reads.On("BindingByID", ctx, bindingID).Return(nil, notFoundErr())

		_, err := NewLotCommands(uow).CaptureReception(ctx, CaptureReceptionRequest{
			BindingID: bindingID, ThicknessCM: 2, HeightM: 2.8, WidthM: 1.4,
		})
		assert.ErrorIs(t, err, ErrBindingNotFound)
	})
}
