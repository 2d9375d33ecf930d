package api

import (
	"errors"
	"net/http"

	reqdto "slabstock/internal/handler/dto/request"
	resdto "slabstock/internal/handler/dto/response"
	"slabstock/internal/handler/httperr"
	"slabstock/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AllocationHandler struct {
	allocationCommands commands.AllocationCommands
}

func NewAllocationHandler(allocationCommands commands.AllocationCommands) *AllocationHandler {
	return &AllocationHandler{
		allocationCommands: allocationCommands,
	}
}

// @Summary Bind stock unit
// @Description Attach a stock unit to an outgoing operation. Units held for another beneficiary are refused.
// @Tags allocations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Operation ID"
// @Param request body reqdto.BindUnitRequest true "Binding request"
// @Success 201 {object} resdto.BindingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} httperr.Response
// @Router /operations/{id}/bindings [post]
func (h *AllocationHandler) BindUnit(c *gin.Context) {
	operationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid operation ID format",
		})
		return
	}

	var req reqdto.BindUnitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	bindingID, err := h.allocationCommands.BindUnit(c.Request.Context(), req.ToCommand(operationID))
	if err != nil {
		h.respondAllocationError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resdto.BindingResponse{BindingID: bindingID})
}

// @Summary Reassign binding
// @Description Swap the stock unit on an existing binding under the same hold guard
// @Tags allocations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Binding ID"
// @Param request body reqdto.ReassignBindingRequest true "Reassignment request"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} httperr.Response
// @Router /bindings/{id}/reassign [put]
func (h *AllocationHandler) ReassignBinding(c *gin.Context) {
	bindingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid binding ID format",
		})
		return
	}

	var req reqdto.ReassignBindingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.allocationCommands.ReassignBinding(c.Request.Context(), bindingID, req.StockUnitID); err != nil {
		h.respondAllocationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Validate operation
// @Description Re-check every binding of an operation against current holds
// @Tags allocations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Operation ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} httperr.Response
// @Router /operations/{id}/validate [post]
func (h *AllocationHandler) ValidateOperation(c *gin.Context) {
	operationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid operation ID format",
		})
		return
	}

	if err := h.allocationCommands.ValidateOperation(c.Request.Context(), operationID); err != nil {
		var violation *commands.ViolationError
		if errors.As(err, &violation) {
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err,
				"Operation has bindings blocked by holds", resdto.FromViolationError(violation))
			return
		}
		h.respondAllocationError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Release auto-assignments
// @Description Remove auto-assigned bindings from a sales order's open operations
// @Tags allocations
// @Produce json
// @Security BearerAuth
// @Param id path string true "Sales order ID"
// @Success 200 {object} resdto.ReleaseResponse
// @Failure 400 {object} map[string]string
// @Router /sales-orders/{id}/release-auto [post]
func (h *AllocationHandler) ReleaseAutoAssignments(c *gin.Context) {
	salesOrderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid sales order ID format",
		})
		return
	}

	released, err := h.allocationCommands.ReleaseAutoAssignments(c.Request.Context(), salesOrderID)
	if err != nil {
		h.respondAllocationError(c, err)
		return
	}

	c.JSON(http.StatusOK, resdto.ReleaseResponse{Released: released})
}

func (h *AllocationHandler) respondAllocationError(c *gin.Context, err error) {
	var blocked *commands.BlockedError
	switch {
	case errors.As(err, &blocked):
		httperr.AbortWithError(c, http.StatusConflict, err,
			"Stock unit is held for another beneficiary", resdto.FromBlockedError(blocked))
	case errors.Is(err, commands.ErrOperationNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Operation not found",
		})
	case errors.Is(err, commands.ErrBindingNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Binding not found",
		})
	case errors.Is(err, commands.ErrStockUnitNotFound):
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Stock unit not found",
		})
	case errors.Is(err, commands.ErrOperationNotOpen):
		c.JSON(http.StatusConflict, gin.H{
			"error": "Operation is not open",
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
	}
}
