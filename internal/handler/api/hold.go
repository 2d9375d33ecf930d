package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "slabstock/internal/handler/dto/request"
	resdto "slabstock/internal/handler/dto/response"
	"slabstock/internal/handler/httperr"
	"slabstock/internal/handler/middleware"
	"slabstock/internal/usecase/commands"
	"slabstock/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type HoldHandler struct {
	holdCommands commands.HoldCommands
	holdQueries  queries.HoldQueries
}

func NewHoldHandler(holdCommands commands.HoldCommands, holdQueries queries.HoldQueries) *HoldHandler {
	return &HoldHandler{
		holdCommands: holdCommands,
		holdQueries:  holdQueries,
	}
}

// @Summary Create hold
// @Description Place a manual reservation on a stock unit for a partner
// @Tags holds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateHoldRequest true "Hold request"
// @Success 201 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} httperr.Response
// @Router /holds [post]
func (h *HoldHandler) CreateHold(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateHoldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	holdID, err := h.holdCommands.Create(c.Request.Context(), req.ToCommand(), userID)
	if err != nil {
		var conflict *commands.ConflictError
		switch {
		case errors.As(err, &conflict):
			httperr.AbortWithError(c, http.StatusConflict, err,
				"Stock unit is already held", resdto.FromConflictError(conflict))
		case errors.Is(err, commands.ErrHoldConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Stock unit is already held",
			})
		case errors.Is(err, commands.ErrStockUnitNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Stock unit not found",
			})
		case errors.Is(err, commands.ErrPartnerNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Partner not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	view, err := h.holdQueries.GetByID(c.Request.Context(), holdID)
	if err != nil {
		c.JSON(http.StatusCreated, gin.H{"id": holdID})
		return
	}

	c.JSON(http.StatusCreated, resdto.FromHoldView(view))
}

// @Summary Get hold
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 200 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /holds/{id} [get]
func (h *HoldHandler) GetHold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hold ID format",
		})
		return
	}

	view, err := h.holdQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrHoldNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Hold not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromHoldView(view))
}

// @Summary Cancel hold
// @Description Cancel a hold. Cancelling an already released hold succeeds.
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /holds/{id} [delete]
func (h *HoldHandler) CancelHold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hold ID format",
		})
		return
	}

	if err := h.holdCommands.Cancel(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrHoldNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Hold not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary Renew hold
// @Description Restart the hold window from now. Expired holds cannot be renewed.
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Hold ID"
// @Success 200 {object} resdto.HoldResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /holds/{id}/renew [post]
func (h *HoldHandler) RenewHold(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid hold ID format",
		})
		return
	}

	if err := h.holdCommands.Renew(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, commands.ErrHoldNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Hold not found",
			})
		case errors.Is(err, commands.ErrHoldNotActive):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Hold is no longer active",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	view, err := h.holdQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"id": id})
		return
	}

	c.JSON(http.StatusOK, resdto.FromHoldView(view))
}

// @Summary List lot holds
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {array} resdto.HoldListItemResponse
// @Failure 400 {object} map[string]string
// @Router /lots/{id}/holds [get]
func (h *HoldHandler) ListLotHolds(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	items, err := h.holdQueries.ListByLot(c.Request.Context(), lotID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromHoldList(items))
}

// @Summary List expiring holds
// @Description Active holds with at most the given number of days left
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Param within_days query int false "Days ahead" default(3)
// @Success 200 {array} resdto.HoldListItemResponse
// @Failure 400 {object} map[string]string
// @Router /holds/expiring [get]
func (h *HoldHandler) ListExpiring(c *gin.Context) {
	withinDays := 3
	if raw := c.Query("within_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid within_days parameter",
			})
			return
		}
		withinDays = parsed
	}

	items, err := h.holdQueries.ListExpiring(c.Request.Context(), withinDays)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromHoldList(items))
}

// @Summary Sweep expired holds
// @Description Retire every active hold whose expiry has passed
// @Tags holds
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.SweepResponse
// @Failure 403 {object} map[string]string
// @Router /holds/sweep [post]
func (h *HoldHandler) Sweep(c *gin.Context) {
	result, err := h.holdCommands.SweepExpired(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromSweepResult(result))
}
