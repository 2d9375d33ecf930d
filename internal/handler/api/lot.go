package api

import (
	"errors"
	"net/http"

	reqdto "slabstock/internal/handler/dto/request"
	resdto "slabstock/internal/handler/dto/response"
	"slabstock/internal/usecase/commands"
	"slabstock/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LotHandler struct {
	lotCommands commands.LotCommands
	lotQueries  queries.LotQueries
}

func NewLotHandler(lotCommands commands.LotCommands, lotQueries queries.LotQueries) *LotHandler {
	return &LotHandler{
		lotCommands: lotCommands,
		lotQueries:  lotQueries,
	}
}

// @Summary Get lot
// @Tags lots
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {object} resdto.LotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /lots/{id} [get]
func (h *LotHandler) GetLot(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	view, err := h.lotQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromLotView(view))
}

// @Summary Update lot attributes
// @Description Patch dimensions, codes, format or plate details. Omitted fields keep their value.
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Param request body reqdto.UpdateLotAttributesRequest true "Attributes"
// @Success 200 {object} resdto.LotResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /lots/{id} [patch]
func (h *LotHandler) UpdateAttributes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	var req reqdto.UpdateLotAttributesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	if err := h.lotCommands.UpdateAttributes(c.Request.Context(), id, req.ToCommand()); err != nil {
		switch {
		case errors.Is(err, commands.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		case errors.Is(err, commands.ErrLotWriteFailed):
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		default:
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Invalid lot attributes",
			})
		}
		return
	}

	view, err := h.lotQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"id": id})
		return
	}

	c.JSON(http.StatusOK, resdto.FromLotView(view))
}

// @Summary Capture reception dimensions
// @Description Record measured slab dimensions on a reception line. Returns the computed surface quantity.
// @Tags lots
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CaptureReceptionRequest true "Measured dimensions"
// @Success 200 {object} resdto.CaptureReceptionResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /receptions/capture [post]
func (h *LotHandler) CaptureReception(c *gin.Context) {
	var req reqdto.CaptureReceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	quantity, err := h.lotCommands.CaptureReception(c.Request.Context(), req.ToCommand())
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBindingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Binding not found",
			})
		case errors.Is(err, commands.ErrLotNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Lot not found",
			})
		case errors.Is(err, commands.ErrNotIncoming):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Binding does not belong to an open incoming operation",
			})
		case errors.Is(err, commands.ErrIncompleteDimension):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "All three dimensions must be positive",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.CaptureReceptionResponse{Quantity: quantity})
}
