package api

import (
	"errors"
	"net/http"

	resdto "slabstock/internal/handler/dto/response"
	"slabstock/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type StockHandler struct {
	availabilityQueries queries.AvailabilityQueries
	stockUnitQueries    queries.StockUnitQueries
}

func NewStockHandler(availabilityQueries queries.AvailabilityQueries, stockUnitQueries queries.StockUnitQueries) *StockHandler {
	return &StockHandler{
		availabilityQueries: availabilityQueries,
		stockUnitQueries:    stockUnitQueries,
	}
}

// @Summary Effective availability
// @Description Base availability minus units held for other beneficiaries, floored at zero
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param product_id query string true "Product ID"
// @Param location_id query string true "Location ID"
// @Param lot_id query string false "Restrict to a lot"
// @Param beneficiary_id query string false "Beneficiary whose holds count as available"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Router /availability [get]
func (h *StockHandler) GetAvailability(c *gin.Context) {
	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product_id parameter",
		})
		return
	}

	locationID, err := uuid.Parse(c.Query("location_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid location_id parameter",
		})
		return
	}

	req := queries.AvailabilityRequest{
		ProductID:  productID,
		LocationID: locationID,
	}

	if raw := c.Query("lot_id"); raw != "" {
		lotID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid lot_id parameter",
			})
			return
		}
		req.LotID = &lotID
	}

	if raw := c.Query("beneficiary_id"); raw != "" {
		beneficiaryID, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid beneficiary_id parameter",
			})
			return
		}
		req.BeneficiaryID = &beneficiaryID
	}

	view, err := h.availabilityQueries.Available(c.Request.Context(), req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}

// @Summary Candidate units
// @Description Units of a product usable by the operation's beneficiary. Foreign-held units are excluded.
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param id path string true "Operation ID"
// @Param product_id query string true "Product ID"
// @Success 200 {array} resdto.CandidateUnitResponse
// @Failure 400 {object} map[string]string
// @Router /operations/{id}/candidates [get]
func (h *StockHandler) ListCandidateUnits(c *gin.Context) {
	operationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid operation ID format",
		})
		return
	}

	productID, err := uuid.Parse(c.Query("product_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid product_id parameter",
		})
		return
	}

	items, err := h.availabilityQueries.CandidateUnits(c.Request.Context(), operationID, productID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromCandidateUnits(items))
}

// @Summary Get stock unit
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param id path string true "Stock unit ID"
// @Success 200 {object} resdto.StockUnitResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /stock-units/{id} [get]
func (h *StockHandler) GetStockUnit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid stock unit ID format",
		})
		return
	}

	view, err := h.stockUnitQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrStockUnitNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Stock unit not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromStockUnitView(view))
}

// @Summary List lot stock units
// @Tags stock
// @Produce json
// @Security BearerAuth
// @Param id path string true "Lot ID"
// @Success 200 {array} resdto.StockUnitResponse
// @Failure 400 {object} map[string]string
// @Router /lots/{id}/stock-units [get]
func (h *StockHandler) ListLotStockUnits(c *gin.Context) {
	lotID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid lot ID format",
		})
		return
	}

	items, err := h.stockUnitQueries.ListByLot(c.Request.Context(), lotID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromStockUnitList(items))
}
