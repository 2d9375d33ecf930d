//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"slabstock/internal/handler/api"
	resdto "slabstock/internal/handler/dto/response"
	"slabstock/internal/usecase/commands"
	"slabstock/internal/usecase/queries"
	"slabstock/tests/common/builder"
	"slabstock/tests/common/httptest"
	"slabstock/tests/common/testutil"
	commandsmock "slabstock/tests/mock/commands"
	queriesmock "slabstock/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type HoldHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockHoldCommands
	mockQueries  *queriesmock.MockHoldQueries
	handler      *api.HoldHandler
	actorID      uuid.UUID
}

func (s *HoldHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockHoldCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockHoldQueries(s.mockCtrl)
	s.handler = api.NewHoldHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	// Mock middleware behavior: the actor is always authenticated
	authed := func(handler gin.HandlerFunc) gin.HandlerFunc {
		return func(c *gin.Context) {
			c.Set("user_id", s.actorID)
			handler(c)
		}
	}

	s.router.POST("/holds", authed(s.handler.CreateHold))
	s.router.GET("/holds/expiring", authed(s.handler.ListExpiring))
	s.router.GET("/holds/:id", authed(s.handler.GetHold))
	s.router.DELETE("/holds/:id", authed(s.handler.CancelHold))
	s.router.POST("/holds/:id/renew", authed(s.handler.RenewHold))
	s.router.POST("/holds/sweep", authed(s.handler.Sweep))
}

func (s *HoldHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestHoldHandlerSuite(t *testing.T) {
	suite.Run(t, new(HoldHandlerTestSuite))
}

func (s *HoldHandlerTestSuite) TestCreateHold() {
	url := "/holds"

	hold := builder.NewHoldBuilder()
	reqBody := hold.BuildDTO()

	s.Run("success: returns 201 with the created hold", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), reqBody.ToCommand(), s.actorID).
			Return(hold.ID, nil).Times(1)
		view := hold.BuildView()
		view.DaysRemaining = 10
		s.mockQueries.EXPECT().GetByID(gomock.Any(), hold.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var response resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(hold.ID, response.ID)
		s.Equal("Marble & Co", response.PartnerName)
		s.Equal(10, response.DaysRemaining)
	})

	s.Run("success: falls back to the bare id when the read model lags", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.actorID).
			Return(hold.ID, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), hold.ID).
			Return(nil, queries.ErrHoldNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		s.Equal(http.StatusCreated, rec.Code)
	})

	s.Run("error: 409 with conflict detail when the unit is already held", func() {
		conflict := &commands.ConflictError{
			HoldID:        uuid.New(),
			PartnerName:   "Granite Bros",
			ExpiresAt:     time.Date(2025, 3, 4, 12, 0, 0, 0, time.UTC),
			DaysRemaining: 3,
		}
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.actorID).
			Return(uuid.Nil, conflict).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var detail resdto.HoldConflictDetail
		httptest.AssertStructuredErrorResponse(s.T(), rec, http.StatusConflict, "already held", &detail)
		s.Equal(conflict.HoldID, detail.HoldID)
		s.Equal("Granite Bros", detail.PartnerName)
		s.Equal(3, detail.DaysRemaining)
	})

	s.Run("error: 404 when the stock unit does not exist", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.actorID).
			Return(uuid.Nil, commands.ErrStockUnitNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Stock unit not found")
	})

	s.Run("error: 404 when the beneficiary partner does not exist", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), gomock.Any(), s.actorID).
			Return(uuid.Nil, commands.ErrPartnerNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Partner not found")
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(m map[string]any)
		}{
			{name: "missing stock_unit_id", mutate: testutil.Field("stock_unit_id", nil)},
			{name: "missing partner_id", mutate: testutil.Field("partner_id", nil)},
			{name: "note over 500 chars", mutate: testutil.Field("note", strings.Repeat("a", 501))},
			{name: "malformed stock_unit_id", mutate: testutil.Field("stock_unit_id", "not-a-uuid")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				body := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
			})
		}
	})
}

func (s *HoldHandlerTestSuite) TestGetHold() {
	hold := builder.NewHoldBuilder()

	s.Run("success: returns the hold", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), hold.ID).
			Return(hold.BuildView(), nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/holds/"+hold.ID.String(), nil, "")

		var response resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(hold.ID, response.ID)
	})

	s.Run("error: 404 for a missing hold", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), hold.ID).
			Return(nil, queries.ErrHoldNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/holds/"+hold.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Hold not found")
	})

	s.Run("error: 400 for a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/holds/not-a-uuid", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid hold ID")
	})
}

func (s *HoldHandlerTestSuite) TestCancelHold() {
	holdID := uuid.New()

	s.Run("success: returns 204", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), holdID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/holds/"+holdID.String(), nil, "")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 404 for a missing hold", func() {
		s.mockCommands.EXPECT().Cancel(gomock.Any(), holdID).
			Return(commands.ErrHoldNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/holds/"+holdID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Hold not found")
	})
}

func (s *HoldHandlerTestSuite) TestRenewHold() {
	hold := builder.NewHoldBuilder()

	s.Run("success: returns the restarted hold", func() {
		s.mockCommands.EXPECT().Renew(gomock.Any(), hold.ID).Return(nil).Times(1)
		view := hold.BuildView()
		view.DaysRemaining = 10
		s.mockQueries.EXPECT().GetByID(gomock.Any(), hold.ID).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/holds/"+hold.ID.String()+"/renew", nil, "")

		var response resdto.HoldResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(10, response.DaysRemaining)
	})

	s.Run("error: 409 for a hold that is no longer active", func() {
		s.mockCommands.EXPECT().Renew(gomock.Any(), hold.ID).
			Return(commands.ErrHoldNotActive).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/holds/"+hold.ID.String()+"/renew", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusConflict, "no longer active")
	})
}

func (s *HoldHandlerTestSuite) TestListExpiring() {
	s.Run("success: defaults to a three day horizon", func() {
		s.mockQueries.EXPECT().ListExpiring(gomock.Any(), 3).
			Return([]*queries.HoldListItem{
				{ID: uuid.New(), PartnerName: "Marble & Co", DaysRemaining: 1},
			}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/holds/expiring", nil, "")

		var response []*resdto.HoldListItemResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
		s.Equal(1, response[0].DaysRemaining)
	})

	s.Run("success: honors within_days", func() {
		s.mockQueries.EXPECT().ListExpiring(gomock.Any(), 7).
			Return([]*queries.HoldListItem{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/holds/expiring?within_days=7", nil, "")
		s.Equal(http.StatusOK, rec.Code)
	})

	s.Run("error: 400 for a negative horizon", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/holds/expiring?within_days=-1", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "within_days")
	})
}

func (s *HoldHandlerTestSuite) TestSweep() {
	s.Run("success: reports retired holds", func() {
		units := []uuid.UUID{uuid.New(), uuid.New()}
		s.mockCommands.EXPECT().SweepExpired(gomock.Any()).
			Return(&commands.SweepResult{Expired: 2, StockUnits: units}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/holds/sweep", nil, "")

		var response resdto.SweepResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(2, response.Expired)
		s.Len(response.StockUnits, 2)
	})

	s.Run("error: 500 when the sweep fails", func() {
		s.mockCommands.EXPECT().SweepExpired(gomock.Any()).
			Return(nil, errors.New("db down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/holds/sweep", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})
}
