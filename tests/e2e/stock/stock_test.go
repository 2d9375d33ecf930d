//go:build e2e

package stock_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"slabstock/internal/domain/user"
	"slabstock/internal/handler/dto/request"
	"slabstock/internal/handler/dto/response"
	"slabstock/tests/common/dbtest"
	commonhttp "slabstock/tests/common/httptest"
	"slabstock/tests/e2e"
	"slabstock/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type stockSuite struct {
	e2e.SharedSuite

	salesToken string
	adminToken string

	partnerA   uuid.UUID
	partnerB   uuid.UUID
	productID  uuid.UUID
	locationID uuid.UUID
	lotID      uuid.UUID
	unitID     uuid.UUID
}

func TestStockSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(stockSuite))
}

func (s *stockSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	dbtest.CreateTestUser(t, s.DB, "sales@example.com", string(user.RoleSales))
	dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))

	s.partnerA = dbtest.CreateTestPartner(t, s.DB, "Marble & Co")
	s.partnerB = dbtest.CreateTestPartner(t, s.DB, "Granite Bros")

	s.productID = uuid.New()
	s.locationID = uuid.New()
	s.lotID = dbtest.CreateTestLot(t, s.DB, "Statuario #7", s.productID)
	s.unitID = dbtest.CreateTestStockUnit(t, s.DB, s.lotID, s.productID, s.locationID, 25)

	s.salesToken = helper.Login(t, s.Router, "sales@example.com")
	s.adminToken = helper.Login(t, s.Router, "admin@example.com")
}

func (s *stockSuite) holdFor(t *testing.T, unitID, partnerID uuid.UUID) {
	t.Helper()
	body := request.CreateHoldRequest{StockUnitID: unitID, PartnerID: partnerID}
	w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, "/api/holds", body, s.salesToken)
	require.Equal(t, http.StatusCreated, w.Code, "body: %s", w.Body.String())
}

func (s *stockSuite) getAvailability(t *testing.T, extraQuery string) *response.AvailabilityResponse {
	t.Helper()
	url := fmt.Sprintf("/api/availability?product_id=%s&location_id=%s%s",
		s.productID, s.locationID, extraQuery)
	w := commonhttp.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.salesToken)

	var res response.AvailabilityResponse
	commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &res)
	return &res
}

// backdateActiveHolds moves every active hold past its expiry without
// changing its state, mimicking a hold the sweeper has not visited yet.
func (s *stockSuite) backdateActiveHolds(t *testing.T) {
	t.Helper()
	_, err := s.DB.Exec(context.Background(),
		"UPDATE holds SET expires_at = NOW() - INTERVAL '1 hour' WHERE state = 'active'")
	require.NoError(t, err)
}

func (s *stockSuite) TestGetAvailability() {
	s.Run("free stock reports the full base", func() {
		t := s.T()

		res := s.getAvailability(t, "")
		require.InDelta(t, 25, res.BaseAvailable, 0.0001)
		require.InDelta(t, 0, res.HeldQuantity, 0.0001)
		require.InDelta(t, 25, res.Available, 0.0001)
	})

	s.Run("held unit subtracts its full quantity without beneficiary context", func() {
		t := s.T()

		s.holdFor(t, s.unitID, s.partnerA)

		res := s.getAvailability(t, "")
		require.InDelta(t, 25, res.BaseAvailable, 0.0001)
		require.InDelta(t, 25, res.HeldQuantity, 0.0001)
		require.InDelta(t, 0, res.Available, 0.0001)
	})

	s.Run("the hold's beneficiary sees the full base", func() {
		t := s.T()

		s.holdFor(t, s.unitID, s.partnerA)

		res := s.getAvailability(t, "&beneficiary_id="+s.partnerA.String())
		require.InDelta(t, 0, res.HeldQuantity, 0.0001)
		require.InDelta(t, 25, res.Available, 0.0001)
	})

	s.Run("other beneficiaries stay blocked", func() {
		t := s.T()

		s.holdFor(t, s.unitID, s.partnerA)

		res := s.getAvailability(t, "&beneficiary_id="+s.partnerB.String())
		require.InDelta(t, 25, res.HeldQuantity, 0.0001)
		require.InDelta(t, 0, res.Available, 0.0001)
	})

	s.Run("a logically expired hold stops subtracting before the sweep", func() {
		t := s.T()

		s.holdFor(t, s.unitID, s.partnerA)
		s.backdateActiveHolds(t)

		res := s.getAvailability(t, "")
		require.InDelta(t, 0, res.HeldQuantity, 0.0001)
		require.InDelta(t, 25, res.Available, 0.0001)
	})

	s.Run("sweeping expired holds restores availability", func() {
		t := s.T()

		s.holdFor(t, s.unitID, s.partnerA)
		s.backdateActiveHolds(t)

		w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, "/api/holds/sweep", nil, s.adminToken)
		var swept response.SweepResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &swept)
		require.Equal(t, 1, swept.Expired)

		res := s.getAvailability(t, "")
		require.InDelta(t, 0, res.HeldQuantity, 0.0001)
		require.InDelta(t, 25, res.Available, 0.0001)
	})

	s.Run("lot filter narrows the base", func() {
		t := s.T()

		lot2 := dbtest.CreateTestLot(t, s.DB, "Statuario #8", s.productID)
		dbtest.CreateTestStockUnit(t, s.DB, lot2, s.productID, s.locationID, 12)

		all := s.getAvailability(t, "")
		require.InDelta(t, 37, all.BaseAvailable, 0.0001)

		only := s.getAvailability(t, "&lot_id="+lot2.String())
		require.InDelta(t, 12, only.BaseAvailable, 0.0001)
		require.InDelta(t, 12, only.Available, 0.0001)
	})
}

func (s *stockSuite) TestListCandidateUnits() {
	candidates := func(t *testing.T, opID uuid.UUID) []response.CandidateUnitResponse {
		t.Helper()
		url := fmt.Sprintf("/api/operations/%s/candidates?product_id=%s", opID, s.productID)
		w := commonhttp.PerformRequest(t, s.Router, http.MethodGet, url, nil, s.salesToken)

		var res []response.CandidateUnitResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &res)
		return res
	}

	s.Run("units held for another beneficiary are excluded", func() {
		t := s.T()

		unit2 := dbtest.CreateTestStockUnit(t, s.DB, s.lotID, s.productID, uuid.New(), 12)
		opID := dbtest.CreateTestOperation(t, s.DB, "OUT/2025/0042", "outgoing", &s.partnerB, nil)

		s.holdFor(t, s.unitID, s.partnerA)

		res := candidates(t, opID)
		require.Len(t, res, 1)
		require.Equal(t, unit2, res[0].StockUnitID)
		require.Nil(t, res[0].HeldForID)
	})

	s.Run("units held for the operation's beneficiary sort first", func() {
		t := s.T()

		unit2 := dbtest.CreateTestStockUnit(t, s.DB, s.lotID, s.productID, uuid.New(), 12)
		opID := dbtest.CreateTestOperation(t, s.DB, "OUT/2025/0043", "outgoing", &s.partnerB, nil)

		s.holdFor(t, unit2, s.partnerB)

		res := candidates(t, opID)
		require.Len(t, res, 2)
		require.Equal(t, unit2, res[0].StockUnitID)
		require.NotNil(t, res[0].HeldForID)
		require.Equal(t, s.partnerB, *res[0].HeldForID)
		require.Equal(t, s.unitID, res[1].StockUnitID)
	})

	s.Run("an expired hold no longer excludes the unit", func() {
		t := s.T()

		unit2 := dbtest.CreateTestStockUnit(t, s.DB, s.lotID, s.productID, uuid.New(), 12)
		opID := dbtest.CreateTestOperation(t, s.DB, "OUT/2025/0044", "outgoing", &s.partnerB, nil)

		s.holdFor(t, s.unitID, s.partnerA)
		s.backdateActiveHolds(t)

		res := candidates(t, opID)
		require.Len(t, res, 2)
		ids := []uuid.UUID{res[0].StockUnitID, res[1].StockUnitID}
		require.Contains(t, ids, s.unitID)
		require.Contains(t, ids, unit2)
	})
}

func (s *stockSuite) TestCascadeDelete() {
	count := func(t *testing.T, query string, args ...any) int {
		t.Helper()
		var n int
		require.NoError(t, s.DB.QueryRow(context.Background(), query, args...).Scan(&n))
		return n
	}

	s.Run("deleting a stock unit removes its holds and bindings", func() {
		t := s.T()

		s.holdFor(t, s.unitID, s.partnerA)
		opID := dbtest.CreateTestOperation(t, s.DB, "OUT/2025/0050", "outgoing", &s.partnerA, nil)
		dbtest.CreateTestBinding(t, s.DB, opID, s.unitID, 5, false)

		_, err := s.DB.Exec(context.Background(), "DELETE FROM stock_units WHERE id = $1", s.unitID)
		require.NoError(t, err)

		require.Zero(t, count(t, "SELECT COUNT(*) FROM holds WHERE stock_unit_id = $1", s.unitID))
		require.Zero(t, count(t, "SELECT COUNT(*) FROM unit_bindings WHERE stock_unit_id = $1", s.unitID))
	})

	s.Run("deleting a lot removes its units, holds and photos", func() {
		t := s.T()

		s.holdFor(t, s.unitID, s.partnerA)
		_, err := s.DB.Exec(context.Background(),
			"INSERT INTO lot_photos (lot_id, display_name, blob_key) VALUES ($1, $2, $3)",
			s.lotID, "Front face", "photos/front.jpg")
		require.NoError(t, err)

		_, err = s.DB.Exec(context.Background(), "DELETE FROM lots WHERE id = $1", s.lotID)
		require.NoError(t, err)

		require.Zero(t, count(t, "SELECT COUNT(*) FROM stock_units WHERE lot_id = $1", s.lotID))
		require.Zero(t, count(t, "SELECT COUNT(*) FROM holds WHERE lot_id = $1", s.lotID))
		require.Zero(t, count(t, "SELECT COUNT(*) FROM lot_photos WHERE lot_id = $1", s.lotID))
	})

	s.Run("deleting an operation removes its bindings", func() {
		t := s.T()

		opID := dbtest.CreateTestOperation(t, s.DB, "OUT/2025/0051", "outgoing", &s.partnerA, nil)
		dbtest.CreateTestBinding(t, s.DB, opID, s.unitID, 5, true)

		_, err := s.DB.Exec(context.Background(), "DELETE FROM stock_operations WHERE id = $1", opID)
		require.NoError(t, err)

		require.Zero(t, count(t, "SELECT COUNT(*) FROM unit_bindings WHERE operation_id = $1", opID))
	})
}
