//go:build e2e

package hold_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
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

const (
	holdsURL    = "/api/holds"
	expiringURL = "/api/holds/expiring"
	sweepURL    = "/api/holds/sweep"
)

type holdSuite struct {
	e2e.SharedSuite

	salesToken string
	adminToken string

	partnerA  uuid.UUID
	partnerB  uuid.UUID
	productID uuid.UUID
	lotID     uuid.UUID
	unitID    uuid.UUID
	unit2ID   uuid.UUID
}

func TestHoldSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(holdSuite))
}

func (s *holdSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
	t := s.T()

	dbtest.CreateTestUser(t, s.DB, "sales@example.com", string(user.RoleSales))
	dbtest.CreateTestUser(t, s.DB, "admin@example.com", string(user.RoleAdmin))

	s.partnerA = dbtest.CreateTestPartner(t, s.DB, "Marble & Co")
	s.partnerB = dbtest.CreateTestPartner(t, s.DB, "Granite Bros")

	s.productID = uuid.New()
	s.lotID = dbtest.CreateTestLot(t, s.DB, "Calacatta Oro #81", s.productID)
	s.unitID = dbtest.CreateTestStockUnit(t, s.DB, s.lotID, s.productID, uuid.New(), 25)
	s.unit2ID = dbtest.CreateTestStockUnit(t, s.DB, s.lotID, s.productID, uuid.New(), 12)

	s.salesToken = helper.Login(t, s.Router, "sales@example.com")
	s.adminToken = helper.Login(t, s.Router, "admin@example.com")
}

func (s *holdSuite) createHold(t *testing.T, unitID, partnerID uuid.UUID, note string) *httptest.ResponseRecorder {
	t.Helper()
	body := request.CreateHoldRequest{
		StockUnitID: unitID,
		PartnerID:   partnerID,
		Note:        note,
	}
	return commonhttp.PerformRequest(t, s.Router, http.MethodPost, holdsURL, body, s.salesToken)
}

func (s *holdSuite) TestCreateHold() {
	s.Run("creates an active hold with the default window", func() {
		t := s.T()

		w := s.createHold(t, s.unitID, s.partnerA, "customer viewing friday")
		require.Equal(t, http.StatusCreated, w.Code)

		var res response.HoldResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		require.Equal(t, s.unitID, res.StockUnitID)
		require.Equal(t, s.lotID, res.LotID)
		require.Equal(t, "Calacatta Oro #81", res.LotName)
		require.Equal(t, "Marble & Co", res.PartnerName)
		require.Equal(t, "active", res.State)
		// read happens after create, so the 240h window rounds down
		require.Contains(t, []int{9, 10}, res.DaysRemaining)

		var state string
		err := s.DB.QueryRow(context.Background(),
			"SELECT state FROM holds WHERE id = $1", res.ID).Scan(&state)
		require.NoError(t, err)
		require.Equal(t, "active", state)
	})

	s.Run("rejects an unknown beneficiary partner", func() {
		t := s.T()

		w := s.createHold(t, s.unitID, uuid.New(), "")
		commonhttp.AssertErrorResponse(t, w, http.StatusNotFound, "Partner not found")
	})

	s.Run("rejects a second active hold on the same unit", func() {
		t := s.T()

		first := s.createHold(t, s.unitID, s.partnerA, "")
		require.Equal(t, http.StatusCreated, first.Code)

		second := s.createHold(t, s.unitID, s.partnerB, "")
		var detail response.HoldConflictDetail
		commonhttp.AssertStructuredErrorResponse(t, second, http.StatusConflict,
			"Stock unit is already held", &detail)
		require.Equal(t, "Marble & Co", detail.PartnerName)
	})

	s.Run("allows a new hold after cancellation", func() {
		t := s.T()

		first := s.createHold(t, s.unitID, s.partnerA, "")
		require.Equal(t, http.StatusCreated, first.Code)
		var created response.HoldResponse
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &created))

		w := commonhttp.PerformRequest(t, s.Router, http.MethodDelete,
			holdsURL+"/"+created.ID.String(), nil, s.salesToken)
		require.Equal(t, http.StatusNoContent, w.Code)

		second := s.createHold(t, s.unitID, s.partnerB, "")
		require.Equal(t, http.StatusCreated, second.Code)
	})

	s.Run("unknown stock unit is rejected", func() {
		t := s.T()

		w := s.createHold(t, uuid.New(), s.partnerA, "")
		commonhttp.AssertErrorResponse(t, w, http.StatusNotFound, "Stock unit not found")
	})

	s.Run("concurrent creates admit exactly one hold", func() {
		t := s.T()

		const attempts = 6
		partners := []uuid.UUID{s.partnerA, s.partnerB}

		var wg sync.WaitGroup
		codes := make([]int, attempts)
		for i := range attempts {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				body, _ := json.Marshal(request.CreateHoldRequest{
					StockUnitID: s.unitID,
					PartnerID:   partners[i%len(partners)],
				})
				req := httptest.NewRequest(http.MethodPost, holdsURL, bytes.NewReader(body))
				req.Header.Set("Content-Type", "application/json")
				req.Header.Set("Authorization", "Bearer "+s.salesToken)
				rec := httptest.NewRecorder()
				s.Router.ServeHTTP(rec, req)
				codes[i] = rec.Code
			}(i)
		}
		wg.Wait()

		var created, conflicted int
		for _, code := range codes {
			switch code {
			case http.StatusCreated:
				created++
			case http.StatusConflict:
				conflicted++
			}
		}
		require.Equal(t, 1, created, "codes: %v", codes)
		require.Equal(t, attempts-1, conflicted, "codes: %v", codes)

		var active int
		err := s.DB.QueryRow(context.Background(),
			"SELECT COUNT(*) FROM holds WHERE stock_unit_id = $1 AND state = 'active'", s.unitID).Scan(&active)
		require.NoError(t, err)
		require.Equal(t, 1, active)
	})
}

func (s *holdSuite) TestGetHold() {
	s.Run("returns the hold by id", func() {
		t := s.T()

		created := s.createHold(t, s.unitID, s.partnerA, "note")
		require.Equal(t, http.StatusCreated, created.Code)
		var res response.HoldResponse
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &res))

		w := commonhttp.PerformRequest(t, s.Router, http.MethodGet,
			holdsURL+"/"+res.ID.String(), nil, s.salesToken)
		var got response.HoldResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &got)
		require.Equal(t, res.ID, got.ID)
		require.Equal(t, "Marble & Co", got.PartnerName)
	})

	s.Run("unknown hold returns 404", func() {
		t := s.T()

		w := commonhttp.PerformRequest(t, s.Router, http.MethodGet,
			holdsURL+"/"+uuid.NewString(), nil, s.salesToken)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

func (s *holdSuite) TestRenewHold() {
	s.Run("renewal restarts the full window", func() {
		t := s.T()

		created := s.createHold(t, s.unitID, s.partnerA, "")
		require.Equal(t, http.StatusCreated, created.Code)
		var res response.HoldResponse
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &res))

		// shrink the remaining window so the renewal is observable
		_, err := s.DB.Exec(context.Background(),
			"UPDATE holds SET expires_at = NOW() + INTERVAL '24 hours' WHERE id = $1", res.ID)
		require.NoError(t, err)

		w := commonhttp.PerformRequest(t, s.Router, http.MethodPost,
			holdsURL+"/"+res.ID.String()+"/renew", nil, s.salesToken)
		var renewed response.HoldResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &renewed)
		require.Contains(t, []int{9, 10}, renewed.DaysRemaining)
	})

	s.Run("cancelled hold cannot be renewed", func() {
		t := s.T()

		created := s.createHold(t, s.unitID, s.partnerA, "")
		require.Equal(t, http.StatusCreated, created.Code)
		var res response.HoldResponse
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &res))

		cancel := commonhttp.PerformRequest(t, s.Router, http.MethodDelete,
			holdsURL+"/"+res.ID.String(), nil, s.salesToken)
		require.Equal(t, http.StatusNoContent, cancel.Code)

		w := commonhttp.PerformRequest(t, s.Router, http.MethodPost,
			holdsURL+"/"+res.ID.String()+"/renew", nil, s.salesToken)
		require.Equal(t, http.StatusConflict, w.Code)
	})
}

func (s *holdSuite) TestListExpiring() {
	s.Run("only holds inside the window are listed", func() {
		t := s.T()

		soon := s.createHold(t, s.unitID, s.partnerA, "")
		require.Equal(t, http.StatusCreated, soon.Code)
		var soonRes response.HoldResponse
		require.NoError(t, json.Unmarshal(soon.Body.Bytes(), &soonRes))

		later := s.createHold(t, s.unit2ID, s.partnerB, "")
		require.Equal(t, http.StatusCreated, later.Code)

		_, err := s.DB.Exec(context.Background(),
			"UPDATE holds SET expires_at = NOW() + INTERVAL '48 hours' WHERE id = $1", soonRes.ID)
		require.NoError(t, err)

		w := commonhttp.PerformRequest(t, s.Router, http.MethodGet,
			expiringURL+"?within_days=3", nil, s.salesToken)
		var items []*response.HoldListItemResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &items)
		require.Len(t, items, 1)
		require.Equal(t, soonRes.ID, items[0].ID)
		require.Equal(t, 1, items[0].DaysRemaining)

		w = commonhttp.PerformRequest(t, s.Router, http.MethodGet,
			expiringURL+"?within_days=30", nil, s.salesToken)
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &items)
		require.Len(t, items, 2)
	})

	s.Run("negative window is rejected", func() {
		t := s.T()

		w := commonhttp.PerformRequest(t, s.Router, http.MethodGet,
			expiringURL+"?within_days=-1", nil, s.salesToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func (s *holdSuite) TestSweep() {
	s.Run("expires overdue holds and frees their units", func() {
		t := s.T()

		created := s.createHold(t, s.unitID, s.partnerA, "")
		require.Equal(t, http.StatusCreated, created.Code)
		var res response.HoldResponse
		require.NoError(t, json.Unmarshal(created.Body.Bytes(), &res))

		_, err := s.DB.Exec(context.Background(),
			"UPDATE holds SET expires_at = NOW() - INTERVAL '1 hour' WHERE id = $1", res.ID)
		require.NoError(t, err)

		w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil, s.adminToken)
		var swept response.SweepResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &swept)
		require.Equal(t, 1, swept.Expired)
		require.Contains(t, swept.StockUnits, s.unitID)

		var state string
		err = s.DB.QueryRow(context.Background(),
			"SELECT state FROM holds WHERE id = $1", res.ID).Scan(&state)
		require.NoError(t, err)
		require.Equal(t, "expired", state)

		// the unit is free again
		again := s.createHold(t, s.unitID, s.partnerB, "")
		require.Equal(t, http.StatusCreated, again.Code)
	})

	s.Run("sweep requires the admin role", func() {
		t := s.T()

		w := commonhttp.PerformRequest(t, s.Router, http.MethodPost, sweepURL, nil, s.salesToken)
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

func (s *holdSuite) TestLotHolds() {
	s.Run("lists holds for a lot", func() {
		t := s.T()

		created := s.createHold(t, s.unitID, s.partnerA, "")
		require.Equal(t, http.StatusCreated, created.Code)

		w := commonhttp.PerformRequest(t, s.Router, http.MethodGet,
			fmt.Sprintf("/api/lots/%s/holds", s.lotID), nil, s.salesToken)
		var items []*response.HoldListItemResponse
		commonhttp.AssertSuccessResponse(t, w, http.StatusOK, &items)
		require.Len(t, items, 1)
		require.Equal(t, s.unitID, items[0].StockUnitID)
	})
}
