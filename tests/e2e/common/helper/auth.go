//go:build e2e

package helper

import (
	"encoding/json"
	"net/http"
	"testing"

	"slabstock/internal/handler/dto/request"
	"slabstock/internal/handler/dto/response"
	"slabstock/tests/common/dbtest"
	commonhttp "slabstock/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// Login authenticates a fixture user created by dbtest.CreateTestUser and
// returns its bearer token.
func Login(t *testing.T, router *gin.Engine, email string) string {
	t.Helper()

	body := request.LoginRequest{
		Email:    email,
		Password: dbtest.TestUserPassword,
	}

	w := commonhttp.PerformRequest(t, router, http.MethodPost, "/api/auth/login", body, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed for %s", email)

	var res response.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
	require.NotEmpty(t, res.AccessToken)

	return res.AccessToken
}
