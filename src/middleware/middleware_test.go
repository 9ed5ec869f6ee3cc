package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, subject, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", AuthRequired(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(IdentityKey))
	})
	return router
}

func TestParseIdentity(t *testing.T) {
	token := signToken(t, "user-1", testSecret)

	identity, err := ParseIdentity(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", identity)

	_, err = ParseIdentity(token, "wrong-secret")
	assert.Error(t, err)

	_, err = ParseIdentity(signToken(t, "", testSecret), testSecret)
	assert.Error(t, err)
}

func TestAuthRequiredBearerHeader(t *testing.T) {
	router := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "user-1", testSecret))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "user-1", rec.Body.String())
}

func TestAuthRequiredQueryToken(t *testing.T) {
	router := authTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/whoami?token="+signToken(t, "adv-1", testSecret), nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "adv-1", rec.Body.String())
}

func TestAuthRequiredRejections(t *testing.T) {
	router := authTestRouter()

	cases := []struct {
		name   string
		header string
	}{
		{name: "missing token", header: ""},
		{name: "malformed header", header: "Token abc"},
		{name: "bad signature", header: "Bearer " + signToken(t, "user-1", "wrong-secret")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGatewayAuthRequired(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/credit", GatewayAuthRequired("gw-key"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodPost, "/credit", nil)
	req.Header.Set("X-Gateway-Key", "gw-key")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/credit", nil)
	req.Header.Set("X-Gateway-Key", "wrong")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
