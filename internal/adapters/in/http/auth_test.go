package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"grouporder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key-for-auth-tests"

func signedToken(t *testing.T, secret, userID string) string {
	t.Helper()

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func invokeWithAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, kernel.UUID) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seenUserID kernel.UUID
	handler := NewJWTAuthenticator(testSecret).Middleware()(func(c echo.Context) error {
		userID, err := actorID(c)
		require.NoError(t, err)
		seenUserID = userID
		return c.NoContent(http.StatusOK)
	})

	require.NoError(t, handler(c))
	return rec, seenUserID
}

func TestJWTMiddleware_ValidToken(t *testing.T) {
	userID := kernel.NewUUID()
	token := signedToken(t, testSecret, userID.String())

	rec, seenUserID := invokeWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, userID.IsEqual(seenUserID))
}

func TestJWTMiddleware_MissingHeader(t *testing.T) {
	rec, _ := invokeWithAuth(t, "")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_MalformedHeader(t *testing.T) {
	rec, _ := invokeWithAuth(t, "Token abc123")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_WrongSecret(t *testing.T) {
	token := signedToken(t, "some-other-secret", kernel.NewUUID().String())

	rec, _ := invokeWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_ExpiredToken(t *testing.T) {
	claims := &Claims{
		UserID: kernel.NewUUID().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec, _ := invokeWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTMiddleware_UserIDClaimIsNotUUID(t *testing.T) {
	token := signedToken(t, testSecret, "not-a-uuid")

	rec, _ := invokeWithAuth(t, "Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
