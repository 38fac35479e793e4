package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"grouporder/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

var (
	ErrMissingToken = errors.New("authorization token required")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// userIDContextKey is where the authenticated user id lives in the echo context.
const userIDContextKey = "user_id"

// Claims carries the user identity inside a session token.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTAuthenticator validates bearer tokens issued by the identity service.
// The engine never issues tokens itself; it only verifies the shared-secret
// signature and extracts the user id claim.
type JWTAuthenticator struct {
	secretKey []byte
}

// NewJWTAuthenticator creates an authenticator with the given HMAC secret.
func NewJWTAuthenticator(secretKey string) *JWTAuthenticator {
	return &JWTAuthenticator{
		secretKey: []byte(secretKey),
	}
}

// Validate parses and validates a token, returning the claims if valid.
func (a *JWTAuthenticator) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return a.secretKey, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Middleware returns an echo middleware that requires a valid Bearer token.
// The user id claim is parsed as a UUID and stored in the request context as
// the acting identity for the handler.
func (a *JWTAuthenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return unauthorized(c, ErrMissingToken)
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				return unauthorized(c, ErrInvalidToken)
			}

			claims, err := a.Validate(parts[1])
			if err != nil {
				return unauthorized(c, err)
			}

			userID, err := kernel.UUIDFromString(claims.UserID)
			if err != nil {
				return unauthorized(c, ErrInvalidToken)
			}

			c.Set(userIDContextKey, userID)
			return next(c)
		}
	}
}

// actorID extracts the authenticated user id set by the middleware.
func actorID(c echo.Context) (kernel.UUID, error) {
	userID, ok := c.Get(userIDContextKey).(kernel.UUID)
	if !ok {
		return kernel.UUID{}, ErrMissingToken
	}
	return userID, nil
}

func unauthorized(c echo.Context, err error) error {
	return c.JSON(http.StatusUnauthorized, ErrorResponse{
		Code:    http.StatusUnauthorized,
		Message: err.Error(),
	})
}
