package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/roomfinder/roomfinder-backend/internal/response"
	"github.com/roomfinder/roomfinder-backend/internal/service"
)

const (
	// ContextKeyClaims is the Gin context key for JWT claims.
	ContextKeyClaims = "claims"
)

// TokenVerifier checks a bearer token and the session behind it.
type TokenVerifier interface {
	ValidateToken(tokenStr string) (*service.Claims, error)
	ValidateSession(ctx context.Context, claims *service.Claims) error
}

type abortFunc func(c *gin.Context, statusCode int, code response.ErrCode)

// RequireUserJWT validates the bearer token and its Redis session.
// Failures are written in the versioned envelope.
func RequireUserJWT(auth TokenVerifier) gin.HandlerFunc {
	return requireUserJWT(auth, response.AbortFail)
}

// RequireUserJWTFlat is RequireUserJWT for the routes the browser UI calls
// directly; failures are written as {success, message}.
func RequireUserJWTFlat(auth TokenVerifier) gin.HandlerFunc {
	return requireUserJWT(auth, response.AbortReject)
}

func requireUserJWT(auth TokenVerifier, abort abortFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := bearerToken(c)
		if tokenStr == "" {
			abort(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := auth.ValidateToken(tokenStr)
		if err != nil {
			abort(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}

		if err := auth.ValidateSession(c.Request.Context(), claims); err != nil {
			if errors.Is(err, service.ErrSessionInvalid) {
				abort(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
				return
			}
			_ = c.Error(err)
			abort(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims retrieves the JWT claims from the Gin context.
func GetClaims(c *gin.Context) *service.Claims {
	val, exists := c.Get(ContextKeyClaims)
	if !exists {
		return nil
	}
	claims, ok := val.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
