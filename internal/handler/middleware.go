package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jobtrail/jobtrail/internal/domain"
	"github.com/jobtrail/jobtrail/internal/dto"
	"github.com/jobtrail/jobtrail/internal/identity"
	"github.com/jobtrail/jobtrail/internal/service"
)

// principalKey is the gin context key holding the session principal.
const principalKey = "principal"

// AuthMiddleware validates the bearer token, loads the account it names, and
// stores a session principal in the request context.
func AuthMiddleware(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Authorization header is required",
			})
			c.Abort()
			return
		}

		account, claims, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
				Error:   "Unauthorized",
				Message: "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(principalKey, newPrincipal(account, claims))
		c.Next()
	}
}

// OptionalAuthMiddleware stores a principal when a valid bearer token is
// present and lets the request through either way. Endpoints that serve both
// authenticated and anonymous callers use this.
func OptionalAuthMiddleware(sessions service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c)
		if !ok {
			c.Next()
			return
		}

		account, claims, err := sessions.Authenticate(c.Request.Context(), token)
		if err != nil {
			c.Next()
			return
		}

		c.Set(principalKey, newPrincipal(account, claims))
		c.Next()
	}
}

// CurrentPrincipal returns the principal stored by the auth middleware, or
// nil when the request is unauthenticated.
func CurrentPrincipal(c *gin.Context) identity.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(identity.Principal)
	return p
}

func newPrincipal(account *domain.Account, claims jwt.MapClaims) identity.Principal {
	if claims == nil {
		return identity.NewPrincipal(account, "", nil)
	}
	provider, _ := claims["provider"].(string)
	return identity.NewPrincipal(account, provider, map[string]any(claims))
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Extract token from "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}

	return parts[1], true
}
