package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ooyyss26/product-api/service"
)

const identityContextKey = "authIdentity"

// RequireAuth verifies the bearer token on every request it guards and
// aborts with 401 before any further pipeline step runs. The authenticated
// identity is stored under a request-scoped key readable via Identity.
func RequireAuth(tokens service.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := tokens.Authenticate(c.GetHeader("Authorization"))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": authErrorMessage(err)})
			return
		}
		c.Set(identityContextKey, identity)
		c.Next()
	}
}

// Identity returns the principal set by RequireAuth for this request.
func Identity(c *gin.Context) (string, bool) {
	v, ok := c.Get(identityContextKey)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func authErrorMessage(err error) string {
	switch {
	case errors.Is(err, service.ErrTokenMissing):
		return "Missing or invalid token"
	case errors.Is(err, service.ErrTokenExpired):
		return "Token expired"
	default:
		return "Invalid token"
	}
}
