package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/nivelab/authcore/internal/model"
)

// Context keys set by Authenticate for downstream handlers.
const (
	UserKey  = "user"
	TokenKey = "accessToken"
)

// Authenticator resolves a bearer token to the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (model.User, error)
}

// Authenticate extracts the bearer token from the Authorization header,
// resolves it and stores the user and the raw token on the request
// context. Requests without a valid token are rejected with 401.
func Authenticate(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid authorization header"})
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(UserKey, user)
		c.Set(TokenKey, parts[1])
		c.Next()
	}
}

// UserFromContext returns the authenticated user stored by Authenticate.
func UserFromContext(c *gin.Context) (model.User, bool) {
	v, ok := c.Get(UserKey)
	if !ok {
		return model.User{}, false
	}
	user, ok := v.(model.User)
	return user, ok
}
