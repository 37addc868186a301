package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"taskapp/internal/adapter/http/helper"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/port"
	"taskapp/pkg/auth"
)

const (
	ContextUserKey  = "x-user"
	ContextTokenKey = "x-token"
)

// BearerAuth verifies the Authorization header's JWT signature and resolves
// the user still holding that exact token. Either check failing ends the
// request with 401; nothing downstream runs without an identity.
func BearerAuth(tokens *auth.JWT, users port.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		bearer := c.GetHeader("Authorization")

		if bearer == "" || !strings.HasPrefix(bearer, "Bearer ") {
			helper.SendUnauthorizedError(c, domain.ErrUnauthenticated.Error())
			c.Abort()
			return
		}

		token := strings.TrimPrefix(bearer, "Bearer ")

		userUUID, err := tokens.VerifyToken(token)

		if err != nil {
			helper.SendUnauthorizedError(c, domain.ErrUnauthenticated.Error())
			c.Abort()
			return
		}

		user, err := users.GetByToken(c.Request.Context(), userUUID, token)

		if err != nil {
			helper.SendUnauthorizedError(c, domain.ErrUnauthenticated.Error())
			c.Abort()
			return
		}

		c.Set(ContextUserKey, user)
		c.Set(ContextTokenKey, token)

		c.Next()
	}
}

// CurrentUser returns the identity the auth middleware resolved.
func CurrentUser(c *gin.Context) (domain.User, bool) {
	value, ok := c.Get(ContextUserKey)

	if !ok {
		return domain.User{}, false
	}

	user, ok := value.(domain.User)

	return user, ok
}

// CurrentToken returns the raw bearer token of the request, so logout can
// remove exactly the session it was called with.
func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
