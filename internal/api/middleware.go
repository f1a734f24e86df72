package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/bioprephq/bioprep/internal/domain"
)

const userKey = "bioprep.user"

// Guard protects the admin subtree. Requests without a valid, live session
// token are rejected before any handler runs.
func (a *API) Guard() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := a.auth.Authorized(c.Request.Context(), bearerToken(c))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "authentication required"},
			})
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(h, "Bearer ")
	if !ok {
		return ""
	}
	return token
}

func currentUser(c *gin.Context) *domain.User {
	if u, ok := c.Get(userKey); ok {
		return u.(*domain.User)
	}
	return nil
}
