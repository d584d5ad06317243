package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/mortyverse/Geurim-Lab/internal/model"
	"github.com/mortyverse/Geurim-Lab/internal/service"
	"github.com/mortyverse/Geurim-Lab/internal/store"
)

const userContextKey = "current_user"

// Identity trusts the upstream identity collaborator: the authenticated user
// arrives as an X-User-ID header. The middleware resolves the profile row,
// rejects unknown IDs, and feeds the process-scoped auth-state holder.
func Identity(users store.UserStore, auth *service.AuthState) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if _, err := uuid.Parse(raw); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid user id"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		c.Set(userContextKey, user)
		auth.Set(user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user set by Identity.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok
}
