package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Malek-bh/agrical-api/internal/auth"
	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/models"
	"github.com/Malek-bh/agrical-api/internal/store"
)

const ContextUser = "currentUser"

// AuthMiddleware resolves the bearer token to a live user record on
// every request: verify signature and expiry, extract the subject, then
// load the user from the store. A token whose subject no longer exists
// (deleted or renamed user) is rejected even though it verifies.
func AuthMiddleware(tokens *auth.TokenMaker, users *store.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthorized(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthorized(c, "invalid_authorization_header")
			return
		}

		subject, err := tokens.Verify(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				abortUnauthorized(c, "token_expired")
				return
			}
			abortUnauthorized(c, "invalid_token")
			return
		}

		// Always the live record, never a snapshot from issue time, so
		// admin-flag and password changes apply on the next request.
		user, err := users.FindByUsername(c.Request.Context(), subject)
		if err != nil {
			abortUnauthorized(c, "invalid_token")
			return
		}

		c.Set(ContextUser, user)
		c.Next()
	}
}

func abortUnauthorized(c *gin.Context, code string) {
	httperr.Unauthorized(c, code, "Invalid authentication credentials.")
	c.Abort()
}

// CurrentUser returns the user injected by AuthMiddleware.
func CurrentUser(c *gin.Context) *models.User {
	val, exists := c.Get(ContextUser)
	if !exists {
		return nil
	}
	user, ok := val.(*models.User)
	if !ok {
		return nil
	}
	return user
}
