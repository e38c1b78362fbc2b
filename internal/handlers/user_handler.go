package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Malek-bh/agrical-api/internal/audit"
	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/middleware"
	"github.com/Malek-bh/agrical-api/internal/store"
)

type UserHandler struct {
	users *store.UserStore
	audit *audit.Dispatcher
}

func NewUserHandler(users *store.UserStore, dispatcher *audit.Dispatcher) *UserHandler {
	return &UserHandler{users: users, audit: dispatcher}
}

// Delete removes a user account and, through the cascade foreign keys,
// every post, comment, service and request they own. Admin only — a
// user cannot delete even their own account.
func (h *UserHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if actor == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return
	}
	if !actor.IsAdmin {
		httperr.Forbidden(c, "permission_denied", "Permission denied.")
		return
	}

	id64, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		httperr.BadRequest(c, "invalid_user_id", "User id must be numeric.")
		return
	}
	userID := uint(id64)

	if err := h.users.Delete(c.Request.Context(), userID); err != nil {
		httperr.From(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &actor.ID,
		Action:   "user_deleted",
		Entity:   "user",
		EntityID: &userID,
	})

	c.Status(http.StatusNoContent)
}
