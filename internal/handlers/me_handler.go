package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Malek-bh/agrical-api/internal/audit"
	"github.com/Malek-bh/agrical-api/internal/auth"
	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/middleware"
	"github.com/Malek-bh/agrical-api/internal/store"
	"github.com/Malek-bh/agrical-api/internal/validators"
)

type MeHandler struct {
	users      *store.UserStore
	audit      *audit.Dispatcher
	validEmail func(string) bool
}

func NewMeHandler(users *store.UserStore, dispatcher *audit.Dispatcher, validEmail func(string) bool) *MeHandler {
	if validEmail == nil {
		validEmail = validators.IsEmailDomainValid
	}
	return &MeHandler{users: users, audit: dispatcher, validEmail: validEmail}
}

// --------- Requests ---------

type ProfileUpdateRequest struct {
	Username *string `json:"username,omitempty"`
	FullName *string `json:"full_name,omitempty"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=6"`
}

// --------- Handlers ---------

func (h *MeHandler) GetProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":  user.Username,
		"full_name": user.FullName,
		"email":     user.Email,
	})
}

func (h *MeHandler) UpdateProfile(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if user == nil {
		httperr.Unauthorized(c, "user_not_in_context", "Authentication required.")
		return
	}

	var req ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	upd := store.UserUpdate{
		Username: req.Username,
		FullName: req.FullName,
	}

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !h.validEmail(email) {
			httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
			return
		}
		upd.Email = &email
	}

	if req.Password != nil {
		hashed, err := auth.HashPassword(*req.Password)
		if err != nil {
			httperr.Internal(c, "failed_to_hash_password", "Internal error.")
			return
		}
		upd.PasswordHash = &hashed
	}

	updated, err := h.users.Update(c.Request.Context(), user.ID, upd)
	if err != nil {
		httperr.From(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "profile_updated",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"user": gin.H{
			"username":  updated.Username,
			"full_name": updated.FullName,
			"email":     updated.Email,
		},
	})
}
