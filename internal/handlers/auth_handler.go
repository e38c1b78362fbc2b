package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Malek-bh/agrical-api/internal/audit"
	"github.com/Malek-bh/agrical-api/internal/auth"
	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/models"
	"github.com/Malek-bh/agrical-api/internal/store"
	"github.com/Malek-bh/agrical-api/internal/validators"
)

type AuthHandler struct {
	db         *gorm.DB
	users      *store.UserStore
	service    *auth.Service
	audit      *audit.Dispatcher
	validEmail func(string) bool
}

func NewAuthHandler(db *gorm.DB, users *store.UserStore, service *auth.Service, dispatcher *audit.Dispatcher, validEmail func(string) bool) *AuthHandler {
	if validEmail == nil {
		validEmail = validators.IsEmailDomainValid
	}
	return &AuthHandler{db: db, users: users, service: service, audit: dispatcher, validEmail: validEmail}
}

// --------- Requests ---------

type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name"`
	Password string `json:"password" binding:"required,min=6"`
	IsAdmin  bool   `json:"is_admin"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	username := strings.TrimSpace(req.Username)

	if !h.validEmail(email) {
		httperr.BadRequest(c, "invalid_email_domain", "The email domain does not appear to be valid.")
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Internal error.")
		return
	}

	user := models.User{
		Username:     username,
		Email:        email,
		FullName:     req.FullName,
		PasswordHash: hashed,
		IsAdmin:      req.IsAdmin,
	}

	if err := h.users.Create(c.Request.Context(), &user); err != nil {
		httperr.From(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	role := "regular user"
	if user.IsAdmin {
		role = "admin"
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User " + user.Username + " successfully registered as " + role,
		"user": gin.H{
			"id":        user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"full_name": user.FullName,
		},
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	token, _, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}
