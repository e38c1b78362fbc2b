package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Malek-bh/agrical-api/internal/audit"
	"github.com/Malek-bh/agrical-api/internal/auth"
	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/middleware"
	"github.com/Malek-bh/agrical-api/internal/models"
)

type PostHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewPostHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *PostHandler {
	return &PostHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type PostRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content" binding:"required"`
}

// --------- Handlers ---------

func (h *PostHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	post := models.Post{
		Title:   req.Title,
		Content: req.Content,
		UserID:  user.ID,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&post).Error; err != nil {
		httperr.Internal(c, "failed_to_create_post", "Internal error.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Post created successfully",
		"post":    post,
	})
}

func (h *PostHandler) List(c *gin.Context) {
	posts := []models.Post{}
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&posts).Error; err != nil {

		httperr.Internal(c, "failed_to_list_posts", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *PostHandler) Get(c *gin.Context) {
	var post models.Post
	if err := h.db.WithContext(c.Request.Context()).
		First(&post, "id = ?", c.Param("id")).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "post_not_found", "Post not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_post", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var post models.Post
	if err := h.db.WithContext(c.Request.Context()).
		First(&post, "id = ?", c.Param("id")).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "post_not_found", "Post not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_post", "Internal error.")
		return
	}

	if !auth.CanModify(user, post.UserID) {
		httperr.Forbidden(c, "permission_denied", "Permission denied.")
		return
	}

	var req PostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	post.Title = req.Title
	post.Content = req.Content

	if err := h.db.WithContext(c.Request.Context()).Save(&post).Error; err != nil {
		httperr.Internal(c, "failed_to_update_post", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Post updated successfully",
		"post":    post,
	})
}

func (h *PostHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var post models.Post
	if err := h.db.WithContext(c.Request.Context()).
		First(&post, "id = ?", c.Param("id")).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "post_not_found", "Post not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_post", "Internal error.")
		return
	}

	if !auth.CanModify(user, post.UserID) {
		httperr.Forbidden(c, "permission_denied", "Permission denied.")
		return
	}

	// comments go with the post through the cascade foreign key
	if err := h.db.WithContext(c.Request.Context()).Delete(&post).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_post", "Internal error.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "post_deleted",
		Entity:   "post",
		EntityID: &post.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}
