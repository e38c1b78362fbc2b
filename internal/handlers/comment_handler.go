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

type CommentHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCommentHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *CommentHandler {
	return &CommentHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CommentRequest struct {
	Content string `json:"content" binding:"required"`
	PostID  uint   `json:"post_id" binding:"required"`
}

// --------- Handlers ---------

func (h *CommentHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	var post models.Post
	if err := h.db.WithContext(c.Request.Context()).
		First(&post, req.PostID).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "post_not_found", "Post not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_post", "Internal error.")
		return
	}

	comment := models.Comment{
		Content: req.Content,
		PostID:  req.PostID,
		UserID:  user.ID,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&comment).Error; err != nil {
		httperr.Internal(c, "failed_to_create_comment", "Internal error.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Comment added successfully",
		"comment": comment,
	})
}

func (h *CommentHandler) ListForPost(c *gin.Context) {
	comments := []models.Comment{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("post_id = ?", c.Param("id")).
		Order("created_at ASC").
		Find(&comments).Error; err != nil {

		httperr.Internal(c, "failed_to_list_comments", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *CommentHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var comment models.Comment
	if err := h.db.WithContext(c.Request.Context()).
		First(&comment, "id = ?", c.Param("id")).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "comment_not_found", "Comment not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_comment", "Internal error.")
		return
	}

	if !auth.CanModify(user, comment.UserID) {
		httperr.Forbidden(c, "permission_denied", "Permission denied.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).Delete(&comment).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_comment", "Internal error.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "comment_deleted",
		Entity:   "comment",
		EntityID: &comment.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted successfully"})
}
