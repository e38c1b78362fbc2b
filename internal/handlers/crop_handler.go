package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Malek-bh/agrical-api/internal/audit"
	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/middleware"
	"github.com/Malek-bh/agrical-api/internal/models"
)

type CropHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewCropHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *CropHandler {
	return &CropHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type CropTaskRequest struct {
	Month string `json:"month" binding:"required"`
	Task  string `json:"task" binding:"required"`
}

type CropRequest struct {
	Name        string            `json:"name" binding:"required"`
	Description string            `json:"description"`
	Tasks       []CropTaskRequest `json:"tasks"`
}

// --------- Handlers ---------

func (h *CropHandler) List(c *gin.Context) {
	crops := []models.Crop{}
	if err := h.db.WithContext(c.Request.Context()).
		Order("name ASC").
		Find(&crops).Error; err != nil {

		httperr.Internal(c, "failed_to_list_crops", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, crops)
}

func (h *CropHandler) ListTasks(c *gin.Context) {
	var crop models.Crop
	if err := h.db.WithContext(c.Request.Context()).
		First(&crop, "id = ?", c.Param("id")).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "crop_not_found", "Crop not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_crop", "Internal error.")
		return
	}

	tasks := []models.CropTask{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("crop_id = ?", crop.ID).
		Order("id ASC").
		Find(&tasks).Error; err != nil {

		httperr.Internal(c, "failed_to_list_tasks", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, tasks)
}

// Create inserts a crop with its task calendar in one transaction so a
// duplicate name never leaves orphan tasks behind. Admin only.
func (h *CropHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.IsAdmin {
		httperr.Forbidden(c, "permission_denied", "Permission denied.")
		return
	}

	var req CropRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	crop := models.Crop{
		Name:        req.Name,
		Description: req.Description,
	}

	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Crop{}).
			Where("name = ?", req.Name).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.NewConflict("crop_already_exists")
		}

		if err := tx.Create(&crop).Error; err != nil {
			return err
		}

		for _, t := range req.Tasks {
			task := models.CropTask{
				Month:  t.Month,
				Task:   t.Task,
				CropID: crop.ID,
			}
			if err := tx.Create(&task).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		httperr.From(c, err)
		return
	}

	c.JSON(http.StatusCreated, crop)
}

// DeleteTasks clears a crop's task calendar. Admin only.
func (h *CropHandler) DeleteTasks(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.IsAdmin {
		httperr.Forbidden(c, "permission_denied", "Only admins can delete crop tasks.")
		return
	}

	var crop models.Crop
	if err := h.db.WithContext(c.Request.Context()).
		First(&crop, "id = ?", c.Param("id")).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "crop_not_found", "Crop not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_crop", "Internal error.")
		return
	}

	if err := h.db.WithContext(c.Request.Context()).
		Where("crop_id = ?", crop.ID).
		Delete(&models.CropTask{}).Error; err != nil {

		httperr.Internal(c, "failed_to_delete_tasks", "Internal error.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "crop_tasks_deleted",
		Entity:   "crop",
		EntityID: &crop.ID,
	})

	c.Status(http.StatusNoContent)
}
