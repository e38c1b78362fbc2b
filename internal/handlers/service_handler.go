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

type ServiceHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewServiceHandler(db *gorm.DB, dispatcher *audit.Dispatcher) *ServiceHandler {
	return &ServiceHandler{db: db, audit: dispatcher}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description" binding:"required"`
	ContactInfo string `json:"contact_info" binding:"required"`
}

type ServiceRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

// --------- Handlers ---------

func (h *ServiceHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	service := models.ServiceProvider{
		Name:        req.Name,
		Description: req.Description,
		ContactInfo: req.ContactInfo,
		UserID:      user.ID,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Internal error.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service added successfully",
		"service": service,
	})
}

func (h *ServiceHandler) List(c *gin.Context) {
	services := []models.ServiceProvider{}
	if err := h.db.WithContext(c.Request.Context()).
		Order("created_at DESC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"services": services})
}

// Delete applies the same ownership rule as posts and comments: the
// owner or an admin may remove a listing.
func (h *ServiceHandler) Delete(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var service models.ServiceProvider
	if err := h.db.WithContext(c.Request.Context()).
		First(&service, "id = ?", c.Param("id")).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Internal error.")
		return
	}

	if !auth.CanModify(user, service.UserID) {
		httperr.Forbidden(c, "permission_denied", "Permission denied.")
		return
	}

	// open requests against the listing go with it
	if err := h.db.WithContext(c.Request.Context()).Delete(&service).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "Internal error.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "service_deleted",
		Entity:   "service_provider",
		EntityID: &service.ID,
	})

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

func (h *ServiceHandler) Request(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var service models.ServiceProvider
	if err := h.db.WithContext(c.Request.Context()).
		First(&service, "id = ?", c.Param("id")).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.NotFound(c, "service_not_found", "Service not found.")
			return
		}
		httperr.Internal(c, "failed_to_get_service", "Internal error.")
		return
	}

	var req ServiceRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	request := models.ServiceRequest{
		Description:       req.Description,
		ServiceProviderID: service.ID,
		UserID:            user.ID,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&request).Error; err != nil {
		httperr.Internal(c, "failed_to_create_request", "Internal error.")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Service requested successfully",
		"request": request,
	})
}

func (h *ServiceHandler) ListRequests(c *gin.Context) {
	requests := []models.ServiceRequest{}
	if err := h.db.WithContext(c.Request.Context()).
		Where("service_provider_id = ?", c.Param("id")).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {

		httperr.Internal(c, "failed_to_list_requests", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"requests": requests})
}
