package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Malek-bh/agrical-api/internal/httperr"
	"github.com/Malek-bh/agrical-api/internal/middleware"
	"github.com/Malek-bh/agrical-api/internal/models"
	"github.com/Malek-bh/agrical-api/internal/season"
)

type CalendarHandler struct {
	db *gorm.DB
}

func NewCalendarHandler(db *gorm.DB) *CalendarHandler {
	return &CalendarHandler{db: db}
}

// --------- Requests ---------

type EventRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"date" binding:"required"` // YYYY-MM-DD
	Season      string `json:"season"`
	Category    string `json:"category"`
	Tasks       string `json:"tasks"`
}

// --------- Handlers ---------

func (h *CalendarHandler) List(c *gin.Context) {
	events := []models.AgriculturalEvent{}
	if err := h.db.WithContext(c.Request.Context()).
		Order("date ASC").
		Find(&events).Error; err != nil {

		httperr.Internal(c, "failed_to_list_events", "Internal error.")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *CalendarHandler) BySeason(c *gin.Context) {
	s := season.Normalize(c.Param("season"))
	if !season.IsValid(s) {
		httperr.BadRequest(c, "invalid_season", "Season must be one of winter, spring, summer, autumn.")
		return
	}

	var events []models.AgriculturalEvent
	if err := h.db.WithContext(c.Request.Context()).
		Where("season = ?", s).
		Order("date ASC").
		Find(&events).Error; err != nil {

		httperr.Internal(c, "failed_to_list_events", "Internal error.")
		return
	}

	if len(events) == 0 {
		httperr.NotFound(c, "no_events_for_season", "No events found for season '"+s+"'.")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *CalendarHandler) ByDate(c *gin.Context) {
	day, err := time.Parse("2006-01-02", c.Param("date"))
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	var events []models.AgriculturalEvent
	if err := h.db.WithContext(c.Request.Context()).
		Where("date = ?", day).
		Order("id ASC").
		Find(&events).Error; err != nil {

		httperr.Internal(c, "failed_to_list_events", "Internal error.")
		return
	}

	if len(events) == 0 {
		httperr.NotFound(c, "no_events_for_date", "No events found for date '"+c.Param("date")+"'.")
		return
	}

	c.JSON(http.StatusOK, events)
}

func (h *CalendarHandler) ByCategory(c *gin.Context) {
	category := c.Param("category")

	var events []models.AgriculturalEvent
	if err := h.db.WithContext(c.Request.Context()).
		Where("category = ?", category).
		Order("date ASC").
		Find(&events).Error; err != nil {

		httperr.Internal(c, "failed_to_list_events", "Internal error.")
		return
	}

	if len(events) == 0 {
		httperr.NotFound(c, "no_events_for_category", "No events found for category '"+category+"'.")
		return
	}

	c.JSON(http.StatusOK, events)
}

// Create adds a calendar event. When no season is given it is derived
// from the event date. Admin only.
func (h *CalendarHandler) Create(c *gin.Context) {
	user := middleware.CurrentUser(c)
	if !user.IsAdmin {
		httperr.Forbidden(c, "permission_denied", "Permission denied.")
		return
	}

	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
		return
	}

	s := season.Normalize(req.Season)
	if s == "" {
		s = season.ForDate(day)
	} else if !season.IsValid(s) {
		httperr.BadRequest(c, "invalid_season", "Season must be one of winter, spring, summer, autumn.")
		return
	}

	event := models.AgriculturalEvent{
		Name:        req.Name,
		Description: req.Description,
		Date:        day,
		Season:      s,
		Category:    req.Category,
		Tasks:       req.Tasks,
	}

	if err := h.db.WithContext(c.Request.Context()).Create(&event).Error; err != nil {
		httperr.Internal(c, "failed_to_create_event", "Internal error.")
		return
	}

	c.JSON(http.StatusCreated, event)
}
