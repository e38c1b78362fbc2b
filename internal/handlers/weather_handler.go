package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Malek-bh/agrical-api/internal/cache"
	"github.com/Malek-bh/agrical-api/internal/dto"
	"github.com/Malek-bh/agrical-api/internal/httperr"
)

type WeatherFetcher interface {
	Fetch(ctx context.Context, lat, lon float64) (*dto.WeatherDTO, error)
}

type WeatherHandler struct {
	weather WeatherFetcher
	cache   *cache.Cache
}

func NewWeatherHandler(weather WeatherFetcher, responseCache *cache.Cache) *WeatherHandler {
	return &WeatherHandler{weather: weather, cache: responseCache}
}

// --------- Requests ---------

type CoordinatesRequest struct {
	Lat *float64 `json:"lat" binding:"required"`
	Lon *float64 `json:"lon" binding:"required"`
}

// --------- Handlers ---------

func (h *WeatherHandler) Get(c *gin.Context) {
	var req CoordinatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	key := fmt.Sprintf("weather:%g:%g", *req.Lat, *req.Lon)
	if cached, ok := h.cache.Get(c.Request.Context(), key); ok {
		c.Data(http.StatusOK, "application/json", cached)
		return
	}

	forecast, err := h.weather.Fetch(c.Request.Context(), *req.Lat, *req.Lon)
	if err != nil {
		httperr.Internal(c, "weather_fetch_failed", "Failed to retrieve weather data.")
		return
	}

	if payload, err := json.Marshal(forecast); err == nil {
		h.cache.Set(c.Request.Context(), key, payload)
	}

	c.JSON(http.StatusOK, forecast)
}
