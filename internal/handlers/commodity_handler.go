package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Malek-bh/agrical-api/internal/cache"
	"github.com/Malek-bh/agrical-api/internal/dto"
	"github.com/Malek-bh/agrical-api/internal/httperr"
)

type CommodityFetcher interface {
	Fetch(ctx context.Context, symbol, currency string) (*dto.CommodityPriceDTO, error)
}

type CommodityHandler struct {
	prices CommodityFetcher
	cache  *cache.Cache
}

func NewCommodityHandler(prices CommodityFetcher, responseCache *cache.Cache) *CommodityHandler {
	return &CommodityHandler{prices: prices, cache: responseCache}
}

// --------- Requests ---------

type CommodityRequest struct {
	Commodity string `json:"commodity" binding:"required"`
	Currency  string `json:"currency" binding:"required"`
}

// --------- Handlers ---------

func (h *CommodityHandler) Get(c *gin.Context) {
	var req CommodityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	symbol := strings.ToUpper(req.Commodity)
	currency := strings.ToUpper(req.Currency)

	key := fmt.Sprintf("commodity:%s:%s", symbol, currency)
	if cached, ok := h.cache.Get(c.Request.Context(), key); ok {
		c.Data(http.StatusOK, "application/json", cached)
		return
	}

	price, err := h.prices.Fetch(c.Request.Context(), symbol, currency)
	if err != nil {
		httperr.From(c, err)
		return
	}

	if payload, err := json.Marshal(price); err == nil {
		h.cache.Set(c.Request.Context(), key, payload)
	}

	c.JSON(http.StatusOK, price)
}
