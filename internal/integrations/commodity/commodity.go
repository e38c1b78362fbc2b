// Package commodity wraps the APIsed commodities price endpoint.
package commodity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Malek-bh/agrical-api/internal/dto"
	"github.com/Malek-bh/agrical-api/internal/httperr"
)

const source = "APIsed Commodities API"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL, apiKey string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type latestResponse struct {
	Data struct {
		Rates map[string]float64 `json:"rates"`
		Unit  string             `json:"unit"`
	} `json:"data"`
}

// Fetch returns the latest price for a commodity symbol in the given
// base currency. An unknown symbol maps to a not-found kind.
func (c *Client) Fetch(ctx context.Context, symbol, currency string) (*dto.CommodityPriceDTO, error) {
	symbol = strings.ToUpper(symbol)
	currency = strings.ToUpper(currency)

	url := fmt.Sprintf("%s/v1/latest?symbols=%s&base_currency=%s", c.baseURL, symbol, currency)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("commodity request failed: %w", err)
	}
	defer resp.Body.Close()

	var data latestResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("invalid response from commodity API: %w", err)
	}

	price, ok := data.Data.Rates[symbol]
	if !ok {
		c.log.WithField("symbol", symbol).Info("commodity not present in API response")
		return nil, httperr.NewNotFound("commodity_not_found")
	}

	unit := data.Data.Unit
	if unit == "" {
		unit = "Unknown"
	}

	return &dto.CommodityPriceDTO{
		Commodity: symbol,
		Currency:  currency,
		Price:     price,
		Unit:      unit,
		Source:    source,
	}, nil
}
