// Package weather wraps the open-meteo forecast API with the hourly
// variables the agricultural dashboard needs.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Malek-bh/agrical-api/internal/dto"
)

const hourlyVariables = "temperature_2m,relative_humidity_2m,precipitation," +
	"weather_code,evapotranspiration,wind_speed_10m,wind_direction_10m," +
	"soil_temperature_6cm,soil_moisture_0_to_1cm"

type Client struct {
	baseURL string
	client  *http.Client
	log     *logrus.Logger
}

func NewClient(baseURL string, log *logrus.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

type forecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Hourly    struct {
		Time               []string  `json:"time"`
		Temperature2m      []float64 `json:"temperature_2m"`
		RelativeHumidity2m []float64 `json:"relative_humidity_2m"`
		Precipitation      []float64 `json:"precipitation"`
		WeatherCode        []int     `json:"weather_code"`
		Evapotranspiration []float64 `json:"evapotranspiration"`
		WindSpeed10m       []float64 `json:"wind_speed_10m"`
		WindDirection10m   []float64 `json:"wind_direction_10m"`
		SoilTemperature6cm []float64 `json:"soil_temperature_6cm"`
		SoilMoisture0To1cm []float64 `json:"soil_moisture_0_to_1cm"`
	} `json:"hourly"`
}

// Fetch retrieves the hourly forecast for a coordinate pair.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (*dto.WeatherDTO, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", lat))
	params.Set("longitude", fmt.Sprintf("%g", lon))
	params.Set("hourly", hourlyVariables)
	params.Set("timezone", "auto")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.WithField("status", resp.StatusCode).Warn("weather API error")
		return nil, fmt.Errorf("failed to retrieve weather data: %s", string(body))
	}

	var data forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	return &dto.WeatherDTO{
		Latitude:           data.Latitude,
		Longitude:          data.Longitude,
		Time:               data.Hourly.Time,
		Temperature2m:      data.Hourly.Temperature2m,
		RelativeHumidity2m: data.Hourly.RelativeHumidity2m,
		Precipitation:      data.Hourly.Precipitation,
		WeatherCode:        data.Hourly.WeatherCode,
		Evapotranspiration: data.Hourly.Evapotranspiration,
		WindSpeed10m:       data.Hourly.WindSpeed10m,
		WindDirection10m:   data.Hourly.WindDirection10m,
		SoilTemperature6cm: data.Hourly.SoilTemperature6cm,
		SoilMoisture0To1cm: data.Hourly.SoilMoisture0To1cm,
	}, nil
}
