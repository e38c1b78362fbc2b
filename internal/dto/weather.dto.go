package dto

// WeatherDTO is the hourly forecast series the API returns, one slice
// entry per hour, all slices aligned with Time.
type WeatherDTO struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`

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
}
