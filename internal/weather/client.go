package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

type Current struct {
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Description string   `json:"description"`
	Code        int      `json:"code"`
}

// Tomorrow fields are nil when Open-Meteo returned fewer than two days.
type Tomorrow struct {
	TempMax             *float64 `json:"tempMax"`
	TempMin             *float64 `json:"tempMin"`
	PrecipitationChance *float64 `json:"precipitationChance"`
	Description         string   `json:"description"`
	Code                int      `json:"code"`
}

type Report struct {
	Current      Current  `json:"current"`
	Tomorrow     Tomorrow `json:"tomorrow"`
	DemandImpact Impact   `json:"demandImpact"`
}

type openMeteoResponse struct {
	Current struct {
		Temperature *float64 `json:"temperature_2m"`
		Humidity    *float64 `json:"relative_humidity_2m"`
		WeatherCode *int     `json:"weather_code"`
	} `json:"current"`
	Daily struct {
		TempMax       []*float64 `json:"temperature_2m_max"`
		TempMin       []*float64 `json:"temperature_2m_min"`
		WeatherCode   []*int     `json:"weather_code"`
		Precipitation []*float64 `json:"precipitation_probability_max"`
	} `json:"daily"`
}

// Client talks to the Open-Meteo forecast API; no key is required.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Fetch(ctx context.Context, lat, lon float64) (Report, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("current", "temperature_2m,weather_code,relative_humidity_2m")
	q.Set("daily", "temperature_2m_max,temperature_2m_min,weather_code,precipitation_probability_max")
	q.Set("timezone", "auto")
	q.Set("forecast_days", "2")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return Report{}, fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Report{}, fmt.Errorf("call weather api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Report{}, fmt.Errorf("weather api returned status %d", resp.StatusCode)
	}

	var raw openMeteoResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return Report{}, fmt.Errorf("decode weather response: %w", err)
	}
	return toReport(raw), nil
}

func toReport(raw openMeteoResponse) Report {
	var r Report

	r.Current.Temperature = raw.Current.Temperature
	r.Current.Humidity = raw.Current.Humidity
	if raw.Current.WeatherCode != nil {
		r.Current.Code = *raw.Current.WeatherCode
	}
	r.Current.Description = Describe(r.Current.Code)

	// index 0 is today
	r.Tomorrow.TempMax = second(raw.Daily.TempMax)
	r.Tomorrow.TempMin = second(raw.Daily.TempMin)
	r.Tomorrow.PrecipitationChance = second(raw.Daily.Precipitation)
	if code := second(raw.Daily.WeatherCode); code != nil {
		r.Tomorrow.Code = *code
	}
	r.Tomorrow.Description = Describe(r.Tomorrow.Code)

	r.DemandImpact = DemandImpact(r.Tomorrow)
	return r
}

func second[T any](vals []*T) *T {
	if len(vals) < 2 {
		return nil
	}
	return vals[1]
}
