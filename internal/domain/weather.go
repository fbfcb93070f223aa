package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// KelvinOffset converts upstream Kelvin readings to Celsius
const KelvinOffset = 273.15

// UnknownDescription is used when the payload carries no weather conditions
const UnknownDescription = "Unknown"

// RawWeatherPayload mirrors the OpenWeatherMap "current weather" response
type RawWeatherPayload struct {
	Main       *MainInfo   `json:"main"`
	Conditions []Condition `json:"weather"`
	Name       string      `json:"name"`
	Cod        StatusCode  `json:"cod"`
	Message    string      `json:"message,omitempty"`
}

// MainInfo holds the numeric readings; every field may be absent
type MainInfo struct {
	Temp      *float64 `json:"temp"`
	FeelsLike *float64 `json:"feels_like"`
	Humidity  *int     `json:"humidity"`
	Pressure  *int     `json:"pressure"`
}

// Condition is a single entry of the "weather" list
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// StatusCode is the "cod" field. The upstream sends it as a number on success
// and as a quoted string on error bodies, so both are accepted.
type StatusCode int

func (c *StatusCode) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*c = 0
			return nil
		}
		raw = s
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("cod: %q is not a status code", raw)
	}
	*c = StatusCode(n)
	return nil
}

// WeatherRecord is the validated, display-ready result handed to callers
type WeatherRecord struct {
	CityName           string  `json:"city"`
	TemperatureCelsius float64 `json:"temperature_celsius"`
	FeelsLikeCelsius   float64 `json:"feels_like_celsius"`
	HumidityPercent    int     `json:"humidity_percent"`
	PressureHPa        int     `json:"pressure_hpa"`
	PrimaryDescription string  `json:"description"`
	StatusCode         int     `json:"status_code"`
	IsValid            bool    `json:"is_valid"`
}

// DecodePayload parses an upstream response body
func DecodePayload(body []byte) (RawWeatherPayload, error) {
	var payload RawWeatherPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return RawWeatherPayload{}, fmt.Errorf("decode weather payload: %w", err)
	}
	return payload, nil
}

// ToRecord maps a payload into a WeatherRecord. It never fails: absent
// readings become zero and an empty condition list becomes UnknownDescription.
func ToRecord(payload RawWeatherPayload) WeatherRecord {
	record := WeatherRecord{
		CityName:           payload.Name,
		PrimaryDescription: UnknownDescription,
		StatusCode:         int(payload.Cod),
	}

	if m := payload.Main; m != nil {
		if m.Temp != nil {
			record.TemperatureCelsius = *m.Temp - KelvinOffset
		}
		if m.FeelsLike != nil {
			record.FeelsLikeCelsius = *m.FeelsLike - KelvinOffset
		}
		if m.Humidity != nil {
			record.HumidityPercent = *m.Humidity
		}
		if m.Pressure != nil {
			record.PressureHPa = *m.Pressure
		}
	}

	if len(payload.Conditions) > 0 {
		record.PrimaryDescription = payload.Conditions[0].Description
	}

	record.IsValid = record.StatusCode == 200 && payload.Main != nil && record.CityName != ""
	return record
}
