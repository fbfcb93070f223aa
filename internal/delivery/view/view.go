// Package view turns weather records and lookup failures into user-facing text.
package view

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/pkg/utils"
)

// Status messages shown by interactive callers.
const (
	PromptMessage  = "Enter a city name to get the weather"
	EmptyCityMsg   = "Please enter a city name"
	LoadingMessage = "Loading weather data..."
	SuccessMessage = "Weather data loaded successfully"
	GenericFailure = "Failed to get weather data. Please try again."
)

// FormatRecord renders the display block for a valid record.
func FormatRecord(r domain.WeatherRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "City: %s\n", r.CityName)
	fmt.Fprintf(&b, "Temperature: %.1f°C (Feels like: %.1f°C)\n", r.TemperatureCelsius, r.FeelsLikeCelsius)
	fmt.Fprintf(&b, "Humidity: %d%%\n", r.HumidityPercent)
	fmt.Fprintf(&b, "Pressure: %d hPa\n", r.PressureHPa)
	if r.PrimaryDescription != domain.UnknownDescription {
		fmt.Fprintf(&b, "Description: %s", r.PrimaryDescription)
	}
	return strings.TrimRight(b.String(), "\n")
}

// FailureMessage maps a lookup error to the message shown to the user.
func FailureMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInvalidInput):
		return EmptyCityMsg
	case errors.Is(err, domain.ErrMissingCredential):
		return "Weather service is not configured. Set OPENWEATHER_API_KEY."
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "The weather request was cancelled or timed out. Please try again."
	case errors.Is(err, domain.ErrNetwork):
		return "Could not reach the weather service. Check your connection and try again."
	case errors.Is(err, domain.ErrProtocol):
		switch domain.StatusCodeOf(err) {
		case http.StatusNotFound:
			return "City not found. Check the spelling and try again."
		case http.StatusUnauthorized:
			return "The weather service rejected the API key."
		case http.StatusTooManyRequests:
			return "Too many requests to the weather service. Please wait and try again."
		}
		return GenericFailure
	case errors.Is(err, domain.ErrDecode):
		return "Received an unreadable response from the weather service."
	default:
		return "An error occurred. Please try again."
	}
}

// Rounded returns r with temperatures rounded to two decimals for API output.
func Rounded(r domain.WeatherRecord) domain.WeatherRecord {
	r.TemperatureCelsius = utils.RoundTo(r.TemperatureCelsius, 2)
	r.FeelsLikeCelsius = utils.RoundTo(r.FeelsLikeCelsius, 2)
	return r
}
