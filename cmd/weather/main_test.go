package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/delivery/console"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/observability"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/repository/postgres"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/service"
)

type cityFetcher map[string]domain.WeatherRecord

func (f cityFetcher) Fetch(_ context.Context, city string) (domain.WeatherRecord, error) {
	if strings.TrimSpace(city) == "" {
		return domain.WeatherRecord{}, domain.InvalidInput("city name is empty")
	}
	r, ok := f[city]
	if !ok {
		return domain.WeatherRecord{}, domain.ProtocolError(404, "city not found")
	}
	return r, nil
}

func newCLI(out io.Writer) (*console.Controller, *service.WeatherService) {
	fetcher := cityFetcher{
		"London": {CityName: "London", TemperatureCelsius: 26.85, FeelsLikeCelsius: 25, HumidityPercent: 40, PressureHPa: 1012, PrimaryDescription: "clear sky", StatusCode: 200, IsValid: true},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := service.NewWeatherService(fetcher, postgres.NewMemoryRepository(), observability.NewMetricsForTesting(), logger)
	return console.NewController(svc, out), svc
}

func TestRunBatch(t *testing.T) {
	var out bytes.Buffer
	ctrl, svc := newCLI(&out)

	failed := runBatch(context.Background(), ctrl, []string{"London", "Atlantis"})
	svc.WaitBackground()

	assert.Equal(t, 1, failed)
	assert.Contains(t, out.String(), "City: London")
	assert.Contains(t, out.String(), "City not found. Check the spelling and try again.")
}

func TestRunInteractive(t *testing.T) {
	var out bytes.Buffer
	ctrl, svc := newCLI(&out)
	in := strings.NewReader("\nLondon\nhistory\nclear\nquit\nParis\n")

	runInteractive(context.Background(), ctrl, svc, in, &out, 10)

	got := out.String()
	assert.Contains(t, got, "Please enter a city name")
	assert.Contains(t, got, "Weather data loaded successfully")
	assert.Contains(t, got, "London")
	assert.Contains(t, got, "26.9°C")
	assert.Contains(t, got, "Enter a city name to get the weather")
	assert.NotContains(t, got, "City not found", "input after quit must be ignored")
}

func TestPrintHistory_Empty(t *testing.T) {
	var out bytes.Buffer
	_, svc := newCLI(&out)

	printHistory(context.Background(), svc, &out, 5)

	assert.Equal(t, "no lookups yet\n", out.String())
}
