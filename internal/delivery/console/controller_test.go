package console

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/delivery/view"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
)

type fakeLookuper struct {
	record  domain.WeatherRecord
	err     error
	calls   int
	started chan struct{}
	release chan struct{}
}

func (f *fakeLookuper) Lookup(ctx context.Context, _ string) (domain.WeatherRecord, error) {
	f.calls++
	if f.started != nil {
		close(f.started)
		<-f.release
	}
	return f.record, f.err
}

var london = domain.WeatherRecord{
	CityName:           "London",
	TemperatureCelsius: 26.85,
	FeelsLikeCelsius:   25,
	HumidityPercent:    40,
	PressureHPa:        1012,
	PrimaryDescription: "clear sky",
	StatusCode:         200,
	IsValid:            true,
}

func TestController_StartsIdle(t *testing.T) {
	c := NewController(&fakeLookuper{}, nil)

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, view.PromptMessage, c.Status())
	assert.Empty(t, c.Display())
}

func TestController_SubmitSuccess(t *testing.T) {
	var out bytes.Buffer
	c := NewController(&fakeLookuper{record: london}, &out)

	require.NoError(t, c.Submit(context.Background(), "  London "))

	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, view.SuccessMessage, c.Status())
	assert.Equal(t, view.FormatRecord(london), c.Display())
	assert.Contains(t, out.String(), view.LoadingMessage)
	assert.Contains(t, out.String(), "Temperature: 26.9°C (Feels like: 25.0°C)")
}

func TestController_SubmitEmptyCity(t *testing.T) {
	lookuper := &fakeLookuper{record: london}
	c := NewController(lookuper, nil)

	err := c.Submit(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, view.EmptyCityMsg, c.Status())
	assert.Zero(t, lookuper.calls)
}

func TestController_SubmitFailureKeepsDisplayEmpty(t *testing.T) {
	c := NewController(&fakeLookuper{record: london}, nil)
	require.NoError(t, c.Submit(context.Background(), "London"))

	c.lookuper = &fakeLookuper{err: domain.ProtocolError(404, "city not found")}
	err := c.Submit(context.Background(), "Atlantis")

	assert.ErrorIs(t, err, domain.ErrProtocol)
	assert.Equal(t, StateIdle, c.State())
	assert.Equal(t, "City not found. Check the spelling and try again.", c.Status())
	assert.Empty(t, c.Display())
}

func TestController_RejectsConcurrentSubmit(t *testing.T) {
	lookuper := &fakeLookuper{
		record:  london,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	c := NewController(lookuper, nil)

	done := make(chan error, 1)
	go func() { done <- c.Submit(context.Background(), "London") }()
	<-lookuper.started

	assert.Equal(t, StateLoading, c.State())
	assert.Equal(t, view.LoadingMessage, c.Status())
	assert.True(t, errors.Is(c.Submit(context.Background(), "Paris"), ErrBusy))

	close(lookuper.release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, lookuper.calls)
}

func TestController_Clear(t *testing.T) {
	c := NewController(&fakeLookuper{record: london}, nil)
	require.NoError(t, c.Submit(context.Background(), "London"))

	c.Clear()

	assert.Equal(t, view.PromptMessage, c.Status())
	assert.Empty(t, c.Display())
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "idle", StateIdle.String())
	assert.Equal(t, "loading", StateLoading.String())
}
