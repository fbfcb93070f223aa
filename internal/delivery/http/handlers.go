package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/delivery/view"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/service"
)

// Handler contains all HTTP handlers
type Handler struct {
	weatherSvc   *service.WeatherService
	historyLimit int
}

// NewHandler creates a new handler. historyLimit caps the number of lookups
// returned by the history endpoint and is also its default page size.
func NewHandler(weatherSvc *service.WeatherService, historyLimit int) *Handler {
	if historyLimit < 1 {
		historyLimit = 20
	}
	return &Handler{
		weatherSvc:   weatherSvc,
		historyLimit: historyLimit,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	storage := "ok"
	if err := h.weatherSvc.Health(c.UserContext()); err != nil {
		storage = "unavailable"
	}

	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "weather",
		"storage": storage,
	})
}

// GetWeather returns current weather for the city query parameter
func (h *Handler) GetWeather(c *fiber.Ctx) error {
	record, err := h.weatherSvc.Lookup(c.UserContext(), c.Query("city"))
	if err != nil {
		return fiber.NewError(statusFor(err), view.FailureMessage(err))
	}

	rounded := view.Rounded(record)
	return c.JSON(domain.WeatherResponse{
		Data:    &rounded,
		Success: true,
		Message: view.SuccessMessage,
	})
}

// GetHistory returns recent successful lookups, newest first
func (h *Handler) GetHistory(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", h.historyLimit)
	if limit < 1 || limit > h.historyLimit {
		limit = h.historyLimit
	}

	city := strings.TrimSpace(c.Query("city"))
	data, err := h.weatherSvc.History(c.UserContext(), city, limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch lookup history")
	}
	if data == nil {
		data = []domain.Lookup{}
	}

	return c.JSON(domain.HistoryResponse{
		Data:    data,
		Count:   len(data),
		Success: true,
	})
}

// statusFor maps a lookup failure to the status returned to API clients.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrMissingCredential):
		return fiber.StatusServiceUnavailable
	case errors.Is(err, domain.ErrProtocol):
		if domain.StatusCodeOf(err) == fiber.StatusNotFound {
			return fiber.StatusNotFound
		}
		return fiber.StatusBadGateway
	case errors.Is(err, domain.ErrNetwork), errors.Is(err, domain.ErrDecode):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

// ErrorHandler renders every error as a JSON body
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}
