package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/deepa-mylavarapu/XR26-APIs-Databases/internal/domain"
)

// maxBodyBytes caps how much of an upstream response is read.
const maxBodyBytes = 1 << 20

// HTTPDoer is the transport used for the upstream call. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// CredentialSource supplies the OpenWeatherMap API key.
type CredentialSource interface {
	Configured() bool
	APIKey() string
}

// WeatherFetcher performs single current-weather lookups by city name
type WeatherFetcher struct {
	baseURL    string
	creds      CredentialSource
	httpClient HTTPDoer
}

// NewWeatherFetcher creates a fetcher for the given endpoint. A nil client
// falls back to http.DefaultClient.
func NewWeatherFetcher(baseURL string, creds CredentialSource, httpClient HTTPDoer) *WeatherFetcher {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &WeatherFetcher{
		baseURL:    baseURL,
		creds:      creds,
		httpClient: httpClient,
	}
}

// Fetch looks up the current weather for city. It makes at most one request
// and returns either a valid record or a *domain.FetchError. Cancelling ctx
// aborts the request and skips mapping.
func (f *WeatherFetcher) Fetch(ctx context.Context, city string) (domain.WeatherRecord, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return domain.WeatherRecord{}, domain.InvalidInput("city name cannot be empty")
	}
	if f.creds == nil || !f.creds.Configured() {
		return domain.WeatherRecord{}, domain.MissingCredential("OpenWeatherMap API key is not configured")
	}

	reqURL, err := f.requestURL(city)
	if err != nil {
		return domain.WeatherRecord{}, domain.NetworkError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.WeatherRecord{}, domain.NetworkError(fmt.Errorf("weather: failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return domain.WeatherRecord{}, domain.NetworkError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return domain.WeatherRecord{}, domain.NetworkError(fmt.Errorf("weather: failed to read response: %w", err))
	}
	if err := ctx.Err(); err != nil {
		return domain.WeatherRecord{}, domain.NetworkError(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return domain.WeatherRecord{}, domain.ProtocolError(resp.StatusCode, errorDetail(resp.StatusCode, body))
	}

	payload, err := domain.DecodePayload(body)
	if err != nil {
		return domain.WeatherRecord{}, domain.DecodeError(err)
	}
	if payload.Cod != 200 {
		detail := payload.Message
		if detail == "" {
			detail = "upstream reported a failure status"
		}
		return domain.WeatherRecord{}, domain.ProtocolError(int(payload.Cod), detail)
	}

	record := domain.ToRecord(payload)
	if !record.IsValid {
		return domain.WeatherRecord{}, domain.ProtocolError(record.StatusCode, "incomplete weather payload")
	}
	return record, nil
}

func (f *WeatherFetcher) requestURL(city string) (string, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return "", fmt.Errorf("weather: invalid base URL: %w", err)
	}
	q := u.Query()
	q.Set("q", city)
	q.Set("appid", f.creds.APIKey())
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// errorDetail prefers the upstream "message" field, then a short body excerpt.
func errorDetail(status int, body []byte) string {
	var upstream struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &upstream); err == nil && upstream.Message != "" {
		return upstream.Message
	}

	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	if text == "" {
		return http.StatusText(status)
	}
	return text
}
