package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/username/vacation-calendar/internal/holidays"
	"go.uber.org/zap"
)

const (
	// DefaultCalendarificURL is the public Calendarific endpoint
	DefaultCalendarificURL = "https://calendarific.com/api/v2/holidays"
	defaultHTTPTimeout     = 10 * time.Second
)

// CalendarificProvider implements Provider using the Calendarific API
type CalendarificProvider struct {
	apiURL     string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
}

// calendarificResponse keeps "response" raw: on errors Calendarific sends an empty array there
type calendarificResponse struct {
	Meta     map[string]interface{} `json:"meta"`
	Response json.RawMessage        `json:"response"`
}

// NewCalendarificProvider creates a new CalendarificProvider instance
func NewCalendarificProvider(apiURL, apiKey string, timeout time.Duration, logger *zap.Logger) *CalendarificProvider {
	if apiURL == "" {
		apiURL = DefaultCalendarificURL
	}
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	return &CalendarificProvider{
		apiURL: apiURL,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Holidays fetches a country's holidays for a year
func (p *CalendarificProvider) Holidays(ctx context.Context, country string, year int) (*holidays.Response, error) {
	if p.apiKey == "" {
		return nil, &Error{Status: http.StatusInternalServerError, Detail: "API key not configured"}
	}

	params := url.Values{}
	params.Set("api_key", p.apiKey)
	params.Set("country", country)
	params.Set("year", strconv.Itoa(year))

	p.logger.Debug("Fetching holidays from Calendarific",
		zap.String("url", p.apiURL),
		zap.String("country", country),
		zap.Int("year", year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.apiURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, externalError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, externalError(fmt.Errorf("%d %s for url: %s",
			resp.StatusCode, http.StatusText(resp.StatusCode), p.apiURL))
	}

	var raw calendarificResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, externalError(fmt.Errorf("failed to parse API response: %w", err))
	}

	var list holidays.HolidayList
	var probe struct {
		Holidays json.RawMessage `json:"holidays"`
	}
	if err := json.Unmarshal(raw.Response, &probe); err != nil || len(probe.Holidays) == 0 {
		return nil, invalidStructure(err)
	}
	if err := json.Unmarshal(raw.Response, &list); err != nil {
		return nil, invalidStructure(err)
	}
	if list.Holidays == nil {
		list.Holidays = []holidays.Record{}
	}

	p.logger.Info("Holidays fetched from Calendarific",
		zap.String("country", country),
		zap.Int("year", year),
		zap.Int("count", len(list.Holidays)))

	return &holidays.Response{Meta: raw.Meta, Response: &list}, nil
}

func externalError(err error) *Error {
	return &Error{
		Status: http.StatusServiceUnavailable,
		Detail: fmt.Sprintf("External API error: %v", err),
		Err:    err,
	}
}

func invalidStructure(err error) *Error {
	return &Error{
		Status: http.StatusInternalServerError,
		Detail: "Invalid data structure from external API",
		Err:    err,
	}
}
