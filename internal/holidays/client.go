// Package holidays fetches public holidays from the holiday service and
// folds them into date-keyed maps for the calendar grid.
package holidays

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 4 << 20
)

// Response is the holiday service payload
type Response struct {
	Meta     map[string]interface{} `json:"meta,omitempty"`
	Response *HolidayList           `json:"response"`
}

// HolidayList is the nested "response" object
type HolidayList struct {
	Holidays []Record `json:"holidays"`
}

// ErrorBody is the payload of a non-success response
type ErrorBody struct {
	Detail string `json:"detail"`
}

// Fetcher loads the holidays of one country and year
type Fetcher interface {
	Fetch(ctx context.Context, countryCode string, year int) (HolidayMap, error)
}

// Client fetches holidays from {baseURL}/holidays/{country}/{year}.
// One attempt per call; no retries and no caching.
type Client struct {
	baseURL    string
	httpClient *http.Client
	folder     Folder
	logger     *zap.Logger
}

// NewClient creates a new holiday service client
func NewClient(baseURL string, timeout time.Duration, folder Folder, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		folder: folder,
		logger: logger,
	}
}

// Fetch retrieves the holidays of countryCode in year.
// Every failure is returned as *RemoteFetchError.
func (c *Client) Fetch(ctx context.Context, countryCode string, year int) (HolidayMap, error) {
	endpoint := fmt.Sprintf("%s/holidays/%s/%d", c.baseURL, url.PathEscape(countryCode), year)

	c.logger.Debug("Fetching holidays",
		zap.String("url", endpoint),
		zap.String("country", countryCode),
		zap.Int("year", year))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, newRemoteFetchError(0, err, "failed to create request: %v", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, newRemoteFetchError(0, err, "%s: %v", GenericFetchMessage, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, newRemoteFetchError(resp.StatusCode, err, "%s: %v", GenericFetchMessage, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, c.statusError(resp.StatusCode, body)
	}

	var payload Response
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, newRemoteFetchError(resp.StatusCode, err, "invalid holiday response: %v", err)
	}
	if payload.Response == nil || payload.Response.Holidays == nil {
		return nil, newRemoteFetchError(resp.StatusCode, nil, "invalid holiday response: missing response.holidays")
	}

	holidays := c.folder.Fold(payload.Response.Holidays)

	c.logger.Info("Holidays fetched",
		zap.String("country", countryCode),
		zap.Int("year", year),
		zap.Int("records", len(payload.Response.Holidays)),
		zap.Int("dates", len(holidays)))

	return holidays, nil
}

// statusError builds the error of a non-success response from its detail payload
func (c *Client) statusError(status int, body []byte) *RemoteFetchError {
	var errBody ErrorBody
	if err := json.Unmarshal(body, &errBody); err != nil || errBody.Detail == "" {
		c.logger.Warn("Holiday service returned error without detail",
			zap.Int("status", status),
			zap.Int("body_length", len(body)))
		return &RemoteFetchError{
			Message:    GenericFetchMessage,
			StatusCode: status,
			Err:        fmt.Errorf("holiday service returned status %d", status),
		}
	}

	c.logger.Warn("Holiday service returned error",
		zap.Int("status", status),
		zap.String("detail", errBody.Detail))

	return &RemoteFetchError{
		Message:    errBody.Detail,
		StatusCode: status,
		Err:        fmt.Errorf("holiday service returned status %d", status),
	}
}
