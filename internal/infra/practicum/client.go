// internal/infra/practicum/client.go
package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework_status_bot/internal/domain/homework"
)

// DefaultEndpoint is the Yandex Practicum homework status API.
const DefaultEndpoint = "https://practicum.yandex.ru/api/user_api/homework_statuses/"

// RequestError reports a failed HTTP exchange with the API: a transport
// error or a non-200 response.
type RequestError struct {
	StatusCode int   // 0 when the request never completed
	Err        error // underlying transport error, if any
}

func (e *RequestError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("practicum API request failed: %v", e.Err)
	}
	return fmt.Sprintf("practicum API returned HTTP %d", e.StatusCode)
}

func (e *RequestError) Unwrap() error { return e.Err }

// ResponseFormatError reports a response body that does not match the
// documented shape.
type ResponseFormatError struct {
	Reason string
}

func (e *ResponseFormatError) Error() string {
	return "unexpected practicum API response: " + e.Reason
}

// PollResponse is one batch of homework updates plus the cursor to use as
// from_date on the next poll.
type PollResponse struct {
	Homeworks   []homework.Homework
	CurrentDate int64
}

// Client issues authenticated requests to the homework status API.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
}

// NewClient builds a Client. An empty endpoint selects DefaultEndpoint.
func NewClient(token, endpoint string, timeout time.Duration) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		endpoint:   endpoint,
		token:      token,
	}
}

// FetchUpdates requests every homework update since fromDate (Unix seconds).
func (c *Client) FetchUpdates(ctx context.Context, fromDate int64) (*PollResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	query := url.Values{}
	query.Set("from_date", strconv.FormatInt(fromDate, 10))
	req.URL.RawQuery = query.Encode()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &RequestError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &RequestError{StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &RequestError{Err: err}
	}

	// Pointer fields distinguish an absent key from a legitimate zero value.
	var raw struct {
		Homeworks   *[]homework.Homework `json:"homeworks"`
		CurrentDate *int64               `json:"current_date"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, &ResponseFormatError{Reason: fmt.Sprintf("cannot decode body: %v", err)}
	}
	if raw.Homeworks == nil {
		return nil, &ResponseFormatError{Reason: `missing "homeworks" key`}
	}
	if raw.CurrentDate == nil {
		return nil, &ResponseFormatError{Reason: `missing "current_date" key`}
	}

	return &PollResponse{Homeworks: *raw.Homeworks, CurrentDate: *raw.CurrentDate}, nil
}
