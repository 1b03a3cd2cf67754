package contactclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// NetworkError means the request never produced a usable response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "contact request failed: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ResponseError is a non-2xx answer from the API. Message is the body's
// "error" field when there is one.
type ResponseError struct {
	StatusCode int
	Message    string
}

func (e *ResponseError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("contact request rejected with status %d", e.StatusCode)
	}
	return fmt.Sprintf("contact request rejected with status %d: %s", e.StatusCode, e.Message)
}

// Client posts contact forms to the API.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient targets endpoint, the full URL of POST /api/contact. A nil
// httpClient means http.DefaultClient.
func NewClient(endpoint string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{endpoint: endpoint, httpClient: httpClient}
}

// Submit sends one form and returns the API's confirmation message.
func (c *Client) Submit(ctx context.Context, f Fields) (string, error) {
	payload, err := json.Marshal(f)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", &NetworkError{Err: err}
	}

	var decoded struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &ResponseError{StatusCode: resp.StatusCode, Message: decoded.Error}
	}
	if decodeErr != nil {
		return "", &NetworkError{Err: fmt.Errorf("malformed response: %w", decodeErr)}
	}
	return decoded.Message, nil
}

// IsNetworkError reports whether err came from the transport rather than
// the API.
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}
