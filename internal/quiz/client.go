package quiz

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// GenerateRequest is the body of POST /quiz/generate. A nil Topic is sent
// as null.
type GenerateRequest struct {
	Level string  `json:"level"`
	Topic *string `json:"topic"`
}

// GenerateResponse is the body of a successful POST /quiz/generate.
type GenerateResponse struct {
	Questions []Question `json:"questions"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Client requests a generated quiz.
type Client interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)
}

// ServerError is a non-2xx answer. Message may be empty.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("quiz server returned %d", e.Status)
	}
	return fmt.Sprintf("quiz server returned %d: %s", e.Status, e.Message)
}

// NetworkError wraps a transport failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "quiz request failed: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPClient talks to the quiz endpoint of a versely server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL. A nil hc uses
// http.DefaultClient.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Generate posts req to /quiz/generate.
func (c *HTTPClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode quiz request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/quiz/generate", bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		var e ErrorResponse
		_ = json.Unmarshal(data, &e)
		return nil, &ServerError{Status: res.StatusCode, Message: e.Error}
	}

	var out GenerateResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode quiz response: %w", err)
	}
	return &out, nil
}
