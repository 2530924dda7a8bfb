package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Request is the body of POST /api/chat.
type Request struct {
	Message   string `json:"message"`
	MessageID string `json:"message_id"`
}

// Response is the body of a successful POST /api/chat. Only Reply is
// required; HTML and FollowUps are a server-side rendering for browsers.
type Response struct {
	Reply     string   `json:"reply"`
	MessageID string   `json:"message_id,omitempty"`
	HTML      string   `json:"html,omitempty"`
	FollowUps []string `json:"follow_ups,omitempty"`
}

// ErrorResponse is the body of a failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Client sends one chat message and waits for the reply.
type Client interface {
	Send(ctx context.Context, req Request) (*Response, error)
}

// ServerError is a non-2xx answer. Message is the server-supplied error
// text and may be empty.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("chat server returned %d", e.Status)
	}
	return fmt.Sprintf("chat server returned %d: %s", e.Status, e.Message)
}

// NetworkError wraps a transport failure.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string { return "chat request failed: " + e.Err.Error() }

func (e *NetworkError) Unwrap() error { return e.Err }

// HTTPClient talks to the chat endpoint of a versely server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

// NewHTTPClient returns a client for the server at baseURL. A nil hc uses
// a client without a timeout; chat replies can take a while.
func NewHTTPClient(baseURL string, hc *http.Client) *HTTPClient {
	if hc == nil {
		hc = &http.Client{}
	}
	return &HTTPClient{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

// Send posts req to /api/chat.
func (c *HTTPClient) Send(ctx context.Context, req Request) (*Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
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

	// An unreadable success body is treated as an empty reply.
	var out Response
	_ = json.Unmarshal(data, &out)
	return &out, nil
}
