// Package client is a Go consumer of the BookCritic REST API. It injects
// the bearer token of the active session, normalizes failures into APIError
// and keeps a small stale-while-revalidate cache of book details.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

const (
	defaultBaseURL = "http://localhost:8080"

	// BaseURLEnv overrides the API base URL.
	BaseURLEnv = "BOOKCRITIC_API_URL"

	apiBasePath = "/api/v1"
)

const (
	invalidCredentialsMessage = "Invalid email or password. Please try again."
	transportErrorMessage     = "Unable to reach the server. Please try again."
	genericErrorMessage       = "Something went wrong. Please try again."
)

// APIError is the normalized failure shape of every client call.
// A transport failure carries StatusCode 0. SessionExpired marks a 401
// on a non-auth endpoint, after the persisted session was cleared.
type APIError struct {
	Message        string `json:"message"`
	StatusCode     int    `json:"status_code"`
	SessionExpired bool   `json:"session_expired,omitempty"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

type Client struct {
	baseURL string
	http    *http.Client
	session *Session
	books   *bookCache
}

func New(session *Session) *Client {
	baseURL := defaultBaseURL
	if v := os.Getenv(BaseURLEnv); v != "" {
		baseURL = v
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
		session: session,
		books:   newBookCache(),
	}
}

// NewWithBaseURL is used by tests pointing the client at a local server.
func NewWithBaseURL(baseURL string, session *Session) *Client {
	c := New(session)
	c.baseURL = baseURL
	return c
}

func (c *Client) Session() *Session {
	return c.session
}

// authPaths are exempt from session clearing on 401: a failed signin
// means bad credentials, not an expired session.
var authPaths = map[string]bool{
	"/signin": true,
	"/signup": true,
}

func (c *Client) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &APIError{Message: err.Error(), StatusCode: 0}
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequest(method, c.baseURL+apiBasePath+path, reader)
	if err != nil {
		return &APIError{Message: err.Error(), StatusCode: 0}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.GetToken(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &APIError{Message: transportErrorMessage, StatusCode: 0}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &APIError{Message: genericErrorMessage, StatusCode: resp.StatusCode}
		}
		return nil
	}

	return c.normalizeError(resp, path)
}

func (c *Client) normalizeError(resp *http.Response, path string) *APIError {
	message := genericErrorMessage
	var parsed struct {
		ErrorMessage string `json:"error_message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err == nil && parsed.ErrorMessage != "" {
		message = parsed.ErrorMessage
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if authPaths[path] {
			return &APIError{Message: invalidCredentialsMessage, StatusCode: resp.StatusCode}
		}
		// The session is no longer valid, drop it.
		c.session.Clear()
		return &APIError{Message: message, StatusCode: resp.StatusCode, SessionExpired: true}
	}

	return &APIError{Message: message, StatusCode: resp.StatusCode}
}
