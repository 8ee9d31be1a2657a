// Package accountsdk is a small client for the account service, used by the
// AR client's login and sign-up windows and by integration tests.
package accountsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to one account service instance.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Register starts a registration flow for the given form fields.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (RegistrationResponse, error) {
	var out RegistrationResponse
	err := c.post(ctx, "/v1/register", req, &out)
	return out, err
}

// VerifyOTP submits the emailed passcode.
func (c *Client) VerifyOTP(ctx context.Context, req VerifyRequest) (RegistrationResponse, error) {
	var out RegistrationResponse
	err := c.post(ctx, "/v1/register/verify", req, &out)
	return out, err
}

// ResendOTP asks for a fresh passcode on a pending flow.
func (c *Client) ResendOTP(ctx context.Context, req ResendRequest) (RegistrationResponse, error) {
	var out RegistrationResponse
	err := c.post(ctx, "/v1/register/resend", req, &out)
	return out, err
}

// Login attempts a sign-in.
func (c *Client) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var out LoginResponse
	err := c.post(ctx, "/v1/login", req, &out)
	return out, err
}

// Livez probes service liveness.
func (c *Client) Livez(ctx context.Context) (HealthResponse, error) {
	return c.health(ctx, "/livez")
}

// Readyz probes service readiness including its dependencies.
func (c *Client) Readyz(ctx context.Context) (HealthResponse, error) {
	return c.health(ctx, "/readyz")
}

// post sends a JSON body and decodes the JSON answer. Flow outcomes are
// carried in the response body at several status codes, so anything with a
// JSON content type decodes; only non-JSON answers become errors.
func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		return fmt.Errorf("unexpected response %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func (c *Client) health(ctx context.Context, path string) (HealthResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, nil)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return HealthResponse{}, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	var out HealthResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return HealthResponse{}, fmt.Errorf("failed to decode response: %w", err)
	}
	return out, nil
}
