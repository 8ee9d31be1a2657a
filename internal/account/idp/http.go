package idp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPProvider talks to an identitytoolkit-style REST provider: a pair of
// JSON POST endpoints keyed by API key in the query string.
type HTTPProvider struct {
	BaseURL    string
	APIKey     string
	HTTPClient *http.Client
}

func NewHTTPProvider(baseURL, apiKey string) *HTTPProvider {
	return &HTTPProvider{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type authRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type authResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	IDToken string `json:"idToken"`
}

type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *HTTPProvider) SignUp(ctx context.Context, email, password string) (Identity, error) {
	return p.call(ctx, "/v1/accounts:signUp", email, password)
}

func (p *HTTPProvider) SignIn(ctx context.Context, email, password string) (Identity, error) {
	return p.call(ctx, "/v1/accounts:signInWithPassword", email, password)
}

func (p *HTTPProvider) call(ctx context.Context, path, email, password string) (Identity, error) {
	body, err := json.Marshal(authRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	})
	if err != nil {
		return Identity{}, fmt.Errorf("encode request: %w", err)
	}

	url := p.BaseURL + path + "?key=" + p.APIKey
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Identity{}, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return Identity{}, &ProviderError{Code: "NETWORK", wrapped: ErrUnavailable}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Identity{}, p.mapError(resp)
	}

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Identity{}, fmt.Errorf("decode response: %w", err)
	}
	return Identity{
		UserID:  out.LocalID,
		Email:   out.Email,
		IDToken: out.IDToken,
	}, nil
}

func (p *HTTPProvider) mapError(resp *http.Response) error {
	var body errorResponse
	_ = json.NewDecoder(resp.Body).Decode(&body)

	code := body.Error.Message
	if code == "" {
		code = http.StatusText(resp.StatusCode)
	}

	perr := &ProviderError{Code: code, Status: resp.StatusCode}
	switch {
	case code == "EMAIL_EXISTS":
		perr.wrapped = ErrEmailInUse
	case code == "EMAIL_NOT_FOUND",
		code == "INVALID_PASSWORD",
		code == "INVALID_LOGIN_CREDENTIALS",
		code == "USER_DISABLED":
		perr.wrapped = ErrInvalidCredentials
	case resp.StatusCode >= 500:
		perr.wrapped = ErrUnavailable
	default:
		perr.wrapped = ErrInvalidCredentials
	}
	return perr
}
