package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// APISender posts messages to a SendGrid-style v3 mail endpoint with a bearer
// key.
type APISender struct {
	URL        string
	APIKey     string
	From       string
	HTTPClient *http.Client
}

func NewAPISender(url, apiKey, from string) *APISender {
	return &APISender{
		URL:    url,
		APIKey: apiKey,
		From:   from,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

type apiAddress struct {
	Email string `json:"email"`
}

type apiPersonalization struct {
	To []apiAddress `json:"to"`
}

type apiContent struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type apiPayload struct {
	Personalizations []apiPersonalization `json:"personalizations"`
	From             apiAddress           `json:"from"`
	Subject          string               `json:"subject"`
	Content          []apiContent         `json:"content"`
}

func (s *APISender) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(apiPayload{
		Personalizations: []apiPersonalization{{To: []apiAddress{{Email: msg.To}}}},
		From:             apiAddress{Email: s.From},
		Subject:          msg.Subject,
		Content:          []apiContent{{Type: "text/plain", Value: msg.Text}},
	})
	if err != nil {
		return fmt.Errorf("encode mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.URL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return &SendError{Reason: err.Error(), Retryable: true}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	reason := fmt.Sprintf("delivery service returned %d", resp.StatusCode)
	if detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512)); len(detail) > 0 {
		reason = fmt.Sprintf("%s: %s", reason, strings.TrimSpace(string(detail)))
	}

	return &SendError{
		Reason:    reason,
		Retryable: resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500,
	}
}
