package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAPISender_Send(t *testing.T) {
	var got apiPayload
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	}))
	t.Cleanup(srv.Close)

	s := NewAPISender(srv.URL, "test-key", "no-reply@skylight.example")
	err := s.Send(context.Background(), OTPMessage("alice@example.com", "123456"))
	require.NoError(t, err)

	require.Len(t, got.Personalizations, 1)
	require.Equal(t, "alice@example.com", got.Personalizations[0].To[0].Email)
	require.Equal(t, "no-reply@skylight.example", got.From.Email)
	require.Equal(t, "Your OTP Code", got.Subject)
	require.Equal(t, "Your OTP code is: 123456", got.Content[0].Value)
}

func TestAPISender_Retryable(t *testing.T) {
	tests := []struct {
		status    int
		retryable bool
	}{
		{http.StatusTooManyRequests, true},
		{http.StatusInternalServerError, true},
		{http.StatusBadGateway, true},
		{http.StatusBadRequest, false},
		{http.StatusUnauthorized, false},
	}
	for _, tc := range tests {
		t.Run(http.StatusText(tc.status), func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
			}))
			t.Cleanup(srv.Close)

			s := NewAPISender(srv.URL, "test-key", "no-reply@skylight.example")
			err := s.Send(context.Background(), OTPMessage("alice@example.com", "123456"))
			require.Error(t, err)
			require.Equal(t, tc.retryable, IsRetryable(err))

			var serr *SendError
			require.ErrorAs(t, err, &serr)
			require.NotEmpty(t, serr.Reason)
		})
	}
}

func TestAPISender_NetworkFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewAPISender(url, "test-key", "no-reply@skylight.example")
	err := s.Send(context.Background(), OTPMessage("alice@example.com", "123456"))
	require.Error(t, err)
	require.True(t, IsRetryable(err))
}

func TestIsRetryable_OtherErrors(t *testing.T) {
	require.False(t, IsRetryable(errors.New("boom")))
	require.False(t, IsRetryable(nil))
}
