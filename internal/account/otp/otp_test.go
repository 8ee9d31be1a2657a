package otp

import (
	"context"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skylight-ar/account-service/internal/account/domain"
	"github.com/skylight-ar/account-service/internal/account/store"
)

// memCodes is an in-memory OTPCodes used to exercise Store without a driver.
type memCodes struct {
	mu    sync.Mutex
	codes map[string]domain.OTPChallenge
}

func newMemCodes() *memCodes {
	return &memCodes{codes: make(map[string]domain.OTPChallenge)}
}

func (m *memCodes) Put(_ context.Context, c domain.OTPChallenge) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.codes[c.Email] = c
	return nil
}

func (m *memCodes) Get(_ context.Context, email string) (domain.OTPChallenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[email]
	if !ok {
		return domain.OTPChallenge{}, store.ErrNotFound
	}
	return c, nil
}

func (m *memCodes) IncrementAttempts(_ context.Context, email string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.codes[email]
	if !ok {
		return 0, store.ErrNotFound
	}
	c.Attempts++
	m.codes[email] = c
	return c.Attempts, nil
}

func (m *memCodes) Delete(_ context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.codes, email)
	return nil
}

func (m *memCodes) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for email, c := range m.codes {
		if !now.Before(c.ExpiresAt) {
			delete(m.codes, email)
			n++
		}
	}
	return n, nil
}

func TestGenerate_Range(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.Len(t, code, 6)
		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestVerify_MatchConsumesChallenge(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMemCodes())

	require.NoError(t, s.Put(ctx, "alice@example.com", "123456"))

	verdict, err := s.Verify(ctx, "alice@example.com", "123456")
	require.NoError(t, err)
	require.Equal(t, VerdictMatch, verdict)

	// Single use: the same code does not verify twice.
	verdict, err = s.Verify(ctx, "alice@example.com", "123456")
	require.NoError(t, err)
	require.Equal(t, VerdictNotFound, verdict)
}

func TestVerify_LastPutWins(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMemCodes())

	require.NoError(t, s.Put(ctx, "alice@example.com", "111111"))
	require.NoError(t, s.Put(ctx, "alice@example.com", "222222"))

	verdict, err := s.Verify(ctx, "alice@example.com", "111111")
	require.NoError(t, err)
	require.Equal(t, VerdictMismatch, verdict)

	verdict, err = s.Verify(ctx, "alice@example.com", "222222")
	require.NoError(t, err)
	require.Equal(t, VerdictMatch, verdict)
}

func TestVerify_AttemptCap(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMemCodes()).WithMaxAttempts(3)

	require.NoError(t, s.Put(ctx, "alice@example.com", "123456"))

	for i := 0; i < 3; i++ {
		verdict, err := s.Verify(ctx, "alice@example.com", "000000")
		require.NoError(t, err)
		require.Equal(t, VerdictMismatch, verdict)
	}

	// The cap invalidated the challenge; even the right code is refused now.
	verdict, err := s.Verify(ctx, "alice@example.com", "123456")
	require.NoError(t, err)
	require.Equal(t, VerdictNotFound, verdict)
}

func TestVerify_ReissueResetsAttempts(t *testing.T) {
	ctx := context.Background()
	s := NewStore(newMemCodes()).WithMaxAttempts(2)

	require.NoError(t, s.Put(ctx, "alice@example.com", "123456"))
	_, err := s.Verify(ctx, "alice@example.com", "000000")
	require.NoError(t, err)

	// Resend issues a fresh challenge with a clean counter.
	require.NoError(t, s.Put(ctx, "alice@example.com", "654321"))
	_, err = s.Verify(ctx, "alice@example.com", "000000")
	require.NoError(t, err)

	verdict, err := s.Verify(ctx, "alice@example.com", "654321")
	require.NoError(t, err)
	require.Equal(t, VerdictMatch, verdict)
}

func TestVerify_Expired(t *testing.T) {
	ctx := context.Background()
	codes := newMemCodes()
	s := NewStore(codes)

	now := time.Now()
	s.now = func() time.Time { return now }

	require.NoError(t, s.Put(ctx, "alice@example.com", "123456"))

	now = now.Add(DefaultTTL + time.Second)

	verdict, err := s.Verify(ctx, "alice@example.com", "123456")
	require.NoError(t, err)
	require.Equal(t, VerdictNotFound, verdict)

	// Expired challenge was removed on sight.
	_, err = codes.Get(ctx, "alice@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestVerify_NoChallenge(t *testing.T) {
	s := NewStore(newMemCodes())
	verdict, err := s.Verify(context.Background(), "nobody@example.com", "123456")
	require.NoError(t, err)
	require.Equal(t, VerdictNotFound, verdict)
}
