package service

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/skylight-ar/account-service/internal/account/domain"
	"github.com/skylight-ar/account-service/internal/account/idp"
	"github.com/skylight-ar/account-service/internal/account/mailer"
	"github.com/skylight-ar/account-service/internal/account/otp"
	"github.com/skylight-ar/account-service/internal/account/store"
	"github.com/skylight-ar/account-service/internal/account/store/drivers/sqlite"
)

// fakeProvider counts calls and returns scripted errors.
type fakeProvider struct {
	mu        sync.Mutex
	signUps   int
	signIns   int
	signUpErr error
	signInErr error
}

func (p *fakeProvider) SignUp(_ context.Context, email, _ string) (idp.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signUps++
	if p.signUpErr != nil {
		return idp.Identity{}, p.signUpErr
	}
	return idp.Identity{UserID: "uid-" + email, Email: email, IDToken: "tok"}, nil
}

func (p *fakeProvider) SignIn(_ context.Context, email, _ string) (idp.Identity, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.signIns++
	if p.signInErr != nil {
		return idp.Identity{}, p.signInErr
	}
	return idp.Identity{UserID: "uid-" + email, Email: email, IDToken: "tok"}, nil
}

// captureSender records delivered messages and can fail on demand.
type captureSender struct {
	mu       sync.Mutex
	sent     []mailer.Message
	failNext error
}

func (c *captureSender) Send(_ context.Context, msg mailer.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failNext != nil {
		err := c.failNext
		c.failNext = nil
		return err
	}
	c.sent = append(c.sent, msg)
	return nil
}

func (c *captureSender) lastCode(t *testing.T) string {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	require.NotEmpty(t, c.sent)
	text := c.sent[len(c.sent)-1].Text
	code := strings.TrimPrefix(text, "Your OTP code is: ")
	require.Len(t, code, 6)
	return code
}

// failingOTPCodes wraps a real OTPCodes and fails Put.
type failingOTPCodes struct {
	store.OTPCodes
}

func (f *failingOTPCodes) Put(context.Context, domain.OTPChallenge) error {
	return store.ErrUnavailable
}

func newTestRegistration(t *testing.T) (*RegistrationService, *fakeProvider, *captureSender) {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	provider := &fakeProvider{}
	sender := &captureSender{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	svc := NewRegistrationService(provider, st, otp.NewStore(st.OTPCodes()), sender, logger)
	return svc, provider, sender
}

func TestRegister_HappyPath(t *testing.T) {
	ctx := context.Background()
	svc, provider, sender := newTestRegistration(t)

	result := svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")
	require.Equal(t, domain.RegistrationAwaitingVerification, result.State)
	require.Nil(t, result.Dialog)
	require.True(t, result.CanResend)
	require.Equal(t, 1, provider.signUps)

	// No account record exists before verification.
	_, err := svc.Store.Accounts().GetByEmail(ctx, "alice@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	result = svc.VerifyOTP(ctx, "alice@example.com", sender.lastCode(t))
	require.Equal(t, domain.RegistrationActivated, result.State)
	require.NotNil(t, result.Dialog)
	require.Equal(t, domain.DialogTitleSignupSuccess, result.Dialog.Title)
	require.Equal(t, "OTP verified successfully! Please log in.", result.Dialog.Message)
	require.Equal(t, domain.DialogContextSignupSuccess, result.Dialog.Context)

	account, err := svc.Store.Accounts().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "uid-alice@example.com", account.UserID)
}

func TestRegister_TrimsEmail(t *testing.T) {
	ctx := context.Background()
	svc, _, sender := newTestRegistration(t)

	result := svc.Register(ctx, "  alice@example.com  ", "hunter22", "hunter22")
	require.Equal(t, domain.RegistrationAwaitingVerification, result.State)
	require.Equal(t, "alice@example.com", sender.sent[0].To)

	// Padded and bare spellings address the same flow.
	result = svc.VerifyOTP(ctx, " alice@example.com", sender.lastCode(t))
	require.Equal(t, domain.RegistrationActivated, result.State)

	account, err := svc.Store.Accounts().GetByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Equal(t, "uid-alice@example.com", account.UserID)
}

func TestRegister_ValidationFailureSkipsProvider(t *testing.T) {
	svc, provider, _ := newTestRegistration(t)

	result := svc.Register(context.Background(), "1alice@example.com", "hunter22", "hunter22")
	require.Equal(t, domain.RegistrationIdle, result.State)
	require.NotNil(t, result.Dialog)
	require.Equal(t, "Email cannot start with a number.", result.Dialog.Message)
	require.Equal(t, domain.DialogContextSignupError, result.Dialog.Context)
	require.Equal(t, 0, provider.signUps)
}

func TestRegister_EmailInUse(t *testing.T) {
	svc, provider, sender := newTestRegistration(t)
	provider.signUpErr = idp.ErrEmailInUse

	result := svc.Register(context.Background(), "alice@example.com", "hunter22", "hunter22")
	require.Equal(t, domain.RegistrationFailed, result.State)
	require.Equal(t, "Email already in use.", result.Dialog.Message)
	require.Empty(t, sender.sent)
}

func TestRegister_OTPStoreFailureFailsFlow(t *testing.T) {
	ctx := context.Background()
	svc, _, sender := newTestRegistration(t)
	svc.OTP = otp.NewStore(&failingOTPCodes{})

	result := svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")
	require.Equal(t, domain.RegistrationFailed, result.State)
	require.NotNil(t, result.Dialog)

	// A code that cannot be verified is never sent.
	require.Empty(t, sender.sent)

	// The flow is gone; verification cannot proceed.
	result = svc.VerifyOTP(ctx, "alice@example.com", "123456")
	require.Equal(t, domain.RegistrationIdle, result.State)
	require.Equal(t, "No OTP found for this email.", result.Dialog.Message)
}

func TestRegister_SendFailureOffersResend(t *testing.T) {
	ctx := context.Background()
	svc, _, sender := newTestRegistration(t)
	sender.failNext = &mailer.SendError{Reason: "delivery service returned 503", Retryable: true}

	result := svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")
	require.Equal(t, domain.RegistrationOtpIssued, result.State)
	require.True(t, result.CanResend)
	require.Equal(t, "Failed to send OTP: delivery service returned 503", result.Dialog.Message)

	// Resend succeeds and the flow completes normally.
	result = svc.Resend(ctx, "alice@example.com")
	require.Equal(t, domain.RegistrationAwaitingVerification, result.State)

	result = svc.VerifyOTP(ctx, "alice@example.com", sender.lastCode(t))
	require.Equal(t, domain.RegistrationActivated, result.State)
}

func TestResend_ReplacesCode(t *testing.T) {
	ctx := context.Background()
	svc, _, sender := newTestRegistration(t)

	result := svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")
	require.Equal(t, domain.RegistrationAwaitingVerification, result.State)
	first := sender.lastCode(t)

	result = svc.Resend(ctx, "alice@example.com")
	require.Equal(t, domain.RegistrationAwaitingVerification, result.State)
	second := sender.lastCode(t)

	if first != second {
		result = svc.VerifyOTP(ctx, "alice@example.com", first)
		require.Equal(t, "Invalid OTP. Try again.", result.Dialog.Message)
	}

	result = svc.VerifyOTP(ctx, "alice@example.com", second)
	require.Equal(t, domain.RegistrationActivated, result.State)
}

func TestResend_NoFlow(t *testing.T) {
	svc, _, _ := newTestRegistration(t)

	result := svc.Resend(context.Background(), "nobody@example.com")
	require.Equal(t, domain.RegistrationIdle, result.State)
	require.Equal(t, "No registration in progress for this email.", result.Dialog.Message)
}

func TestVerifyOTP_WrongCodeThenRight(t *testing.T) {
	ctx := context.Background()
	svc, _, sender := newTestRegistration(t)

	svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")

	result := svc.VerifyOTP(ctx, "alice@example.com", "000000")
	require.Equal(t, "Invalid OTP. Try again.", result.Dialog.Message)
	require.True(t, result.CanResend)

	result = svc.VerifyOTP(ctx, "alice@example.com", sender.lastCode(t))
	require.Equal(t, domain.RegistrationActivated, result.State)
}

func TestVerifyOTP_AttemptCapInvalidatesChallenge(t *testing.T) {
	ctx := context.Background()
	svc, _, sender := newTestRegistration(t)
	svc.OTP.WithMaxAttempts(3)

	svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")
	code := sender.lastCode(t)

	for i := 0; i < 3; i++ {
		result := svc.VerifyOTP(ctx, "alice@example.com", "000000")
		require.Equal(t, "Invalid OTP. Try again.", result.Dialog.Message)
	}

	result := svc.VerifyOTP(ctx, "alice@example.com", code)
	require.Equal(t, "No OTP found for this email.", result.Dialog.Message)
}

func TestRegister_SupersedesPreviousFlow(t *testing.T) {
	ctx := context.Background()
	svc, _, sender := newTestRegistration(t)

	svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")
	first := sender.lastCode(t)

	svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")
	second := sender.lastCode(t)

	if first != second {
		result := svc.VerifyOTP(ctx, "alice@example.com", first)
		require.Equal(t, "Invalid OTP. Try again.", result.Dialog.Message)
	}

	result := svc.VerifyOTP(ctx, "alice@example.com", second)
	require.Equal(t, domain.RegistrationActivated, result.State)
}

func TestVerifyOTP_CompletedFlowCannotVerifyAgain(t *testing.T) {
	ctx := context.Background()
	svc, _, sender := newTestRegistration(t)

	svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")
	code := sender.lastCode(t)

	result := svc.VerifyOTP(ctx, "alice@example.com", code)
	require.Equal(t, domain.RegistrationActivated, result.State)

	result = svc.VerifyOTP(ctx, "alice@example.com", code)
	require.Equal(t, domain.RegistrationIdle, result.State)
	require.Equal(t, "No OTP found for this email.", result.Dialog.Message)
}

func TestExpireStaleFlows(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestRegistration(t)
	svc.FlowTTL = 30 * time.Minute

	svc.Register(ctx, "alice@example.com", "hunter22", "hunter22")

	require.Equal(t, 0, svc.ExpireStaleFlows(time.Now()))
	require.Equal(t, 1, svc.ExpireStaleFlows(time.Now().Add(time.Hour)))

	result := svc.VerifyOTP(ctx, "alice@example.com", "123456")
	require.Equal(t, domain.RegistrationIdle, result.State)
}
