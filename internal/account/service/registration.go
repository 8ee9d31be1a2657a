package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/skylight-ar/account-service/internal/account/domain"
	"github.com/skylight-ar/account-service/internal/account/idp"
	"github.com/skylight-ar/account-service/internal/account/mailer"
	"github.com/skylight-ar/account-service/internal/account/otp"
	"github.com/skylight-ar/account-service/internal/account/store"
	"github.com/skylight-ar/account-service/internal/account/validate"
	"github.com/skylight-ar/account-service/pkg/idx"
)

const (
	// DefaultCallTimeout bounds each external call (provider, store, mail).
	DefaultCallTimeout = 15 * time.Second

	// DefaultFlowTTL is how long an unfinished registration flow is kept
	// before the housekeeping sweep discards it.
	DefaultFlowTTL = 30 * time.Minute
)

// Messages the registration flow shows the user.
const (
	msgEmailInUse        = "Email already in use."
	msgProviderDown      = "Service unavailable. Try again later."
	msgCouldNotStoreUser = "Could not store user data."
	msgCouldNotStoreOTP  = "Could not store OTP code."
	msgSendOTPPrefix     = "Failed to send OTP: "
	msgInvalidOTP        = "Invalid OTP. Try again."
	msgNoOTPFound        = "No OTP found for this email."
	msgFetchOTPFailed    = "Failed to fetch OTP."
	msgVerifySuccess     = "OTP verified successfully! Please log in."
	msgNoActiveFlow      = "No registration in progress for this email."
)

// RegistrationService owns the registration state machine. One flow exists
// per email at a time; starting a new flow supersedes the previous one, and a
// completion arriving for a superseded flow is discarded.
//
// Flows live in memory only. A restart drops them, which is acceptable since
// the user can always start over and any pending OTP challenge is replaced
// through the new flow's issue.
type RegistrationService struct {
	Provider idp.Provider
	Store    store.Store
	OTP      *otp.Store
	Sender   mailer.Sender
	Logger   *slog.Logger

	CallTimeout time.Duration
	FlowTTL     time.Duration

	mu    sync.Mutex
	flows map[string]*domain.RegistrationSession // keyed by email

	now func() time.Time
}

func NewRegistrationService(provider idp.Provider, st store.Store, otpStore *otp.Store, sender mailer.Sender, logger *slog.Logger) *RegistrationService {
	return &RegistrationService{
		Provider:    provider,
		Store:       st,
		OTP:         otpStore,
		Sender:      sender,
		Logger:      logger,
		CallTimeout: DefaultCallTimeout,
		FlowTTL:     DefaultFlowTTL,
		flows:       make(map[string]*domain.RegistrationSession),
		now:         time.Now,
	}
}

// Register runs the front half of the flow: field validation, provider
// account creation, OTP issue, and delivery. On success the flow parks in
// awaiting_verification until VerifyOTP or expiry. The email is trimmed
// before anything looks at it, matching the form input handling of the
// shipped client.
func (s *RegistrationService) Register(ctx context.Context, email, password, confirm string) domain.RegistrationResult {
	email = strings.TrimSpace(email)
	if verr := validate.Registration(email, password, confirm); verr != nil {
		return domain.RegistrationResult{
			State:  domain.RegistrationIdle,
			Dialog: domain.SignupErrorDialog(verr.Message),
		}
	}

	flow := s.startFlow(email)
	log := s.Logger.With("email", email, "flow", flow.Token)

	identity, err := s.signUp(ctx, email, password)
	if err != nil {
		log.Warn("provider sign-up failed", "error", err)
		s.failFlow(flow)
		return domain.RegistrationResult{
			State:  domain.RegistrationFailed,
			Dialog: domain.SignupErrorDialog(signupErrorMessage(err)),
		}
	}
	if !s.advance(flow, domain.RegistrationProviderAccountCreated) {
		log.Info("flow superseded after provider sign-up, discarding result")
		return domain.RegistrationResult{State: domain.RegistrationFailed}
	}
	flow.UserID = identity.UserID

	return s.issueAndSend(ctx, flow, log)
}

// Resend issues a fresh challenge for a live flow and delivers it. The new
// code replaces the previous one and resets the attempt counter.
func (s *RegistrationService) Resend(ctx context.Context, email string) domain.RegistrationResult {
	email = strings.TrimSpace(email)
	flow := s.liveFlow(email)
	if flow == nil {
		return domain.RegistrationResult{
			State:  domain.RegistrationIdle,
			Dialog: domain.SignupErrorDialog(msgNoActiveFlow),
		}
	}

	log := s.Logger.With("email", email, "flow", flow.Token)
	log.Info("resending otp")
	return s.issueAndSend(ctx, flow, log)
}

// VerifyOTP runs the back half of the flow: challenge check, the single
// account record write, and activation. The record is written only after the
// code matches; there is no draft record to clean up on any earlier failure.
func (s *RegistrationService) VerifyOTP(ctx context.Context, email, code string) domain.RegistrationResult {
	email = strings.TrimSpace(email)
	flow := s.liveFlow(email)
	if flow == nil {
		return domain.RegistrationResult{
			State:  domain.RegistrationIdle,
			Dialog: domain.SignupErrorDialog(msgNoOTPFound),
		}
	}

	log := s.Logger.With("email", email, "flow", flow.Token)

	callCtx, cancel := context.WithTimeout(ctx, s.CallTimeout)
	verdict, err := s.OTP.Verify(callCtx, email, code)
	cancel()
	if err != nil {
		log.Error("otp verification backend fault", "error", err)
		return domain.RegistrationResult{
			State:     flow.State,
			Dialog:    domain.SignupErrorDialog(msgFetchOTPFailed),
			CanResend: true,
		}
	}

	switch verdict {
	case otp.VerdictMismatch:
		log.Info("otp mismatch")
		return domain.RegistrationResult{
			State:     flow.State,
			Dialog:    domain.SignupErrorDialog(msgInvalidOTP),
			CanResend: true,
		}
	case otp.VerdictNotFound:
		log.Info("no pending otp challenge")
		return domain.RegistrationResult{
			State:     flow.State,
			Dialog:    domain.SignupErrorDialog(msgNoOTPFound),
			CanResend: true,
		}
	}

	if !s.advance(flow, domain.RegistrationVerified) {
		log.Info("flow superseded after otp match, discarding result")
		return domain.RegistrationResult{State: domain.RegistrationFailed}
	}

	callCtx, cancel = context.WithTimeout(ctx, s.CallTimeout)
	err = s.Store.Accounts().Put(callCtx, domain.Account{
		UserID:    flow.UserID,
		Email:     flow.Email,
		CreatedAt: s.now().UTC(),
	})
	cancel()
	if err != nil {
		log.Error("account record write failed", "error", err)
		s.failFlow(flow)
		return domain.RegistrationResult{
			State:  domain.RegistrationFailed,
			Dialog: domain.SignupErrorDialog(msgCouldNotStoreUser),
		}
	}
	if !s.advance(flow, domain.RegistrationRecordFinalized) {
		log.Info("flow superseded after record write, discarding result")
		return domain.RegistrationResult{State: domain.RegistrationFailed}
	}

	s.finishFlow(flow)
	log.Info("registration activated", "user_id", flow.UserID)
	return domain.RegistrationResult{
		State:  domain.RegistrationActivated,
		Dialog: domain.SignupSuccessDialog(msgVerifySuccess),
	}
}

// ExpireStaleFlows drops unfinished flows older than FlowTTL and returns how
// many were dropped. Called by the housekeeping worker.
func (s *RegistrationService) ExpireStaleFlows(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for email, flow := range s.flows {
		if now.Sub(flow.CreatedAt) > s.FlowTTL {
			delete(s.flows, email)
			n++
		}
	}
	return n
}

// issueAndSend generates a challenge, persists it, and mails it. The persist
// happens before the send; a code the user might type must be verifiable, so
// a persist failure means nothing is sent.
func (s *RegistrationService) issueAndSend(ctx context.Context, flow *domain.RegistrationSession, log *slog.Logger) domain.RegistrationResult {
	code, err := otp.Generate()
	if err != nil {
		log.Error("otp generation failed", "error", err)
		s.failFlow(flow)
		return domain.RegistrationResult{
			State:  domain.RegistrationFailed,
			Dialog: domain.SignupErrorDialog(msgCouldNotStoreOTP),
		}
	}

	callCtx, cancel := context.WithTimeout(ctx, s.CallTimeout)
	err = s.OTP.Put(callCtx, flow.Email, code)
	cancel()
	if err != nil {
		log.Error("otp persist failed", "error", err)
		s.failFlow(flow)
		return domain.RegistrationResult{
			State:  domain.RegistrationFailed,
			Dialog: domain.SignupErrorDialog(msgCouldNotStoreOTP),
		}
	}
	if !s.advance(flow, domain.RegistrationOtpIssued) {
		log.Info("flow superseded after otp issue, discarding result")
		return domain.RegistrationResult{State: domain.RegistrationFailed}
	}

	callCtx, cancel = context.WithTimeout(ctx, s.CallTimeout)
	err = s.Sender.Send(callCtx, mailer.OTPMessage(flow.Email, code))
	cancel()
	if err != nil {
		// The challenge is verifiable even though delivery failed, so the
		// flow stays alive and the user is offered a resend.
		log.Warn("otp delivery failed", "error", err, "retryable", mailer.IsRetryable(err))
		return domain.RegistrationResult{
			State:     domain.RegistrationOtpIssued,
			Dialog:    domain.SignupErrorDialog(msgSendOTPPrefix + sendErrorReason(err)),
			CanResend: true,
		}
	}
	if !s.advance(flow, domain.RegistrationOtpDelivered) {
		log.Info("flow superseded after otp delivery, discarding result")
		return domain.RegistrationResult{State: domain.RegistrationFailed}
	}
	s.advance(flow, domain.RegistrationAwaitingVerification)

	log.Info("otp delivered, awaiting verification")
	return domain.RegistrationResult{
		State:     domain.RegistrationAwaitingVerification,
		CanResend: true,
	}
}

func (s *RegistrationService) signUp(ctx context.Context, email, password string) (idp.Identity, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.CallTimeout)
	defer cancel()
	return s.Provider.SignUp(callCtx, email, password)
}

// startFlow creates a fresh flow for email, superseding any previous one.
func (s *RegistrationService) startFlow(email string) *domain.RegistrationSession {
	now := s.now()
	flow := &domain.RegistrationSession{
		Token:     string(idx.New()),
		Email:     email,
		State:     domain.RegistrationFieldsValid,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.flows[email] = flow
	s.mu.Unlock()
	return flow
}

// liveFlow returns the current non-terminal flow for email, or nil.
func (s *RegistrationService) liveFlow(email string) *domain.RegistrationSession {
	s.mu.Lock()
	defer s.mu.Unlock()

	flow := s.flows[email]
	if flow == nil || flow.State.Terminal() {
		return nil
	}
	return flow
}

// advance moves the flow to next if it is still the current flow for its
// email. Returns false when the flow has been superseded, in which case the
// caller must discard whatever it just completed.
func (s *RegistrationService) advance(flow *domain.RegistrationSession, next domain.RegistrationState) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flows[flow.Email] != flow {
		return false
	}
	flow.State = next
	flow.UpdatedAt = s.now()
	return true
}

func (s *RegistrationService) failFlow(flow *domain.RegistrationSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flows[flow.Email] != flow {
		return
	}
	flow.State = domain.RegistrationFailed
	delete(s.flows, flow.Email)
}

func (s *RegistrationService) finishFlow(flow *domain.RegistrationSession) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.flows[flow.Email] != flow {
		return
	}
	flow.State = domain.RegistrationActivated
	delete(s.flows, flow.Email)
}

func signupErrorMessage(err error) string {
	switch {
	case errors.Is(err, idp.ErrEmailInUse):
		return msgEmailInUse
	case errors.Is(err, idp.ErrUnavailable):
		return msgProviderDown
	}
	var perr *idp.ProviderError
	if errors.As(err, &perr) && perr.Code != "" {
		return "Sign up failed: " + perr.Code
	}
	return msgProviderDown
}

func sendErrorReason(err error) string {
	var serr *mailer.SendError
	if errors.As(err, &serr) {
		return serr.Reason
	}
	return err.Error()
}
