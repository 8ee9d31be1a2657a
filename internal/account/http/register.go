package http

import (
	"net/http"

	"github.com/skylight-ar/account-service/internal/account/service"
	"github.com/skylight-ar/account-service/pkg/accountsdk"
)

type RegisterHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Start Registration Endpoint
//	@Description	Validates the sign-up form, creates the identity provider account,
//	@Description	and emails a six-digit passcode to the address being claimed
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.RegisterRequest		true	"Sign-up form fields"
//	@Success		200		{object}	accountsdk.RegistrationResponse	"state, can_resend"
//	@Failure		400		{object}	accountsdk.RegistrationResponse	"state, dialog"
//	@Router			/v1/register [post].
func (h *RegisterHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.RegisterRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.RegistrationService.Register(r.Context(), req.Email, req.Password, req.ConfirmPassword)
	writeRegistration(w, result)
}

type VerifyHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Verify Passcode Endpoint
//	@Description	Checks the emailed passcode and, on a match, finalizes the account record
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.VerifyRequest		true	"Email and passcode"
//	@Success		200		{object}	accountsdk.RegistrationResponse	"state, dialog"
//	@Failure		400		{object}	accountsdk.RegistrationResponse	"state, dialog, can_resend"
//	@Router			/v1/register/verify [post].
func (h *VerifyHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.VerifyRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.RegistrationService.VerifyOTP(r.Context(), req.Email, req.Code)
	writeRegistration(w, result)
}

type ResendHandler struct {
	RegistrationService *service.RegistrationService
}

// ServeHTTP godoc
//
//	@Summary		Resend Passcode Endpoint
//	@Description	Issues a fresh passcode for a pending registration and emails it
//	@Description	The new passcode replaces the previous one
//	@Tags			Registration
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.ResendRequest		true	"Email of the pending registration"
//	@Success		200		{object}	accountsdk.RegistrationResponse	"state, can_resend"
//	@Failure		400		{object}	accountsdk.RegistrationResponse	"state, dialog"
//	@Router			/v1/register/resend [post].
func (h *ResendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.ResendRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.RegistrationService.Resend(r.Context(), req.Email)
	writeRegistration(w, result)
}
