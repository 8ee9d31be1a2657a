package http

import (
	"net/http"

	"github.com/skylight-ar/account-service/internal/account/service"
	"github.com/skylight-ar/account-service/pkg/accountsdk"
)

type LoginHandler struct {
	SessionService *service.SessionService
}

// ServeHTTP godoc
//
//	@Summary		Login Endpoint
//	@Description	Authenticates credentials against the identity provider
//	@Description	All failure causes collapse into one generic dialog
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		accountsdk.LoginRequest	true	"Sign-in form fields"
//	@Success		200		{object}	accountsdk.LoginResponse	"state, user_id, id_token"
//	@Failure		400		{object}	accountsdk.LoginResponse	"state, dialog"
//	@Failure		401		{object}	accountsdk.LoginResponse	"state, dialog"
//	@Router			/v1/login [post].
func (h *LoginHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req accountsdk.LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}

	result := h.SessionService.SignIn(r.Context(), req.Email, req.Password)
	writeSession(w, result)
}
