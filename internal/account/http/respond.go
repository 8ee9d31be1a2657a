package http

import (
	"encoding/json"
	"net/http"

	"github.com/skylight-ar/account-service/internal/account/domain"
	"github.com/skylight-ar/account-service/pkg/accountsdk"
	"github.com/skylight-ar/account-service/pkg/httpx"
)

// decodeBody reads a JSON request body. On failure it writes the 400 itself
// and returns false.
func decodeBody(w http.ResponseWriter, r *http.Request, target any) bool {
	if err := json.NewDecoder(r.Body).Decode(target); err != nil {
		httpx.WriteJSON(w, http.StatusBadRequest, accountsdk.ErrorResponse{
			Error:            "invalid_request",
			ErrorDescription: "Invalid JSON body",
		})
		return false
	}
	return true
}

func dialogPayload(d *domain.Dialog) *accountsdk.Dialog {
	if d == nil {
		return nil
	}
	return &accountsdk.Dialog{
		Title:   d.Title,
		Message: d.Message,
		Context: d.Context,
	}
}

// writeRegistration renders a flow outcome. Errors ride in the body as
// dialogs; the status code is advisory for non-SDK callers.
func writeRegistration(w http.ResponseWriter, result domain.RegistrationResult) {
	status := http.StatusOK
	if result.Dialog != nil && result.Dialog.Context != domain.DialogContextSignupSuccess {
		status = http.StatusBadRequest
	}
	httpx.WriteJSON(w, status, accountsdk.RegistrationResponse{
		State:     result.State.String(),
		Dialog:    dialogPayload(result.Dialog),
		CanResend: result.CanResend,
	})
}

func writeSession(w http.ResponseWriter, result domain.SessionResult) {
	status := http.StatusOK
	switch {
	case result.State == domain.SessionIdle:
		status = http.StatusBadRequest
	case result.Dialog != nil:
		status = http.StatusUnauthorized
	}
	httpx.WriteJSON(w, status, accountsdk.LoginResponse{
		State:   result.State.String(),
		Dialog:  dialogPayload(result.Dialog),
		UserID:  result.UserID,
		IDToken: result.IDToken,
	})
}
