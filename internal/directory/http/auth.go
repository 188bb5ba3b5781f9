package http

import (
	"net/http"

	"github.com/aussiebroadwan/hiddengems/internal/directory/service"
	"github.com/aussiebroadwan/hiddengems/pkg/directorysdk"
	"github.com/aussiebroadwan/hiddengems/pkg/httpx"
)

type AuthHandler struct {
	AuthService *service.AuthService
}

// HandleRegister creates an account.
//
//	@Summary		Register
//	@Description	Creates an account and returns a session token for it. Emails are stored lower-cased.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		directorysdk.RegisterRequest	true	"Account details"
//	@Success		201		{object}	directorysdk.AuthResponse
//	@Failure		400		{object}	directorysdk.ErrorResponse	"Malformed or invalid request"
//	@Failure		409		{object}	directorysdk.ErrorResponse	"username taken / email taken"
//	@Failure		429		{object}	directorysdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/api/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req directorysdk.RegisterRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.AuthService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toAuthResponse(res))
}

// HandleLogin exchanges a username or email plus password for a token.
//
//	@Summary		Login
//	@Description	emailOrUsername is matched against usernames first, then emails.
//	@Description	Unknown accounts and wrong passwords get the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		directorysdk.LoginRequest	true	"Credentials"
//	@Success		200		{object}	directorysdk.AuthResponse
//	@Failure		400		{object}	directorysdk.ErrorResponse	"Malformed request"
//	@Failure		401		{object}	directorysdk.ErrorResponse	"invalid credentials"
//	@Failure		429		{object}	directorysdk.ErrorResponse	"Rate limit exceeded"
//	@Router			/api/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req directorysdk.LoginRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	res, err := h.AuthService.Login(r.Context(), req.EmailOrUsername, req.Password)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toAuthResponse(res))
}
