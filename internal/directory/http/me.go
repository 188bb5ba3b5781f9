package http

import (
	"net/http"

	"github.com/aussiebroadwan/hiddengems/internal/directory/service"
	"github.com/aussiebroadwan/hiddengems/pkg/directorysdk"
	"github.com/aussiebroadwan/hiddengems/pkg/httpx"
)

type MeHandler struct {
	UserService *service.UserService
}

// ServeHTTP describes the caller.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	directorysdk.MeResponse
//	@Failure		401	{object}	directorysdk.ErrorResponse	"Missing, invalid or expired token"
//	@Failure		404	{object}	directorysdk.ErrorResponse	"Account no longer exists"
//	@Router			/api/me [get].
func (h *MeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.CurrentUser(r.Context())
	if !ok {
		directorysdk.ErrUnauthorized.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, directorysdk.MeResponse{
		UserID:        user.ID.String(),
		Username:      user.Username,
		Email:         user.Email,
		EmailVerified: user.EmailVerified,
	})
}
