package http

import (
	"net/http"

	"github.com/aussiebroadwan/hiddengems/internal/directory/service"
	"github.com/aussiebroadwan/hiddengems/pkg/directorysdk"
	"github.com/aussiebroadwan/hiddengems/pkg/httpx"
)

// FavoriteHandler serves the favorite endpoints. Every route is mounted
// behind httpx.RequireIdentity.
type FavoriteHandler struct {
	FavoriteService *service.FavoriteService
}

// HandleList lists the caller's favorites.
//
//	@Summary		List favorites
//	@Description	Most recently favorited first.
//	@Tags			Favorites
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int	false	"Zero-based page"
//	@Param			size	query		int	false	"Page size"
//	@Success		200		{object}	directorysdk.BusinessPage
//	@Failure		401		{object}	directorysdk.ErrorResponse
//	@Router			/api/favorites [get].
func (h *FavoriteHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.CurrentUser(r.Context())
	if !ok {
		directorysdk.ErrUnauthorized.WriteError(w)
		return
	}

	p, ok := pageRequest(w, r)
	if !ok {
		return
	}

	page, err := h.FavoriteService.List(r.Context(), userID, p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toBusinessPage(page))
}

// HandleAdd favorites a business.
//
//	@Summary		Add favorite
//	@Tags			Favorites
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Business ID"
//	@Success		200	{object}	directorysdk.FavoriteResponse
//	@Failure		401	{object}	directorysdk.ErrorResponse
//	@Failure		404	{object}	directorysdk.ErrorResponse	"business not found"
//	@Router			/api/businesses/{id}/favorite [put].
func (h *FavoriteHandler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.CurrentUser(r.Context())
	if !ok {
		directorysdk.ErrUnauthorized.WriteError(w)
		return
	}
	id, ok := businessID(w, r)
	if !ok {
		return
	}

	if err := h.FavoriteService.Add(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, directorysdk.FavoriteResponse{BusinessID: id.String(), Favorited: true})
}

// HandleRemove unfavorites a business.
//
//	@Summary		Remove favorite
//	@Tags			Favorites
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Business ID"
//	@Success		200	{object}	directorysdk.FavoriteResponse
//	@Failure		401	{object}	directorysdk.ErrorResponse
//	@Failure		404	{object}	directorysdk.ErrorResponse	"business not found"
//	@Router			/api/businesses/{id}/favorite [delete].
func (h *FavoriteHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.CurrentUser(r.Context())
	if !ok {
		directorysdk.ErrUnauthorized.WriteError(w)
		return
	}
	id, ok := businessID(w, r)
	if !ok {
		return
	}

	if err := h.FavoriteService.Remove(r.Context(), userID, id); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, directorysdk.FavoriteResponse{BusinessID: id.String(), Favorited: false})
}

// HandleToggle flips the favorite state of a business.
//
//	@Summary		Toggle favorite
//	@Tags			Favorites
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Business ID"
//	@Success		200	{object}	directorysdk.FavoriteResponse	"The new state"
//	@Failure		401	{object}	directorysdk.ErrorResponse
//	@Failure		404	{object}	directorysdk.ErrorResponse	"business not found"
//	@Router			/api/businesses/{id}/favorite/toggle [post].
func (h *FavoriteHandler) HandleToggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := httpx.CurrentUser(r.Context())
	if !ok {
		directorysdk.ErrUnauthorized.WriteError(w)
		return
	}
	id, ok := businessID(w, r)
	if !ok {
		return
	}

	favorited, err := h.FavoriteService.Toggle(r.Context(), userID, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, directorysdk.FavoriteResponse{BusinessID: id.String(), Favorited: favorited})
}
