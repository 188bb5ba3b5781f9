package directorysdk

import (
	"context"
	"net/http"
	"net/url"
)

// Session is an authenticated client. Tokens are not refreshed; once one
// expires the calls fail with ErrUnauthorized and the caller logs in again.
type Session struct {
	client   *SDKClient
	token    string
	userID   string
	username string
	email    string
}

func newSession(client *SDKClient, auth AuthResponse) *Session {
	return &Session{
		client:   client,
		token:    auth.Token,
		userID:   auth.UserID,
		username: auth.Username,
		email:    auth.Email,
	}
}

// Token returns the bearer token.
func (s *Session) Token() string { return s.token }

// UserID returns the id of the account the session was created for, or ""
// for sessions built with NewSession.
func (s *Session) UserID() string { return s.userID }

func (s *Session) Username() string { return s.username }
func (s *Session) Email() string    { return s.email }

func (s *Session) do() requester { return s.client.requester(s.token) }

// Me returns the account behind the token.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := s.do()(ctx, http.MethodGet, "/api/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var me MeResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, err
	}
	return &me, nil
}

// ListBusinesses lists the directory with favorite flags for this user.
func (s *Session) ListBusinesses(ctx context.Context, opts PageOptions) (*BusinessPage, error) {
	return getBusinessPage(ctx, s.do(), "/api/businesses", opts, nil)
}

// GetBusiness fetches one business with its favorite flag.
func (s *Session) GetBusiness(ctx context.Context, id string) (*Business, error) {
	return getBusiness(ctx, s.do(), id)
}

// SearchBusinesses matches query against business names.
func (s *Session) SearchBusinesses(ctx context.Context, query string, opts PageOptions) (*BusinessPage, error) {
	return getBusinessPage(ctx, s.do(), "/api/businesses/search", opts, map[string]string{"q": query})
}

// BusinessesByCity lists businesses in a city.
func (s *Session) BusinessesByCity(ctx context.Context, city string, opts PageOptions) (*BusinessPage, error) {
	return getBusinessPage(ctx, s.do(), "/api/businesses/city/"+url.PathEscape(city), opts, nil)
}

// BusinessesByCategory lists businesses in a category.
func (s *Session) BusinessesByCategory(ctx context.Context, category string, opts PageOptions) (*BusinessPage, error) {
	return getBusinessPage(ctx, s.do(), "/api/businesses/category/"+url.PathEscape(category), opts, nil)
}

// ListFavorites lists this user's favorites, most recently added first.
func (s *Session) ListFavorites(ctx context.Context, opts PageOptions) (*BusinessPage, error) {
	return getBusinessPage(ctx, s.do(), "/api/favorites", opts, nil)
}

// AddFavorite marks a business as a favorite. Adding twice is not an error.
func (s *Session) AddFavorite(ctx context.Context, businessID string) error {
	_, err := s.favorite(ctx, http.MethodPut, businessID, "/favorite")
	return err
}

// RemoveFavorite unmarks a business. Removing twice is not an error.
func (s *Session) RemoveFavorite(ctx context.Context, businessID string) error {
	_, err := s.favorite(ctx, http.MethodDelete, businessID, "/favorite")
	return err
}

// ToggleFavorite flips the favorite state and returns the new one.
func (s *Session) ToggleFavorite(ctx context.Context, businessID string) (bool, error) {
	fav, err := s.favorite(ctx, http.MethodPost, businessID, "/favorite/toggle")
	if err != nil {
		return false, err
	}
	return fav.Favorited, nil
}

func (s *Session) favorite(ctx context.Context, method, businessID, suffix string) (*FavoriteResponse, error) {
	resp, err := s.do()(ctx, method, "/api/businesses/"+url.PathEscape(businessID)+suffix, nil, nil)
	if err != nil {
		return nil, err
	}

	var fav FavoriteResponse
	if err := decodeJSON(resp, &fav, http.StatusOK); err != nil {
		return nil, err
	}
	return &fav, nil
}
