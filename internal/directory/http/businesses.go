package http

import (
	"net/http"

	"github.com/aussiebroadwan/hiddengems/internal/directory/domain"
	"github.com/aussiebroadwan/hiddengems/internal/directory/service"
	"github.com/aussiebroadwan/hiddengems/pkg/directorysdk"
	"github.com/aussiebroadwan/hiddengems/pkg/httpx"
	"github.com/aussiebroadwan/hiddengems/pkg/idx"
)

// BusinessHandler serves the public directory. Callers with a valid token
// see their favorite flags; everyone else sees them all false.
type BusinessHandler struct {
	BusinessService *service.BusinessService
}

// HandleList lists all businesses.
//
//	@Summary		List businesses
//	@Tags			Businesses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int		false	"Zero-based page"			default(0)
//	@Param			size	query		int		false	"Page size, at most 100"	default(20)
//	@Param			sort	query		string	false	"name|city|rating|reviewCount[,asc|desc]"	default(name)
//	@Success		200		{object}	directorysdk.BusinessPage
//	@Failure		400		{object}	directorysdk.ErrorResponse	"Invalid paging parameters"
//	@Router			/api/businesses [get].
func (h *BusinessHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	h.servePage(w, r, func(viewer idx.ID, p domain.PageRequest) (domain.Page[domain.BusinessView], error) {
		return h.BusinessService.List(r.Context(), viewer, p)
	})
}

// HandleGet returns one business.
//
//	@Summary		Get business
//	@Tags			Businesses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string	true	"Business ID"
//	@Success		200	{object}	directorysdk.Business
//	@Failure		404	{object}	directorysdk.ErrorResponse	"business not found"
//	@Router			/api/businesses/{id} [get].
func (h *BusinessHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := businessID(w, r)
	if !ok {
		return
	}

	viewer, _ := httpx.CurrentUser(r.Context())
	b, err := h.BusinessService.Get(r.Context(), viewer, id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toBusiness(b))
}

// HandleSearch matches businesses by name.
//
//	@Summary		Search businesses
//	@Description	Case-insensitive substring match on the business name.
//	@Tags			Businesses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			q		query		string	true	"Search text"
//	@Param			page	query		int		false	"Zero-based page"
//	@Param			size	query		int		false	"Page size"
//	@Param			sort	query		string	false	"Sort"
//	@Success		200		{object}	directorysdk.BusinessPage
//	@Failure		400		{object}	directorysdk.ErrorResponse
//	@Router			/api/businesses/search [get].
func (h *BusinessHandler) HandleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	h.servePage(w, r, func(viewer idx.ID, p domain.PageRequest) (domain.Page[domain.BusinessView], error) {
		return h.BusinessService.Search(r.Context(), viewer, q, p)
	})
}

// HandleByCity lists businesses in a city.
//
//	@Summary		Businesses by city
//	@Tags			Businesses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			city	path		string	true	"City, case-insensitive"
//	@Param			page	query		int		false	"Zero-based page"
//	@Param			size	query		int		false	"Page size"
//	@Param			sort	query		string	false	"Sort"
//	@Success		200		{object}	directorysdk.BusinessPage
//	@Failure		400		{object}	directorysdk.ErrorResponse
//	@Router			/api/businesses/city/{city} [get].
func (h *BusinessHandler) HandleByCity(w http.ResponseWriter, r *http.Request) {
	city := r.PathValue("city")
	h.servePage(w, r, func(viewer idx.ID, p domain.PageRequest) (domain.Page[domain.BusinessView], error) {
		return h.BusinessService.ByCity(r.Context(), viewer, city, p)
	})
}

// HandleByCategory lists businesses in a category.
//
//	@Summary		Businesses by category
//	@Tags			Businesses
//	@Security		BearerAuth
//	@Produce		json
//	@Param			category	path		string	true	"Category, case-insensitive"
//	@Param			page		query		int		false	"Zero-based page"
//	@Param			size		query		int		false	"Page size"
//	@Param			sort		query		string	false	"Sort"
//	@Success		200			{object}	directorysdk.BusinessPage
//	@Failure		400			{object}	directorysdk.ErrorResponse
//	@Router			/api/businesses/category/{category} [get].
func (h *BusinessHandler) HandleByCategory(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	h.servePage(w, r, func(viewer idx.ID, p domain.PageRequest) (domain.Page[domain.BusinessView], error) {
		return h.BusinessService.ByCategory(r.Context(), viewer, category, p)
	})
}

type pageFunc func(viewer idx.ID, p domain.PageRequest) (domain.Page[domain.BusinessView], error)

func (h *BusinessHandler) servePage(w http.ResponseWriter, r *http.Request, fetch pageFunc) {
	p, ok := pageRequest(w, r)
	if !ok {
		return
	}

	viewer, _ := httpx.CurrentUser(r.Context())
	page, err := fetch(viewer, p)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toBusinessPage(page))
}

// pageRequest parses the paging query. On failure the 400 response has
// already been written.
func pageRequest(w http.ResponseWriter, r *http.Request) (domain.PageRequest, bool) {
	q := r.URL.Query()
	p, err := domain.ParsePageRequest(q.Get("page"), q.Get("size"), q.Get("sort"))
	if err != nil {
		directorysdk.ErrInvalidRequest.WithDescription(err.Error()).WriteError(w)
		return p, false
	}
	return p, true
}

// businessID parses the {id} path value. Malformed ids cannot name a
// business, so they get the same 404 as unknown ones.
func businessID(w http.ResponseWriter, r *http.Request) (idx.ID, bool) {
	id, err := idx.Parse(r.PathValue("id"))
	if err != nil {
		directorysdk.ErrBusinessNotFound.WriteError(w)
		return idx.Zero, false
	}
	return id, true
}
