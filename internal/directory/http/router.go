package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/hiddengems/internal/directory/service"
	"github.com/aussiebroadwan/hiddengems/internal/directory/store"
	"github.com/aussiebroadwan/hiddengems/pkg/httpx"
	"github.com/aussiebroadwan/hiddengems/pkg/metricsx"
	"github.com/aussiebroadwan/hiddengems/pkg/slogx"

	_ "github.com/aussiebroadwan/hiddengems/api/directory" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	resolver     httpx.TokenResolver
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store
	metrics      *metricsx.Metrics

	// RateLimits and AllowedOrigins are read by ApplyRoutes.
	RateLimits     httpx.RateLimits
	AllowedOrigins []string

	AuthService     *service.AuthService
	UserService     *service.UserService
	BusinessService *service.BusinessService
	FavoriteService *service.FavoriteService
}

func NewRouter(
	resolver httpx.TokenResolver,
	buildVersion string,
	st store.Store,
	metrics *metricsx.Metrics,
	logger *slog.Logger,
) *Router {
	return &Router{
		Mux:          http.NewServeMux(),
		resolver:     resolver,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      metrics,
		logger:       logger,
		RateLimits:   httpx.DefaultRateLimits(),
	}
}

func (r *Router) ApplyRoutes() {
	// Metrics must sit directly on the mux to see the matched pattern.
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(r.AllowedOrigins),
		httpx.IdentityMiddleware(r.resolver),
		r.metrics.Middleware(),
	}

	r.registerAuth()
	r.registerBusinesses()
	r.registerFavorites()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Hidden Gems Directory API
//	@version		0.1.0
//	@description	Business directory with search, paging and per-user favorites.
//	@description
//	@description				Sessions are HS256 bearer tokens returned by register and login.
//	@description				Directory reads work anonymously; a valid token adds favorite flags.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/hiddengems
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// Credential endpoints - strict rate limit by IP (brute force)
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(r.RateLimits.Strict),
		),
	)
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIP(r.RateLimits.Strict),
		),
	)

	me := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /api/me",
		httpx.Chain(me,
			httpx.RequireIdentity(),
			httpx.RateLimitByUser(r.RateLimits.Lenient),
		),
	)
}

func (r *Router) registerBusinesses() {
	h := &BusinessHandler{BusinessService: r.BusinessService}

	// Public reads - keyed by user when a token resolved, by IP otherwise
	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByUser(r.RateLimits.Public))
	}

	r.Mux.Handle("GET /api/businesses", public(h.HandleList))
	r.Mux.Handle("GET /api/businesses/search", public(h.HandleSearch))
	r.Mux.Handle("GET /api/businesses/city/{city}", public(h.HandleByCity))
	r.Mux.Handle("GET /api/businesses/category/{category}", public(h.HandleByCategory))
	r.Mux.Handle("GET /api/businesses/{id}", public(h.HandleGet))
}

func (r *Router) registerFavorites() {
	h := &FavoriteHandler{FavoriteService: r.FavoriteService}

	// Mutations and personal listings - identity required, moderate limit by user
	secured := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			httpx.RequireIdentity(),
			httpx.RateLimitByUser(r.RateLimits.Moderate),
		)
	}

	r.Mux.Handle("GET /api/favorites", secured(h.HandleList))
	r.Mux.Handle("PUT /api/businesses/{id}/favorite", secured(h.HandleAdd))
	r.Mux.Handle("DELETE /api/businesses/{id}/favorite", secured(h.HandleRemove))
	r.Mux.Handle("POST /api/businesses/{id}/favorite/toggle", secured(h.HandleToggle))
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(r.RateLimits.Lenient),
		),
	)
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
