package metricsx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/hiddengems/pkg/metricsx"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByPattern(t *testing.T) {
	m := metricsx.New()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/businesses/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	h := m.Middleware()(mux)

	for _, id := range []string{"a", "b", "c"} {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/businesses/"+id, nil))
	}
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	expected := `
# HELP hiddengems_http_requests_total HTTP requests by route pattern and status code.
# TYPE hiddengems_http_requests_total counter
hiddengems_http_requests_total{method="GET",route="GET /api/businesses/{id}",status="404"} 3
hiddengems_http_requests_total{method="GET",route="unmatched",status="404"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"hiddengems_http_requests_total"))
}

func TestObserveAuthAndFavorite(t *testing.T) {
	m := metricsx.New()
	m.ObserveAuth("login", "success")
	m.ObserveAuth("login", "invalid_credentials")
	m.ObserveAuth("login", "invalid_credentials")
	m.ObserveFavorite("add")

	expected := `
# HELP hiddengems_auth_attempts_total Register and login attempts by outcome.
# TYPE hiddengems_auth_attempts_total counter
hiddengems_auth_attempts_total{operation="login",outcome="invalid_credentials"} 2
hiddengems_auth_attempts_total{operation="login",outcome="success"} 1
# HELP hiddengems_favorites_changes_total Favorite additions and removals.
# TYPE hiddengems_favorites_changes_total counter
hiddengems_favorites_changes_total{action="add"} 1
`
	require.NoError(t, testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected),
		"hiddengems_auth_attempts_total", "hiddengems_favorites_changes_total"))
}

func TestHandlerServesText(t *testing.T) {
	m := metricsx.New()
	m.ObserveAuth("register", "success")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `hiddengems_auth_attempts_total{operation="register",outcome="success"} 1`)
	require.Contains(t, rec.Body.String(), "go_goroutines")
}
