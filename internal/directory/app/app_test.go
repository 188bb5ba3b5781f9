package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aussiebroadwan/hiddengems/pkg/directorysdk"
	"github.com/aussiebroadwan/hiddengems/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()

	cfg, err := loadConfig(map[string]string{
		"JWT_SECRET": strings.Repeat("x", 48),
		"LOG_LEVEL":  "error",
	})
	require.NoError(t, err)

	dir := t.TempDir()
	cfg.DatabaseFile = filepath.Join(dir, "directory.db")
	cfg.PepperFile = filepath.Join(dir, "pepper")
	return cfg
}

func TestNewRefusesWeakSecret(t *testing.T) {
	for _, secret := range []string{"", "change-me", "too-short"} {
		cfg := testConfig(t)
		cfg.JWTSecret = secret

		_, err := New(context.Background(), cfg)

		var cfgErr *jwtx.ConfigurationError
		require.ErrorAs(t, err, &cfgErr, "secret %q", secret)
		require.ErrorIs(t, err, jwtx.ErrWeakSecret)
	}
}

func TestNewRefusesInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.DatabaseDriver = "oracle"

	_, err := New(context.Background(), cfg)
	require.ErrorContains(t, err, "DATABASE_DRIVER")
}

func TestNewWiresSeededDirectory(t *testing.T) {
	app, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.db.Close() })

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/businesses?size=10", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var page directorysdk.BusinessPage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Equal(t, int64(5), page.TotalElements)

	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "hiddengems_http_requests_total")
}
