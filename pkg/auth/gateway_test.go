package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func testSecConfig() SecConfig {
	return SecConfig{
		BackendKeys:  map[string]struct{}{"bk": {}},
		FrontendKeys: map[string]struct{}{"fk": {}},
		AdminKeys:    map[string]struct{}{"ak": {}},
	}
}

func gatewayServer(t *testing.T, cfg SecConfig) *httptest.Server {
	t.Helper()
	mw := AuthenticateRequestMiddleware(cfg)
	srv := httptest.NewServer(mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})))
	t.Cleanup(srv.Close)
	return srv
}

func doGet(t *testing.T, url, key string) *http.Response {
	t.Helper()
	req, _ := http.NewRequest(http.MethodGet, url, nil)
	if key != "" {
		req.Header.Set("X-API-Key", key)
	}
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return res
}

func TestGatewayRejectsMissingKey(t *testing.T) {
	srv := gatewayServer(t, testSecConfig())
	res := doGet(t, srv.URL+"/v1/scopes", "")
	require.Equal(t, http.StatusUnauthorized, res.StatusCode)
}

func TestGatewayAllowsHealthWithoutKey(t *testing.T) {
	srv := gatewayServer(t, testSecConfig())
	res := doGet(t, srv.URL+"/healthz", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGatewayFrontendScopeEnforcement(t *testing.T) {
	srv := gatewayServer(t, testSecConfig())

	res := doGet(t, srv.URL+"/v1/scopes", "fk")
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = doGet(t, srv.URL+"/v1/admin/credential", "fk")
	require.Equal(t, http.StatusForbidden, res.StatusCode)

	res = doGet(t, srv.URL+"/v1/admin/credential", "ak")
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGatewayBearerHeaderAccepted(t *testing.T) {
	srv := gatewayServer(t, testSecConfig())
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/v1/admin/scopes", nil)
	req.Header.Set("Authorization", "Bearer bk")
	res, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, res.StatusCode)
}

func TestGatewayRateLimit(t *testing.T) {
	cfg := testSecConfig()
	cfg.RPS = 1
	cfg.Burst = 1
	srv := gatewayServer(t, cfg)

	res := doGet(t, srv.URL+"/v1/admin/scopes", "bk")
	require.Equal(t, http.StatusOK, res.StatusCode)
	res = doGet(t, srv.URL+"/v1/admin/scopes", "bk")
	require.Equal(t, http.StatusTooManyRequests, res.StatusCode)
}

func TestGatewayIPWhitelist(t *testing.T) {
	cfg := testSecConfig()
	cfg.IPWhitelist = []string{"203.0.113.9"}
	srv := gatewayServer(t, cfg)
	res := doGet(t, srv.URL+"/v1/admin/scopes", "bk")
	require.Equal(t, http.StatusForbidden, res.StatusCode)
}
