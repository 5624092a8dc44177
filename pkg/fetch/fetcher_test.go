package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchCapturesBodyOn2xx(t *testing.T) {
	payload := []byte{0x89, 'P', 'N', 'G', 0x0d, 0x0a}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-1", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	f := New(StaticProvider("tok-1"), time.Second)
	res := f.Fetch(context.Background(), srv.URL+"/data/img/1.png")
	require.True(t, res.Captured)
	require.Equal(t, payload, res.Data)
	require.Equal(t, "image/png", res.ContentType)
}

func TestFetchFallsBackOnNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	f := New(StaticProvider("tok-2"), time.Second)
	res := f.Fetch(context.Background(), srv.URL+"/data/img/1.png")
	require.False(t, res.Captured)
	require.Equal(t, srv.URL+"/data/img/1.png?access_token=tok-2", res.FallbackURL)
}

func TestFetchFallsBackOnNetworkError(t *testing.T) {
	f := New(StaticProvider("tok-3"), 200*time.Millisecond)
	res := f.Fetch(context.Background(), "http://127.0.0.1:1/data/img/1.png")
	require.False(t, res.Captured)
	require.True(t, strings.HasSuffix(res.FallbackURL, "?access_token=tok-3"))
}

func TestFetchMissingCredentialReturnsReferenceUnchanged(t *testing.T) {
	f := New(StaticProvider(""), time.Second)
	res := f.Fetch(context.Background(), "/data/img/1.png")
	require.False(t, res.Captured)
	require.Equal(t, "/data/img/1.png", res.FallbackURL)
}

func TestFetchIssuesExactlyOneAttempt(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := New(StaticProvider("tok"), time.Second)
	_ = f.Fetch(context.Background(), srv.URL+"/data/a.png")
	require.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestFetchOversizedBodyFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(make([]byte, 2048))
	}))
	defer srv.Close()

	f := New(StaticProvider("tok"), time.Second, WithMaxBodyBytes(1024))
	res := f.Fetch(context.Background(), srv.URL+"/data/big.bin")
	require.False(t, res.Captured)
}
