package credstore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "credstore")
	require.NoError(t, Open(dir))
	t.Cleanup(func() { _ = Close() })
}

func TestGetAbsentKeyIsNotAnError(t *testing.T) {
	openTestStore(t)
	v, ok, err := Get(MediaTokenKey)
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, "", v)
}

func TestSetGetDelete(t *testing.T) {
	openTestStore(t)
	require.NoError(t, Set(MediaTokenKey, "tok-123"))
	v, ok, err := Get(MediaTokenKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "tok-123", v)

	require.NoError(t, Delete(MediaTokenKey))
	_, ok, err = Get(MediaTokenKey)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestProviderReadsFreshPerCall(t *testing.T) {
	openTestStore(t)
	p := Provider{}
	_, ok := p.Token(context.Background())
	require.False(t, ok)

	require.NoError(t, Set(MediaTokenKey, "tok-abc"))
	tok, ok := p.Token(context.Background())
	require.True(t, ok)
	require.Equal(t, "tok-abc", tok)

	require.NoError(t, Delete(MediaTokenKey))
	_, ok = p.Token(context.Background())
	require.False(t, ok)
}
