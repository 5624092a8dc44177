package mediaref

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithAccessTokenNoQuery(t *testing.T) {
	got := WithAccessToken("/data/img/1.png", "tok")
	require.Equal(t, "/data/img/1.png?access_token=tok", got)
}

func TestWithAccessTokenExistingQuery(t *testing.T) {
	got := WithAccessToken("/data/img/1.png?x=1", "abc def")
	require.Equal(t, "/data/img/1.png?x=1&access_token=abc%20def", got)
}

func TestWithAccessTokenEmptyToken(t *testing.T) {
	require.Equal(t, "/data/img/1.png", WithAccessToken("/data/img/1.png", ""))
}

func TestWithAccessTokenEscapesReserved(t *testing.T) {
	got := WithAccessToken("/data/a.png", "a&b=c")
	require.Equal(t, "/data/a.png?access_token=a%26b%3Dc", got)
}
