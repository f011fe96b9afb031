package substack

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func listingByCookie(w http.ResponseWriter, r *http.Request, honoredCookie string) {
	w.Header().Set("Content-Type", "application/json")
	if honoredCookie != "" && r.Header.Get("Cookie") == honoredCookie {
		fmt.Fprint(w, `[{"slug":"secret-post"}]`)
		return
	}
	fmt.Fprint(w, `[{"slug":"public-post"}]`)
}

func TestVerifyCredentialActive(t *testing.T) {
	cookie := "substack.sid=live-session"
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listingByCookie(w, r, cookie)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, cookie)
	ok, err := client.VerifyCredential(context.Background(), server.URL)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyCredentialIgnored(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		listingByCookie(w, r, "")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "substack.sid=expired-session")
	ok, err := client.VerifyCredential(context.Background(), server.URL)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerifyCredentialRequiresOne(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	_, err := client.VerifyCredential(context.Background(), server.URL)
	require.Error(t, err)
}

func TestVerifyCredentialProbeFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client := newTestClient(t, server.URL, "substack.sid=whatever")
	_, err := client.VerifyCredential(context.Background(), server.URL)
	require.Error(t, err)
}
