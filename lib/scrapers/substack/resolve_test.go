package substack

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveBaseUrlDirect(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "<html><body>a publication landing page</body></html>")
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	require.Equal(t, server.URL, client.ResolveBaseUrl(context.Background()))
}

func TestResolveBaseUrlProfileRedirectProbesDefault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			http.Redirect(w, r, "/@someauthor", http.StatusFound)
		case "/@someauthor":
			fmt.Fprint(w, "<html><body>author profile, no publication links</body></html>")
		case archiveApiPath:
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, "[]")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	// the profile page names no custom domain, but the default origin's
	// listing api answers with json
	require.Equal(t, server.URL, client.ResolveBaseUrl(context.Background()))
}

func TestResolveBaseUrlFallsBackToProfileOrigin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/":
			http.Redirect(w, r, "/@someauthor", http.StatusFound)
		case "/@someauthor":
			fmt.Fprint(w, "<html><body>author profile</body></html>")
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, "")
	// no custom domain and a dead listing api leaves the profile origin
	require.Equal(t, server.URL, client.ResolveBaseUrl(context.Background()))
}

func TestResolveBaseUrlFailsOpenOnTransportError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	origin := server.URL
	server.Close()

	client := newTestClient(t, origin, "")
	require.Equal(t, origin, client.ResolveBaseUrl(context.Background()))
}

func TestIsProfilePage(t *testing.T) {
	parse := func(s string) *url.URL {
		u, err := url.Parse(s)
		require.NoError(t, err)
		return u
	}

	client, err := NewClient(ClientOptions{Identifier: "testpub"})
	require.NoError(t, err)

	require.True(t, client.isProfilePage(parse("https://substack.com/@someauthor")))
	require.False(t, client.isProfilePage(parse("https://substack.com/p/a-post")))
	// an /@-prefixed path on any other host is not a profile page
	require.False(t, client.isProfilePage(parse("https://example.net/@someauthor")))
	require.False(t, client.isProfilePage(parse("https://testpub.substack.com/@someauthor")))

	override, err := NewClient(ClientOptions{
		Identifier:    "testpub",
		DefaultOrigin: "http://127.0.0.1:4242",
	})
	require.NoError(t, err)
	require.True(t, override.isProfilePage(parse("http://127.0.0.1:4242/@someauthor")))
	require.False(t, override.isProfilePage(parse("http://127.0.0.1:9999/@someauthor")))
}

func TestFindCustomDomain(t *testing.T) {
	body := `<a href="https://www.compoundingquality.net/about">my publication</a>`
	origin, found := findCustomDomain(body, "compoundingquality")
	require.True(t, found)
	require.Equal(t, "https://www.compoundingquality.net", origin)

	_, found = findCustomDomain("<body>nothing relevant</body>", "compoundingquality")
	require.False(t, found)
}
