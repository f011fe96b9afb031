package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"substack-archiver/lib/document"
	"substack-archiver/lib/scrapers/substack"
)

func docWithImages(serverUrl string, names ...string) document.Document {
	doc := document.Document{Filename: "2024-05-01-post.md"}
	for _, name := range names {
		doc.Images = append(doc.Images, substack.ImageRef{
			RemoteUrl: serverUrl + "/" + name,
			LocalName: name,
		})
	}
	return doc
}

func TestRetrieve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("payload for " + r.URL.Path))
	}))
	defer server.Close()

	r := NewRetriever("", 2)
	got := r.Retrieve(context.Background(), []document.Document{
		docWithImages(server.URL, "a.png", "b.jpg"),
		docWithImages(server.URL, "c.gif"),
	}, nil)

	require.Len(t, got, 3)
	require.Equal(t, []byte("payload for /a.png"), got["a.png"])
	require.Equal(t, []byte("payload for /c.gif"), got["c.gif"])
}

func TestRetrieveOmitsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			http.Error(w, "gone", http.StatusNotFound)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	r := NewRetriever("", 2)
	got := r.Retrieve(context.Background(), []document.Document{
		docWithImages(server.URL, "fine.png", "broken.png"),
	}, nil)

	require.Len(t, got, 1)
	require.Contains(t, got, "fine.png")
	require.NotContains(t, got, "broken.png")
}

func TestRetrieveBoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		defer inFlight.Add(-1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	names := make([]string, 8)
	for i := range names {
		names[i] = strings.Repeat("x", i+1) + ".png"
	}

	r := NewRetriever("", 2)
	got := r.Retrieve(context.Background(), []document.Document{
		docWithImages(server.URL, names...),
	}, nil)

	require.Len(t, got, 8)
	require.LessOrEqual(t, peak.Load(), int32(2))
}

func TestRetrieveReportsProgress(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	var mu sync.Mutex
	var updates []string
	r := NewRetriever("", 1)
	got := r.Retrieve(context.Background(), []document.Document{
		docWithImages(server.URL, "a.png", "b.png"),
	}, func(postIndex, totalPosts int, progress string) {
		mu.Lock()
		defer mu.Unlock()
		updates = append(updates, progress)
	})

	require.Len(t, got, 2)
	require.Equal(t, []string{"1/2", "2/2"}, updates)
}

func TestRetrieveNothingToDo(t *testing.T) {
	r := NewRetriever("", 1)
	got := r.Retrieve(context.Background(), nil, nil)
	require.Empty(t, got)
}
